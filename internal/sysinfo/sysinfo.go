// Package sysinfo captures host hardware details for result metadata, so a
// measurement can always be traced back to the machine that produced it.
package sysinfo

import (
	"runtime"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// HostInfo describes the machine a benchmark ran on
type HostInfo struct {
	CPUModel      string `json:"cpu_model"`
	CPUThreads    int    `json:"cpu_threads"`
	RAMTotalBytes uint64 `json:"ram_total_bytes"`
	OS            string `json:"os"`
	Architecture  string `json:"architecture"`
	GoVersion     string `json:"go_version"`
}

// Collect gathers host details. Probing is best effort: fields whose probe
// fails stay at their zero value rather than failing the benchmark.
func Collect() *HostInfo {
	info := &HostInfo{
		OS:           runtime.GOOS,
		Architecture: runtime.GOARCH,
		GoVersion:    runtime.Version(),
	}

	if cpus, err := cpu.Info(); err == nil && len(cpus) > 0 {
		info.CPUModel = cpus[0].ModelName
	}
	if threads, err := cpu.Counts(true); err == nil {
		info.CPUThreads = threads
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		info.RAMTotalBytes = vm.Total
	}

	return info
}

// Map flattens the host info for embedding into result records
func (h *HostInfo) Map() map[string]interface{} {
	return map[string]interface{}{
		"cpu_model":       h.CPUModel,
		"cpu_threads":     h.CPUThreads,
		"ram_total_bytes": h.RAMTotalBytes,
		"os":              h.OS,
		"architecture":    h.Architecture,
		"go_version":      h.GoVersion,
	}
}
