package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/fnbench/fnbench/internal/report"
	"github.com/fnbench/fnbench/internal/sysinfo"
	"github.com/fnbench/fnbench/pkg/models"
	"github.com/fnbench/fnbench/pkg/timeit"
)

var (
	benchNumber    int
	benchRepeat    int
	benchPrecision int
	benchUnit      string
)

// benchCmd represents the bench command
var benchCmd = &cobra.Command{
	Use:   "bench [flags] -- <command> [args...]",
	Short: "Time an external command",
	Long: `Runs a command repeatedly and reports the best per-loop time. The loop
count is autoranged unless --number is given; results are written to the
configured results directory.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runBench,
}

func init() {
	rootCmd.AddCommand(benchCmd)

	benchCmd.Flags().IntVarP(&benchNumber, "number", "n", 0, "loops per repetition (0 = autorange)")
	benchCmd.Flags().IntVarP(&benchRepeat, "repeat", "r", 0, "measurement repetitions (0 = config default)")
	benchCmd.Flags().IntVarP(&benchPrecision, "precision", "p", 0, "display precision (0 = config default)")
	benchCmd.Flags().StringVarP(&benchUnit, "unit", "u", "", "display unit: nsec, usec, msec, sec (default: derive)")
}

func runBench(cmd *cobra.Command, args []string) error {
	command, cmdArgs := args[0], args[1:]

	now := time.Now()
	run := &models.Run{
		ID:        fmt.Sprintf("run-%d", now.UnixNano()),
		Command:   command,
		Args:      cmdArgs,
		Status:    models.RunStatusRunning,
		CreatedAt: now,
	}

	// Probe once so a broken command fails before we commit to timing it.
	if err := execOnce(command, cmdArgs); err != nil {
		run.Status = models.RunStatusFailed
		run.Error = err.Error()
		report.Global().RecordRunFailure()
		return fmt.Errorf("command failed during probe run: %w", err)
	}

	report.Global().IncrStarted()
	started := time.Now()
	run.StartedAt = &started

	fn := func() {
		// Probe already validated the command; timing loops ignore failures
		// so one flaky exit does not abort the measurement.
		_ = execOnce(command, cmdArgs)
	}

	opts := timeit.Options{
		Number:    firstNonZero(benchNumber, cfg.Number),
		Repeat:    firstNonZero(benchRepeat, cfg.Repeat),
		Precision: firstNonZero(benchPrecision, cfg.Precision),
		Unit:      firstNonEmpty(benchUnit, cfg.Unit),
	}

	r, err := timeit.TimeitPlus(fn, opts)
	if err != nil {
		run.Status = models.RunStatusFailed
		run.Error = err.Error()
		report.Global().RecordRunFailure()
		return fmt.Errorf("timing failed: %w", err)
	}

	completed := time.Now()
	run.Status = models.RunStatusCompleted
	run.CompletedAt = &completed

	res := &models.RunResult{
		RunID:       run.ID,
		Best:        r.Best,
		Unit:        string(r.Unit),
		Number:      r.Number,
		Repeat:      r.Repeat,
		Precision:   r.Precision,
		Times:       append([]float64(nil), r.Times...),
		Brief:       r.Brief(),
		Host:        sysinfo.Collect().Map(),
		CompletedAt: completed,
	}
	if err := r.Release(); err != nil {
		return err
	}

	writer := report.NewWriter(cfg.ResultsDir, logger)
	if err := writer.WriteRunResult(run, res); err != nil {
		logger.Warn("failed to persist run results", map[string]interface{}{
			"error": err.Error(),
		})
	}
	report.Global().RecordRun(res)

	if IsJSONOutput() {
		return json.NewEncoder(os.Stdout).Encode(res)
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Field", "Value")
	table.Append([]string{"Command", command})
	table.Append([]string{"Loops", fmt.Sprintf("%d", res.Number)})
	table.Append([]string{"Repeat", fmt.Sprintf("%d", res.Repeat)})
	table.Append([]string{"Best", fmt.Sprintf("%.*f %s", res.Precision, res.Best*unitScale(res.Unit), res.Unit)})
	table.Append([]string{"Summary", res.Brief})
	table.Render()
	return nil
}

func execOnce(command string, args []string) error {
	c := exec.Command(command, args...)
	c.Stdout = io.Discard
	c.Stderr = io.Discard
	return c.Run()
}

func firstNonZero(values ...int) int {
	for _, v := range values {
		if v != 0 {
			return v
		}
	}
	return 0
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
