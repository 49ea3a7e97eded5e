package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fnbench/fnbench/internal/logging"
	"github.com/fnbench/fnbench/pkg/models"
)

// Writer writes run results to JSON files for exporters and later analysis
type Writer struct {
	outputDir string
	logger    *logging.Logger
}

// NewWriter creates a results writer rooted at outputDir
func NewWriter(outputDir string, logger *logging.Logger) *Writer {
	if logger == nil {
		logger = logging.NewLogger(logging.INFO, false)
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		logger.Warn("failed to create results directory", map[string]interface{}{
			"dir":   outputDir,
			"error": err.Error(),
		})
	}
	return &Writer{
		outputDir: outputDir,
		logger:    logger,
	}
}

// WriteRunResult appends a completed run to the current results file.
// Results written within the same hour land in one file; older files are
// left alone and a fresh timestamped file is started.
func (w *Writer) WriteRunResult(run *models.Run, res *models.RunResult) error {
	if w.outputDir == "" {
		return nil // No output directory configured
	}

	record := map[string]interface{}{
		"run_id":       run.ID,
		"command":      run.Command,
		"args":         run.Args,
		"status":       run.Status,
		"created_at":   run.CreatedAt.Unix(),
		"best_seconds": res.Best,
		"unit":         res.Unit,
		"number":       res.Number,
		"repeat":       res.Repeat,
		"times":        res.Times,
		"brief":        res.Brief,
	}
	if run.CompletedAt != nil && run.StartedAt != nil {
		record["duration_seconds"] = run.CompletedAt.Sub(*run.StartedAt).Seconds()
	}
	if res.Host != nil {
		record["host"] = res.Host
	}

	timestamp := time.Now().Format("20060102_150405")
	resultPath := filepath.Join(w.outputDir, fmt.Sprintf("bench_results_%s.json", timestamp))

	var runs []map[string]interface{}
	if existing := w.findRecentFile(); existing != "" {
		if data, err := os.ReadFile(existing); err == nil {
			var doc map[string]interface{}
			if err := json.Unmarshal(data, &doc); err == nil {
				if prior, ok := doc["runs"].([]interface{}); ok {
					for _, r := range prior {
						if rm, ok := r.(map[string]interface{}); ok {
							runs = append(runs, rm)
						}
					}
				}
			}
		}
		resultPath = existing
	}

	runs = append(runs, record)

	output := map[string]interface{}{
		"written_at": time.Now().Format(time.RFC3339),
		"source":     "fnbench",
		"runs":       runs,
	}

	data, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	if err := os.WriteFile(resultPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write results file: %w", err)
	}

	w.logger.Info("run results written", map[string]interface{}{
		"path": resultPath,
	})
	return nil
}

// Files returns the result files under the output directory, oldest first
func (w *Writer) Files() ([]string, error) {
	return filepath.Glob(filepath.Join(w.outputDir, "bench_results_*.json"))
}

// findRecentFile finds a results file modified within the last hour
func (w *Writer) findRecentFile() string {
	matches, err := w.Files()
	if err != nil || len(matches) == 0 {
		return ""
	}

	cutoff := time.Now().Add(-1 * time.Hour)
	var mostRecent string
	var mostRecentTime time.Time

	for _, match := range matches {
		info, err := os.Stat(match)
		if err != nil {
			continue
		}
		if info.ModTime().After(cutoff) && info.ModTime().After(mostRecentTime) {
			mostRecent = match
			mostRecentTime = info.ModTime()
		}
	}
	return mostRecent
}
