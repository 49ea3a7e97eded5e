package report

import (
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/fnbench/fnbench/pkg/models"
)

func sampleRun(id string) (*models.Run, *models.RunResult) {
	created := time.Now().Add(-2 * time.Second)
	started := created.Add(time.Millisecond)
	completed := time.Now()
	run := &models.Run{
		ID:          id,
		Command:     "true",
		Status:      models.RunStatusCompleted,
		CreatedAt:   created,
		StartedAt:   &started,
		CompletedAt: &completed,
	}
	res := &models.RunResult{
		RunID:       id,
		Best:        1.5e-3,
		Unit:        "msec",
		Number:      100,
		Repeat:      5,
		Precision:   1,
		Times:       []float64{0.15, 0.16, 0.17, 0.18, 0.19},
		Brief:       "100 loops, best of 5: 1.5 msec per loop",
		CompletedAt: completed,
	}
	return run, res
}

func readRuns(t *testing.T, path string) []interface{} {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read results file: %v", err)
	}
	var doc map[string]interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("results file is not valid JSON: %v", err)
	}
	runs, ok := doc["runs"].([]interface{})
	if !ok {
		t.Fatalf("results file has no runs array: %v", doc)
	}
	return runs
}

func TestWriteRunResult(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, nil)

	run, res := sampleRun("run-1")
	if err := w.WriteRunResult(run, res); err != nil {
		t.Fatalf("WriteRunResult failed: %v", err)
	}

	files, err := w.Files()
	if err != nil || len(files) != 1 {
		t.Fatalf("expected exactly one results file, got %v (%v)", files, err)
	}

	runs := readRuns(t, files[0])
	if len(runs) != 1 {
		t.Fatalf("expected 1 recorded run, got %d", len(runs))
	}
	record := runs[0].(map[string]interface{})
	if record["run_id"] != "run-1" || record["unit"] != "msec" {
		t.Errorf("unexpected record: %v", record)
	}
	if record["brief"] != res.Brief {
		t.Errorf("brief not carried into record: %v", record["brief"])
	}
}

func TestWriteRunResultAppendsToRecentFile(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, nil)

	run1, res1 := sampleRun("run-1")
	run2, res2 := sampleRun("run-2")
	if err := w.WriteRunResult(run1, res1); err != nil {
		t.Fatalf("first WriteRunResult failed: %v", err)
	}
	if err := w.WriteRunResult(run2, res2); err != nil {
		t.Fatalf("second WriteRunResult failed: %v", err)
	}

	files, err := w.Files()
	if err != nil || len(files) != 1 {
		t.Fatalf("writes within the hour should share one file, got %v (%v)", files, err)
	}
	runs := readRuns(t, files[0])
	if len(runs) != 2 {
		t.Errorf("expected 2 recorded runs, got %d", len(runs))
	}
}

func TestWriteRunResultNoDirConfigured(t *testing.T) {
	w := &Writer{}
	run, res := sampleRun("run-1")
	if err := w.WriteRunResult(run, res); err != nil {
		t.Errorf("empty output dir should be a no-op, got %v", err)
	}
}
