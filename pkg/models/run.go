package models

import (
	"time"
)

// RunStatus represents the status of a benchmark run
type RunStatus string

const (
	RunStatusPending   RunStatus = "pending"
	RunStatusRunning   RunStatus = "running"
	RunStatusCompleted RunStatus = "completed"
	RunStatusFailed    RunStatus = "failed"
)

// Run represents one benchmark invocation of an external command
type Run struct {
	ID          string     `json:"id"`
	Command     string     `json:"command"`
	Args        []string   `json:"args,omitempty"`
	Status      RunStatus  `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	StartedAt   *time.Time `json:"started_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	Error       string     `json:"error,omitempty"`
}

// RunResult captures the measurement a completed run produced
type RunResult struct {
	RunID       string                 `json:"run_id"`
	Best        float64                `json:"best_seconds"`
	Unit        string                 `json:"unit"`
	Number      int                    `json:"number"`
	Repeat      int                    `json:"repeat"`
	Precision   int                    `json:"precision"`
	Times       []float64              `json:"times"`
	Brief       string                 `json:"brief"`
	Host        map[string]interface{} `json:"host,omitempty"`
	CompletedAt time.Time              `json:"completed_at"`
}
