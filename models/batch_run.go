package models

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// BatchRunStatus represents the status of a batch analysis run
type BatchRunStatus string

const (
	BatchRunStatusRunning   BatchRunStatus = "running"
	BatchRunStatusCompleted BatchRunStatus = "completed"
	BatchRunStatusFailed    BatchRunStatus = "failed"
)

// BatchRun records a single execution of the analysis pipeline over a
// set of tickers
type BatchRun struct {
	ID         uuid.UUID      `json:"id"`
	RunAt      time.Time      `json:"run_at"`
	Tickers    []string       `json:"tickers"`
	Outcomes   []BatchOutcome `json:"outcomes"`
	TopTickers []string       `json:"top_tickers"`
	DurationMs int64          `json:"duration_ms"`
	Status     BatchRunStatus `json:"status"`
	Error      string         `json:"error,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
}

// BatchOutcome is one ticker's result within a batch run. ReportID,
// Score, and Rating are set only when the ticker's analysis succeeded;
// Error carries the failure otherwise.
type BatchOutcome struct {
	Ticker   string    `json:"ticker"`
	ReportID uuid.UUID `json:"report_id,omitempty"`
	Score    *float64  `json:"score,omitempty"`
	Rating   Rating    `json:"rating,omitempty"`
	Error    string    `json:"error,omitempty"`
}

// NewBatchRun creates a new BatchRun in the running state
func NewBatchRun(tickers []string) *BatchRun {
	now := time.Now()
	return &BatchRun{
		ID:         uuid.New(),
		RunAt:      now,
		Tickers:    tickers,
		Outcomes:   []BatchOutcome{},
		TopTickers: []string{},
		Status:     BatchRunStatusRunning,
		CreatedAt:  now,
	}
}

// Complete marks the batch run as completed
func (b *BatchRun) Complete(durationMs int64, topTickers []string) {
	b.Status = BatchRunStatusCompleted
	b.DurationMs = durationMs
	b.TopTickers = topTickers
}

// Fail marks the batch run as failed with an error message
func (b *BatchRun) Fail(err string, durationMs int64) {
	b.Status = BatchRunStatusFailed
	b.Error = err
	b.DurationMs = durationMs
}

// AddOutcome appends one ticker's outcome to the run
func (b *BatchRun) AddOutcome(outcome BatchOutcome) {
	b.Outcomes = append(b.Outcomes, outcome)
}

// Succeeded returns how many tickers were analyzed successfully
func (b *BatchRun) Succeeded() int {
	n := 0
	for _, o := range b.Outcomes {
		if o.Error == "" {
			n++
		}
	}
	return n
}

// Failed returns how many tickers failed analysis
func (b *BatchRun) Failed() int {
	return len(b.Outcomes) - b.Succeeded()
}

// TopByScore returns the tickers of the n highest scoring successful
// outcomes, best first. Ties keep their outcome order.
func (b *BatchRun) TopByScore(n int) []string {
	scored := make([]BatchOutcome, 0, len(b.Outcomes))
	for _, o := range b.Outcomes {
		if o.Error == "" && o.Score != nil {
			scored = append(scored, o)
		}
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return *scored[i].Score > *scored[j].Score
	})

	if n > len(scored) {
		n = len(scored)
	}
	top := make([]string, 0, len(scored))
	for i := 0; i < n; i++ {
		top = append(top, scored[i].Ticker)
	}
	return top
}

// IsRunning returns true if the batch run is still in progress
func (b *BatchRun) IsRunning() bool {
	return b.Status == BatchRunStatusRunning
}

// IsCompleted returns true if the batch run completed successfully
func (b *BatchRun) IsCompleted() bool {
	return b.Status == BatchRunStatusCompleted
}

// IsFailed returns true if the batch run failed
func (b *BatchRun) IsFailed() bool {
	return b.Status == BatchRunStatusFailed
}
