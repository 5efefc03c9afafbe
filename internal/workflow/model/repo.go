package model

import "context"

// RunRecord is the compact ledger entry persisted after a completed run.
// It is an audit trail, not workflow state: a run can never be resumed from it.
type RunRecord struct {
	RunID         string  `json:"run_id"`
	RunTimestamp  string  `json:"run_timestamp"`
	RawInput      string  `json:"raw_input"`
	OverallScore  int     `json:"overall_score"`
	SendStatus    string  `json:"send_status"`
	ReportPath    string  `json:"report_path"`
	RevisionCount int     `json:"revision_count"`
	TotalCostUSD  float64 `json:"total_cost_usd"`
}

// RunRepository records completed runs.
type RunRepository interface {
	// RecordRun appends a record for a completed run.
	RecordRun(ctx context.Context, record *RunRecord) error

	// RunCount returns the number of recorded runs currently retained.
	RunCount(ctx context.Context) (int, error)
}

// NoopRunRepository discards records. Used when the ledger is disabled.
type NoopRunRepository struct{}

func (NoopRunRepository) RecordRun(ctx context.Context, record *RunRecord) error {
	return nil
}

func (NoopRunRepository) RunCount(ctx context.Context) (int, error) {
	return 0, nil
}

var _ RunRepository = NoopRunRepository{}
