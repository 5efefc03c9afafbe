// Package report renders the human-readable summary and the HTML report for
// a finished run, and persists the HTML artifact.
package report

import (
	"time"

	"github.com/testnotify-poc/server/internal/workflow/model"
)

// timestampLayout matches the run timestamp format used across the pipeline.
const timestampLayout = "2006-01-02 15:04:05"

// Data is the template input for both the plain-text summary and the HTML
// report. RenderedAt is supplied by the caller so rendering stays deterministic
// for a fixed value; it is distinct from RunTimestamp, which never changes
// after the run starts.
type Data struct {
	RunID         string
	RunTimestamp  string
	RenderedAt    string
	RawInput      string
	Fields        model.ExtractedFields
	DraftedEmail  string
	Evaluation    model.Evaluation
	SendStatus    string
	RevisionCount int
	TotalCostUSD  float64
}

// Snapshot builds template data from the run state. The state is read only.
func Snapshot(s *model.RunState, renderedAt time.Time) Data {
	d := Data{
		RunID:         s.RunID,
		RunTimestamp:  s.RunTimestamp,
		RenderedAt:    renderedAt.Format(timestampLayout),
		RawInput:      s.RawInput,
		Fields:        s.Fields,
		DraftedEmail:  s.DraftedEmail,
		SendStatus:    s.SendStatus,
		RevisionCount: s.RevisionCount,
		TotalCostUSD:  s.TotalCostUSD,
	}
	if s.Evaluation != nil {
		d.Evaluation = *s.Evaluation
	}
	return d
}
