package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/testnotify-poc/server/internal/workflow/model"
)

func testState() *model.RunState {
	return &model.RunState{
		RunID:        "run-123",
		RawInput:     "Sonata, v2.1.3, ECU-2024",
		RunTimestamp: "2026-08-30 10:00:00",
		CurrentDate:  "2026-08-30",
		Fields: model.ExtractedFields{
			VehicleModel:    "Sonata",
			SoftwareVersion: "v2.1.3",
			ControlBoard:    "ECU-2024",
			ManagerName:     "Kim",
			DistributorName: "Park",
			TestResult:      "All Pass",
		},
		DraftedEmail: "Subject: Test Completed\n\nDear Kim,",
		Evaluation: &model.Evaluation{
			OverallScore:       100,
			Recommendation:     model.RecommendApprove,
			Feedback:           "flawless",
			ParsingAccuracy:    40,
			FormatCompliance:   30,
			RequiredInfo:       20,
			FormatCompleteness: 10,
		},
		SendStatus:    model.SendStatusSimulated,
		RevisionCount: 2,
		TotalCostUSD:  0.000123,
	}
}

func TestSnapshot(t *testing.T) {
	state := testState()
	renderedAt := time.Date(2026, 8, 30, 10, 5, 0, 0, time.UTC)

	data := Snapshot(state, renderedAt)

	assert.Equal(t, "run-123", data.RunID)
	assert.Equal(t, "2026-08-30 10:00:00", data.RunTimestamp)
	assert.Equal(t, "2026-08-30 10:05:00", data.RenderedAt)
	assert.Equal(t, *state.Evaluation, data.Evaluation)
	assert.Equal(t, 2, data.RevisionCount)
}

func TestSnapshot_NoEvaluation(t *testing.T) {
	state := testState()
	state.Evaluation = nil

	data := Snapshot(state, time.Now())

	assert.Equal(t, model.Evaluation{}, data.Evaluation)
}

func TestRenderSummary(t *testing.T) {
	summary, err := RenderSummary(Snapshot(testState(), time.Now()))
	require.NoError(t, err)

	for _, want := range []string{
		"Status: completed (simulated)",
		"Accuracy: 100/100",
		"Input: Sonata, v2.1.3, ECU-2024",
		"Parsing accuracy: 40/40",
		"Format compliance: 30/30",
		"Required info: 20/20",
		"Format completeness: 10/10",
		"Feedback: flawless",
	} {
		assert.Contains(t, summary, want)
	}
}

func TestRenderSummary_EmptyFeedback(t *testing.T) {
	state := testState()
	state.Evaluation.Feedback = ""

	summary, err := RenderSummary(Snapshot(state, time.Now()))
	require.NoError(t, err)

	assert.Contains(t, summary, "Feedback: none")
}

func TestRenderHTML_IdempotentExceptTimestamp(t *testing.T) {
	state := testState()
	renderedAt := time.Date(2026, 8, 30, 10, 5, 0, 0, time.UTC)

	first, err := RenderHTML(Snapshot(state, renderedAt))
	require.NoError(t, err)
	second, err := RenderHTML(Snapshot(state, renderedAt))
	require.NoError(t, err)

	assert.Equal(t, first, second)

	// A later render of the same state differs only in the embedded render
	// timestamp.
	later, err := RenderHTML(Snapshot(state, renderedAt.Add(time.Minute)))
	require.NoError(t, err)
	assert.NotEqual(t, first, later)

	stripped := strings.ReplaceAll(later, "2026-08-30 10:06:00", "2026-08-30 10:05:00")
	assert.Equal(t, first, stripped)
}

func TestRenderHTML_Content(t *testing.T) {
	html, err := RenderHTML(Snapshot(testState(), time.Now()))
	require.NoError(t, err)

	for _, want := range []string{
		"<!DOCTYPE html>",
		"run-123",
		"completed (simulated)",
		"100/100",
		"Sonata",
		"Subject: Test Completed",
	} {
		assert.Contains(t, html, want)
	}
}

func TestRenderHTML_EscapesDraft(t *testing.T) {
	state := testState()
	state.DraftedEmail = "<script>alert(1)</script>"

	html, err := RenderHTML(Snapshot(state, time.Now()))
	require.NoError(t, err)

	assert.NotContains(t, html, "<script>alert(1)</script>")
}

func TestPublish_OverwritesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "email_result.html")

	require.NoError(t, Publish(path, "first version"))
	require.NoError(t, Publish(path, "second version"))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second version", string(got))
}

func TestPublish_WriteFailure(t *testing.T) {
	// Directory path cannot be written as a file.
	err := Publish(t.TempDir(), "content")
	assert.Error(t, err)
}
