package prompts

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/testnotify-poc/server/internal/workflow/model"
)

var testFields = model.ExtractedFields{
	VehicleModel:    "Sonata",
	SoftwareVersion: "v2.1.3",
	ControlBoard:    "ECU-2024",
	ManagerName:     "Kim",
	DistributorName: "Park",
	TestResult:      "All Pass",
}

func TestRenderDraft(t *testing.T) {
	cfg := model.NotifyPromptConfig{TeamName: "Vehicle SW Test Team", CompanyName: "AutoTech"}

	got, err := RenderDraft(context.Background(), cfg, "Sonata, v2.1.3, ECU-2024", "2026-08-30", testFields)
	require.NoError(t, err)

	for _, want := range []string{
		"Sonata, v2.1.3, ECU-2024",
		"2026-08-30",
		"Sonata",
		"v2.1.3",
		"ECU-2024",
		"Kim",
		"Park",
		"All Pass",
		"Vehicle SW Test Team",
		"AutoTech",
	} {
		assert.Contains(t, got, want)
	}
	assert.NotContains(t, got, "{user_input}")
	assert.NotContains(t, got, "{vehicle_model}")
}

func TestRenderDraft_EmptyInput(t *testing.T) {
	_, err := RenderDraft(context.Background(), model.NotifyPromptConfig{}, "   ", "2026-08-30", testFields)
	assert.Error(t, err)
}

func TestRenderReview(t *testing.T) {
	got, err := RenderReview(context.Background(), "Sonata, v2.1.3, ECU-2024", "Subject: Test Completed\n\nDear Kim,")
	require.NoError(t, err)

	assert.Contains(t, got, "Sonata, v2.1.3, ECU-2024")
	assert.Contains(t, got, "Subject: Test Completed")
	assert.Contains(t, got, `"overall_score"`)
	assert.Contains(t, got, "APPROVE")
	assert.NotContains(t, got, "{original_input}")
	assert.NotContains(t, got, "{generated_email}")
}

func TestRenderReview_EmptyDraft(t *testing.T) {
	_, err := RenderReview(context.Background(), "some input", "")
	assert.Error(t, err)
}
