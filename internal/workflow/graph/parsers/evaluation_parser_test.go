package parsers

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/testnotify-poc/server/internal/workflow/model"
)

func TestParseEvaluation_Valid(t *testing.T) {
	content := `{
		"overall_score": 100,
		"recommendation": "APPROVE",
		"feedback": "flawless",
		"parsing_accuracy": 40,
		"format_compliance": 30,
		"required_info": 20,
		"format_completeness": 10
	}`

	eval := ParseEvaluation(content)

	assert.Equal(t, 100, eval.OverallScore)
	assert.Equal(t, model.RecommendApprove, eval.Recommendation)
	assert.Equal(t, "flawless", eval.Feedback)
	assert.Equal(t, 40, eval.ParsingAccuracy)
	assert.Equal(t, 30, eval.FormatCompliance)
	assert.Equal(t, 20, eval.RequiredInfo)
	assert.Equal(t, 10, eval.FormatCompleteness)
}

func TestParseEvaluation_ValidWithoutSubScores(t *testing.T) {
	content := `{"overall_score": 80, "recommendation": "REVISE", "feedback": "subject line missing the version"}`

	eval := ParseEvaluation(content)

	assert.Equal(t, 80, eval.OverallScore)
	assert.Equal(t, model.RecommendRevise, eval.Recommendation)
	assert.Equal(t, "subject line missing the version", eval.Feedback)
}

func TestParseEvaluation_SurroundingWhitespace(t *testing.T) {
	content := "\n  {\"overall_score\": 100, \"recommendation\": \"APPROVE\", \"feedback\": \"ok\"}  \n"

	eval := ParseEvaluation(content)

	assert.Equal(t, 100, eval.OverallScore)
	assert.Equal(t, model.RecommendApprove, eval.Recommendation)
}

func TestParseEvaluation_Fallback(t *testing.T) {
	want := model.Evaluation{
		OverallScore:   0,
		Recommendation: model.RecommendRevise,
		Feedback:       FallbackFeedback,
	}

	tests := []struct {
		name    string
		content string
	}{
		{"empty response", ""},
		{"plain prose", "The email looks great, 100/100!"},
		{"truncated json", `{"overall_score": 100, "recommendation": "APPRO`},
		{"markdown code fence", "```json\n{\"overall_score\": 100, \"recommendation\": \"APPROVE\", \"feedback\": \"ok\"}\n```"},
		{"score above maximum", `{"overall_score": 140, "recommendation": "APPROVE", "feedback": "ok"}`},
		{"negative score", `{"overall_score": -5, "recommendation": "REVISE", "feedback": "ok"}`},
		{"unknown recommendation", `{"overall_score": 100, "recommendation": "SHIP_IT", "feedback": "ok"}`},
		{"missing feedback", `{"overall_score": 100, "recommendation": "APPROVE"}`},
		{"sub-score above ceiling", `{"overall_score": 100, "recommendation": "APPROVE", "feedback": "ok", "parsing_accuracy": 55}`},
		{"score as string", `{"overall_score": "100", "recommendation": "APPROVE", "feedback": "ok"}`},
		{"json array", `[{"overall_score": 100}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseEvaluation(tt.content)
			assert.Equal(t, want, got)
			assert.NotEmpty(t, got.Feedback)
		})
	}
}

func TestParseEvaluation_OversizedContent(t *testing.T) {
	big := make([]byte, maxContentLen+1024)
	for i := range big {
		big[i] = 'a'
	}

	got := ParseEvaluation(string(big))

	assert.Equal(t, 0, got.OverallScore)
	assert.Equal(t, model.RecommendRevise, got.Recommendation)
}
