package parsers

import (
	_ "embed"
	"encoding/json"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/testnotify-poc/server/internal/workflow/model"
	logx "github.com/testnotify-poc/server/pkg/logger"
)

//go:embed evaluation_schema.json
var evaluationSchema string

// FallbackFeedback is the marker carried by the synthetic evaluation that
// replaces an unparseable review response.
const FallbackFeedback = "review response could not be parsed as a valid evaluation"

// maxContentLen guards against pathological model output.
const maxContentLen = 128 * 1024 // 128KB

var schemaLoader = gojsonschema.NewStringLoader(evaluationSchema)

// ParseEvaluation decodes the review model's response into an Evaluation,
// validating it against the embedded JSON schema first. It never returns an
// error: any decode or validation failure yields a zero-score REVISE
// evaluation so the router always has a decidable value and a malformed
// model response can never abort a run. The response must be a bare JSON
// object; markdown code fences are treated as a parse failure like any other
// malformed output.
func ParseEvaluation(content string) model.Evaluation {
	if len(content) > maxContentLen {
		logx.Warn().
			Str("component", "evaluation_parser").
			Int("max_len", maxContentLen).
			Int("orig_len", len(content)).
			Msg("review response truncated due to size limit")
		content = content[:maxContentLen]
	}
	content = strings.TrimSpace(content)

	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewStringLoader(content))
	if err != nil {
		logx.Error().Err(err).
			Str("component", "evaluation_parser").
			Msg("review response is not valid JSON")
		return fallbackEvaluation()
	}
	if !result.Valid() {
		violations := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			violations = append(violations, desc.String())
		}
		logx.Error().
			Str("component", "evaluation_parser").
			Strs("violations", violations).
			Msg("review response failed schema validation")
		return fallbackEvaluation()
	}

	var eval model.Evaluation
	if err := json.Unmarshal([]byte(content), &eval); err != nil {
		logx.Error().Err(err).
			Str("component", "evaluation_parser").
			Msg("failed to decode validated review response")
		return fallbackEvaluation()
	}
	return eval
}

func fallbackEvaluation() model.Evaluation {
	return model.Evaluation{
		OverallScore:   0,
		Recommendation: model.RecommendRevise,
		Feedback:       FallbackFeedback,
	}
}
