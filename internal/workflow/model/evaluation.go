package model

// Recommendation is the reviewer's verdict on a drafted email.
type Recommendation string

const (
	RecommendApprove Recommendation = "APPROVE"
	RecommendRevise  Recommendation = "REVISE"
)

// Rubric sub-score ceilings. The four components sum toward the overall score.
const (
	MaxParsingAccuracy    = 40
	MaxFormatCompliance   = 30
	MaxRequiredInfo       = 20
	MaxFormatCompleteness = 10
	MaxOverallScore       = 100
)

// Evaluation is the structured self-grade the review model returns for a draft.
type Evaluation struct {
	OverallScore       int            `json:"overall_score"`
	Recommendation     Recommendation `json:"recommendation"`
	Feedback           string         `json:"feedback"`
	ParsingAccuracy    int            `json:"parsing_accuracy"`
	FormatCompliance   int            `json:"format_compliance"`
	RequiredInfo       int            `json:"required_info"`
	FormatCompleteness int            `json:"format_completeness"`
}

// Decision is the router outcome for an evaluation.
type Decision string

const (
	DecisionSend   Decision = "send"
	DecisionRevise Decision = "revise"
)

// Route decides the next stage after review. The acceptance bar is exact:
// only a perfect score combined with an explicit APPROVE sends the email;
// any other combination, including a perfect score with a REVISE verdict,
// forces another full regeneration cycle.
func Route(e Evaluation) Decision {
	if e.OverallScore == MaxOverallScore && e.Recommendation == RecommendApprove {
		return DecisionSend
	}
	return DecisionRevise
}
