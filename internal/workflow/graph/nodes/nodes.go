package nodes

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"
	"github.com/google/uuid"

	errx "github.com/testnotify-poc/server/internal/core/error"
	"github.com/testnotify-poc/server/internal/workflow/graph/parsers"
	"github.com/testnotify-poc/server/internal/workflow/graph/prompts"
	"github.com/testnotify-poc/server/internal/workflow/model"
	"github.com/testnotify-poc/server/internal/workflow/report"
	logx "github.com/testnotify-poc/server/pkg/logger"
)

// Node identifiers for the notification workflow graph.
const (
	NodeFieldExtractor = "FieldExtractor"
	NodeDraftPrompt    = "DraftPromptBuilder"
	NodeDraftModel     = "DraftChatModel"
	NodeReviewPrompt   = "ReviewPromptBuilder"
	NodeReviewModel    = "ReviewChatModel"
	NodeReviewParser   = "ReviewParser"
	NodeReviser        = "Reviser"
	NodeSender         = "SendSimulator"
	NodeSummarizer     = "Summarizer"
	NodePublisher      = "Publisher"
)

// NewFieldExtractorPreHandler seeds the run state from the caller input.
// RawInput and RunTimestamp are set exactly once here and never touched again.
func NewFieldExtractorPreHandler() func(context.Context, model.RunInput, *model.RunState) (model.RunInput, error) {
	return func(ctx context.Context, in model.RunInput, s *model.RunState) (model.RunInput, error) {
		if strings.TrimSpace(in.RawInput) == "" {
			return in, fmt.Errorf("raw input is empty")
		}
		if in.RunID == "" {
			in.RunID = uuid.NewString()
		}
		now := time.Now()
		s.RunID = in.RunID
		s.RawInput = in.RawInput
		s.RunTimestamp = now.Format(timestampLayout)
		s.CurrentDate = now.Format(dateLayout)
		s.RevisionCount = 0
		s.TotalCostUSD = 0
		return in, nil
	}
}

// NewFieldExtractorNode creates the field extraction node. The extractor is an
// interface so the constant stand-in can be swapped for a real one without
// touching the graph.
func NewFieldExtractorNode(extractor model.FieldExtractor) *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, in model.RunInput) (model.RunInput, error) {
		fields, err := extractor.Extract(ctx, in.RawInput)
		if err != nil {
			return in, fmt.Errorf("extract fields: %w", err)
		}
		err = compose.ProcessState(ctx, func(_ context.Context, state *model.RunState) error {
			state.Fields = fields
			return nil
		})
		if err != nil {
			return in, fmt.Errorf("failed to access state: %w", err)
		}
		logx.Debug().
			Str("run_id", in.RunID).
			Str("vehicle_model", fields.VehicleModel).
			Str("software_version", fields.SoftwareVersion).
			Str("test_result", fields.TestResult).
			Msg("fields extracted")
		return in, nil
	})
}

// NewDraftPromptNode renders the email generation prompt from the extracted
// fields and raw input held in state.
func NewDraftPromptNode(promptCfg *model.NotifyPromptConfig) *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, in model.RunInput) ([]*schema.Message, error) {
		var (
			rawInput    string
			currentDate string
			fields      model.ExtractedFields
		)
		err := compose.ProcessState(ctx, func(_ context.Context, state *model.RunState) error {
			rawInput = state.RawInput
			currentDate = state.CurrentDate
			fields = state.Fields
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to access state: %w", err)
		}

		p, err := prompts.RenderDraft(ctx, *promptCfg, rawInput, currentDate, fields)
		if err != nil {
			return nil, fmt.Errorf("render draft prompt: %w", err)
		}
		return []*schema.Message{schema.UserMessage(p)}, nil
	})
}

// NewDraftModelPostHandler stores the drafted email and accounts its cost.
// A previous draft, if any, is overwritten. An empty draft is treated the same
// as an unreachable model: fatal for the run.
func NewDraftModelPostHandler(modelName string) func(context.Context, *schema.Message, *model.RunState) (*schema.Message, error) {
	return func(ctx context.Context, out *schema.Message, state *model.RunState) (*schema.Message, error) {
		applyUsageCost(out, state, NodeDraftModel, modelName)

		if out == nil || strings.TrimSpace(out.Content) == "" {
			return out, errx.WrapGeneration(fmt.Errorf("draft model returned empty content"))
		}
		state.DraftedEmail = out.Content
		logx.Debug().
			Str("run_id", state.RunID).
			Int("draft_chars", len(out.Content)).
			Int("revision", state.RevisionCount).
			Msg("email draft generated")
		return out, nil
	}
}

// NewReviewPromptNode renders the evaluation prompt from the current draft and
// the original raw input.
func NewReviewPromptNode() *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, in *schema.Message) ([]*schema.Message, error) {
		var rawInput, draft string
		err := compose.ProcessState(ctx, func(_ context.Context, state *model.RunState) error {
			rawInput = state.RawInput
			draft = state.DraftedEmail
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to access state: %w", err)
		}

		p, err := prompts.RenderReview(ctx, rawInput, draft)
		if err != nil {
			return nil, fmt.Errorf("render review prompt: %w", err)
		}
		return []*schema.Message{schema.UserMessage(p)}, nil
	})
}

// NewReviewModelPostHandler accounts the review call's cost.
func NewReviewModelPostHandler(modelName string) func(context.Context, *schema.Message, *model.RunState) (*schema.Message, error) {
	return func(ctx context.Context, out *schema.Message, state *model.RunState) (*schema.Message, error) {
		applyUsageCost(out, state, NodeReviewModel, modelName)
		return out, nil
	}
}

// NewReviewParserNode decodes the review response into an Evaluation. The
// parser never fails; malformed output becomes a zero-score REVISE evaluation
// so the router always has something to act on.
func NewReviewParserNode() *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, resp *schema.Message) (model.Evaluation, error) {
		content := ""
		if resp != nil {
			content = resp.Content
		}
		return parsers.ParseEvaluation(content), nil
	})
}

// NewReviewParserPostHandler saves the evaluation into state.
func NewReviewParserPostHandler() func(context.Context, model.Evaluation, *model.RunState) (model.Evaluation, error) {
	return func(ctx context.Context, out model.Evaluation, state *model.RunState) (model.Evaluation, error) {
		eval := out
		state.Evaluation = &eval
		logx.Debug().
			Str("run_id", state.RunID).
			Int("overall_score", out.OverallScore).
			Str("recommendation", string(out.Recommendation)).
			Msg("draft evaluated")
		return out, nil
	}
}

// NewSendCondition creates the branch condition after review. The acceptance
// bar is a perfect score with an explicit APPROVE; everything else loops back
// through revision.
func NewSendCondition() func(context.Context, model.Evaluation) (string, error) {
	return func(ctx context.Context, eval model.Evaluation) (string, error) {
		switch model.Route(eval) {
		case model.DecisionSend:
			logx.Debug().Int("overall_score", eval.OverallScore).Msg("perfect evaluation - routing to send")
			return NodeSender, nil
		default:
			logx.Debug().Int("overall_score", eval.OverallScore).Msg("imperfect evaluation - routing to revision")
			return NodeReviser, nil
		}
	}
}

// NewReviserPreHandler enforces the revision budget. The loop has no natural
// exit below a perfect score, so exhausting the budget fails the run closed.
func NewReviserPreHandler(maxRevisions int) func(context.Context, model.Evaluation, *model.RunState) (model.Evaluation, error) {
	return func(ctx context.Context, in model.Evaluation, state *model.RunState) (model.Evaluation, error) {
		if state.RevisionCount >= maxRevisions {
			logx.Warn().
				Str("run_id", state.RunID).
				Int("revision_count", state.RevisionCount).
				Int("max_revisions", maxRevisions).
				Msg("revision budget exhausted")
			return in, fmt.Errorf("%w (limit %d)", errx.ErrNoConvergence, maxRevisions)
		}
		state.RevisionCount++
		return in, nil
	}
}

// NewReviserNode observes the reviewer feedback and hands control back to the
// draft prompt. The feedback is logged but not injected into the next prompt.
func NewReviserNode() *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, eval model.Evaluation) (model.RunInput, error) {
		var in model.RunInput
		err := compose.ProcessState(ctx, func(_ context.Context, state *model.RunState) error {
			in = model.RunInput{RunID: state.RunID, RawInput: state.RawInput}
			logx.Info().
				Str("run_id", state.RunID).
				Int("revision", state.RevisionCount).
				Str("feedback", eval.Feedback).
				Msg("revising email draft")
			return nil
		})
		if err != nil {
			return model.RunInput{}, fmt.Errorf("failed to access state: %w", err)
		}
		return in, nil
	})
}

// NewSenderNode marks the email as delivered. Delivery is simulated on
// purpose; no transport is involved.
func NewSenderNode() *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, eval model.Evaluation) (model.Evaluation, error) {
		err := compose.ProcessState(ctx, func(_ context.Context, state *model.RunState) error {
			state.SendStatus = model.SendStatusSimulated
			logx.Info().Str("run_id", state.RunID).Str("send_status", state.SendStatus).Msg("email send simulated")
			return nil
		})
		if err != nil {
			return eval, fmt.Errorf("failed to access state: %w", err)
		}
		return eval, nil
	})
}

// NewSummarizerNode renders the plain-text completion report and emits it on
// stdout.
func NewSummarizerNode() *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, eval model.Evaluation) (model.Evaluation, error) {
		err := compose.ProcessState(ctx, func(_ context.Context, state *model.RunState) error {
			summary, rerr := report.RenderSummary(report.Snapshot(state, time.Now()))
			if rerr != nil {
				return rerr
			}
			state.SummaryText = summary
			fmt.Println(summary)
			return nil
		})
		if err != nil {
			return eval, fmt.Errorf("render run summary: %w", err)
		}
		return eval, nil
	})
}

// NewPublisherNode renders the HTML report, writes it to reportPath and
// produces the final RunResult. The file is fully regenerated on every run;
// a write failure aborts the run since the report is its only durable output.
func NewPublisherNode(reportPath string) *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, eval model.Evaluation) (*model.RunResult, error) {
		var result *model.RunResult
		err := compose.ProcessState(ctx, func(_ context.Context, state *model.RunState) error {
			html, rerr := report.RenderHTML(report.Snapshot(state, time.Now()))
			if rerr != nil {
				return errx.WrapPublish(rerr)
			}
			if perr := report.Publish(reportPath, html); perr != nil {
				return perr
			}
			state.ReportPath = reportPath

			result = &model.RunResult{
				RunID:         state.RunID,
				RawInput:      state.RawInput,
				RunTimestamp:  state.RunTimestamp,
				Fields:        state.Fields,
				DraftedEmail:  state.DraftedEmail,
				Evaluation:    eval,
				SendStatus:    state.SendStatus,
				SummaryText:   state.SummaryText,
				ReportPath:    state.ReportPath,
				RevisionCount: state.RevisionCount,
				TotalCostUSD:  state.TotalCostUSD,
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
		return result, nil
	})
}
