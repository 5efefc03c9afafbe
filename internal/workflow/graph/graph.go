package graph

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cloudwego/eino/compose"

	errx "github.com/testnotify-poc/server/internal/core/error"
	"github.com/testnotify-poc/server/internal/workflow/graph/nodes"
	"github.com/testnotify-poc/server/internal/workflow/graph/observers"
	"github.com/testnotify-poc/server/internal/workflow/model"
	logx "github.com/testnotify-poc/server/pkg/logger"
)

// Runner executes one end-to-end pipeline run.
type Runner interface {
	Invoke(ctx context.Context, in model.RunInput) (*model.RunResult, error)
}

// Config holds everything needed to compose the full notification graph
// end-to-end. This is a convenience layer over GraphConfig that also
// constructs the chat models.
type Config struct {
	APIKey      string
	BaseURL     string
	DraftModel  model.DraftModelConfig
	ReviewModel model.ReviewModelConfig
	Prompt      model.NotifyPromptConfig

	// MaxRevisions bounds the revise loop; it has no default and must be
	// positive.
	MaxRevisions int
	// RunTimeout caps one whole run including both model calls. Zero disables
	// the deadline.
	RunTimeout time.Duration
	ReportPath string

	Extractor model.FieldExtractor
	// RunRepo records completed runs; recording is best-effort and never
	// fails a run.
	RunRepo model.RunRepository
}

// GraphConfig holds all configuration needed to build the graph
type GraphConfig struct {
	ChatModels   *nodes.ChatModels
	Extractor    model.FieldExtractor
	PromptConfig *model.NotifyPromptConfig
	MaxRevisions int
	ReportPath   string
}

// GraphBuilder handles the construction of the notification workflow graph
type GraphBuilder struct {
	config *GraphConfig
	graph  *compose.Graph[model.RunInput, *model.RunResult]
}

type graphRunner struct {
	runnable compose.Runnable[model.RunInput, *model.RunResult]
	timeout  time.Duration
	runRepo  model.RunRepository
}

func (r *graphRunner) Invoke(ctx context.Context, in model.RunInput) (*model.RunResult, error) {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	out, err := r.runnable.Invoke(ctx, in, compose.WithCallbacks(observers.NewAllCallbacks()))
	if err != nil {
		return nil, classifyRunError(err)
	}
	if out == nil {
		return nil, fmt.Errorf("graph returned no result")
	}

	r.recordRun(ctx, out)
	return out, nil
}

// recordRun appends the run to the ledger. Ledger failures are logged and
// swallowed; the report on disk is the authoritative artifact.
func (r *graphRunner) recordRun(ctx context.Context, out *model.RunResult) {
	if r.runRepo == nil {
		return
	}
	record := &model.RunRecord{
		RunID:         out.RunID,
		RunTimestamp:  out.RunTimestamp,
		RawInput:      out.RawInput,
		OverallScore:  out.Evaluation.OverallScore,
		SendStatus:    out.SendStatus,
		ReportPath:    out.ReportPath,
		RevisionCount: out.RevisionCount,
		TotalCostUSD:  out.TotalCostUSD,
	}
	if err := r.runRepo.RecordRun(ctx, record); err != nil {
		logx.Error().Err(err).Str("run_id", out.RunID).Msg("failed to record run in ledger")
		return
	}
	if n, err := r.runRepo.RunCount(ctx); err == nil {
		logx.Debug().Str("run_id", out.RunID).Int("ledger_entries", n).Msg("run recorded in ledger")
	}
}

// classifyRunError maps raw graph errors onto the pipeline's error taxonomy.
// Convergence and publish failures arrive already wrapped; anything else on
// the way to a finished draft is a generation-path failure.
func classifyRunError(err error) error {
	if errors.Is(err, errx.ErrNoConvergence) {
		return err
	}
	var appErr *errx.AppError
	if errors.As(err, &appErr) {
		return err
	}
	return errx.WrapGeneration(err)
}

// BuildNotifierGraph composes the chat models, builds the graph, and returns a Runner.
func BuildNotifierGraph(ctx context.Context, cfg Config) (Runner, error) {
	if cfg.Extractor == nil {
		return nil, fmt.Errorf("field extractor is nil")
	}
	if cfg.MaxRevisions <= 0 {
		return nil, fmt.Errorf("max revisions must be a positive integer (set WORKFLOW_MAX_REVISIONS)")
	}

	cms, err := nodes.NewChatModels(ctx, nodes.ChatModelConfig{
		APIKey:       cfg.APIKey,
		BaseURL:      cfg.BaseURL,
		DraftConfig:  &cfg.DraftModel,
		ReviewConfig: &cfg.ReviewModel,
	})
	if err != nil {
		return nil, err
	}

	runnable, err := BuildGraph(ctx, &GraphConfig{
		ChatModels:   cms,
		Extractor:    cfg.Extractor,
		PromptConfig: &cfg.Prompt,
		MaxRevisions: cfg.MaxRevisions,
		ReportPath:   cfg.ReportPath,
	})
	if err != nil {
		return nil, err
	}

	logx.Debug().Msg("Notification graph built successfully")
	return &graphRunner{
		runnable: runnable,
		timeout:  cfg.RunTimeout,
		runRepo:  cfg.RunRepo,
	}, nil
}

// BuildGraph constructs and returns the compiled notification workflow graph
func BuildGraph(ctx context.Context, config *GraphConfig) (compose.Runnable[model.RunInput, *model.RunResult], error) {
	if config == nil {
		return nil, fmt.Errorf("graph config is nil")
	}
	if config.ChatModels == nil || config.ChatModels.Draft == nil || config.ChatModels.Review == nil {
		return nil, fmt.Errorf("chat models are not properly initialized")
	}
	if config.Extractor == nil {
		return nil, fmt.Errorf("field extractor is nil")
	}
	if config.PromptConfig == nil {
		return nil, fmt.Errorf("prompt config is nil")
	}
	if config.MaxRevisions <= 0 {
		return nil, fmt.Errorf("max revisions must be a positive integer")
	}
	if config.ReportPath == "" {
		return nil, fmt.Errorf("report path is empty")
	}

	builder := &GraphBuilder{
		config: config,
		graph: compose.NewGraph[model.RunInput, *model.RunResult](
			compose.WithGenLocalState(func(ctx context.Context) *model.RunState {
				return &model.RunState{}
			}),
		),
	}

	builder.addNodes()
	builder.addEdges()

	if err := builder.addBranches(); err != nil {
		return nil, err
	}

	return builder.compile(ctx)
}

// addNodes adds all processing nodes to the graph
func (b *GraphBuilder) addNodes() {
	b.graph.AddLambdaNode(nodes.NodeFieldExtractor,
		nodes.NewFieldExtractorNode(b.config.Extractor),
		compose.WithStatePreHandler(nodes.NewFieldExtractorPreHandler()),
	)

	b.graph.AddLambdaNode(nodes.NodeDraftPrompt,
		nodes.NewDraftPromptNode(b.config.PromptConfig),
	)

	b.graph.AddChatModelNode(nodes.NodeDraftModel,
		b.config.ChatModels.Draft,
		compose.WithStatePostHandler(nodes.NewDraftModelPostHandler(b.config.ChatModels.DraftModelName)),
	)

	b.graph.AddLambdaNode(nodes.NodeReviewPrompt,
		nodes.NewReviewPromptNode(),
	)

	b.graph.AddChatModelNode(nodes.NodeReviewModel,
		b.config.ChatModels.Review,
		compose.WithStatePostHandler(nodes.NewReviewModelPostHandler(b.config.ChatModels.ReviewModelName)),
	)

	b.graph.AddLambdaNode(nodes.NodeReviewParser,
		nodes.NewReviewParserNode(),
		compose.WithStatePostHandler(nodes.NewReviewParserPostHandler()),
	)

	b.graph.AddLambdaNode(nodes.NodeReviser,
		nodes.NewReviserNode(),
		compose.WithStatePreHandler(nodes.NewReviserPreHandler(b.config.MaxRevisions)),
	)

	b.graph.AddLambdaNode(nodes.NodeSender,
		nodes.NewSenderNode(),
	)

	b.graph.AddLambdaNode(nodes.NodeSummarizer,
		nodes.NewSummarizerNode(),
	)

	b.graph.AddLambdaNode(nodes.NodePublisher,
		nodes.NewPublisherNode(b.config.ReportPath),
	)
}

// addEdges creates the main flow connections between nodes
func (b *GraphBuilder) addEdges() {
	edges := [][2]string{
		{compose.START, nodes.NodeFieldExtractor},
		{nodes.NodeFieldExtractor, nodes.NodeDraftPrompt},
		{nodes.NodeDraftPrompt, nodes.NodeDraftModel},
		{nodes.NodeDraftModel, nodes.NodeReviewPrompt},
		{nodes.NodeReviewPrompt, nodes.NodeReviewModel},
		{nodes.NodeReviewModel, nodes.NodeReviewParser},
		{nodes.NodeReviser, nodes.NodeDraftPrompt},
		{nodes.NodeSender, nodes.NodeSummarizer},
		{nodes.NodeSummarizer, nodes.NodePublisher},
		{nodes.NodePublisher, compose.END},
	}

	for _, edge := range edges {
		b.graph.AddEdge(edge[0], edge[1])
	}
}

// addBranches creates the conditional edge after review
func (b *GraphBuilder) addBranches() error {
	sendBranch := compose.NewGraphBranch(
		nodes.NewSendCondition(),
		map[string]bool{
			nodes.NodeSender:  true,
			nodes.NodeReviser: true,
		},
	)
	if err := b.graph.AddBranch(nodes.NodeReviewParser, sendBranch); err != nil {
		logx.Error().Err(err).Msg("Error adding send decision branch")
		return fmt.Errorf("error adding send decision branch: %w", err)
	}
	return nil
}

// compile finalizes and compiles the graph
func (b *GraphBuilder) compile(ctx context.Context) (compose.Runnable[model.RunInput, *model.RunResult], error) {
	// One revise cycle touches six nodes; budget every allowed cycle plus the
	// linear head and tail, with slack for the branch evaluation.
	maxSteps := (b.config.MaxRevisions+1)*6 + 8

	runnable, err := b.graph.Compile(ctx, compose.WithMaxRunSteps(maxSteps))
	if err != nil {
		logx.Error().Err(err).Msg("Error compiling graph")
		return nil, fmt.Errorf("error compiling graph: %w", err)
	}

	logx.Debug().Int("max_steps", maxSteps).Msg("Graph compiled successfully")
	return runnable, nil
}
