package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/testnotify-poc/server/internal/core"
	"github.com/testnotify-poc/server/internal/workflow/graph"
	"github.com/testnotify-poc/server/internal/workflow/model"
	"github.com/testnotify-poc/server/internal/workflow/repo"
	logx "github.com/testnotify-poc/server/pkg/logger"
	pkgredis "github.com/testnotify-poc/server/pkg/redis"
)

// AppConfig defines all configurable parameters for the notification
// pipeline, sourced from environment variables (loaded from .env for local
// runs).
type AppConfig struct {
	Environment string `envconfig:"APP_ENV" default:"development"`

	// Infrastructure
	Redis pkgredis.Config

	// LLM provider
	APIKey  string `envconfig:"GEMINI_API_KEY" required:"true"`
	BaseURL string `envconfig:"GEMINI_BASE_URL"`

	// Pipeline configs
	Draft     model.DraftModelConfig
	Review    model.ReviewModelConfig
	Prompt    model.NotifyPromptConfig
	Workflow  model.WorkflowConfig
	Extractor model.ExtractorConfig
	Ledger    model.LedgerConfig
}

func main() {
	ctx := context.Background()

	// Load .env file
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: Could not load .env file: %v", err)
	}

	var envCfg AppConfig
	if err := envconfig.Process("", &envCfg); err != nil {
		log.Fatalf("Failed to process environment config: %v", err)
	}

	logx.Init(logx.LoggerOpts{Environment: core.ParseEnvironment(envCfg.Environment)})

	runTimeout, err := time.ParseDuration(envCfg.Workflow.RunTimeout)
	if err != nil {
		logx.Fatal().Err(err).Str("value", envCfg.Workflow.RunTimeout).Msg("Invalid WORKFLOW_RUN_TIMEOUT")
	}

	// The run ledger is optional; when disabled every run is stateless at the
	// process level and only the HTML report survives.
	var runRepo model.RunRepository = model.NoopRunRepository{}
	if envCfg.Ledger.Enabled {
		ledgerTTL, err := time.ParseDuration(envCfg.Ledger.TTL)
		if err != nil {
			logx.Fatal().Err(err).Str("value", envCfg.Ledger.TTL).Msg("Invalid RUN_LEDGER_TTL")
		}
		rdb, err := envCfg.Redis.New()
		if err != nil {
			logx.Fatal().Err(err).Msg("Failed to initialise Redis client")
		}
		defer rdb.Close()
		runRepo = repo.NewRedisRunRepository(rdb, ledgerTTL, envCfg.Ledger.MaxEntries)
		logx.Info().Msg("Run ledger enabled")
	}

	runner, err := graph.BuildNotifierGraph(ctx, graph.Config{
		APIKey:       envCfg.APIKey,
		BaseURL:      envCfg.BaseURL,
		DraftModel:   envCfg.Draft,
		ReviewModel:  envCfg.Review,
		Prompt:       envCfg.Prompt,
		MaxRevisions: envCfg.Workflow.MaxRevisions,
		RunTimeout:   runTimeout,
		ReportPath:   envCfg.Workflow.ReportPath,
		Extractor:    model.NewStaticFieldExtractor(envCfg.Extractor),
		RunRepo:      runRepo,
	})
	if err != nil {
		logx.Fatal().Err(err).Msg("Failed to build notification graph")
	}

	testInput := "Sonata, v2.1.3, ECU-2024"

	fmt.Println("Email generation system starting")
	fmt.Printf("Input: %s\n", testInput)
	fmt.Println("==================================================")

	result, err := runner.Invoke(ctx, model.RunInput{RawInput: testInput})
	if err != nil {
		logx.Error().Err(err).Msg("Pipeline run failed")
		os.Exit(1)
	}

	fmt.Println("\nProcessing complete!")
	fmt.Printf("Result file: %s\n", result.ReportPath)
}
