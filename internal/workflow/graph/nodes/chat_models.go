package nodes

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino-ext/components/model/gemini"
	einomodel "github.com/cloudwego/eino/components/model"
	"google.golang.org/genai"

	"github.com/testnotify-poc/server/internal/workflow/model"
	logx "github.com/testnotify-poc/server/pkg/logger"
)

// ChatModelConfig holds the configuration for chat model creation
type ChatModelConfig struct {
	APIKey       string
	BaseURL      string
	DraftConfig  *model.DraftModelConfig
	ReviewConfig *model.ReviewModelConfig
}

// ChatModels holds the draft and review chat models. The fields are the Eino
// model interface so tests can substitute stub implementations.
type ChatModels struct {
	Draft           einomodel.BaseChatModel
	Review          einomodel.BaseChatModel
	DraftModelName  string
	ReviewModelName string
}

// NewChatModels creates both draft and review chat models with the given configuration.
// Both run at their configured temperature, which defaults to zero so repeat
// runs on unchanged inputs draft the same email.
func NewChatModels(ctx context.Context, config ChatModelConfig) (*ChatModels, error) {
	clientCfg := &genai.ClientConfig{
		APIKey:  config.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if config.BaseURL != "" {
		clientCfg.HTTPOptions.BaseURL = config.BaseURL
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		logx.Error().Err(err).Msg("Error creating Gemini client")
		return nil, fmt.Errorf("error creating Gemini client: %w", err)
	}

	chatModelDraft, err := gemini.NewChatModel(ctx, &gemini.Config{
		Client:      client,
		Model:       config.DraftConfig.Model,
		Temperature: &config.DraftConfig.Temperature,
		MaxTokens:   &config.DraftConfig.MaxTokens,
	})
	if err != nil {
		logx.Error().Err(err).Msg("Error creating draft model")
		return nil, fmt.Errorf("error creating draft model: %w", err)
	}

	chatModelReview, err := gemini.NewChatModel(ctx, &gemini.Config{
		Client:      client,
		Model:       config.ReviewConfig.Model,
		Temperature: &config.ReviewConfig.Temperature,
		MaxTokens:   &config.ReviewConfig.MaxTokens,
	})
	if err != nil {
		logx.Error().Err(err).Msg("Error creating review model")
		return nil, fmt.Errorf("error creating review model: %w", err)
	}

	return &ChatModels{
		Draft:           chatModelDraft,
		Review:          chatModelReview,
		DraftModelName:  config.DraftConfig.Model,
		ReviewModelName: config.ReviewConfig.Model,
	}, nil
}
