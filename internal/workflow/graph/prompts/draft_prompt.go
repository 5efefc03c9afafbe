package prompts

import (
	"context"
	_ "embed"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/schema"

	"github.com/testnotify-poc/server/internal/workflow/model"
)

//go:embed template/draft_prompt.txt
var draftPromptTemplate string

// RenderDraft renders the email generation prompt via the Eino prompt
// component. This triggers Prompt callbacks and returns the final prompt string.
func RenderDraft(ctx context.Context, cfg model.NotifyPromptConfig, rawInput, currentDate string, fields model.ExtractedFields) (string, error) {
	if strings.TrimSpace(rawInput) == "" {
		return "", fmt.Errorf("raw input is empty")
	}

	// Render known tokens only so literal braces elsewhere in the template
	// survive untouched
	content := strings.NewReplacer(
		"{user_input}", rawInput,
		"{current_date}", currentDate,
		"{vehicle_model}", fields.VehicleModel,
		"{software_version}", fields.SoftwareVersion,
		"{control_board}", fields.ControlBoard,
		"{manager_name}", fields.ManagerName,
		"{distributor_name}", fields.DistributorName,
		"{test_result}", fields.TestResult,
		"{team_name}", cfg.TeamName,
		"{company_name}", cfg.CompanyName,
	).Replace(draftPromptTemplate)

	// Wrap via Eino prompt component using a messages placeholder to emit callbacks
	tpl := prompt.FromMessages(
		schema.FString,
		schema.MessagesPlaceholder("draft_messages", false),
	)
	msgs, err := tpl.Format(ctx, map[string]any{
		"draft_messages": []*schema.Message{schema.UserMessage(content)},
	})
	if err != nil {
		return "", fmt.Errorf("draft prompt callbacks: %w", err)
	}
	if len(msgs) == 0 || msgs[0] == nil {
		return "", fmt.Errorf("draft prompt callbacks: empty result")
	}
	return msgs[0].Content, nil
}
