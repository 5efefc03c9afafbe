package prompts

import (
	"context"
	_ "embed"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/schema"
)

//go:embed template/review_prompt.txt
var reviewPromptTemplate string

// RenderReview renders the draft evaluation prompt and triggers prompt callbacks.
// The template instructs the model to answer with a bare JSON object matching
// the evaluation schema.
func RenderReview(ctx context.Context, originalInput, generatedEmail string) (string, error) {
	if strings.TrimSpace(generatedEmail) == "" {
		return "", fmt.Errorf("generated email is empty")
	}

	content := strings.NewReplacer(
		"{original_input}", originalInput,
		"{generated_email}", generatedEmail,
	).Replace(reviewPromptTemplate)

	tpl := prompt.FromMessages(
		schema.FString,
		schema.MessagesPlaceholder("review_messages", false),
	)
	msgs, err := tpl.Format(ctx, map[string]any{
		"review_messages": []*schema.Message{schema.UserMessage(content)},
	})
	if err != nil {
		return "", fmt.Errorf("review prompt callbacks: %w", err)
	}
	if len(msgs) == 0 || msgs[0] == nil {
		return "", fmt.Errorf("review prompt callbacks: empty result")
	}
	return msgs[0].Content, nil
}
