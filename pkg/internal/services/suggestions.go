package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/spf13/viper"
)

const defaultSuggestionModel = "gpt-4o-mini"

type PromptSuggestion struct {
	ImprovedPrompt string   `json:"improved_prompt"`
	Suggestions    []string `json:"suggestions"`
	Tags           []string `json:"tags"`
}

// GeneratePromptSuggestion asks the configured model to improve the given
// prompt and propose tags for it.
func GeneratePromptSuggestion(ctx context.Context, content string) (PromptSuggestion, error) {
	var suggestion PromptSuggestion

	apiKey := viper.GetString("ai.api_key")
	if len(apiKey) == 0 {
		return suggestion, fmt.Errorf("no ai api key configured")
	}

	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if endpoint := viper.GetString("ai.endpoint"); len(endpoint) > 0 {
		opts = append(opts, option.WithBaseURL(endpoint))
	}
	client := openai.NewClient(opts...)

	model := viper.GetString("ai.model")
	if len(model) == 0 {
		model = defaultSuggestionModel
	}

	ctx, cancel := context.WithTimeout(ctx, 3*time.Minute)
	defer cancel()
	resp, err := client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(buildSuggestionInstruction(content)),
		},
	})
	if err != nil {
		return suggestion, fmt.Errorf("failed to generate suggestion: %v", err)
	}
	if len(resp.Choices) == 0 {
		return suggestion, fmt.Errorf("model returned no choices")
	}

	return parseSuggestionPayload(resp.Choices[0].Message.Content, content)
}

func buildSuggestionInstruction(content string) string {
	return fmt.Sprintf(`You are an expert prompt engineer. Please improve the following prompt and provide suggestions:

Original Prompt: %q

Please respond in the following JSON format:
{
  "improved_prompt": "The improved version of the prompt",
  "suggestions": [
    "Suggestion 1 for improvement",
    "Suggestion 2 for improvement"
  ],
  "tags": ["tag1", "tag2", "tag3"]
}`, content)
}

// parseSuggestionPayload decodes the model's JSON answer, tolerating a
// markdown code fence around it. A missing improved prompt falls back to
// the original content.
func parseSuggestionPayload(raw, fallback string) (PromptSuggestion, error) {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSuffix(strings.TrimSpace(raw), "```")
		raw = strings.TrimSpace(raw)
	}

	var suggestion PromptSuggestion
	if err := jsoniter.UnmarshalFromString(raw, &suggestion); err != nil {
		return suggestion, fmt.Errorf("failed to parse suggestion response: %v", err)
	}

	if len(suggestion.ImprovedPrompt) == 0 {
		suggestion.ImprovedPrompt = fallback
	}
	if suggestion.Suggestions == nil {
		suggestion.Suggestions = []string{}
	}
	if suggestion.Tags == nil {
		suggestion.Tags = []string{}
	}

	return suggestion, nil
}
