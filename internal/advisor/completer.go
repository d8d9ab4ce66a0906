package advisor

import (
	"context"
	"errors"

	openai "github.com/sashabaranov/go-openai"
)

// Completion is the raw output of one text-completion call.
type Completion struct {
	Text       string
	TokensUsed int
}

// Completer is the single external text-completion dependency. A nil
// Completer means the service is unconfigured and every advisor call takes
// the fallback path without attempting network I/O.
type Completer interface {
	Complete(ctx context.Context, prompt string) (Completion, error)
}

// OpenAICompleter calls an OpenAI-compatible chat completions endpoint.
// One attempt per call; retries are the caller's policy (there are none).
type OpenAICompleter struct {
	client *openai.Client
	model  string
}

// NewOpenAICompleter returns nil when apiKey is empty.
func NewOpenAICompleter(apiKey, baseURL, model string) *OpenAICompleter {
	if apiKey == "" {
		return nil
	}
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &OpenAICompleter{client: openai.NewClientWithConfig(cfg), model: model}
}

func (o *OpenAICompleter) Complete(ctx context.Context, prompt string) (Completion, error) {
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens:   1000,
		Temperature: 0.3,
	})
	if err != nil {
		return Completion{}, err
	}
	if len(resp.Choices) == 0 {
		return Completion{}, errors.New("completion returned no choices")
	}
	return Completion{
		Text:       resp.Choices[0].Message.Content,
		TokensUsed: resp.Usage.TotalTokens,
	}, nil
}
