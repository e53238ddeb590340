package clients

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const (
	openAIRequestTimeout = 60 * time.Second // Timeout for individual OpenAI API requests
)

type OpenAIClient struct {
	Client *openai.Client
	Model  string
}

func NewOpenAIClient(apiKey, model string) (*OpenAIClient, error) {
	if apiKey == "" {
		slog.Error("[OpenAIClient] Missing OPENAI_API_KEY in environment variables")
		return nil, fmt.Errorf("[OpenAIClient] missing OPENAI_API_KEY")
	}

	client := openai.NewClient(
		option.WithAPIKey(apiKey),
		option.WithHTTPClient(&http.Client{Timeout: openAIRequestTimeout}),
		option.WithMaxRetries(MAX_RETRIES),
	)
	slog.Info("[OpenAIClient] OpenAI client initialized",
		slog.String("model", model),
		slog.Duration("timeout", openAIRequestTimeout))

	return &OpenAIClient{Client: client, Model: model}, nil
}

// Complete sends a system and user message and returns the first choice.
func (o *OpenAIClient) Complete(ctx context.Context, system, user string) (string, error) {
	completion, err := o.Client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: openai.F([]openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(user),
		}),
		Model:       openai.F(openai.ChatModel(o.Model)),
		Temperature: openai.F(0.0),
	})
	if err != nil {
		return "", fmt.Errorf("[OpenAIClient] chat completion failed: %w", err)
	}
	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("[OpenAIClient] chat completion returned no choices")
	}
	return completion.Choices[0].Message.Content, nil
}
