package sentiment

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spacesedan/trollscope/internal/models"
)

const openAISystemPrompt = `You label the sentiment of YouTube comments.
Answer with JSON only, in the form {"labels": ["positive", "negative", ...]},
with exactly one label per numbered comment, in the same order.
Use only the labels "positive" and "negative".`

type chatCompleter interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// OpenAIClassifier asks a chat model for one label per comment. It emits the
// labels positive and negative.
type OpenAIClassifier struct {
	chat      chatCompleter
	batchSize int
}

func NewOpenAIClassifier(chat chatCompleter, batchSize int) *OpenAIClassifier {
	return &OpenAIClassifier{chat: chat, batchSize: batchSize}
}

func (o *OpenAIClassifier) Classify(ctx context.Context, texts []string) ([]models.Classification, error) {
	return classifyInBatches(ctx, texts, o.batchSize, o.classifyBatch)
}

func (o *OpenAIClassifier) classifyBatch(ctx context.Context, texts []string) ([]models.Classification, error) {
	var prompt strings.Builder
	for i, text := range texts {
		fmt.Fprintf(&prompt, "%d. %s\n", i+1, strings.Join(strings.Fields(text), " "))
	}

	answer, err := o.chat.Complete(ctx, openAISystemPrompt, prompt.String())
	if err != nil {
		return nil, err
	}

	labels, err := parseOpenAILabels(answer)
	if err != nil {
		return nil, err
	}
	if len(labels) != len(texts) {
		return nil, fmt.Errorf("[OpenAIClassifier] got %d labels for %d comments", len(labels), len(texts))
	}

	results := make([]models.Classification, 0, len(labels))
	for _, label := range labels {
		results = append(results, models.Classification{Label: strings.ToLower(strings.TrimSpace(label)), Score: 1})
	}
	return results, nil
}

func parseOpenAILabels(answer string) ([]string, error) {
	answer = strings.TrimSpace(answer)
	answer = strings.TrimPrefix(answer, "```json")
	answer = strings.TrimPrefix(answer, "```")
	answer = strings.TrimSuffix(answer, "```")

	var payload struct {
		Labels []string `json:"labels"`
	}
	if err := json.Unmarshal([]byte(strings.TrimSpace(answer)), &payload); err != nil {
		return nil, fmt.Errorf("[OpenAIClassifier] unparseable answer: %w", err)
	}
	return payload.Labels, nil
}
