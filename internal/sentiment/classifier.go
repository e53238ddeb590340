package sentiment

import (
	"context"

	"github.com/spacesedan/trollscope/internal/models"
	"github.com/spacesedan/trollscope/internal/utils"
)

// Classifier returns one classification per input text, in input order.
type Classifier interface {
	Classify(ctx context.Context, texts []string) ([]models.Classification, error)
}

// classifyInBatches runs fn over consecutive batches of texts and concatenates
// the results.
func classifyInBatches(ctx context.Context, texts []string, batchSize int, fn func(context.Context, []string) ([]models.Classification, error)) ([]models.Classification, error) {
	results := make([]models.Classification, 0, len(texts))
	for _, batch := range utils.Chunk(texts, batchSize) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		out, err := fn(ctx, batch)
		if err != nil {
			return nil, err
		}
		results = append(results, out...)
	}
	return results, nil
}
