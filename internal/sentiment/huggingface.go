package sentiment

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spacesedan/trollscope/internal/models"
)

type sentimentService interface {
	GetBatchedSentimentAnalysis(ctx context.Context, input models.SentimentAnalysisBatchRequest) (models.SentimentAnalysisBatchResponse, error)
}

// HuggingFaceClassifier sends texts to a hosted model. The service answers
// keyed by content id, so ids are the text positions within each batch.
type HuggingFaceClassifier struct {
	service   sentimentService
	batchSize int
}

func NewHuggingFaceClassifier(service sentimentService, batchSize int) *HuggingFaceClassifier {
	return &HuggingFaceClassifier{service: service, batchSize: batchSize}
}

func (h *HuggingFaceClassifier) Classify(ctx context.Context, texts []string) ([]models.Classification, error) {
	return classifyInBatches(ctx, texts, h.batchSize, h.classifyBatch)
}

func (h *HuggingFaceClassifier) classifyBatch(ctx context.Context, texts []string) ([]models.Classification, error) {
	request := make(models.SentimentAnalysisBatchRequest, 0, len(texts))
	for i, text := range texts {
		request = append(request, models.SentimentAnalysisRequest{
			ContentID: strconv.Itoa(i),
			Text:      text,
		})
	}

	responses, err := h.service.GetBatchedSentimentAnalysis(ctx, request)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]models.SentimentAnalysisResponse, len(responses))
	for _, resp := range responses {
		byID[resp.ContentID] = resp
	}

	results := make([]models.Classification, 0, len(texts))
	for _, req := range request {
		resp, ok := byID[req.ContentID]
		if !ok {
			return nil, fmt.Errorf("[HuggingFaceClassifier] no result for content id %s", req.ContentID)
		}
		results = append(results, models.Classification{
			Label: resp.SentimentLabel,
			Score: resp.Confidence,
		})
	}
	return results, nil
}
