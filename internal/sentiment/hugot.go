package sentiment

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/knights-analytics/hugot"
	"github.com/knights-analytics/hugot/pipelines"

	"github.com/spacesedan/trollscope/internal/models"
)

type textClassificationPipeline interface {
	RunPipeline(inputs []string) (*pipelines.TextClassificationOutput, error)
}

// HugotClassifier runs an exported ONNX text-classification model in process.
// Labels are whatever the model's config declares (LABEL_0/LABEL_1 for
// SST-2 finetunes).
type HugotClassifier struct {
	session   *hugot.Session
	pipeline  textClassificationPipeline
	batchSize int
}

func NewHugotClassifier(modelPath string, batchSize int) (*HugotClassifier, error) {
	if modelPath == "" {
		return nil, fmt.Errorf("[HugotClassifier] HUGOT_MODEL_PATH is not set")
	}

	session, err := hugot.NewORTSession()
	if err != nil {
		return nil, fmt.Errorf("[HugotClassifier] failed to create session: %w", err)
	}

	pipeline, err := hugot.NewPipeline(session, hugot.TextClassificationConfig{
		ModelPath: modelPath,
		Name:      "trollscope-sentiment",
	})
	if err != nil {
		_ = session.Destroy()
		return nil, fmt.Errorf("[HugotClassifier] failed to load model %s: %w", modelPath, err)
	}

	slog.Info("[HugotClassifier] Model loaded", slog.String("model_path", modelPath))

	return &HugotClassifier{session: session, pipeline: pipeline, batchSize: batchSize}, nil
}

func (h *HugotClassifier) Classify(ctx context.Context, texts []string) ([]models.Classification, error) {
	return classifyInBatches(ctx, texts, h.batchSize, h.classifyBatch)
}

func (h *HugotClassifier) classifyBatch(_ context.Context, texts []string) ([]models.Classification, error) {
	output, err := h.pipeline.RunPipeline(texts)
	if err != nil {
		return nil, fmt.Errorf("[HugotClassifier] pipeline failed: %w", err)
	}
	if len(output.ClassificationOutputs) != len(texts) {
		return nil, fmt.Errorf("[HugotClassifier] got %d outputs for %d texts",
			len(output.ClassificationOutputs), len(texts))
	}

	results := make([]models.Classification, 0, len(texts))
	for i, candidates := range output.ClassificationOutputs {
		if len(candidates) == 0 {
			return nil, fmt.Errorf("[HugotClassifier] no label for text %d", i)
		}
		best := candidates[0]
		for _, c := range candidates[1:] {
			if c.Score > best.Score {
				best = c
			}
		}
		results = append(results, models.Classification{Label: best.Label, Score: float64(best.Score)})
	}
	return results, nil
}

func (h *HugotClassifier) Close() error {
	if h.session == nil {
		return nil
	}
	return h.session.Destroy()
}
