package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spacesedan/trollscope/config"
	"github.com/spacesedan/trollscope/internal/clients"
	"github.com/spacesedan/trollscope/internal/sentiment"
)

// newClassifier builds the configured backend, wrapped in the Valkey verdict
// cache when one is configured. The returned func releases what was opened.
func newClassifier(ctx context.Context, cfg config.Config) (sentiment.Classifier, func(), error) {
	var closers []func()
	closeAll := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	var classifier sentiment.Classifier
	switch cfg.Classifier.Backend {
	case config.BACKEND_VADER:
		classifier = sentiment.NewVaderClassifier()

	case config.BACKEND_HUGGINGFACE:
		if cfg.Classifier.HuggingFaceEndpoint == "" {
			return nil, nil, fmt.Errorf("HF_SENTIMENT_ANALYSIS_ENDPOINT is required for the %s backend", config.BACKEND_HUGGINGFACE)
		}
		hf := clients.NewHuggingFaceClient(cfg.Classifier.HuggingFaceEndpoint, cfg.Classifier.HuggingFaceTimeout)
		if !hf.HealthCheck(ctx) {
			slog.Warn("[trollscope] Sentiment service is not healthy, continuing",
				slog.String("endpoint", cfg.Classifier.HuggingFaceEndpoint))
		}
		classifier = sentiment.NewHuggingFaceClassifier(hf, cfg.Classifier.BatchSize)

	case config.BACKEND_HUGOT:
		h, err := sentiment.NewHugotClassifier(cfg.Classifier.HugotModelPath, cfg.Classifier.BatchSize)
		if err != nil {
			return nil, nil, err
		}
		closers = append(closers, func() {
			if err := h.Close(); err != nil {
				slog.Warn("[trollscope] Failed to close hugot session", slog.String("error", err.Error()))
			}
		})
		classifier = h

	case config.BACKEND_OPENAI:
		chat, err := clients.NewOpenAIClient(cfg.Classifier.OpenAIAPIKey, cfg.Classifier.OpenAIModel)
		if err != nil {
			return nil, nil, err
		}
		classifier = sentiment.NewOpenAIClassifier(chat, cfg.Classifier.BatchSize)

	default:
		return nil, nil, fmt.Errorf("unknown classifier backend %q", cfg.Classifier.Backend)
	}

	cached := false
	if cfg.Valkey.Enabled() {
		cache, err := clients.NewValkeyClient(cfg.Valkey)
		if err != nil {
			slog.Warn("[trollscope] Verdict cache unavailable, classifying without it",
				slog.String("error", err.Error()))
		} else {
			closers = append(closers, cache.Close)
			classifier = sentiment.NewCachingClassifier(classifier, cache, cacheNamespace(cfg.Classifier))
			cached = true
		}
	}

	slog.Info("[trollscope] Classifier ready",
		slog.String("backend", cfg.Classifier.Backend),
		slog.Bool("cached", cached))

	return classifier, closeAll, nil
}

// cacheNamespace keeps verdicts of different models apart in a shared cache.
func cacheNamespace(cfg config.ClassifierConfig) string {
	switch cfg.Backend {
	case config.BACKEND_HUGGINGFACE:
		return cfg.Backend + "@" + cfg.HuggingFaceEndpoint
	case config.BACKEND_HUGOT:
		return cfg.Backend + "@" + cfg.HugotModelPath
	case config.BACKEND_OPENAI:
		return cfg.Backend + "@" + cfg.OpenAIModel
	default:
		return cfg.Backend
	}
}
