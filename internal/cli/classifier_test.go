package cli

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spacesedan/trollscope/config"
	"github.com/spacesedan/trollscope/internal/sentiment"
)

func TestCacheNamespaceSeparatesModels(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.ClassifierConfig
		want string
	}{
		{"vader", config.ClassifierConfig{Backend: config.BACKEND_VADER}, "vader"},
		{"openai model", config.ClassifierConfig{Backend: config.BACKEND_OPENAI, OpenAIModel: "gpt-4o-mini"}, "openai@gpt-4o-mini"},
		{"hugot path", config.ClassifierConfig{Backend: config.BACKEND_HUGOT, HugotModelPath: "/models/sst2"}, "hugot@/models/sst2"},
		{"hf endpoint", config.ClassifierConfig{Backend: config.BACKEND_HUGGINGFACE, HuggingFaceEndpoint: "http://hf/analyze"}, "huggingface@http://hf/analyze"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cacheNamespace(tt.cfg))
		})
	}

	assert.NotEqual(t,
		cacheNamespace(config.ClassifierConfig{Backend: config.BACKEND_OPENAI, OpenAIModel: "gpt-4o"}),
		cacheNamespace(config.ClassifierConfig{Backend: config.BACKEND_OPENAI, OpenAIModel: "gpt-4o-mini"}))
}

func TestNewClassifierWithoutReachableCache(t *testing.T) {
	cfg := config.Config{
		Classifier: config.ClassifierConfig{Backend: config.BACKEND_VADER, BatchSize: 8},
		Valkey:     config.ValkeyConfig{InitAddress: "127.0.0.1:1", TTL: time.Minute},
	}

	classifier, closeAll, err := newClassifier(context.Background(), cfg)
	require.NoError(t, err)
	defer closeAll()

	assert.IsType(t, &sentiment.VaderClassifier{}, classifier)
}

func TestNewClassifierUnknownBackend(t *testing.T) {
	_, _, err := newClassifier(context.Background(), config.Config{
		Classifier: config.ClassifierConfig{Backend: "bert"},
	})
	assert.ErrorContains(t, err, `unknown classifier backend "bert"`)
}
