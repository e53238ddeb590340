package config

import (
	"testing"

	"github.com/spacesedan/trollscope/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLabelMappingPolarity(t *testing.T) {
	m, err := NewLabelMapping([]string{"LABEL_0", " negative "}, []string{"LABEL_1", "positive"})
	require.NoError(t, err)

	tests := []struct {
		label string
		want  models.Polarity
	}{
		{"LABEL_0", models.PolarityNegative},
		{"label_0", models.PolarityNegative},
		{"NEGATIVE", models.PolarityNegative},
		{"LABEL_1", models.PolarityPositive},
		{"positive", models.PolarityPositive},
		{"neutral", models.PolarityUnmapped},
		{"", models.PolarityUnmapped},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			assert.Equal(t, tt.want, m.Polarity(tt.label))
		})
	}
}

func TestLabelMappingRejectsOverlap(t *testing.T) {
	_, err := NewLabelMapping([]string{"LABEL_0"}, []string{"label_0"})
	assert.ErrorIs(t, err, ErrLabelMapping)
}

func TestLabelMappingRequiresBothSides(t *testing.T) {
	_, err := NewLabelMapping([]string{"LABEL_0"}, []string{" ", ""})
	assert.ErrorIs(t, err, ErrLabelMapping)
}

func TestLoadLabelMappingFromEnv(t *testing.T) {
	t.Setenv("SENTIMENT_NEGATIVE_LABELS", "LABEL_0")
	t.Setenv("SENTIMENT_POSITIVE_LABELS", "LABEL_1")

	m, err := LoadLabelMapping()
	require.NoError(t, err)
	assert.Equal(t, models.PolarityNegative, m.Polarity("LABEL_0"))
	assert.Equal(t, models.PolarityPositive, m.Polarity("LABEL_1"))
}

func TestLoadRejectsUnknownBackend(t *testing.T) {
	t.Setenv("SENTIMENT_NEGATIVE_LABELS", "negative")
	t.Setenv("SENTIMENT_POSITIVE_LABELS", "positive")
	t.Setenv("CLASSIFIER_BACKEND", "magic")

	_, err := Load("test")
	assert.Error(t, err)
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SENTIMENT_NEGATIVE_LABELS", "negative")
	t.Setenv("SENTIMENT_POSITIVE_LABELS", "positive")
	t.Setenv("CLASSIFIER_BACKEND", "")
	t.Setenv("CLASSIFIER_BATCH_SIZE", "not-a-number")
	t.Setenv("TOP_AUTHORS", "3")
	t.Setenv("VALKEY_INIT_ADDRESS", "")

	cfg, err := Load("test")
	require.NoError(t, err)
	assert.Equal(t, BACKEND_VADER, cfg.Classifier.Backend)
	assert.Equal(t, 32, cfg.Classifier.BatchSize)
	assert.Equal(t, 3, cfg.TopAuthors)
	assert.False(t, cfg.Valkey.Enabled())
}
