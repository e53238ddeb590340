package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spacesedan/trollscope/internal/models"
)

// LabelMapping translates classifier-specific labels (LABEL_0, negative, ...)
// into polarities. Labels are compared case-insensitively. A label found in
// neither set is unmapped and counts toward neither polarity.
type LabelMapping struct {
	negative map[string]struct{}
	positive map[string]struct{}
}

func NewLabelMapping(negative, positive []string) (LabelMapping, error) {
	m := LabelMapping{
		negative: make(map[string]struct{}, len(negative)),
		positive: make(map[string]struct{}, len(positive)),
	}
	for _, label := range negative {
		if key := normalizeLabel(label); key != "" {
			m.negative[key] = struct{}{}
		}
	}
	for _, label := range positive {
		key := normalizeLabel(label)
		if key == "" {
			continue
		}
		if _, dup := m.negative[key]; dup {
			return LabelMapping{}, fmt.Errorf("%w: label %q is both negative and positive", ErrLabelMapping, label)
		}
		m.positive[key] = struct{}{}
	}

	if len(m.negative) == 0 || len(m.positive) == 0 {
		return LabelMapping{}, fmt.Errorf("%w: both negative and positive labels are required", ErrLabelMapping)
	}

	return m, nil
}

// LoadLabelMapping reads SENTIMENT_NEGATIVE_LABELS and SENTIMENT_POSITIVE_LABELS
// (comma separated). There is no built-in default.
func LoadLabelMapping() (LabelMapping, error) {
	negative, nok := os.LookupEnv("SENTIMENT_NEGATIVE_LABELS")
	positive, pok := os.LookupEnv("SENTIMENT_POSITIVE_LABELS")
	if !nok || !pok {
		return LabelMapping{}, fmt.Errorf("%w: SENTIMENT_NEGATIVE_LABELS and SENTIMENT_POSITIVE_LABELS must be set", ErrLabelMapping)
	}
	return NewLabelMapping(strings.Split(negative, ","), strings.Split(positive, ","))
}

func (m LabelMapping) Polarity(label string) models.Polarity {
	key := normalizeLabel(label)
	if _, ok := m.negative[key]; ok {
		return models.PolarityNegative
	}
	if _, ok := m.positive[key]; ok {
		return models.PolarityPositive
	}
	return models.PolarityUnmapped
}

func normalizeLabel(label string) string {
	return strings.ToLower(strings.TrimSpace(label))
}
