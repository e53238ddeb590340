package analysis

import (
	"context"
	"errors"

	"github.com/spacesedan/trollscope/internal/models"
)

func comment(channel, name, id, text string) models.Comment {
	return models.Comment{
		ChannelName:       channel,
		ChannelID:         "UC-" + channel,
		AuthorDisplayName: name,
		AuthorChannelID:   id,
		TextOriginal:      text,
	}
}

// textClassifier labels each text from a lookup table.
type textClassifier struct {
	labels map[string]string
	calls  [][]string
	err    error
	short  bool
}

func (c *textClassifier) Classify(_ context.Context, texts []string) ([]models.Classification, error) {
	c.calls = append(c.calls, texts)
	if c.err != nil {
		return nil, c.err
	}
	out := make([]models.Classification, 0, len(texts))
	for _, text := range texts {
		label, ok := c.labels[text]
		if !ok {
			return nil, errors.New("unexpected text " + text)
		}
		out = append(out, models.Classification{Label: label, Score: 0.9})
	}
	if c.short && len(out) > 0 {
		out = out[:len(out)-1]
	}
	return out, nil
}

type sstLabels struct{}

func (sstLabels) Polarity(label string) models.Polarity {
	switch label {
	case "LABEL_0":
		return models.PolarityNegative
	case "LABEL_1":
		return models.PolarityPositive
	}
	return models.PolarityUnmapped
}

type recordingReporter struct {
	flags []models.TrollFlag
}

func (r *recordingReporter) Slot(_ context.Context, flag models.TrollFlag) error {
	r.flags = append(r.flags, flag)
	return nil
}
