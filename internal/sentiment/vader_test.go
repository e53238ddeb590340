package sentiment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRemoveLinks(t *testing.T) {
	in := "see [the clip](https://youtu.be/abc) and https://example.com/x now"
	assert.Equal(t, "see the clip and now", RemoveLinks(in))
}

func TestConvertMarkdownToText(t *testing.T) {
	in := "**Great** reporting, _honestly_.\n\nRead www.example.com"
	assert.Equal(t, "Great reporting, honestly. Read", ConvertMarkdownToText(in))
}

func TestVaderClassifier(t *testing.T) {
	v := NewVaderClassifier()

	results, err := v.Classify(context.Background(), []string{
		"I love this channel, the reporting is wonderful and great!",
		"This is terrible, awful and disgusting. I hate it.",
		"The video was uploaded on Tuesday.",
	})
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, VADER_LABEL_POSITIVE, results[0].Label)
	assert.Greater(t, results[0].Score, VADER_THRESHOLD)
	assert.Equal(t, VADER_LABEL_NEGATIVE, results[1].Label)
	assert.Less(t, results[1].Score, -VADER_THRESHOLD)
	assert.Equal(t, VADER_LABEL_NEUTRAL, results[2].Label)
}

func TestVaderClassifierEmptyInput(t *testing.T) {
	results, err := NewVaderClassifier().Classify(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestVaderClassifierCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewVaderClassifier().Classify(ctx, []string{"anything"})
	assert.ErrorIs(t, err, context.Canceled)
}
