package analysis

import (
	"testing"

	"github.com/spacesedan/trollscope/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepeatComments(t *testing.T) {
	withLikes := func(c models.Comment, likes int) models.Comment {
		c.LikeCount = likes
		return c
	}
	comments := []models.Comment{
		withLikes(comment("CNN", "a", "id1", "first!"), 1),
		withLikes(comment("CNN", "b", "id2", "wake up"), 4),
		withLikes(comment("MSNBC", "a", "id1", "first!"), 2),
		withLikes(comment("CNN", "c", "id3", "wake up"), 0),
		withLikes(comment("CNN", "b", "id2", "wake up"), 5),
		withLikes(comment("CNN", "d", "id4", "unique"), 9),
	}

	repeats := RepeatComments(comments, 2)
	require.Len(t, repeats, 2)

	assert.Equal(t, models.RepeatComment{
		Text:             "wake up",
		LikeCount:        9,
		Count:            3,
		AuthorChannelIDs: []string{"id2", "id3"},
	}, repeats[0])
	assert.Equal(t, models.RepeatComment{
		Text:             "first!",
		LikeCount:        3,
		Count:            2,
		AuthorChannelIDs: []string{"id1"},
	}, repeats[1])

	assert.Len(t, RepeatComments(comments, 100), 3)
	assert.Empty(t, RepeatComments(comments, 0))
}
