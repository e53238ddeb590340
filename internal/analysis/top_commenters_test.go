package analysis

import (
	"testing"

	"github.com/spacesedan/trollscope/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTopCommentersRanksByCount(t *testing.T) {
	comments := []models.Comment{
		comment("CNN", "bob", "id2", "a"),
		comment("CNN", "alice", "id1", "b"),
		comment("MSNBC", "carol", "id3", "c"),
		comment("CNN", "alice", "id1", "d"),
		comment("CNN", "dave", "id4", "e"),
		comment("CNN", "alice", "id1", "f"),
		comment("CNN", "dave", "id4", "g"),
	}

	rankings, err := TopCommenters(comments, "")
	require.NoError(t, err)
	require.Len(t, rankings, 2)

	assert.Equal(t, "CNN", rankings[0].ChannelName)
	assert.Equal(t, []models.CommenterCount{
		{AuthorDisplayName: "alice", AuthorChannelID: "id1", Count: 3},
		{AuthorDisplayName: "dave", AuthorChannelID: "id4", Count: 2},
		{AuthorDisplayName: "bob", AuthorChannelID: "id2", Count: 1},
	}, rankings[0].Commenters)

	assert.Equal(t, "MSNBC", rankings[1].ChannelName)
	assert.Equal(t, []models.CommenterCount{
		{AuthorDisplayName: "carol", AuthorChannelID: "id3", Count: 1},
	}, rankings[1].Commenters)
}

func TestTopCommentersTiesKeepEncounterOrder(t *testing.T) {
	comments := []models.Comment{
		comment("CNN", "zed", "id9", "a"),
		comment("CNN", "amy", "id1", "b"),
		comment("CNN", "kim", "id5", "c"),
	}

	rankings, err := TopCommenters(comments, "CNN")
	require.NoError(t, err)
	require.Len(t, rankings, 1)

	var ids []string
	for _, c := range rankings[0].Commenters {
		ids = append(ids, c.AuthorChannelID)
	}
	assert.Equal(t, []string{"id9", "id1", "id5"}, ids)
}

func TestTopCommentersKeysOnNameAndID(t *testing.T) {
	comments := []models.Comment{
		comment("CNN", "alice", "id1", "a"),
		comment("CNN", "alice", "id2", "b"),
		comment("CNN", "alice (renamed)", "id1", "c"),
		comment("CNN", "alice", "id1", "d"),
	}

	rankings, err := TopCommenters(comments, "")
	require.NoError(t, err)
	assert.Equal(t, []models.CommenterCount{
		{AuthorDisplayName: "alice", AuthorChannelID: "id1", Count: 2},
		{AuthorDisplayName: "alice", AuthorChannelID: "id2", Count: 1},
		{AuthorDisplayName: "alice (renamed)", AuthorChannelID: "id1", Count: 1},
	}, rankings[0].Commenters)
}

func TestTopCommentersChannelFilter(t *testing.T) {
	comments := []models.Comment{
		comment("CNN", "alice", "id1", "a"),
		comment("MSNBC", "bob", "id2", "b"),
		comment("MSNBC", "bob", "id2", "c"),
	}

	rankings, err := TopCommenters(comments, "MSNBC")
	require.NoError(t, err)
	require.Len(t, rankings, 1)
	assert.Equal(t, "MSNBC", rankings[0].ChannelName)
	assert.Equal(t, 2, rankings[0].Commenters[0].Count)
}

func TestTopCommentersNotFound(t *testing.T) {
	comments := []models.Comment{comment("CNN", "alice", "id1", "a")}

	_, err := TopCommenters(comments, "Fox News")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = TopCommenters(nil, "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTopCommentersCountsAndOrder(t *testing.T) {
	var comments []models.Comment
	authors := []string{"a", "b", "c", "d", "e"}
	channels := []string{"CNN", "MSNBC", "Fox News"}
	for i := 0; i < 200; i++ {
		author := authors[(i*7)%len(authors)]
		if i%3 == 0 {
			author = authors[i%2]
		}
		comments = append(comments, comment(channels[i%len(channels)], author, "id-"+author, "text"))
	}

	rankings, err := TopCommenters(comments, "")
	require.NoError(t, err)

	for _, ranking := range rankings {
		total := 0
		for i, c := range ranking.Commenters {
			if i > 0 {
				assert.LessOrEqual(t, c.Count, ranking.Commenters[i-1].Count)
			}

			want := 0
			for _, row := range comments {
				if row.ChannelName == ranking.ChannelName &&
					row.AuthorDisplayName == c.AuthorDisplayName &&
					row.AuthorChannelID == c.AuthorChannelID {
					want++
				}
			}
			assert.Equal(t, want, c.Count)
			total += c.Count
		}

		channelRows := 0
		for _, row := range comments {
			if row.ChannelName == ranking.ChannelName {
				channelRows++
			}
		}
		assert.Equal(t, channelRows, total)
	}
}
