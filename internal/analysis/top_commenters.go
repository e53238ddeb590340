package analysis

import (
	"fmt"
	"slices"

	"github.com/spacesedan/trollscope/internal/models"
)

type commenterKey struct {
	displayName string
	channelID   string
}

// TopCommenters ranks commenters per channel by number of comments. Rankings
// come back in the order channels are first seen. When channelName is set only
// that channel is ranked. Commenters are keyed by display name and author id
// together, so an id that changed its display name shows up once per name.
func TopCommenters(comments []models.Comment, channelName string) ([]models.CommenterRanking, error) {
	var channels []string
	counts := make(map[string][]models.CommenterCount)
	index := make(map[string]map[commenterKey]int)

	for _, c := range comments {
		if channelName != "" && c.ChannelName != channelName {
			continue
		}

		positions, ok := index[c.ChannelName]
		if !ok {
			positions = make(map[commenterKey]int)
			index[c.ChannelName] = positions
			channels = append(channels, c.ChannelName)
		}

		key := commenterKey{displayName: c.AuthorDisplayName, channelID: c.AuthorChannelID}
		pos, seen := positions[key]
		if !seen {
			pos = len(counts[c.ChannelName])
			positions[key] = pos
			counts[c.ChannelName] = append(counts[c.ChannelName], models.CommenterCount{
				AuthorDisplayName: c.AuthorDisplayName,
				AuthorChannelID:   c.AuthorChannelID,
			})
		}
		counts[c.ChannelName][pos].Count++
	}

	if len(channels) == 0 {
		if channelName != "" {
			return nil, fmt.Errorf("no such channel %q: %w", channelName, ErrNotFound)
		}
		return nil, fmt.Errorf("no such channel: %w", ErrNotFound)
	}

	rankings := make([]models.CommenterRanking, 0, len(channels))
	for _, channel := range channels {
		commenters := counts[channel]
		slices.SortStableFunc(commenters, func(a, b models.CommenterCount) int {
			return b.Count - a.Count
		})
		rankings = append(rankings, models.CommenterRanking{
			ChannelName: channel,
			Commenters:  commenters,
		})
	}

	return rankings, nil
}
