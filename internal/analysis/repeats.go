package analysis

import (
	"slices"

	"github.com/spacesedan/trollscope/internal/models"
)

// RepeatComments groups comments with identical text and returns the num most
// repeated, summing likes and collecting the distinct authors who posted each
// text.
func RepeatComments(comments []models.Comment, num int) []models.RepeatComment {
	if num <= 0 {
		return nil
	}

	var repeats []models.RepeatComment
	index := make(map[string]int)
	authors := make(map[string]map[string]struct{})

	for _, c := range comments {
		pos, ok := index[c.TextOriginal]
		if !ok {
			pos = len(repeats)
			index[c.TextOriginal] = pos
			repeats = append(repeats, models.RepeatComment{Text: c.TextOriginal})
			authors[c.TextOriginal] = make(map[string]struct{})
		}

		repeats[pos].Count++
		repeats[pos].LikeCount += c.LikeCount
		if _, seen := authors[c.TextOriginal][c.AuthorChannelID]; !seen {
			authors[c.TextOriginal][c.AuthorChannelID] = struct{}{}
			repeats[pos].AuthorChannelIDs = append(repeats[pos].AuthorChannelIDs, c.AuthorChannelID)
		}
	}

	slices.SortStableFunc(repeats, func(a, b models.RepeatComment) int {
		return b.Count - a.Count
	})

	return repeats[:min(num, len(repeats))]
}
