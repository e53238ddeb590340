package analysis

import (
	"fmt"

	"github.com/spacesedan/trollscope/internal/models"
)

type CommentQuery struct {
	// ChannelName restricts the rankings to one channel.
	ChannelName string
	// AuthorChannelID selects a single author instead of the top authors.
	AuthorChannelID string
	// TopAuthors is how many commenters to take from each ranking.
	TopAuthors int
}

// GetComments collects comment sets for the commenters selected by q.
//
// With an author id, the author must appear in one of the rankings and the
// result is a single set with every comment of that author in the dataset.
// Otherwise one set is built for each of the first TopAuthors commenters of
// every ranking, ordered by channel then rank. A commenter's set holds all of
// their comments, not just the ones on the ranked channel.
func GetComments(comments []models.Comment, q CommentQuery) ([]models.CommenterCommentSet, error) {
	rankings, err := TopCommenters(comments, q.ChannelName)
	if err != nil {
		return nil, err
	}

	if q.AuthorChannelID != "" {
		for _, ranking := range rankings {
			if ranking.Contains(q.AuthorChannelID) {
				return []models.CommenterCommentSet{
					commentsByAuthor(comments, q.AuthorChannelID),
				}, nil
			}
		}
		return nil, fmt.Errorf("no comments for author %q: %w", q.AuthorChannelID, ErrNotFound)
	}

	byAuthor := groupByAuthor(comments)

	var sets []models.CommenterCommentSet
	for _, ranking := range rankings {
		top := min(max(q.TopAuthors, 0), len(ranking.Commenters))
		for _, commenter := range ranking.Commenters[:top] {
			sets = append(sets, models.CommenterCommentSet{
				AuthorChannelID: commenter.AuthorChannelID,
				Comments:        byAuthor[commenter.AuthorChannelID],
			})
		}
	}

	return sets, nil
}

func commentsByAuthor(comments []models.Comment, authorChannelID string) models.CommenterCommentSet {
	set := models.CommenterCommentSet{AuthorChannelID: authorChannelID}
	for _, c := range comments {
		if c.AuthorChannelID == authorChannelID {
			set.Comments = append(set.Comments, toAuthorComment(c))
		}
	}
	return set
}

func groupByAuthor(comments []models.Comment) map[string][]models.AuthorComment {
	grouped := make(map[string][]models.AuthorComment)
	for _, c := range comments {
		grouped[c.AuthorChannelID] = append(grouped[c.AuthorChannelID], toAuthorComment(c))
	}
	return grouped
}

func toAuthorComment(c models.Comment) models.AuthorComment {
	return models.AuthorComment{
		AuthorChannelID:   c.AuthorChannelID,
		AuthorDisplayName: c.AuthorDisplayName,
		ChannelID:         c.ChannelID,
		TextOriginal:      c.TextOriginal,
	}
}
