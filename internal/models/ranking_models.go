package models

type CommenterCount struct {
	AuthorDisplayName string `json:"authorDisplayName"`
	AuthorChannelID   string `json:"authorChannelId"`
	Count             int    `json:"count"`
}

// CommenterRanking lists a channel's commenters by comment count, highest
// first. Index 0 is the channel's top commenter.
type CommenterRanking struct {
	ChannelName string           `json:"channelName"`
	Commenters  []CommenterCount `json:"commenters"`
}

func (r CommenterRanking) Contains(authorChannelID string) bool {
	for _, c := range r.Commenters {
		if c.AuthorChannelID == authorChannelID {
			return true
		}
	}
	return false
}

type AuthorComment struct {
	AuthorChannelID   string `json:"authorChannelId"`
	AuthorDisplayName string `json:"authorDisplayName"`
	ChannelID         string `json:"channelId"`
	TextOriginal      string `json:"textOriginal"`
}

// CommenterCommentSet holds one author's comments in dataset order.
type CommenterCommentSet struct {
	AuthorChannelID string          `json:"authorChannelId"`
	Comments        []AuthorComment `json:"comments"`
}

func (s CommenterCommentSet) Texts() []string {
	texts := make([]string, len(s.Comments))
	for i, c := range s.Comments {
		texts[i] = c.TextOriginal
	}
	return texts
}

// DisplayName is the display name on the set's first comment, or "" when the
// set is empty.
func (s CommenterCommentSet) DisplayName() string {
	if len(s.Comments) == 0 {
		return ""
	}
	return s.Comments[0].AuthorDisplayName
}

func (s CommenterCommentSet) ChannelID() string {
	if len(s.Comments) == 0 {
		return ""
	}
	return s.Comments[0].ChannelID
}
