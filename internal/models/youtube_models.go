package models

type YouTubeCommentThreadResponse struct {
	Items         []YouTubeCommentThread `json:"items"`
	NextPageToken string                 `json:"nextPageToken,omitempty"`
}

type YouTubeCommentThread struct {
	ID      string `json:"id"`
	Snippet struct {
		ChannelID       string         `json:"channelId"`
		VideoID         string         `json:"videoId"`
		TopLevelComment YouTubeComment `json:"topLevelComment"`
		TotalReplyCount int            `json:"totalReplyCount"`
	} `json:"snippet"`
}

type YouTubeComment struct {
	ID      string `json:"id"`
	Snippet struct {
		AuthorDisplayName string `json:"authorDisplayName"`
		AuthorChannelID   struct {
			Value string `json:"value"`
		} `json:"authorChannelId"`
		TextOriginal string `json:"textOriginal"`
		LikeCount    int    `json:"likeCount"`
		PublishedAt  string `json:"publishedAt"`
	} `json:"snippet"`
}
