package models

import "time"

// Comment is one row of the comments dataset. Values are treated as
// immutable once loaded.
type Comment struct {
	AuthorChannelID   string    `json:"authorChannelId" dynamodbav:"authorChannelId"`
	AuthorDisplayName string    `json:"authorDisplayName" dynamodbav:"authorDisplayName"`
	ChannelID         string    `json:"channelId" dynamodbav:"channelId"`
	ChannelName       string    `json:"channelName" dynamodbav:"channelName"`
	VideoID           string    `json:"videoId" dynamodbav:"videoId"`
	TextOriginal      string    `json:"textOriginal" dynamodbav:"textOriginal"`
	LikeCount         int       `json:"likeCount" dynamodbav:"likeCount"`
	PublishedAt       time.Time `json:"publishedAt" dynamodbav:"publishedAt"`
}

// Video links a video to the channel that published it.
type Video struct {
	VideoID     string `json:"videoId"`
	ChannelID   string `json:"channelId"`
	ChannelName string `json:"channelName"`
}

// RepeatComment aggregates identical comment texts, useful when looking for
// bot activity.
type RepeatComment struct {
	Text             string   `json:"text"`
	LikeCount        int      `json:"likeCount"`
	Count            int      `json:"count"`
	AuthorChannelIDs []string `json:"authorChannelIds"`
}
