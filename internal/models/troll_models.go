package models

import "time"

const SKIP_REASON_INSUFFICIENT_DATA = "insufficient data"

// TrollFlag is the outcome of evaluating one comment set. Slot is 1-based and
// follows the order the sets were produced in.
type TrollFlag struct {
	RunID              string    `json:"run_id" dynamodbav:"run_id"`
	Slot               int       `json:"slot" dynamodbav:"slot"`
	AuthorChannelID    string    `json:"author_channel_id" dynamodbav:"author_channel_id"`
	AuthorDisplayName  string    `json:"author_display_name" dynamodbav:"author_display_name"`
	ChannelID          string    `json:"channel_id,omitempty" dynamodbav:"channel_id,omitempty"`
	NegativeCount      int       `json:"negative_count" dynamodbav:"negative_count"`
	PositiveCount      int       `json:"positive_count" dynamodbav:"positive_count"`
	TotalCount         int       `json:"total_count" dynamodbav:"total_count"`
	NegativePercentage float64   `json:"negative_percentage" dynamodbav:"negative_percentage"`
	Flagged            bool      `json:"flagged" dynamodbav:"flagged"`
	Skipped            bool      `json:"skipped,omitempty" dynamodbav:"skipped,omitempty"`
	SkipReason         string    `json:"skip_reason,omitempty" dynamodbav:"skip_reason,omitempty"`
	EvaluatedAt        time.Time `json:"evaluated_at" dynamodbav:"evaluated_at"`
}

type TrollReport struct {
	Flags   []TrollFlag `json:"flags"`
	Flagged []string    `json:"flagged"`
}
