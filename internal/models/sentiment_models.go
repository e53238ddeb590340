package models

type Polarity string

const (
	PolarityPositive Polarity = "POSITIVE"
	PolarityNegative Polarity = "NEGATIVE"
	PolarityUnmapped Polarity = ""
)

// Classification is a classifier's raw answer for one text. Label is
// backend-specific (LABEL_0, negative, ...).
type Classification struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}
