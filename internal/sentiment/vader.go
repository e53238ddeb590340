package sentiment

import (
	"context"
	"html"
	"regexp"
	"strings"

	"github.com/jonreiter/govader"
	"github.com/russross/blackfriday/v2"

	"github.com/spacesedan/trollscope/internal/models"
)

const (
	VADER_LABEL_POSITIVE = "positive"
	VADER_LABEL_NEGATIVE = "negative"
	VADER_LABEL_NEUTRAL  = "neutral"

	VADER_THRESHOLD = 0.20
)

var (
	linkPattern = regexp.MustCompile(`\[(.*?)\]\((https?:\/\/[^\s\)]+)\)`)
	urlPattern  = regexp.MustCompile(`https?://\S+|www\.\S+`)
	tagPattern  = regexp.MustCompile(`<[^>]*>`)

	// plain HTML output, no smartypants entity rewriting
	textRenderer = blackfriday.NewHTMLRenderer(blackfriday.HTMLRendererParameters{
		Flags: blackfriday.UseXHTML,
	})
)

func RemoveLinks(input string) string {
	input = linkPattern.ReplaceAllString(input, "$1") // Keep only the text
	input = urlPattern.ReplaceAllString(input, "")

	return strings.Join(strings.Fields(input), " ")
}

// ConvertMarkdownToText renders markdown and strips the resulting markup so
// the lexicon only sees words.
func ConvertMarkdownToText(input string) string {
	output := blackfriday.Run([]byte(input),
		blackfriday.WithNoExtensions(),
		blackfriday.WithRenderer(textRenderer))
	plainText := html.UnescapeString(tagPattern.ReplaceAllString(string(output), ""))
	plainText = strings.Join(strings.Fields(plainText), " ")

	return RemoveLinks(plainText)
}

// VaderClassifier scores texts locally with the VADER lexicon. Labels are
// positive, negative or neutral depending on the compound score.
type VaderClassifier struct {
	analyzer  *govader.SentimentIntensityAnalyzer
	threshold float64
}

func NewVaderClassifier() *VaderClassifier {
	return &VaderClassifier{
		analyzer:  govader.NewSentimentIntensityAnalyzer(),
		threshold: VADER_THRESHOLD,
	}
}

func (v *VaderClassifier) Analyze(text string) (float64, string) {
	plainText := ConvertMarkdownToText(text)

	sentiment := v.analyzer.PolarityScores(plainText)
	score := sentiment.Compound

	var label string
	if score >= v.threshold {
		label = VADER_LABEL_POSITIVE
	} else if score <= -v.threshold {
		label = VADER_LABEL_NEGATIVE
	} else {
		label = VADER_LABEL_NEUTRAL
	}

	return score, label
}

func (v *VaderClassifier) Classify(ctx context.Context, texts []string) ([]models.Classification, error) {
	results := make([]models.Classification, 0, len(texts))
	for _, text := range texts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		score, label := v.Analyze(text)
		results = append(results, models.Classification{Label: label, Score: score})
	}
	return results, nil
}
