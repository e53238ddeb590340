package analysis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/spacesedan/trollscope/internal/models"
)

// Classifier scores texts. Results are aligned with the input by position.
type Classifier interface {
	Classify(ctx context.Context, texts []string) ([]models.Classification, error)
}

// LabelMapper turns a classifier label into a polarity.
type LabelMapper interface {
	Polarity(label string) models.Polarity
}

// SlotReporter receives every evaluated slot, flagged or not.
type SlotReporter interface {
	Slot(ctx context.Context, flag models.TrollFlag) error
}

type Flagger struct {
	classifier Classifier
	labels     LabelMapper
	reporter   SlotReporter
	runID      string
	now        func() time.Time
}

// NewFlagger wires a flagger. reporter may be nil.
func NewFlagger(classifier Classifier, labels LabelMapper, reporter SlotReporter) *Flagger {
	return &Flagger{
		classifier: classifier,
		labels:     labels,
		reporter:   reporter,
		now:        time.Now,
	}
}

// WithRunID stamps every produced flag with id.
func (f *Flagger) WithRunID(id string) *Flagger {
	f.runID = id
	return f
}

// FlagTrolls classifies the comments of the selected commenters and flags every
// author whose comments are mostly negative. It returns the flagged display
// names in slot order along with every evaluated slot.
//
// Errors from commenter selection are returned unchanged. Sets without any
// comments are reported as skipped and never flagged.
func (f *Flagger) FlagTrolls(ctx context.Context, comments []models.Comment, q CommentQuery) (models.TrollReport, error) {
	sets, err := GetComments(comments, q)
	if err != nil {
		return models.TrollReport{}, err
	}

	slog.Info("[Flagger] Evaluating comment sets",
		slog.Int("sets", len(sets)),
		slog.String("channel", q.ChannelName),
		slog.Int("top_authors", q.TopAuthors))

	return f.FlagSets(ctx, sets)
}

// FlagSets evaluates already selected comment sets, numbering slots from 1.
func (f *Flagger) FlagSets(ctx context.Context, sets []models.CommenterCommentSet) (models.TrollReport, error) {
	var report models.TrollReport

	for i, set := range sets {
		flag, err := f.Evaluate(ctx, i+1, set)
		if errors.Is(err, ErrEmptyInput) {
			slog.Warn("[Flagger] Skipping comment set without comments",
				slog.Int("slot", flag.Slot),
				slog.String("author_channel_id", set.AuthorChannelID))
		} else if err != nil {
			return report, err
		}

		if f.reporter != nil {
			if err := f.reporter.Slot(ctx, flag); err != nil {
				return report, fmt.Errorf("report slot %d: %w", flag.Slot, err)
			}
		}

		report.Flags = append(report.Flags, flag)
		if flag.Flagged {
			report.Flagged = append(report.Flagged, flag.AuthorDisplayName)
		}
	}

	slog.Info("[Flagger] Finished evaluation",
		slog.Int("evaluated", len(report.Flags)),
		slog.Int("flagged", len(report.Flagged)))

	return report, nil
}

// Evaluate scores a single comment set. An author is flagged only on a strict
// negative majority; unmapped labels count toward neither side. An empty set
// yields a skipped flag together with ErrEmptyInput.
func (f *Flagger) Evaluate(ctx context.Context, slot int, set models.CommenterCommentSet) (models.TrollFlag, error) {
	flag := models.TrollFlag{
		RunID:             f.runID,
		Slot:              slot,
		AuthorChannelID:   set.AuthorChannelID,
		AuthorDisplayName: set.DisplayName(),
		ChannelID:         set.ChannelID(),
		EvaluatedAt:       f.now().UTC(),
	}

	texts := set.Texts()
	if len(texts) == 0 {
		flag.Skipped = true
		flag.SkipReason = models.SKIP_REASON_INSUFFICIENT_DATA
		return flag, fmt.Errorf("slot %d author %q: %w", slot, set.AuthorChannelID, ErrEmptyInput)
	}

	results, err := f.classifier.Classify(ctx, texts)
	if err != nil {
		return flag, fmt.Errorf("%w: slot %d: %w", ErrClassification, slot, err)
	}
	if len(results) != len(texts) {
		return flag, fmt.Errorf("%w: slot %d: got %d results for %d texts",
			ErrClassification, slot, len(results), len(texts))
	}

	for _, result := range results {
		switch f.labels.Polarity(result.Label) {
		case models.PolarityNegative:
			flag.NegativeCount++
		case models.PolarityPositive:
			flag.PositiveCount++
		}
	}

	flag.TotalCount = len(texts)
	flag.NegativePercentage = float64(flag.NegativeCount) / float64(flag.TotalCount) * 100
	flag.Flagged = flag.NegativeCount > flag.PositiveCount

	slog.Debug("[Flagger] Evaluated comment set",
		slog.Int("slot", slot),
		slog.String("author", flag.AuthorDisplayName),
		slog.Int("negative", flag.NegativeCount),
		slog.Int("positive", flag.PositiveCount),
		slog.Int("total", flag.TotalCount),
		slog.Bool("flagged", flag.Flagged))

	return flag, nil
}
