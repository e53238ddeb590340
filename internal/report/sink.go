package report

import (
	"context"
	"errors"

	"github.com/spacesedan/trollscope/internal/models"
)

// Sink receives troll flags as they are evaluated. Flush is called once after
// the run; buffered sinks write there.
type Sink interface {
	Slot(ctx context.Context, flag models.TrollFlag) error
	Flush(ctx context.Context) error
}

// MultiSink fans every call out to all sinks. Slot stops at the first error;
// Flush flushes every sink and joins the errors.
type MultiSink []Sink

func (m MultiSink) Slot(ctx context.Context, flag models.TrollFlag) error {
	for _, s := range m {
		if err := s.Slot(ctx, flag); err != nil {
			return err
		}
	}
	return nil
}

func (m MultiSink) Flush(ctx context.Context) error {
	var errs []error
	for _, s := range m {
		if err := s.Flush(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
