package report

import (
	"context"
	"log/slog"

	"github.com/spacesedan/trollscope/internal/models"
	"github.com/spacesedan/trollscope/internal/utils"
)

type flagPublisher interface {
	PublishTrollFlags(ctx context.Context, flags []models.TrollFlag) error
}

type flagStore interface {
	StoreTrollFlags(ctx context.Context, flags []models.TrollFlag) error
}

// bufferedSink collects flags and hands them to write on Flush.
type bufferedSink struct {
	name   string
	buffer *utils.BatchBuffer[models.TrollFlag]
	write  func(ctx context.Context, flags []models.TrollFlag) error
}

func (b *bufferedSink) Slot(_ context.Context, flag models.TrollFlag) error {
	b.buffer.Add(flag)
	return nil
}

func (b *bufferedSink) Flush(ctx context.Context) error {
	if b.buffer.Size() == 0 {
		return nil
	}
	b.buffer.LogBatchProcessing(b.name)
	flags := b.buffer.GetAndClear()
	if err := b.write(ctx, flags); err != nil {
		slog.Error("[ReportSink] Flush failed",
			slog.String("sink", b.name),
			slog.Int("flags", len(flags)),
			slog.String("error", err.Error()))
		return err
	}
	return nil
}

// NewKafkaSink publishes all flags of a run in one transaction on Flush.
func NewKafkaSink(publisher flagPublisher) Sink {
	return &bufferedSink{
		name:   "kafka",
		buffer: utils.NewBatchBuffer[models.TrollFlag](),
		write:  publisher.PublishTrollFlags,
	}
}

// NewDynamoSink persists all flags of a run on Flush.
func NewDynamoSink(store flagStore) Sink {
	return &bufferedSink{
		name:   "dynamodb",
		buffer: utils.NewBatchBuffer[models.TrollFlag](),
		write:  store.StoreTrollFlags,
	}
}
