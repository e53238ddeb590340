package report

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/spacesedan/trollscope/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsoleSinkFlagged(t *testing.T) {
	var buf bytes.Buffer
	sink := NewConsoleSink(&buf)

	err := sink.Slot(context.Background(), models.TrollFlag{
		Slot:               1,
		AuthorDisplayName:  "alice",
		NegativeCount:      2,
		TotalCount:         3,
		NegativePercentage: 200.0 / 3,
		Flagged:            true,
	})
	require.NoError(t, err)

	assert.Equal(t, "Slot 1 has 2 negative comments out of 3 total comments\n"+
		"Author has been flagged as a possible troll\n"+
		"Author name: alice\n"+
		"Number of comments classified as negative: 2\n"+
		"Total number of comments: 3\n"+
		"Percentage of negative comments: 66.67%\n"+
		separator+"\n", buf.String())
}

func TestConsoleSinkNotFlaggedAndSkipped(t *testing.T) {
	var buf bytes.Buffer
	sink := NewConsoleSink(&buf)

	require.NoError(t, sink.Slot(context.Background(), models.TrollFlag{Slot: 2, NegativeCount: 1, TotalCount: 4}))
	require.NoError(t, sink.Slot(context.Background(), models.TrollFlag{
		Slot: 3, AuthorChannelID: "ghost", Skipped: true, SkipReason: models.SKIP_REASON_INSUFFICIENT_DATA,
	}))

	assert.Equal(t, "Slot 2 has 1 negative comments out of 4 total comments\n"+separator+"\n"+
		"Slot 3 (ghost) skipped: insufficient data\n"+separator+"\n", buf.String())
}

type fakeWriter struct {
	batches [][]models.TrollFlag
	err     error
}

func (f *fakeWriter) PublishTrollFlags(_ context.Context, flags []models.TrollFlag) error {
	f.batches = append(f.batches, flags)
	return f.err
}

func (f *fakeWriter) StoreTrollFlags(ctx context.Context, flags []models.TrollFlag) error {
	return f.PublishTrollFlags(ctx, flags)
}

func TestBufferedSinksWriteOnFlush(t *testing.T) {
	publisher := &fakeWriter{}
	store := &fakeWriter{}
	sink := MultiSink{NewKafkaSink(publisher), NewDynamoSink(store)}

	ctx := context.Background()
	require.NoError(t, sink.Slot(ctx, models.TrollFlag{Slot: 1}))
	require.NoError(t, sink.Slot(ctx, models.TrollFlag{Slot: 2}))
	assert.Empty(t, publisher.batches)

	require.NoError(t, sink.Flush(ctx))
	require.Len(t, publisher.batches, 1)
	assert.Len(t, publisher.batches[0], 2)
	require.Len(t, store.batches, 1)

	// nothing buffered, nothing written
	require.NoError(t, sink.Flush(ctx))
	assert.Len(t, publisher.batches, 1)
}

func TestMultiSinkFlushJoinsErrors(t *testing.T) {
	kafkaErr := errors.New("broker down")
	dynamoErr := errors.New("throttled")
	sink := MultiSink{
		NewKafkaSink(&fakeWriter{err: kafkaErr}),
		NewDynamoSink(&fakeWriter{err: dynamoErr}),
	}

	ctx := context.Background()
	require.NoError(t, sink.Slot(ctx, models.TrollFlag{Slot: 1}))

	err := sink.Flush(ctx)
	assert.ErrorIs(t, err, kafkaErr)
	assert.ErrorIs(t, err, dynamoErr)
}
