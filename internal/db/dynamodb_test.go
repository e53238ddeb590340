package db

import (
	"context"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/spacesedan/trollscope/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDynamo struct {
	pages       [][]map[string]types.AttributeValue
	writes      []*dynamodb.BatchWriteItemInput
	unprocessed int
}

func (f *fakeDynamo) Scan(_ context.Context, in *dynamodb.ScanInput, _ ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	page := 0
	if in.ExclusiveStartKey != nil {
		page = 1
	}
	out := &dynamodb.ScanOutput{Items: f.pages[page]}
	if page+1 < len(f.pages) {
		out.LastEvaluatedKey = map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: "next"},
		}
	}
	return out, nil
}

func (f *fakeDynamo) BatchWriteItem(_ context.Context, in *dynamodb.BatchWriteItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.BatchWriteItemOutput, error) {
	f.writes = append(f.writes, in)
	if f.unprocessed > 0 {
		f.unprocessed--
		return &dynamodb.BatchWriteItemOutput{UnprocessedItems: in.RequestItems}, nil
	}
	return &dynamodb.BatchWriteItemOutput{}, nil
}

func mustItem(t *testing.T, c models.Comment) map[string]types.AttributeValue {
	t.Helper()
	item, err := attributevalue.MarshalMap(c)
	require.NoError(t, err)
	return item
}

func TestGetAllCommentsPaginates(t *testing.T) {
	published := time.Date(2023, 5, 1, 10, 30, 0, 0, time.UTC)
	fake := &fakeDynamo{pages: [][]map[string]types.AttributeValue{
		{mustItem(t, models.Comment{AuthorChannelID: "id1", ChannelName: "CNN", TextOriginal: "a", PublishedAt: published})},
		{mustItem(t, models.Comment{AuthorChannelID: "id2", ChannelName: "MSNBC", TextOriginal: "b", LikeCount: 7})},
	}}

	comments, err := NewStore(fake, "Comments", "TrollFlags").GetAllComments(context.Background())
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "id1", comments[0].AuthorChannelID)
	assert.True(t, published.Equal(comments[0].PublishedAt))
	assert.Equal(t, 7, comments[1].LikeCount)
}

func TestStoreTrollFlagsBatchesAndRetries(t *testing.T) {
	fake := &fakeDynamo{unprocessed: 1}
	store := NewStore(fake, "Comments", "TrollFlags")
	store.retryBackoff = time.Millisecond

	var flags []models.TrollFlag
	for i := 1; i <= 30; i++ {
		flags = append(flags, models.TrollFlag{RunID: "run", Slot: i, EvaluatedAt: time.Unix(0, 0)})
	}

	require.NoError(t, store.StoreTrollFlags(context.Background(), flags))

	// first batch is retried once, second batch goes through directly
	require.Len(t, fake.writes, 3)
	assert.Len(t, fake.writes[0].RequestItems["TrollFlags"], 25)
	assert.Len(t, fake.writes[1].RequestItems["TrollFlags"], 25)
	assert.Len(t, fake.writes[2].RequestItems["TrollFlags"], 5)
}

func TestStoreTrollFlagsGivesUp(t *testing.T) {
	fake := &fakeDynamo{unprocessed: 10}
	store := NewStore(fake, "Comments", "TrollFlags")
	store.retryBackoff = time.Millisecond

	err := store.StoreTrollFlags(context.Background(), []models.TrollFlag{{RunID: "run", Slot: 1}})
	assert.Error(t, err)
	assert.Len(t, fake.writes, 4)
}

func TestFlagToDynamoDBItem(t *testing.T) {
	item, err := FlagToDynamoDBItem(models.TrollFlag{
		RunID:             "20240301T120000Z",
		Slot:              3,
		AuthorDisplayName: "alice",
		NegativeCount:     2,
		TotalCount:        3,
		Flagged:           true,
		EvaluatedAt:       time.Unix(1000, 0),
	})
	require.NoError(t, err)

	assert.Equal(t, &types.AttributeValueMemberS{Value: "20240301T120000Z#3"}, item["flag_id"])
	assert.Equal(t, &types.AttributeValueMemberS{Value: "alice"}, item["author_display_name"])
	assert.Equal(t, &types.AttributeValueMemberBOOL{Value: true}, item["flagged"])
	assert.Equal(t, &types.AttributeValueMemberN{Value: "2593000"}, item["ttl"])
	assert.NotContains(t, item, "skip_reason")
}
