package db

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/spacesedan/trollscope/internal/models"
)

const MAX_BATCH_WRITE = 25

type DynamoDBAPI interface {
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
	BatchWriteItem(ctx context.Context, params *dynamodb.BatchWriteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.BatchWriteItemOutput, error)
}

// Store reads the comments table and writes troll flags.
type Store struct {
	client        DynamoDBAPI
	commentsTable string
	flagsTable    string
	retryBackoff  time.Duration
}

func NewStore(client DynamoDBAPI, commentsTable, flagsTable string) *Store {
	return &Store{
		client:        client,
		commentsTable: commentsTable,
		flagsTable:    flagsTable,
		retryBackoff:  500 * time.Millisecond,
	}
}

// GetAllComments scans the comments table. Items come back in scan order,
// which is the order every ranking built from them will use.
func (s *Store) GetAllComments(ctx context.Context) ([]models.Comment, error) {
	var comments []models.Comment
	input := &dynamodb.ScanInput{
		TableName: aws.String(s.commentsTable),
	}

	paginator := dynamodb.NewScanPaginator(s.client, input)

	for paginator.HasMorePages() {
		out, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("[DynamoDB] Scan for comments failed: %w", err)
		}
		var page []models.Comment
		err = attributevalue.UnmarshalListOfMaps(out.Items, &page)
		if err != nil {
			slog.Error("[DynamoDB] Unable to unmarshal comment page", slog.String("error", err.Error()))
			return nil, err
		}
		comments = append(comments, page...)
	}

	slog.Info("[DynamoDB] Successfully retrieved comments", slog.Int("count", len(comments)))
	return comments, nil
}

// StoreTrollFlags batch-writes flags, retrying unprocessed items up to three
// times with exponential backoff.
func (s *Store) StoreTrollFlags(ctx context.Context, flags []models.TrollFlag) error {
	for start := 0; start < len(flags); start += MAX_BATCH_WRITE {
		select {
		case <-ctx.Done():
			slog.Warn("[DynamoDB] context canceled")
			return ctx.Err()
		default:
		}

		end := min(start+MAX_BATCH_WRITE, len(flags))
		writeRequests := make([]types.WriteRequest, 0, end-start)
		for _, flag := range flags[start:end] {
			item, err := FlagToDynamoDBItem(flag)
			if err != nil {
				return err
			}
			writeRequests = append(writeRequests, types.WriteRequest{
				PutRequest: &types.PutRequest{Item: item},
			})
		}

		if err := s.batchWrite(ctx, writeRequests); err != nil {
			return err
		}
	}

	slog.Info("[DynamoDB] Successfully stored troll flags", slog.Int("count", len(flags)))
	return nil
}

func (s *Store) batchWrite(ctx context.Context, writeRequests []types.WriteRequest) error {
	out, err := s.client.BatchWriteItem(ctx, &dynamodb.BatchWriteItemInput{
		RequestItems: map[string][]types.WriteRequest{
			s.flagsTable: writeRequests,
		},
	})
	if err != nil {
		return fmt.Errorf("[DynamoDB] Failed to batch write troll flags: %w", err)
	}

	retryCount := 0
	backoff := s.retryBackoff
	for len(out.UnprocessedItems) > 0 && retryCount < 3 {
		time.Sleep(backoff)
		backoff *= 2

		slog.Warn("[DynamoDB] Retrying unprocessed troll flags...",
			slog.Int("attempt", retryCount+1),
			slog.Int("remaining", len(out.UnprocessedItems[s.flagsTable])))

		out, err = s.client.BatchWriteItem(ctx, &dynamodb.BatchWriteItemInput{
			RequestItems: out.UnprocessedItems,
		})
		if err != nil {
			return fmt.Errorf("[DynamoDB] Retry error %w", err)
		}

		retryCount++
	}

	if len(out.UnprocessedItems) > 0 {
		return fmt.Errorf("[DynamoDB] %d troll flags not written after retries",
			len(out.UnprocessedItems[s.flagsTable]))
	}

	return nil
}

// FlagToDynamoDBItem keys flags by run id and slot, with a 30 day TTL.
func FlagToDynamoDBItem(flag models.TrollFlag) (map[string]types.AttributeValue, error) {
	item, err := attributevalue.MarshalMap(flag)
	if err != nil {
		return nil, fmt.Errorf("[DynamoDB] Failed to marshal troll flag: %w", err)
	}

	item["flag_id"] = &types.AttributeValueMemberS{Value: flag.RunID + "#" + strconv.Itoa(flag.Slot)}
	item["ttl"] = &types.AttributeValueMemberN{Value: strconv.FormatInt(flag.EvaluatedAt.Add(30*24*time.Hour).Unix(), 10)}

	return item, nil
}
