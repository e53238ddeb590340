package clients

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"

	"github.com/spacesedan/trollscope/config"
)

func NewAWSConfig(ctx context.Context, cfg config.AWSConfig) (aws.Config, error) {
	slog.Info("[AWSClient] Initializing AWS Config...",
		slog.String("region", cfg.Region))

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		slog.Error("[AWSClient] Failed to load AWS config")
		return aws.Config{}, fmt.Errorf("[AWSClient] failed to load AWS config: %w", err)
	}

	slog.Info("[AWSClient] AWS Config Initialized")
	return awsCfg, nil
}

// NewDynamoDBClient honours a custom endpoint (DynamoDB Local in dev).
func NewDynamoDBClient(ctx context.Context, cfg config.AWSConfig) (*dynamodb.Client, error) {
	awsCfg, err := NewAWSConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}

	return dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	}), nil
}
