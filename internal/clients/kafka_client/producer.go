package kafka_client

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/confluentinc/confluent-kafka-go/kafka"

	"github.com/spacesedan/trollscope/config"
	"github.com/spacesedan/trollscope/internal/models"
)

// Producer publishes troll flags transactionally so a run's flags land
// together or not at all.
type Producer struct {
	producer *kafka.Producer
	topic    string
}

func NewProducer(ctx context.Context, cfg config.KafkaConfig) (*Producer, error) {
	slog.Info("[KafkaClient] Initializing Kafka Producer...",
		slog.String("broker", cfg.Broker))

	p, err := kafka.NewProducer(&kafka.ConfigMap{
		"bootstrap.servers":                     cfg.Broker,
		"security.protocol":                     "PLAINTEXT",
		"api.version.request":                   "true",
		"enable.idempotence":                    true,
		"acks":                                  "all",
		"max.in.flight.requests.per.connection": 1,
		"transactional.id":                      "trollscope-producer-1",
	})
	if err != nil {
		return nil, fmt.Errorf("[KafkaClient] Failed to create producer: %w", err)
	}

	if err := p.InitTransactions(ctx); err != nil {
		p.Close()
		return nil, fmt.Errorf("[KafkaClient] Failed to init transactions: %w", err)
	}

	topic := cfg.Topic
	if topic == "" {
		topic = KAFKA_TOPIC_TROLL_FLAGS
	}

	slog.Info("[KafkaClient] Kafka Producer initialized successfully")
	return &Producer{producer: p, topic: topic}, nil
}

func (p *Producer) Close() {
	slog.Info("[KafkaClient] Shutting down Kafka producer...")
	if remaining := p.producer.Flush(FLUSH_TIMEOUT_MS); remaining > 0 {
		slog.Warn("[KafkaClient] Not all messages were delivered before shutdown",
			slog.Int("remaining", remaining))
	}
	p.producer.Close()
	slog.Info("[KafkaClient] Kafka producer shut down")
}

// PublishTrollFlags sends every flag in one transaction, keyed by author
// channel id so an author's history stays on one partition.
func (p *Producer) PublishTrollFlags(ctx context.Context, flags []models.TrollFlag) error {
	if len(flags) == 0 {
		return nil
	}

	messages := make([]*kafka.Message, 0, len(flags))
	for _, flag := range flags {
		msg, err := NewFlagMessage(p.topic, flag)
		if err != nil {
			return err
		}
		messages = append(messages, msg)
	}

	if err := p.producer.BeginTransaction(); err != nil {
		return fmt.Errorf("[KafkaClient] failed to begin transaction: %w", err)
	}

	for _, msg := range messages {
		var err error
		for i := 0; i < PRODUCE_RETRIES; i++ {
			err = p.producer.Produce(msg, nil)
			if err == nil {
				break
			}
			slog.Warn("[KafkaClient] Failed to produce message, retrying...",
				slog.Int("attempt", i+1),
				slog.String("error", err.Error()))
		}
		if err != nil {
			if abortErr := p.producer.AbortTransaction(ctx); abortErr != nil {
				return fmt.Errorf("[KafkaClient] failed to abort transaction after produce error: %w", abortErr)
			}
			return fmt.Errorf("[KafkaClient] failed to produce troll flag: %w", err)
		}
	}

	var commitErr error
	for i := 0; i < PRODUCE_RETRIES; i++ {
		commitErr = p.producer.CommitTransaction(ctx)
		if commitErr == nil {
			break
		}
		slog.Warn("[KafkaClient] Failed to commit transaction, retrying...",
			slog.Int("attempt", i+1))
	}
	if commitErr != nil {
		_ = p.producer.AbortTransaction(ctx)
		return fmt.Errorf("[KafkaClient] failed to commit transaction after %d retries: %w", PRODUCE_RETRIES, commitErr)
	}

	slog.Info("[KafkaClient] Published troll flags transactionally",
		slog.String("topic", p.topic),
		slog.Int("count", len(flags)))

	return nil
}

func NewFlagMessage(topic string, flag models.TrollFlag) (*kafka.Message, error) {
	value, err := json.Marshal(flag)
	if err != nil {
		return nil, fmt.Errorf("[KafkaClient] failed to serialize troll flag: %w", err)
	}

	key := flag.AuthorChannelID
	if key == "" {
		key = flag.RunID + "#" + strconv.Itoa(flag.Slot)
	}

	return &kafka.Message{
		TopicPartition: kafka.TopicPartition{Topic: &topic, Partition: kafka.PartitionAny},
		Key:            []byte(key),
		Value:          value,
		Headers: []kafka.Header{
			{Key: "run_id", Value: []byte(flag.RunID)},
		},
	}, nil
}
