package kafka_client

const (
	KAFKA_TOPIC_TROLL_FLAGS = "troll-flags" // one message per evaluated comment set

	PRODUCE_RETRIES  = 3
	FLUSH_TIMEOUT_MS = 5000
)
