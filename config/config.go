package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	BACKEND_VADER       = "vader"
	BACKEND_HUGGINGFACE = "huggingface"
	BACKEND_HUGOT       = "hugot"
	BACKEND_OPENAI      = "openai"
)

var ErrLabelMapping = errors.New("sentiment label mapping")

type Config struct {
	Env        string
	LogLevel   slog.Level
	TopAuthors int

	Classifier ClassifierConfig
	Labels     LabelMapping
	Valkey     ValkeyConfig
	Kafka      KafkaConfig
	AWS        AWSConfig
	YouTube    YouTubeConfig
}

type ClassifierConfig struct {
	Backend             string
	BatchSize           int
	HuggingFaceEndpoint string
	HuggingFaceTimeout  time.Duration
	HugotModelPath      string
	OpenAIAPIKey        string
	OpenAIModel         string
}

// ValkeyConfig is optional; an empty InitAddress disables the verdict cache.
type ValkeyConfig struct {
	InitAddress string
	Password    string
	UseTLS      bool
	TTL         time.Duration
}

func (v ValkeyConfig) Enabled() bool {
	return v.InitAddress != ""
}

type KafkaConfig struct {
	Broker string
	Topic  string
}

type AWSConfig struct {
	Region        string
	Endpoint      string
	CommentsTable string
	FlagsTable    string
}

type YouTubeConfig struct {
	APIKey      string
	AccessToken string
	BaseURL     string
}

func getEnv(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		slog.Warn("[Config] Invalid integer, using default",
			slog.String("key", key),
			slog.String("value", raw),
			slog.Int("default", defaultValue))
		return defaultValue
	}
	return value
}

func parseLevel(raw string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(raw)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// Load builds the run configuration from the process environment. LoadEnv
// should run first so the selected .env file is visible here.
func Load(env string) (Config, error) {
	labels, err := LoadLabelMapping()
	if err != nil {
		return Config{}, err
	}

	backend := strings.ToLower(getEnv("CLASSIFIER_BACKEND", BACKEND_VADER))
	if backend == "" {
		backend = BACKEND_VADER
	}
	switch backend {
	case BACKEND_VADER, BACKEND_HUGGINGFACE, BACKEND_HUGOT, BACKEND_OPENAI:
	default:
		return Config{}, fmt.Errorf("[Config] unknown CLASSIFIER_BACKEND %q", backend)
	}

	hfTimeout := 60 * time.Second
	if env == "production" {
		hfTimeout = 10 * time.Second
	}

	cfg := Config{
		Env:        env,
		LogLevel:   parseLevel(getEnv("LOG_LEVEL", "info")),
		TopAuthors: getEnvInt("TOP_AUTHORS", 5),
		Classifier: ClassifierConfig{
			Backend:             backend,
			BatchSize:           getEnvInt("CLASSIFIER_BATCH_SIZE", 32),
			HuggingFaceEndpoint: getEnv("HF_SENTIMENT_ANALYSIS_ENDPOINT", ""),
			HuggingFaceTimeout:  hfTimeout,
			HugotModelPath:      getEnv("HUGOT_MODEL_PATH", ""),
			OpenAIAPIKey:        getEnv("OPENAI_API_KEY", ""),
			OpenAIModel:         getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		},
		Labels: labels,
		Valkey: ValkeyConfig{
			InitAddress: getEnv("VALKEY_INIT_ADDRESS", ""),
			Password:    getEnv("VALKEY_PASSWORD", ""),
			UseTLS:      getEnv("VALKEY_TLS", "false") == "true",
			TTL:         time.Duration(getEnvInt("VALKEY_TTL", 86400)) * time.Second,
		},
		Kafka: KafkaConfig{
			Broker: getEnv("KAFKA_BROKER", "localhost:29092"),
			Topic:  getEnv("KAFKA_TOPIC_TROLL_FLAGS", "troll-flags"),
		},
		AWS: AWSConfig{
			Region:        getEnv("AWS_REGION", "us-west-2"),
			Endpoint:      getEnv("AWS_ENDPOINT", ""),
			CommentsTable: getEnv("DYNAMODB_COMMENTS_TABLE", "Comments"),
			FlagsTable:    getEnv("DYNAMODB_FLAGS_TABLE", "TrollFlags"),
		},
		YouTube: YouTubeConfig{
			APIKey:      getEnv("YOUTUBE_API_KEY", ""),
			AccessToken: getEnv("YOUTUBE_ACCESS_TOKEN", ""),
			BaseURL:     getEnv("YOUTUBE_API_URL", "https://www.googleapis.com/youtube/v3"),
		},
	}

	if cfg.Classifier.BatchSize <= 0 {
		cfg.Classifier.BatchSize = 32
	}

	return cfg, nil
}
