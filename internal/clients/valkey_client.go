package clients

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/spacesedan/trollscope/config"
	"github.com/spacesedan/trollscope/internal/models"
)

// ValkeyClient caches classifier verdicts between runs.
type ValkeyClient struct {
	Client valkey.Client
	cfg    config.ValkeyConfig
	mu     sync.Mutex
}

func newValkey(cfg config.ValkeyConfig) (valkey.Client, error) {
	opts := valkey.ClientOption{
		InitAddress: []string{
			cfg.InitAddress,
		},
		Password:         cfg.Password,
		ConnWriteTimeout: 5 * time.Second,
		SelectDB:         0,
	}

	if cfg.UseTLS {
		opts.TLSConfig = &tls.Config{InsecureSkipVerify: false}
	}

	client, err := valkey.NewClient(opts)
	if err != nil {
		return nil, fmt.Errorf("[ValkeyClient] failed to create Valkey: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*3)
	defer cancel()

	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		client.Close()
		return nil, fmt.Errorf("[ValkeyClient] failed to ping Valkey: %w", err)
	}

	return client, nil
}

func NewValkeyClient(cfg config.ValkeyConfig) (*ValkeyClient, error) {
	client, err := newValkey(cfg)
	if err != nil {
		return nil, err
	}

	slog.Info("[ValkeyClient] Successfully connected to valkey",
		slog.String("address", cfg.InitAddress))

	return &ValkeyClient{Client: client, cfg: cfg}, nil
}

func (vc *ValkeyClient) recreateClient() {
	vc.mu.Lock()
	defer vc.mu.Unlock()

	slog.Warn("[ValkeyClient] Attempting to recreate Valkey client...")
	client, err := newValkey(vc.cfg)
	if err != nil {
		slog.Error("[ValkeyClient] Recreate failed",
			slog.String("error", err.Error()))
		return
	}

	vc.Client.Close()
	vc.Client = client
	slog.Info("[ValkeyClient] Successfully reconnected to valkey")
}

func (vc *ValkeyClient) client() valkey.Client {
	vc.mu.Lock()
	defer vc.mu.Unlock()
	return vc.Client
}

func (vc *ValkeyClient) Close() {
	vc.client().Close()
}

// GetVerdicts loads cached classifications. Missing or undecodable keys are
// left out of the result.
func (vc *ValkeyClient) GetVerdicts(ctx context.Context, keys []string) (map[string]models.Classification, error) {
	verdicts := make(map[string]models.Classification, len(keys))
	if len(keys) == 0 {
		return verdicts, nil
	}

	res := vc.DoWithRetry(ctx, func(b valkey.Builder) valkey.Completed {
		return b.Mget().Key(keys...).Build()
	}, 3)
	if err := res.Error(); err != nil {
		if isConnectionError(err) {
			vc.recreateClient()
		}
		return nil, err
	}

	values, err := res.ToArray()
	if err != nil {
		return nil, err
	}

	for i, value := range values {
		if i >= len(keys) {
			break
		}
		raw, err := value.ToString()
		if err != nil {
			if !valkey.IsValkeyNil(err) {
				slog.Warn("[ValkeyClient] Unreadable verdict",
					slog.String("key", keys[i]),
					slog.String("error", err.Error()))
			}
			continue
		}

		var verdict models.Classification
		if err := json.Unmarshal([]byte(raw), &verdict); err != nil {
			slog.Warn("[ValkeyClient] Corrupt verdict",
				slog.String("key", keys[i]),
				slog.String("error", err.Error()))
			continue
		}
		verdicts[keys[i]] = verdict
	}

	return verdicts, nil
}

func (vc *ValkeyClient) SetVerdicts(ctx context.Context, verdicts map[string]models.Classification) error {
	if len(verdicts) == 0 {
		return nil
	}

	ttl := int64(vc.cfg.TTL / time.Second)
	if ttl <= 0 {
		ttl = 86400
	}

	payloads := make(map[string]string, len(verdicts))
	for key, verdict := range verdicts {
		payload, err := json.Marshal(verdict)
		if err != nil {
			return fmt.Errorf("[ValkeyClient] failed to encode verdict: %w", err)
		}
		payloads[key] = string(payload)
	}

	responses := vc.DoMultiWithRetry(ctx, func(b valkey.Builder) []valkey.Completed {
		completed := make([]valkey.Completed, 0, len(payloads))
		for key, payload := range payloads {
			completed = append(completed, b.Setex().Key(key).Seconds(ttl).Value(payload).Build())
		}
		return completed
	}, 3)
	for _, res := range responses {
		if err := res.Error(); err != nil {
			return err
		}
	}

	slog.Debug("[ValkeyClient] Stored verdicts",
		slog.Int("count", len(verdicts)))
	return nil
}

// DoMultiWithRetry rebuilds the commands on every attempt; valkey recycles a
// command once it has been sent.
func (vc *ValkeyClient) DoMultiWithRetry(ctx context.Context, build func(valkey.Builder) []valkey.Completed, retries int) []valkey.ValkeyResult {
	var results []valkey.ValkeyResult

	for i := 0; i < retries; i++ {
		c := vc.client()
		results = c.DoMulti(ctx, build(c.B())...)
		hasErr := false
		for _, r := range results {
			if r.Error() != nil {
				hasErr = true
				slog.Warn("[ValkeyClient] Do Multi failed",
					slog.Int("attempt", i+1),
					slog.String("error", r.Error().Error()))
				if isConnectionError(r.Error()) {
					vc.recreateClient()
				}
				break
			}
		}
		if !hasErr {
			break
		}
		time.Sleep(time.Millisecond * 250)
	}

	return results
}

func (vc *ValkeyClient) DoWithRetry(ctx context.Context, build func(valkey.Builder) valkey.Completed, retries int) valkey.ValkeyResult {
	var result valkey.ValkeyResult
	for i := 0; i < retries; i++ {
		c := vc.client()
		result = c.Do(ctx, build(c.B()))
		if result.Error() == nil {
			break
		}

		slog.Warn("[ValkeyClient] Do failed",
			slog.Int("attempt", i+1),
			slog.String("error", result.Error().Error()))

		time.Sleep(250 * time.Millisecond)
	}

	return result
}

func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "EOF") ||
		strings.Contains(msg, "i/o timeout")
}
