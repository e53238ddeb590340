package sentiment

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"

	"github.com/spacesedan/trollscope/internal/models"
)

// VerdictCache stores classifications by key. Get returns a result for every
// key it knows and omits the rest.
type VerdictCache interface {
	GetVerdicts(ctx context.Context, keys []string) (map[string]models.Classification, error)
	SetVerdicts(ctx context.Context, verdicts map[string]models.Classification) error
}

// CachingClassifier consults the cache before calling the wrapped classifier.
// Cache failures degrade to misses; classifier failures are returned.
type CachingClassifier struct {
	next      Classifier
	cache     VerdictCache
	namespace string
}

// NewCachingClassifier wraps next. namespace separates verdicts from different
// backends or models sharing one cache.
func NewCachingClassifier(next Classifier, cache VerdictCache, namespace string) *CachingClassifier {
	return &CachingClassifier{next: next, cache: cache, namespace: namespace}
}

func (c *CachingClassifier) Classify(ctx context.Context, texts []string) ([]models.Classification, error) {
	if len(texts) == 0 {
		return []models.Classification{}, nil
	}

	keys := make([]string, len(texts))
	for i, text := range texts {
		keys[i] = c.key(text)
	}

	cached, err := c.cache.GetVerdicts(ctx, keys)
	if err != nil {
		slog.Warn("[CachingClassifier] Cache lookup failed, classifying everything",
			slog.String("error", err.Error()))
		cached = nil
	}

	var missTexts []string
	var missIdx []int
	for i, key := range keys {
		if _, ok := cached[key]; !ok {
			missTexts = append(missTexts, texts[i])
			missIdx = append(missIdx, i)
		}
	}

	results := make([]models.Classification, len(texts))
	for i, key := range keys {
		results[i] = cached[key]
	}

	if len(missTexts) == 0 {
		slog.Debug("[CachingClassifier] All verdicts served from cache", slog.Int("count", len(texts)))
		return results, nil
	}

	fresh, err := c.next.Classify(ctx, missTexts)
	if err != nil {
		return nil, err
	}
	if len(fresh) != len(missTexts) {
		return nil, fmt.Errorf("[CachingClassifier] got %d results for %d texts", len(fresh), len(missTexts))
	}

	toStore := make(map[string]models.Classification, len(fresh))
	for j, idx := range missIdx {
		results[idx] = fresh[j]
		toStore[keys[idx]] = fresh[j]
	}

	if err := c.cache.SetVerdicts(ctx, toStore); err != nil {
		slog.Warn("[CachingClassifier] Failed to store verdicts",
			slog.String("error", err.Error()))
	}

	slog.Debug("[CachingClassifier] Classified cache misses",
		slog.Int("hits", len(texts)-len(missTexts)),
		slog.Int("misses", len(missTexts)))

	return results, nil
}

func (c *CachingClassifier) key(text string) string {
	sum := sha256.Sum256([]byte(text))
	return "trollscope:verdict:" + c.namespace + ":" + hex.EncodeToString(sum[:])
}
