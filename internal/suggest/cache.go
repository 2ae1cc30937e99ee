package suggest

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"log"
	"time"
)

type JSONCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
}

// Cached memoizes non-empty results of next. Cache errors fall through to
// next and are only logged.
type Cached struct {
	next  Suggester
	cache JSONCache
	ttl   time.Duration
	log   *log.Logger
}

func NewCached(next Suggester, cache JSONCache, ttl time.Duration, logger *log.Logger) *Cached {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Cached{next: next, cache: cache, ttl: ttl, log: logger}
}

func CacheKey(prompt string) string {
	sum := sha256.Sum256([]byte(Normalize(prompt)))
	return "suggest:" + hex.EncodeToString(sum[:])
}

func (c *Cached) Suggest(ctx context.Context, prompt string) ([]string, error) {
	key := CacheKey(prompt)

	var hit []string
	ok, err := c.cache.GetJSON(ctx, key, &hit)
	if err != nil {
		c.log.Printf("suggest cache=get status=error key=%s err=%v", key, err)
	}
	if ok {
		return hit, nil
	}

	skills, err := c.next.Suggest(ctx, prompt)
	if err != nil {
		return nil, err
	}
	if len(skills) > 0 {
		if err := c.cache.SetJSON(ctx, key, skills, c.ttl); err != nil {
			c.log.Printf("suggest cache=set status=error key=%s err=%v", key, err)
		}
	}
	return skills, nil
}
