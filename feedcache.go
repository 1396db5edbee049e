package worksite

import (
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/Phonesis/personal-work-site/content"
	"github.com/Phonesis/personal-work-site/feed"
)

// maxFeedOrigins bounds how many documents are cached at once; the Host
// header is client controlled.
const maxFeedOrigins = 32

// FeedCache keeps rendered feed documents per request origin and feed path.
type FeedCache struct {
	builder feed.Builder
	cache   *cache.Cache
	metrics *Metrics
}

// NewFeedCache creates a FeedCache whose entries live for ttl.
func NewFeedCache(b feed.Builder, ttl time.Duration, m *Metrics) *FeedCache {
	return &FeedCache{
		builder: b,
		cache:   cache.New(ttl, 2*ttl),
		metrics: m,
	}
}

// Get returns the feed served at selfPath under origin, building it from
// posts on a miss.
func (f *FeedCache) Get(origin, selfPath string, posts func() ([]content.Post, error)) ([]byte, error) {
	key := origin + selfPath
	if v, ok := f.cache.Get(key); ok {
		if data, ok := v.([]byte); ok {
			f.metrics.FeedRequests.WithLabelValues("hit").Inc()
			return data, nil
		}
	}
	f.metrics.FeedRequests.WithLabelValues("miss").Inc()

	list, err := posts()
	if err != nil {
		return nil, err
	}
	b := f.builder
	b.SelfPath = selfPath
	data, err := b.Build(origin, list)
	if err != nil {
		return nil, err
	}
	if f.cache.ItemCount() >= maxFeedOrigins {
		f.cache.Flush()
	}
	f.cache.Set(key, data, cache.DefaultExpiration)
	return data, nil
}

// Invalidate drops every cached document.
func (f *FeedCache) Invalidate() {
	f.cache.Flush()
}
