package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"

	"eventhub/internal/domain"
)

type listingEntry struct {
	events []*domain.Event
	total  int
}

type eventListingCache struct {
	c *gocache.Cache
}

// NewEventListingCache returns an in-process EventListingCache with the given
// TTL. Entries expire on their own; Invalidate drops everything immediately
// so writers never race the TTL window.
func NewEventListingCache(ttl time.Duration) domain.EventListingCache {
	return &eventListingCache{
		c: gocache.New(ttl, 2*ttl),
	}
}

func (e *eventListingCache) Get(key string) ([]*domain.Event, int, bool) {
	v, ok := e.c.Get(key)
	if !ok {
		return nil, 0, false
	}
	entry, ok := v.(listingEntry)
	if !ok {
		return nil, 0, false
	}
	return entry.events, entry.total, true
}

func (e *eventListingCache) Set(key string, events []*domain.Event, total int) {
	e.c.SetDefault(key, listingEntry{events: events, total: total})
}

func (e *eventListingCache) Invalidate() {
	e.c.Flush()
}
