package jwks

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"

	"github.com/riskibarqy/season-tickets/internal/domain/user"
)

type cacheEntry struct {
	principal user.Principal
	expiresAt time.Time
}

// principalCache remembers verified tokens by hash until they expire.
type principalCache struct {
	mu         sync.RWMutex
	entries    map[string]cacheEntry
	ttl        time.Duration
	maxEntries int
}

func newPrincipalCache(ttl time.Duration, maxEntries int) *principalCache {
	return &principalCache{
		entries:    make(map[string]cacheEntry),
		ttl:        ttl,
		maxEntries: maxEntries,
	}
}

func (c *principalCache) Get(key string, now time.Time) (user.Principal, bool) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return user.Principal{}, false
	}
	if !entry.expiresAt.After(now) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return user.Principal{}, false
	}
	return entry.principal, true
}

// Set stores principal until the earlier of expiresAt and now+ttl.
func (c *principalCache) Set(key string, principal user.Principal, expiresAt, now time.Time) {
	if c.ttl <= 0 {
		return
	}
	if limit := now.Add(c.ttl); expiresAt.After(limit) {
		expiresAt = limit
	}
	if !expiresAt.After(now) {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.maxEntries > 0 && len(c.entries) >= c.maxEntries {
		for k, entry := range c.entries {
			if !entry.expiresAt.After(now) {
				delete(c.entries, k)
			}
		}
		if len(c.entries) >= c.maxEntries {
			for k := range c.entries {
				delete(c.entries, k)
				break
			}
		}
	}
	c.entries[key] = cacheEntry{principal: principal, expiresAt: expiresAt}
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
