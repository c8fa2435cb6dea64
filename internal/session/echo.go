// Package session keeps a transient, session-local echo of uploaded images
// keyed by project. It is a fallback for the visualizer while the hosted
// copy propagates; never authoritative.
package session

import (
	"sync"
	"time"
)

const defaultTTL = 30 * time.Minute

type echoEntry struct {
	payload   string
	expiresAt time.Time
}

// EchoCache is an in-memory TTL cache of per-project image payloads.
type EchoCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]echoEntry
	now     func() time.Time
}

// NewEchoCache creates the cache. ttl <= 0 selects the default.
func NewEchoCache(ttl time.Duration) *EchoCache {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &EchoCache{
		ttl:     ttl,
		entries: make(map[string]echoEntry),
		now:     time.Now,
	}
}

// Put stores the payload under the project's session key.
func (c *EchoCache) Put(projectID, payload string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[projectID] = echoEntry{
		payload:   payload,
		expiresAt: c.now().Add(c.ttl),
	}
}

// Get returns the cached payload, treating expired entries as misses.
func (c *EchoCache) Get(projectID string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[projectID]
	if !ok {
		return "", false
	}
	if c.now().After(e.expiresAt) {
		delete(c.entries, projectID)
		return "", false
	}
	return e.payload, true
}

// Delete removes a project's echo, e.g. on file change.
func (c *EchoCache) Delete(projectID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, projectID)
}

// Prune drops expired entries and returns how many were removed.
func (c *EchoCache) Prune() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	removed := 0
	for id, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, id)
			removed++
		}
	}
	return removed
}
