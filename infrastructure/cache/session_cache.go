package cache

import (
	"sync"

	"stockpilot/models"
)

// OperatorSessionCache stores operator sessions by token. Sessions are
// memory-only; the dashboard has no persistence of its own.
type OperatorSessionCache struct {
	mu       sync.RWMutex
	sessions map[string]models.Session
}

func NewOperatorSessionCache() *OperatorSessionCache {
	return &OperatorSessionCache{sessions: make(map[string]models.Session)}
}

func (c *OperatorSessionCache) Add(s models.Session) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sessions[s.ID] = s
}

func (c *OperatorSessionCache) Find(token string) (models.Session, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s, ok := c.sessions[token]
	return s, ok
}

func (c *OperatorSessionCache) Delete(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.sessions, token)
}
