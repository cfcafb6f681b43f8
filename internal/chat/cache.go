package chat

import "sync"

// SessionCache tracks each user's active chat session in process memory.
// It replaces scattered per-key cache invalidation with one explicit
// Reset(userID) that must be called on every authentication change, so a
// new login never sees the previous user's conversation.
type SessionCache struct {
	mu     sync.RWMutex
	active map[string]string // userID -> sessionID
}

func NewSessionCache() *SessionCache {
	return &SessionCache{active: map[string]string{}}
}

// Active returns the user's active session ID, or "" when none is cached.
func (c *SessionCache) Active(userID string) string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.active[userID]
}

func (c *SessionCache) SetActive(userID, sessionID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.active[userID] = sessionID
}

// Reset drops the user's cached session state.
func (c *SessionCache) Reset(userID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.active, userID)
}
