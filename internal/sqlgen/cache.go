package sqlgen

import "sync"

// statementCache is a bounded question→statement map shared across sessions.
// Eviction is oldest-inserted-first once the cap is reached. Reads and writes
// are mutex-guarded; two sessions racing on the same new question may both pay
// a model call, which is tolerated.
type statementCache struct {
	mu      sync.Mutex
	max     int
	entries map[string]string
	order   []string
}

func newStatementCache(max int) *statementCache {
	if max <= 0 {
		max = 200
	}
	return &statementCache{
		max:     max,
		entries: make(map[string]string, max),
	}
}

func (c *statementCache) get(question string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	stmt, ok := c.entries[question]
	return stmt, ok
}

func (c *statementCache) put(question, stmt string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.entries[question]; ok {
		c.entries[question] = stmt
		return
	}
	if len(c.order) >= c.max {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}
	c.entries[question] = stmt
	c.order = append(c.order, question)
}

func (c *statementCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
