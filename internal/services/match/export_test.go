package match

// LockCount reports how many match locks are currently tracked
func (c *Controller) LockCount() int {
	c.locksMu.Lock()
	defer c.locksMu.Unlock()
	return len(c.locks)
}
