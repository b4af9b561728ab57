package token

func (n *notifier) count(event Event) int {
	if !event.valid() {
		return 0
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	return len(n.listeners[event])
}
