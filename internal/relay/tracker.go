package relay

// threadTracker holds the destination thread opened for the most recent
// thread-start message. A thread stays the reply target until the next
// thread start; a start that fails to produce a thread clears the target
// so its replies fall back to the parent channel instead of an earlier,
// unrelated thread. State is scoped to one replay run and never
// persisted.
type threadTracker struct {
	current string
	opened  int
}

func newThreadTracker() *threadTracker {
	return &threadTracker{}
}

// open records the thread created for a delivered thread-start message
// and makes it the active reply target.
func (t *threadTracker) open(threadID string) {
	t.current = threadID
	t.opened++
}

// clear drops the active reply target.
func (t *threadTracker) clear() {
	t.current = ""
}

// route returns the channel a thread reply should go to: the active
// thread, or the parent channel when there is none (a reply with no
// prior start in a malformed export, or a start that failed to open).
func (t *threadTracker) route(parentChannelID string) string {
	if t.current != "" {
		return t.current
	}
	return parentChannelID
}

// size returns the number of threads opened during the run.
func (t *threadTracker) size() int {
	return t.opened
}
