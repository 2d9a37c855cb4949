package chat

import "sync"

// Turn is one conversation entry.
type Turn struct {
	Role    string `json:"role"` // user or assistant
	Content string `json:"content"`
}

// History keeps a bounded per-session conversation log. Each append is
// atomic: push one entry, then drop the oldest while over the limit.
type History struct {
	mu       sync.Mutex
	limit    int
	sessions map[string][]Turn
}

// NewHistory creates a history keeping at most limit turns per session.
func NewHistory(limit int) *History {
	return &History{
		limit:    limit,
		sessions: make(map[string][]Turn),
	}
}

// Append records one turn for the session, trimming to the limit.
func (h *History) Append(session, role, content string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	turns := append(h.sessions[session], Turn{Role: role, Content: content})
	if len(turns) > h.limit {
		turns = turns[len(turns)-h.limit:]
	}
	h.sessions[session] = turns
}

// Recent returns a copy of the session's turns, oldest first.
func (h *History) Recent(session string) []Turn {
	h.mu.Lock()
	defer h.mu.Unlock()

	turns := h.sessions[session]
	out := make([]Turn, len(turns))
	copy(out, turns)
	return out
}
