package obstacle

// History is a bounded queue of recently spawned kinds, newest first
type History struct {
	limit int
	kinds []string
}

// NewHistory creates a history that rejects a kind after limit consecutive repeats
// A limit of 0 disables the check
func NewHistory(limit int) *History {
	if limit < 0 {
		limit = 0
	}
	return &History{limit: limit, kinds: make([]string, 0, limit)}
}

// Push records a spawned kind, dropping the oldest beyond the limit
func (h *History) Push(kind string) {
	if h.limit == 0 {
		return
	}
	if len(h.kinds) == h.limit {
		copy(h.kinds[1:], h.kinds[:len(h.kinds)-1])
		h.kinds[0] = kind
		return
	}
	h.kinds = append(h.kinds, "")
	copy(h.kinds[1:], h.kinds[:len(h.kinds)-1])
	h.kinds[0] = kind
}

// Saturated reports whether spawning kind would exceed the repeat limit
func (h *History) Saturated(kind string) bool {
	if h.limit == 0 || len(h.kinds) < h.limit {
		return false
	}
	for _, k := range h.kinds {
		if k != kind {
			return false
		}
	}
	return true
}

// Kinds returns a copy of the recorded kinds, newest first
func (h *History) Kinds() []string {
	return append([]string(nil), h.kinds...)
}

// Clear empties the history
func (h *History) Clear() {
	h.kinds = h.kinds[:0]
}
