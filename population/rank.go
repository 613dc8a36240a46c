package population

// RankList records agents in crash order, first crash first
// An agent appears at most once
type RankList struct {
	agents []*Agent
	seen   map[*Agent]bool
}

// Push appends an agent unless already present and reports whether it was added
func (r *RankList) Push(a *Agent) bool {
	if a == nil || r.seen[a] {
		return false
	}
	if r.seen == nil {
		r.seen = make(map[*Agent]bool)
	}
	r.seen[a] = true
	r.agents = append(r.agents, a)
	return true
}

// Len returns the number of ranked agents
func (r *RankList) Len() int {
	return len(r.agents)
}

// Agents returns the ranked agents, first crash first
func (r *RankList) Agents() []*Agent {
	return append([]*Agent(nil), r.agents...)
}

// Rank returns the 1-based crash position of an agent, 0 when not ranked
func (r *RankList) Rank(a *Agent) int {
	for i, ranked := range r.agents {
		if ranked == a {
			return i + 1
		}
	}
	return 0
}

// Clear empties the list
func (r *RankList) Clear() {
	r.agents = r.agents[:0]
	clear(r.seen)
}
