// Package genetic provides the selection, crossover and mutation operators that
// evolve runner policies between generations
package genetic

import (
	"math/rand/v2"
	"sort"
)

// --- Selectors ---

// FixedSelector picks candidates at fixed pool positions regardless of score
// Default positions are 0 and 1
type FixedSelector[S Solution, F Numeric] struct {
	Indices []int
}

// Select implements the Selector interface
func (fs *FixedSelector[S, F]) Select(pool *Pool[S, F], size int, _ *rand.Rand) []Candidate[S, F] {
	indices := fs.Indices
	if len(indices) == 0 {
		indices = []int{0, 1}
	}

	selected := make([]Candidate[S, F], 0, size)
	for i := 0; i < size && len(pool.Members) > 0; i++ {
		idx := indices[i%len(indices)]
		if idx < 0 || idx >= len(pool.Members) {
			idx = i % len(pool.Members)
		}
		selected = append(selected, pool.Members[idx])
	}
	return selected
}

// RankSelector picks the highest scored candidates
// Ties keep pool order
type RankSelector[S Solution, F Numeric] struct{}

// Select implements the Selector interface
func (rs *RankSelector[S, F]) Select(pool *Pool[S, F], size int, _ *rand.Rand) []Candidate[S, F] {
	order := make([]int, len(pool.Members))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return pool.Members[order[a]].Score > pool.Members[order[b]].Score
	})

	size = min(size, len(order))
	selected := make([]Candidate[S, F], size)
	for i := 0; i < size; i++ {
		selected[i] = pool.Members[order[i]]
	}
	return selected
}

// --- Combiners ---

// SinglePointCombiner swaps the genes before a random cut between two parents
// The cut is drawn from [0, length), so a cut of 0 clones the parents
type SinglePointCombiner[S ~[]T, T any, F Numeric] struct{}

// Combine creates two offspring, the first taking parent 2's head and parent 1's tail
func (sc *SinglePointCombiner[S, T, F]) Combine(parents []Candidate[S, F], rng *rand.Rand) []S {
	if len(parents) < 2 {
		if len(parents) == 1 {
			return []S{clone(parents[0].Data)}
		}
		return []S{}
	}

	offspring1 := clone(parents[0].Data)
	offspring2 := clone(parents[1].Data)
	length := min(len(offspring1), len(offspring2))
	if length == 0 {
		return []S{offspring1, offspring2}
	}

	cut := rng.IntN(length)
	for i := 0; i < cut; i++ {
		offspring1[i], offspring2[i] = offspring2[i], offspring1[i]
	}
	return []S{offspring1, offspring2}
}

func clone[S ~[]T, T any](s S) S {
	out := make(S, len(s))
	copy(out, s)
	return out
}
