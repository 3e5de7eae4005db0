package report

import (
	"slices"

	"github.com/samber/lo"
)

// Entry is one key of a Tally with its count.
type Entry[K comparable] struct {
	Key   K
	Count int
}

// Tally counts keys and remembers the order in which each key was first
// seen. Every tie-break in this package resolves to that order.
type Tally[K comparable] struct {
	keys   []K
	counts map[K]int
}

func NewTally[K comparable]() *Tally[K] {
	return &Tally[K]{counts: make(map[K]int)}
}

// TallyBy counts items by key in input order.
func TallyBy[T any, K comparable](items []T, key func(T) K) *Tally[K] {
	t := NewTally[K]()
	for _, it := range items {
		t.Add(key(it))
	}
	return t
}

func (t *Tally[K]) Add(k K) {
	if _, ok := t.counts[k]; !ok {
		t.keys = append(t.keys, k)
	}
	t.counts[k]++
}

// Keys returns keys in first-seen order.
func (t *Tally[K]) Keys() []K {
	return slices.Clone(t.keys)
}

func (t *Tally[K]) Count(k K) int {
	return t.counts[k]
}

func (t *Tally[K]) Len() int {
	return len(t.keys)
}

func (t *Tally[K]) Total() int {
	return lo.SumBy(t.keys, func(k K) int { return t.counts[k] })
}

// Top returns the key with the highest count. The first key seen wins a
// tie. ok is false for an empty tally.
func (t *Tally[K]) Top() (key K, count int, ok bool) {
	for _, k := range t.keys {
		if c := t.counts[k]; c > count {
			key, count, ok = k, c, true
		}
	}
	return key, count, ok
}

// Ranked returns entries by descending count, ties in first-seen order,
// truncated to n when n > 0.
func (t *Tally[K]) Ranked(n int) []Entry[K] {
	entries := lo.Map(t.keys, func(k K, _ int) Entry[K] {
		return Entry[K]{Key: k, Count: t.counts[k]}
	})
	slices.SortStableFunc(entries, func(a, b Entry[K]) int {
		return b.Count - a.Count
	})
	if n > 0 && len(entries) > n {
		entries = entries[:n]
	}
	return entries
}
