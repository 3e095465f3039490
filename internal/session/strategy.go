package session

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"

	"wurdlurnur/internal/progress"
)

// Strategy picks which unlearned words make up a session and their order.
type Strategy int

const (
	Random Strategy = iota
	Chronological
	Alphabetical
)

var strategyNames = [...]string{Random: "rand", Chronological: "chron", Alphabetical: "alpha"}

func (s Strategy) String() string {
	if s >= Random && s <= Alphabetical {
		return strategyNames[s]
	}
	return fmt.Sprintf("Strategy(%d)", int(s))
}

// ParseStrategy reads the ordering argument. An empty argument means
// Random. Unrecognised values fall back to Alphabetical with
// recognized=false so the caller can warn about it.
func ParseStrategy(arg string) (s Strategy, recognized bool) {
	switch strings.TrimSpace(arg) {
	case "", "rand":
		return Random, true
	case "chron":
		return Chronological, true
	case "alpha":
		return Alphabetical, true
	}
	return Alphabetical, false
}

// Select returns n row indices from pool ordered by strategy. pool is in
// table order, which is the order words were added.
func Select(table *progress.Table, pool []int, n int, strategy Strategy, rng *rand.Rand) ([]int, error) {
	if n < 1 || n > len(pool) {
		return nil, fmt.Errorf("%w: %d words requested, %d available", ErrInvalidBounds, n, len(pool))
	}
	switch strategy {
	case Random:
		if rng == nil {
			rng = rand.New(rand.NewSource(rand.Int63()))
		}
		out := make([]int, n)
		for i, j := range rng.Perm(len(pool))[:n] {
			out[i] = pool[j]
		}
		return out, nil
	case Chronological:
		return append([]int(nil), pool[:n]...), nil
	case Alphabetical:
		sorted := append([]int(nil), pool...)
		sort.SliceStable(sorted, func(i, j int) bool {
			return strings.ToLower(table.Get(sorted[i], progress.ColWord)) <
				strings.ToLower(table.Get(sorted[j], progress.ColWord))
		})
		return sorted[:n], nil
	}
	return nil, fmt.Errorf("session: unknown strategy %v", strategy)
}
