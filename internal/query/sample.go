package query

import (
	"math/rand"
	"sort"

	"github.com/citypulse/crimes-backend-go/internal/dataset"
)

// Sample returns a reproducible random sub-sample of at most maxRows rows,
// used to bound the rendering cost of the spatial scatter view. The same
// seed over the same input always yields the same rows, and the sample
// preserves the original row order. Tables at or under the limit come back
// as-is (as a fresh view).
func Sample(t *dataset.Table, maxRows int, seed int64) *dataset.Table {
	if maxRows <= 0 || t.NumRows() <= maxRows {
		return t.Select(func([]dataset.Value) bool { return true })
	}

	r := rand.New(rand.NewSource(seed))
	picked := r.Perm(t.NumRows())[:maxRows]
	sort.Ints(picked)
	return t.SelectIndices(picked)
}
