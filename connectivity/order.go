package connectivity

import (
	"fmt"
	"io"
	"sort"
)

// WriteMatchOrder writes every unordered camera pair, sorted by descending
// joint match count, as one "p q" line per pair with 1-based indices. The
// output is the priority ordering consumed by the pair loader. Ties keep
// (I, J) order, so the output is deterministic for a fixed C.
func WriteMatchOrder(m *ObservationMatrix, w io.Writer) error {
	a := BuildAdjacency(m)

	n := m.Cameras()
	pairs := make([]Edge, 0, n*(n-1)/2)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			pairs = append(pairs, Edge{I: i, J: j, Matches: int(a.At(i, j))})
		}
	}
	sort.SliceStable(pairs, func(x, y int) bool {
		return pairs[x].Matches > pairs[y].Matches
	})

	for _, p := range pairs {
		if _, err := fmt.Fprintf(w, "%d %d\n", p.I+1, p.J+1); err != nil {
			return fmt.Errorf("writing match order: %w", err)
		}
	}
	return nil
}
