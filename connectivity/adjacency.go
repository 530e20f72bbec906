package connectivity

import (
	"math/bits"

	"gonum.org/v1/gonum/mat"
)

// Edge is a surviving camera pair with its joint track count. I < J always.
type Edge struct {
	I, J    int
	Matches int
}

// BuildAdjacency computes the symmetric nCameras×nCameras adjacency matrix
// A, where A[i,j] is the number of tracks jointly observed by cameras i and
// j. The matrix is derived from C on every call and never mutated in place.
func BuildAdjacency(m *ObservationMatrix) *mat.Dense {
	n := m.Cameras()
	a := mat.NewDense(n, n, nil)
	sets := m.bitsets()
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			matches := float64(jointCount(sets[i], sets[j]))
			a.Set(i, j, matches)
			a.Set(j, i, matches)
		}
	}
	return a
}

// jointCount counts tracks observed by both cameras via AND + popcount.
func jointCount(a, b []uint64) int {
	count := 0
	for w := range a {
		count += bits.OnesCount64(a[w] & b[w])
	}
	return count
}

// FilterEdges keeps the camera pairs whose match count is strictly greater
// than minMatches. Pairs exactly at the threshold are dropped. Edges come
// back ordered by (I, J), so the result is deterministic for a fixed A.
func FilterEdges(a *mat.Dense, minMatches int) []Edge {
	n, _ := a.Dims()
	var edges []Edge
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if matches := int(a.At(i, j)); matches > minMatches {
				edges = append(edges, Edge{I: i, J: j, Matches: matches})
			}
		}
	}
	return edges
}
