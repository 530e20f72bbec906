package connectivity

import (
	"log"
	"sort"
)

// unionFind is a disjoint-set forest with union by rank and path halving.
type unionFind struct {
	parent []int
	rank   []int
}

func newUnionFind(n int) *unionFind {
	u := &unionFind{parent: make([]int, n), rank: make([]int, n)}
	for i := range u.parent {
		u.parent[i] = i
	}
	return u
}

func (u *unionFind) find(x int) int {
	for u.parent[x] != x {
		u.parent[x] = u.parent[u.parent[x]]
		x = u.parent[x]
	}
	return x
}

func (u *unionFind) union(x, y int) {
	rx, ry := u.find(x), u.find(y)
	if rx == ry {
		return
	}
	if u.rank[rx] < u.rank[ry] {
		rx, ry = ry, rx
	}
	u.parent[ry] = rx
	if u.rank[rx] == u.rank[ry] {
		u.rank[rx]++
	}
}

// ConnectedComponents partitions the camera index set {0..nCameras-1} by
// the filtered edge list. Cameras with no surviving edge become singleton
// components. Components are returned sorted by their smallest member, and
// each component's members are sorted ascending.
func ConnectedComponents(edges []Edge, nCameras int) [][]int {
	u := newUnionFind(nCameras)
	for _, e := range edges {
		u.union(e.I, e.J)
	}

	members := make(map[int][]int)
	for cam := 0; cam < nCameras; cam++ {
		root := u.find(cam)
		members[root] = append(members[root], cam)
	}

	components := make([][]int, 0, len(members))
	for _, comp := range members {
		components = append(components, comp)
	}
	// Members are appended in camera order, so each component is already
	// sorted; order components by smallest member for determinism.
	sort.Slice(components, func(i, j int) bool {
		return components[i][0] < components[j][0]
	})
	return components
}

// Diagnostics summarizes the correspondence graph for a given threshold.
type Diagnostics struct {
	// MissingCameras is the camera set minus the largest edge-connected
	// component. With no surviving edges every camera is missing.
	MissingCameras []int

	// ComponentCount counts all components, singletons included.
	ComponentCount int

	// MinEdgeMatches is the smallest match count among surviving edges,
	// or 0 when there are none.
	MinEdgeMatches int

	// Edges is the surviving edge list, ordered by (I, J).
	Edges []Edge
}

// Analyze builds the adjacency matrix from C, filters edges with the
// exclusive minMatches threshold and reports the component structure.
// Deterministic for fixed (C, minMatches); a graph with zero surviving
// edges is reported, not an error.
func Analyze(m *ObservationMatrix, minMatches int) Diagnostics {
	a := BuildAdjacency(m)
	edges := FilterEdges(a, minMatches)
	components := ConnectedComponents(edges, m.Cameras())

	// The main component is the largest one that actually has an edge;
	// ties go to the earliest. Singletons never qualify.
	mainIdx := -1
	for i, comp := range components {
		if len(comp) < 2 {
			continue
		}
		if mainIdx < 0 || len(comp) > len(components[mainIdx]) {
			mainIdx = i
		}
	}

	var missing []int
	if mainIdx < 0 {
		missing = make([]int, m.Cameras())
		for cam := range missing {
			missing[cam] = cam
		}
	} else {
		inMain := make(map[int]bool, len(components[mainIdx]))
		for _, cam := range components[mainIdx] {
			inMain[cam] = true
		}
		for cam := 0; cam < m.Cameras(); cam++ {
			if !inMain[cam] {
				missing = append(missing, cam)
			}
		}
	}

	minEdge := 0
	for i, e := range edges {
		if i == 0 || e.Matches < minEdge {
			minEdge = e.Matches
		}
	}

	d := Diagnostics{
		MissingCameras: missing,
		ComponentCount: len(components),
		MinEdgeMatches: minEdge,
		Edges:          edges,
	}
	log.Printf("Connectivity graph: %d missing cameras, %d components, %d edges, min %d matches in an edge",
		len(d.MissingCameras), d.ComponentCount, len(d.Edges), d.MinEdgeMatches)
	return d
}
