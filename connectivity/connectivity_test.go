package connectivity

import (
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gonum.org/v1/gonum/mat"
)

// buildC constructs an observation matrix for nCameras and nTracks where
// observed[cam] lists the track columns camera cam sees. Observed entries
// get an arbitrary finite pixel coordinate; everything else is NaN.
func buildC(t *testing.T, nCameras, nTracks int, observed map[int][]int) *ObservationMatrix {
	t.Helper()
	data := make([]float64, 2*nCameras*nTracks)
	for i := range data {
		data[i] = math.NaN()
	}
	c := mat.NewDense(2*nCameras, nTracks, data)
	for cam, tracks := range observed {
		for _, track := range tracks {
			c.Set(2*cam, track, float64(10*cam+track))
			c.Set(2*cam+1, track, float64(20*cam+track))
		}
	}
	m, err := NewObservationMatrix(c)
	if err != nil {
		t.Fatalf("NewObservationMatrix: %v", err)
	}
	return m
}

func TestNewObservationMatrixOddRows(t *testing.T) {
	if _, err := NewObservationMatrix(mat.NewDense(3, 4, nil)); err == nil {
		t.Fatal("expected error for odd row count")
	}
}

func TestObserved(t *testing.T) {
	m := buildC(t, 2, 3, map[int][]int{
		0: {0, 2},
		1: {1},
	})

	tests := []struct {
		cam, track int
		want       bool
	}{
		{0, 0, true},
		{0, 1, false},
		{0, 2, true},
		{1, 0, false},
		{1, 1, true},
		{1, 2, false},
	}
	for _, tt := range tests {
		if got := m.Observed(tt.cam, tt.track); got != tt.want {
			t.Errorf("Observed(%d, %d) = %v, want %v", tt.cam, tt.track, got, tt.want)
		}
	}
}

func TestBuildAdjacencyCounts(t *testing.T) {
	// Cameras {0,1} share 3 tracks, {1,2} share 1 track.
	m := buildC(t, 3, 5, map[int][]int{
		0: {0, 1, 2},
		1: {0, 1, 2, 4},
		2: {4},
	})

	a := BuildAdjacency(m)
	if got := a.At(0, 1); got != 3 {
		t.Errorf("A[0,1] = %v, want 3", got)
	}
	if got := a.At(1, 2); got != 1 {
		t.Errorf("A[1,2] = %v, want 1", got)
	}
	if got := a.At(0, 2); got != 0 {
		t.Errorf("A[0,2] = %v, want 0", got)
	}
	if a.At(0, 1) != a.At(1, 0) {
		t.Error("adjacency matrix not symmetric")
	}
}

func TestBuildAdjacencyWideMatrix(t *testing.T) {
	// More than 64 tracks exercises the multi-word bitset path.
	nTracks := 200
	shared := make([]int, 0, 100)
	for track := 0; track < nTracks; track += 2 {
		shared = append(shared, track)
	}
	m := buildC(t, 2, nTracks, map[int][]int{
		0: shared,
		1: shared,
	})

	if got := BuildAdjacency(m).At(0, 1); got != 100 {
		t.Errorf("A[0,1] = %v, want 100", got)
	}
}

func TestFilterEdgesExclusiveThreshold(t *testing.T) {
	m := buildC(t, 3, 5, map[int][]int{
		0: {0, 1, 2},
		1: {0, 1, 2, 4},
		2: {4},
	})
	a := BuildAdjacency(m)

	edges := FilterEdges(a, 2)
	want := []Edge{{I: 0, J: 1, Matches: 3}}
	if diff := cmp.Diff(want, edges); diff != "" {
		t.Errorf("FilterEdges(min=2) mismatch (-want +got):\n%s", diff)
	}

	// A pair exactly at the threshold is dropped.
	if got := FilterEdges(a, 3); len(got) != 0 {
		t.Errorf("FilterEdges(min=3) = %v, want none", got)
	}
}

func TestConnectedComponentsSingletons(t *testing.T) {
	edges := []Edge{{I: 0, J: 1, Matches: 3}}
	components := ConnectedComponents(edges, 3)
	want := [][]int{{0, 1}, {2}}
	if diff := cmp.Diff(want, components); diff != "" {
		t.Errorf("components mismatch (-want +got):\n%s", diff)
	}
}

func TestAnalyzeEndToEnd(t *testing.T) {
	// 2 cameras, 4 tracks: tracks {0,2,3} seen by both, track 1 only by
	// camera 0.
	m := buildC(t, 2, 4, map[int][]int{
		0: {0, 1, 2, 3},
		1: {0, 2, 3},
	})

	if got := BuildAdjacency(m).At(0, 1); got != 3 {
		t.Fatalf("A[0,1] = %v, want 3", got)
	}

	d := Analyze(m, 2)
	if len(d.Edges) != 1 || d.Edges[0] != (Edge{I: 0, J: 1, Matches: 3}) {
		t.Errorf("min=2 edges = %v, want [(0,1,3)]", d.Edges)
	}
	if d.ComponentCount != 1 {
		t.Errorf("min=2 component count = %d, want 1", d.ComponentCount)
	}
	if len(d.MissingCameras) != 0 {
		t.Errorf("min=2 missing cameras = %v, want none", d.MissingCameras)
	}
	if d.MinEdgeMatches != 3 {
		t.Errorf("min edge matches = %d, want 3", d.MinEdgeMatches)
	}

	d = Analyze(m, 3)
	if len(d.Edges) != 0 {
		t.Errorf("min=3 edges = %v, want none", d.Edges)
	}
	if d.ComponentCount != 2 {
		t.Errorf("min=3 component count = %d, want 2 singletons", d.ComponentCount)
	}
	if diff := cmp.Diff([]int{0, 1}, d.MissingCameras); diff != "" {
		t.Errorf("min=3 missing cameras mismatch (-want +got):\n%s", diff)
	}
}

func TestAnalyzeZeroEdgesReportsAllMissing(t *testing.T) {
	// No camera observes anything: all-NaN track columns contribute zero
	// matches and the analysis must not fail.
	m := buildC(t, 4, 6, nil)
	d := Analyze(m, 0)
	if diff := cmp.Diff([]int{0, 1, 2, 3}, d.MissingCameras); diff != "" {
		t.Errorf("missing cameras mismatch (-want +got):\n%s", diff)
	}
	if d.ComponentCount != 4 {
		t.Errorf("component count = %d, want 4 singletons", d.ComponentCount)
	}
	if d.MinEdgeMatches != 0 {
		t.Errorf("min edge matches = %d, want 0", d.MinEdgeMatches)
	}
}

func TestAnalyzeDeterministic(t *testing.T) {
	m := buildC(t, 4, 10, map[int][]int{
		0: {0, 1, 2, 3, 4},
		1: {0, 1, 2, 5, 6},
		2: {5, 6, 7, 8},
		3: {9},
	})
	first := Analyze(m, 1)
	for i := 0; i < 10; i++ {
		if diff := cmp.Diff(first, Analyze(m, 1)); diff != "" {
			t.Fatalf("run %d differs (-first +got):\n%s", i, diff)
		}
	}
}

func TestWriteMatchOrder(t *testing.T) {
	m := buildC(t, 3, 5, map[int][]int{
		0: {0, 1, 2},
		1: {0, 1, 2, 4},
		2: {4},
	})

	var sb strings.Builder
	if err := WriteMatchOrder(m, &sb); err != nil {
		t.Fatalf("WriteMatchOrder: %v", err)
	}

	// Pair (0,1) has 3 matches, (1,2) has 1, (0,2) has 0; 1-based output.
	want := "1 2\n2 3\n1 3\n"
	if sb.String() != want {
		t.Errorf("match order = %q, want %q", sb.String(), want)
	}
}
