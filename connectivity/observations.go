package connectivity

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// ObservationMatrix wraps the track observation matrix C of shape
// (2·nCameras, nTracks). Row pair (2i, 2i+1) holds camera i's pixel x and y
// observation of each track column; NaN marks a track the camera does not
// observe. The matrix is treated as immutable input.
type ObservationMatrix struct {
	c        *mat.Dense
	nCameras int
	nTracks  int
}

// NewObservationMatrix validates the shape of C (an even number of rows)
// and wraps it. The data is not copied; callers must not mutate it while
// the wrapper is in use.
func NewObservationMatrix(c *mat.Dense) (*ObservationMatrix, error) {
	rows, cols := c.Dims()
	if rows%2 != 0 {
		return nil, fmt.Errorf("observation matrix has %d rows, want an even count (two per camera)", rows)
	}
	return &ObservationMatrix{c: c, nCameras: rows / 2, nTracks: cols}, nil
}

// Cameras returns the number of cameras (half the row count).
func (m *ObservationMatrix) Cameras() int { return m.nCameras }

// Tracks returns the number of track columns.
func (m *ObservationMatrix) Tracks() int { return m.nTracks }

// Observed reports whether camera cam observes track. A track counts as
// observed when the x row of the camera's row pair is finite.
func (m *ObservationMatrix) Observed(cam, track int) bool {
	return !math.IsNaN(m.c.At(2*cam, track))
}

// bitsets packs one observation bit per track for every camera, so that
// pair counting is a word-wise AND plus popcount instead of a per-element
// scan over the track columns.
func (m *ObservationMatrix) bitsets() [][]uint64 {
	words := (m.nTracks + 63) / 64
	sets := make([][]uint64, m.nCameras)
	for cam := 0; cam < m.nCameras; cam++ {
		row := m.c.RawRowView(2 * cam)
		set := make([]uint64, words)
		for track, v := range row {
			if !math.IsNaN(v) {
				set[track/64] |= 1 << uint(track%64)
			}
		}
		sets[cam] = set
	}
	return sets
}
