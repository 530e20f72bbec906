package raster

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/banshee-data/terrain.report/pointcloud"
)

// StatLayout selects the statistics layers of a finalized raster and fixes
// their order explicitly: the value (per-cell mean) layer always comes
// first, the sample standard deviation follows when Std is set, and the
// sample count is the single trailing layer when Count is set. The layer
// order is part of the contract; consumers must never infer it
// positionally from the layer count.
type StatLayout struct {
	Std   bool
	Count bool
}

// Layers returns the number of layers the layout produces.
func (l StatLayout) Layers() int {
	n := 1
	if l.Std {
		n++
	}
	if l.Count {
		n++
	}
	return n
}

// Aggregator accumulates raw z-samples per grid cell across any number of
// point clouds. Statistics are computed over the pooled raw samples at
// Finalize time, so merging clouds that share cells is exact: the mean and
// standard deviation of a cell are those of the union of its contributing
// points, never an average of per-cloud aggregates.
type Aggregator struct {
	grid    Grid
	samples [][]float64
}

// NewAggregator creates an empty aggregator for the grid.
func NewAggregator(grid Grid) *Aggregator {
	return &Aggregator{
		grid:    grid,
		samples: make([][]float64, grid.Cells()),
	}
}

// Grid returns the cell layout the aggregator bins into.
func (a *Aggregator) Grid() Grid { return a.grid }

// AddPoint bins one UTM point. Points outside the grid are dropped and
// counted in the return value of AddCloud.
func (a *Aggregator) AddPoint(x, y, z float64) bool {
	col, row, ok := a.grid.CellIndex(x, y)
	if !ok {
		return false
	}
	idx := row*a.grid.Width + col
	a.samples[idx] = append(a.samples[idx], z)
	return true
}

// AddCloud bins every point of a UTM cloud and returns the number of
// points that fell outside the grid.
func (a *Aggregator) AddCloud(c pointcloud.Cloud) (dropped int) {
	for _, p := range c {
		if !a.AddPoint(p.X, p.Y, p.Z) {
			dropped++
		}
	}
	return dropped
}

// Raster is a finalized multi-layer grid. Bands[i] is row-major
// Width×Height; cells with no contributing points hold NaN in every band.
type Raster struct {
	Grid   Grid
	Layout StatLayout
	Bands  [][]float64
}

// Finalize computes the requested statistics over the accumulated raw
// samples. The aggregator remains usable; finalizing twice on the same
// samples produces identical rasters.
//
// Cells with a single sample have standard deviation NaN (the sample
// estimator needs two points); their value and count layers are computed
// normally.
func (a *Aggregator) Finalize(layout StatLayout) *Raster {
	r := &Raster{
		Grid:   a.grid,
		Layout: layout,
		Bands:  make([][]float64, layout.Layers()),
	}
	for b := range r.Bands {
		r.Bands[b] = make([]float64, a.grid.Cells())
	}

	for idx, cell := range a.samples {
		if len(cell) == 0 {
			for b := range r.Bands {
				r.Bands[b][idx] = math.NaN()
			}
			continue
		}

		band := 0
		r.Bands[band][idx] = stat.Mean(cell, nil)
		band++
		if layout.Std {
			if len(cell) > 1 {
				r.Bands[band][idx] = stat.StdDev(cell, nil)
			} else {
				r.Bands[band][idx] = math.NaN()
			}
			band++
		}
		if layout.Count {
			r.Bands[band][idx] = float64(len(cell))
		}
	}
	return r
}

// Value returns the per-cell mean layer.
func (r *Raster) Value() []float64 { return r.Bands[0] }

// Std returns the standard deviation layer, or nil when the layout did not
// request it.
func (r *Raster) Std() []float64 {
	if !r.Layout.Std {
		return nil
	}
	return r.Bands[1]
}

// Count returns the trailing sample-count layer, or nil when the layout
// did not request it.
func (r *Raster) Count() []float64 {
	if !r.Layout.Count {
		return nil
	}
	return r.Bands[len(r.Bands)-1]
}
