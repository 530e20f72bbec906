// Package raster bins geolocated point clouds into aligned statistical
// grids (digital surface models) and applies area-of-interest masks. All
// grids live in a projected UTM frame with square cells.
package raster

import (
	"fmt"
	"math"
)

// BoundingBox is an axis-aligned UTM extent in meters.
type BoundingBox struct {
	XMin, XMax float64
	YMin, YMax float64
}

// Grid is the cell layout derived from a bounding box at a given
// resolution. XOff/YOff are the top-left corner of the grid (XOff on the
// left edge, YOff on the top edge); rows grow southwards.
type Grid struct {
	XOff, YOff    float64
	Width, Height int
	Resolution    float64
}

// GridFromBBox derives the aligned grid covering bbox at the given
// resolution:
//
//	XOff   = floor(xmin/res)·res
//	YOff   = ceil(ymax/res)·res
//	Width  = floor((xmax-xmin)/res) + 1
//	Height = floor((ymax-ymin)/res) + 1
//
// Every point inside bbox maps to a non-negative cell index. A degenerate
// box or non-positive resolution is a configuration error, reported before
// any allocation.
func GridFromBBox(bbox BoundingBox, resolution float64) (Grid, error) {
	if resolution <= 0 {
		return Grid{}, fmt.Errorf("grid resolution %v, want > 0", resolution)
	}
	if bbox.XMin >= bbox.XMax {
		return Grid{}, fmt.Errorf("bounding box x range [%v, %v] is empty", bbox.XMin, bbox.XMax)
	}
	if bbox.YMin >= bbox.YMax {
		return Grid{}, fmt.Errorf("bounding box y range [%v, %v] is empty", bbox.YMin, bbox.YMax)
	}

	return Grid{
		XOff:       math.Floor(bbox.XMin/resolution) * resolution,
		YOff:       math.Ceil(bbox.YMax/resolution) * resolution,
		Width:      int(math.Floor((bbox.XMax-bbox.XMin)/resolution)) + 1,
		Height:     int(math.Floor((bbox.YMax-bbox.YMin)/resolution)) + 1,
		Resolution: resolution,
	}, nil
}

// Cells returns the total cell count.
func (g Grid) Cells() int { return g.Width * g.Height }

// CellIndex maps a UTM point to its (col, row) cell. ok is false when the
// point falls outside the grid.
//
// The grid is half-open at its far edges: because GridFromBBox snaps YOff
// up and XOff down to resolution multiples, a point exactly on the source
// bbox's YMin (or, with a snapped XOff, exactly on XMax) can land on row
// Height (or column Width) and be rejected. Interior points always map to
// a valid cell.
func (g Grid) CellIndex(x, y float64) (col, row int, ok bool) {
	col = int(math.Floor((x - g.XOff) / g.Resolution))
	row = int(math.Floor((g.YOff - y) / g.Resolution))
	ok = col >= 0 && col < g.Width && row >= 0 && row < g.Height
	return col, row, ok
}

// CellCenter returns the UTM coordinates of a cell's center.
func (g Grid) CellCenter(col, row int) (x, y float64) {
	x = g.XOff + (float64(col)+0.5)*g.Resolution
	y = g.YOff - (float64(row)+0.5)*g.Resolution
	return x, y
}
