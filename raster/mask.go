package raster

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"

	"github.com/banshee-data/terrain.report/geodesy"
)

// Polygon is a closed ring of (lon, lat) vertices in degrees. The first
// and last vertex may but need not coincide.
type Polygon [][2]float64

// MaskFromAOI rasterizes an area-of-interest polygon onto the grid. The
// polygon is reprojected into the given UTM zone (the zone the grid was
// built in) with normalized northings, then each cell whose center lies
// inside the polygon is marked true.
func MaskFromAOI(grid Grid, aoi Polygon, zone int) ([]bool, error) {
	if len(aoi) < 3 {
		return nil, fmt.Errorf("aoi polygon has %d vertices, want at least 3", len(aoi))
	}
	if zone < 1 || zone > 60 {
		return nil, fmt.Errorf("utm zone %d, want 1..60", zone)
	}

	xs := make([]float64, len(aoi))
	ys := make([]float64, len(aoi))
	for i, v := range aoi {
		xs[i], ys[i] = geodesy.UTMForward(v[1], v[0], zone)
	}
	geodesy.NormalizeNorthings(ys)

	ring := make(orb.Ring, 0, len(aoi)+1)
	for i := range xs {
		ring = append(ring, orb.Point{xs[i], ys[i]})
	}
	if ring[0] != ring[len(ring)-1] {
		ring = append(ring, ring[0])
	}
	poly := orb.Polygon{ring}

	mask := make([]bool, grid.Cells())
	for row := 0; row < grid.Height; row++ {
		for col := 0; col < grid.Width; col++ {
			cx, cy := grid.CellCenter(col, row)
			mask[row*grid.Width+col] = planar.PolygonContains(poly, orb.Point{cx, cy})
		}
	}
	return mask, nil
}

// ApplyMask sets band cells to NaN where the mask is false and leaves all
// other cells untouched. The band is modified in place.
func ApplyMask(band []float64, mask []bool) {
	for i := range band {
		if !mask[i] {
			band[i] = math.NaN()
		}
	}
}

// ApplyMask masks every band of the raster in place.
func (r *Raster) ApplyMask(mask []bool) {
	for _, band := range r.Bands {
		ApplyMask(band, mask)
	}
}
