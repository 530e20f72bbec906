// Package dsm turns bundle-adjusted ECEF point clouds into gridded
// digital surface model products.
package dsm

import (
	"fmt"
	"log"
	"path/filepath"

	"github.com/banshee-data/terrain.report/geodesy"
	"github.com/banshee-data/terrain.report/internal/fsutil"
	"github.com/banshee-data/terrain.report/pointcloud"
	"github.com/banshee-data/terrain.report/raster"
)

// Config describes one DSM product.
type Config struct {
	// Resolution is the cell size in meters.
	Resolution float64

	// BBox is the product extent in UTM coordinates (easting/northing).
	BBox raster.BoundingBox

	// Zone and North fix the UTM zone all clouds are projected into.
	Zone  int
	North bool

	// AOI optionally masks the product to a lon/lat polygon.
	AOI raster.Polygon

	// Std and Cnt enable the per-cell standard deviation and sample
	// count companion products.
	Std bool
	Cnt bool

	// OutputPath is the value product path. Companion products go to
	// std/ and cnt/ subdirectories next to it, keeping the basename.
	OutputPath string
}

// Product describes a generated DSM and its companion files.
type Product struct {
	Grid    raster.Grid
	Layout  raster.StatLayout
	EPSG    int
	Sources int
	Dropped int

	Path    string
	StdPath string
	CntPath string
}

// Generate projects the ECEF clouds into cfg's UTM grid, aggregates
// per-cell statistics over the pooled raw points, applies the optional
// AOI mask and writes the value product plus any companion products.
func Generate(fsys fsutil.FileSystem, clouds []pointcloud.Cloud, cfg Config) (*Product, error) {
	if len(clouds) == 0 {
		return nil, fmt.Errorf("no input clouds")
	}
	if cfg.Zone < 1 || cfg.Zone > 60 {
		return nil, fmt.Errorf("utm zone %d out of range", cfg.Zone)
	}
	if cfg.OutputPath == "" {
		return nil, fmt.Errorf("no output path")
	}

	grid, err := raster.GridFromBBox(cfg.BBox, cfg.Resolution)
	if err != nil {
		return nil, fmt.Errorf("dsm grid: %w", err)
	}

	layout := raster.StatLayout{Std: cfg.Std, Count: cfg.Cnt}
	agg := raster.NewAggregator(grid)
	dropped := 0
	for _, cloud := range clouds {
		xs := make([]float64, len(cloud))
		ys := make([]float64, len(cloud))
		zs := make([]float64, len(cloud))
		for i, p := range cloud {
			xs[i], ys[i], zs[i] = p.X, p.Y, p.Z
		}
		lats, lons, alts := geodesy.GeocentricToGeodeticBatch(xs, ys, zs)

		easts := make([]float64, len(lats))
		norths := make([]float64, len(lats))
		for i := range lats {
			easts[i], norths[i] = geodesy.UTMForward(lats[i], lons[i], cfg.Zone)
		}
		geodesy.NormalizeNorthings(norths)

		for i := range easts {
			if !agg.AddPoint(easts[i], norths[i], alts[i]) {
				dropped++
			}
		}
	}

	r := agg.Finalize(layout)

	if len(cfg.AOI) > 0 {
		mask, err := raster.MaskFromAOI(grid, cfg.AOI, cfg.Zone)
		if err != nil {
			return nil, fmt.Errorf("aoi mask: %w", err)
		}
		r.ApplyMask(mask)
	}

	epsg := geodesy.EPSGCode(cfg.Zone, cfg.North)
	product := &Product{
		Grid:    grid,
		Layout:  layout,
		EPSG:    epsg,
		Sources: len(clouds),
		Dropped: dropped,
		Path:    cfg.OutputPath,
	}

	if err := fsys.MkdirAll(filepath.Dir(cfg.OutputPath), 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}
	if err := raster.WriteASCGrid(fsys, cfg.OutputPath, grid, r.Value(), epsg); err != nil {
		return nil, fmt.Errorf("writing dsm: %w", err)
	}

	if cfg.Std {
		product.StdPath = companionPath(cfg.OutputPath, "std")
		if err := fsys.MkdirAll(filepath.Dir(product.StdPath), 0755); err != nil {
			return nil, fmt.Errorf("creating std directory: %w", err)
		}
		if err := raster.WriteASCGrid(fsys, product.StdPath, grid, r.Std(), epsg); err != nil {
			return nil, fmt.Errorf("writing std product: %w", err)
		}
	}
	if cfg.Cnt {
		product.CntPath = companionPath(cfg.OutputPath, "cnt")
		if err := fsys.MkdirAll(filepath.Dir(product.CntPath), 0755); err != nil {
			return nil, fmt.Errorf("creating cnt directory: %w", err)
		}
		if err := raster.WriteASCGrid(fsys, product.CntPath, grid, r.Count(), epsg); err != nil {
			return nil, fmt.Errorf("writing cnt product: %w", err)
		}
	}

	log.Printf("Generated DSM %s from %d clouds (%d points outside the grid)",
		cfg.OutputPath, len(clouds), dropped)
	return product, nil
}

// companionPath places a companion product in a subdirectory next to
// the value product, keeping the basename.
func companionPath(valuePath, subdir string) string {
	return filepath.Join(filepath.Dir(valuePath), subdir, filepath.Base(valuePath))
}
