package catalog

import (
	"github.com/banshee-data/terrain.report/connectivity"
	"github.com/banshee-data/terrain.report/dsm"
)

// RecordDSMProduct records a generated DSM product.
func (db *DB) RecordDSMProduct(p *dsm.Product) (string, error) {
	return db.RecordProduct(Product{
		Sources:    p.Sources,
		GridWidth:  p.Grid.Width,
		GridHeight: p.Grid.Height,
		Resolution: p.Grid.Resolution,
		EPSG:       p.EPSG,
		Layers:     p.Layout.Layers(),
		OutputPath: p.Path,
	})
}

// RecordConnectivity records the outcome of a connectivity analysis.
func (db *DB) RecordConnectivity(cameras, minMatches int, d connectivity.Diagnostics) (string, error) {
	return db.RecordRun(Run{
		Cameras:        cameras,
		MinMatches:     minMatches,
		Components:     d.ComponentCount,
		MissingCameras: d.MissingCameras,
	})
}
