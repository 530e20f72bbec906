package raster

import (
	"bufio"
	"fmt"
	"log"
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/banshee-data/terrain.report/internal/fsutil"
)

// noDataValue is the sentinel written for NaN cells in ASC grid output.
const noDataValue = -9999.0

// WriteASCGrid writes one band as an ESRI ASCII grid with an EPSG sidecar.
//
// The georeference anchor is the grid's top-left corner (XOff, YOff); for a
// top-left pixel centered at (x, y) with resolution r this is
// (x - r/2, y + r/2), the same affine origin a GeoTIFF writer would use.
// AAIGrid headers carry the lower-left corner, so the header holds
// xllcorner = XOff and yllcorner = YOff - Height·r.
//
// NaN cells are written as the NODATA_value sentinel. A "<path minus
// extension>.prj" sidecar records the coordinate reference system as
// "EPSG:<code>".
func WriteASCGrid(fsys fsutil.FileSystem, path string, grid Grid, band []float64, epsg int) error {
	if len(band) != grid.Cells() {
		return fmt.Errorf("band has %d cells, grid wants %d", len(band), grid.Cells())
	}

	f, err := fsys.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	fmt.Fprintf(w, "ncols %d\n", grid.Width)
	fmt.Fprintf(w, "nrows %d\n", grid.Height)
	fmt.Fprintf(w, "xllcorner %s\n", formatHeaderFloat(grid.XOff))
	fmt.Fprintf(w, "yllcorner %s\n", formatHeaderFloat(grid.YOff-float64(grid.Height)*grid.Resolution))
	fmt.Fprintf(w, "cellsize %s\n", formatHeaderFloat(grid.Resolution))
	fmt.Fprintf(w, "NODATA_value %s\n", formatHeaderFloat(noDataValue))

	// Rows top to bottom, matching the row-major band layout.
	for row := 0; row < grid.Height; row++ {
		var sb strings.Builder
		for col := 0; col < grid.Width; col++ {
			if col > 0 {
				sb.WriteByte(' ')
			}
			v := band[row*grid.Width+col]
			if math.IsNaN(v) {
				sb.WriteString(formatHeaderFloat(noDataValue))
			} else {
				sb.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
			}
		}
		sb.WriteByte('\n')
		if _, err := w.WriteString(sb.String()); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	prjPath := strings.TrimSuffix(path, filepath.Ext(path)) + ".prj"
	if err := fsys.WriteFile(prjPath, []byte(fmt.Sprintf("EPSG:%d\n", epsg)), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", prjPath, err)
	}

	log.Printf("Wrote %dx%d raster to %s (EPSG:%d)", grid.Width, grid.Height, path, epsg)
	return nil
}

// formatHeaderFloat renders header values in fixed-point notation, the
// style GIS tools emit: UTM offsets must never fall into scientific
// notation, and whole numbers carry no trailing ".0".
func formatHeaderFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
