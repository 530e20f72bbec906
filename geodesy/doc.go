// Package geodesy provides the coordinate transforms used by the
// reconstruction pipeline: WGS84 geodetic (lat, lon, alt) to geocentric
// ECEF (x, y, z) conversion in both directions, and a forward UTM
// projection for raster alignment.
//
// The conversion formulas are written once, generic over an Arithmetic
// backend, so the same code path serves plain float64 evaluation and
// dual-number automatic differentiation.
package geodesy
