package geodesy

import (
	"math"

	"github.com/wroge/wgs84"
)

// ZoneFromLon returns the UTM zone number (1..60) containing the given
// longitude in degrees.
func ZoneFromLon(lon float64) int {
	zone := int(math.Floor((lon+180.0)/6.0)) + 1
	if zone < 1 {
		zone = 1
	}
	if zone > 60 {
		zone = 60
	}
	return zone
}

// EPSGCode returns the EPSG code of the WGS84 / UTM projected system for a
// zone and hemisphere (326xx north, 327xx south).
func EPSGCode(zone int, north bool) int {
	if north {
		return 32600 + zone
	}
	return 32700 + zone
}

// UTMForward projects a geodetic point (degrees) into the given UTM zone.
// The northern-hemisphere variant of the zone is used for both hemispheres
// (false northing 0), so southern points come back with a negative
// northing; see NormalizeNorthings for the pipeline convention of a
// continuous northing axis.
func UTMForward(lat, lon float64, zone int) (east, north float64) {
	east, north, _ = wgs84.LonLat().To(wgs84.UTM(float64(zone), true))(lon, lat, 0)
	return east, north
}

// UTMFromLonLat projects parallel lon/lat slices into the UTM zone of the
// first point, so that all outputs share one planar frame. It returns the
// zone used. Empty input returns zone 0 and empty slices.
func UTMFromLonLat(lons, lats []float64) (easts, norths []float64, zone int) {
	easts = make([]float64, len(lons))
	norths = make([]float64, len(lons))
	if len(lons) == 0 {
		return easts, norths, 0
	}
	zone = ZoneFromLon(lons[0])
	for i := range lons {
		easts[i], norths[i] = UTMForward(lats[i], lons[i], zone)
	}
	return easts, norths, zone
}

// NormalizeNorthings adds SouthernNorthingOffset to negative northings in
// place, giving a single continuous northing axis across the equator. This
// matches the raster alignment convention used by the reconstruction
// pipeline.
func NormalizeNorthings(norths []float64) {
	for i, n := range norths {
		if n < 0 {
			norths[i] = n + SouthernNorthingOffset
		}
	}
}
