package geodesy

// GeodeticToGeocentricGeneric converts geodetic coordinates (lat, lon in
// degrees, alt in meters above the ellipsoid) to geocentric ECEF meters
// using the closed-form WGS84 forward formula. The prime-vertical radius is
// v = a / sqrt(1 - e²·sin²(lat)).
func GeodeticToGeocentricGeneric[T any](ops Arithmetic[T], lat, lon, alt T) (x, y, z T) {
	radLat := ops.Mul(lat, ops.Const(degToRad))
	radLon := ops.Mul(lon, ops.Const(degToRad))

	sinLat := ops.Sin(radLat)
	cosLat := ops.Cos(radLat)

	one := ops.Const(1)
	e2 := ops.Const(eccSquared)
	v := ops.Div(ops.Const(SemiMajorAxis),
		ops.Sqrt(ops.Sub(one, ops.Mul(e2, ops.Mul(sinLat, sinLat)))))

	vAlt := ops.Add(v, alt)
	x = ops.Mul(ops.Mul(vAlt, cosLat), ops.Cos(radLon))
	y = ops.Mul(ops.Mul(vAlt, cosLat), ops.Sin(radLon))
	z = ops.Mul(ops.Add(ops.Mul(v, ops.Sub(one, e2)), alt), sinLat)
	return x, y, z
}

// GeocentricToGeodeticGeneric converts geocentric ECEF meters to geodetic
// coordinates (lat, lon in degrees, alt in meters) using Bowring's
// closed-form approximation via the parametric latitude
// θ = atan2(a·z, b·p) with p = sqrt(x² + y²).
//
// The formula is total over finite inputs: p = 0 (the poles) is handled by
// the atan2 conventions and produces lon = 0 there.
func GeocentricToGeodeticGeneric[T any](ops Arithmetic[T], x, y, z T) (lat, lon, alt T) {
	a := ops.Const(SemiMajorAxis)
	esq := ops.Const(eccSquaredB)

	// b = a·sqrt(1 - e²), ep² = (a² - b²) / b²
	b := ops.Mul(a, ops.Sqrt(ops.Sub(ops.Const(1), esq)))
	bsq := ops.Mul(b, b)
	epsq := ops.Div(ops.Sub(ops.Mul(a, a), bsq), bsq)

	p := ops.Sqrt(ops.Add(ops.Mul(x, x), ops.Mul(y, y)))
	theta := ops.Atan2(ops.Mul(a, z), ops.Mul(b, p))

	sinTheta := ops.Sin(theta)
	cosTheta := ops.Cos(theta)
	sin3 := ops.Mul(sinTheta, ops.Mul(sinTheta, sinTheta))
	cos3 := ops.Mul(cosTheta, ops.Mul(cosTheta, cosTheta))

	lon = ops.Atan2(y, x)
	lat = ops.Atan2(
		ops.Add(z, ops.Mul(epsq, ops.Mul(b, sin3))),
		ops.Sub(p, ops.Mul(esq, ops.Mul(a, cos3))))

	sinLat := ops.Sin(lat)
	n := ops.Div(a, ops.Sqrt(ops.Sub(ops.Const(1), ops.Mul(esq, ops.Mul(sinLat, sinLat)))))
	alt = ops.Sub(ops.Div(p, ops.Cos(lat)), n)

	lat = ops.Mul(lat, ops.Const(radToDeg))
	lon = ops.Mul(lon, ops.Const(radToDeg))
	return lat, lon, alt
}

// GeodeticToGeocentric converts a single geodetic point (degrees, degrees,
// meters) to ECEF meters.
func GeodeticToGeocentric(lat, lon, alt float64) (x, y, z float64) {
	return GeodeticToGeocentricGeneric[float64](Float64Ops{}, lat, lon, alt)
}

// GeocentricToGeodetic converts a single ECEF point to geodetic
// coordinates (degrees, degrees, meters).
func GeocentricToGeodetic(x, y, z float64) (lat, lon, alt float64) {
	return GeocentricToGeodeticGeneric[float64](Float64Ops{}, x, y, z)
}

// GeodeticToGeocentricBatch converts parallel coordinate slices in one
// pass. The inputs must have equal length; the outputs are newly
// allocated.
func GeodeticToGeocentricBatch(lats, lons, alts []float64) (xs, ys, zs []float64) {
	xs = make([]float64, len(lats))
	ys = make([]float64, len(lats))
	zs = make([]float64, len(lats))
	for i := range lats {
		xs[i], ys[i], zs[i] = GeodeticToGeocentric(lats[i], lons[i], alts[i])
	}
	return xs, ys, zs
}

// GeocentricToGeodeticBatch converts parallel ECEF slices in one pass.
func GeocentricToGeodeticBatch(xs, ys, zs []float64) (lats, lons, alts []float64) {
	lats = make([]float64, len(xs))
	lons = make([]float64, len(xs))
	alts = make([]float64, len(xs))
	for i := range xs {
		lats[i], lons[i], alts[i] = GeocentricToGeodetic(xs[i], ys[i], zs[i])
	}
	return lats, lons, alts
}
