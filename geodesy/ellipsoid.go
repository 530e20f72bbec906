package geodesy

// WGS84 ellipsoid constants.
const (
	// SemiMajorAxis is the WGS84 equatorial radius in meters.
	SemiMajorAxis = 6378137.0

	// InverseFlattening is the WGS84 inverse flattening 1/f.
	InverseFlattening = 298.257223563

	// FirstEccentricity is the rounded first eccentricity used by the
	// inverse (Bowring) conversion. It agrees with the value derived from
	// InverseFlattening to within 1e-14.
	FirstEccentricity = 8.1819190842622e-2
)

// flattening and first eccentricity squared derived from the defining
// constants above, used by the forward conversion.
const (
	flattening   = 1.0 / InverseFlattening
	eccSquared   = flattening * (2.0 - flattening)
	eccSquaredB  = FirstEccentricity * FirstEccentricity
	degToRad     = 0.017453292519943295
	radToDeg     = 57.29577951308232
	falseEasting = 500000.0

	// SouthernNorthingOffset is added to negative northings when a
	// single continuous northing axis is required across the equator.
	SouthernNorthingOffset = 10e6
)
