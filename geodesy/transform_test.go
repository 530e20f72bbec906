package geodesy

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/num/dual"
)

func TestGeodeticToGeocentricKnownPoints(t *testing.T) {
	tests := []struct {
		name          string
		lat, lon, alt float64
		x, y, z       float64
		tol           float64
	}{
		{
			name: "equator prime meridian",
			lat:  0, lon: 0, alt: 0,
			x: SemiMajorAxis, y: 0, z: 0,
			tol: 1e-6,
		},
		{
			name: "equator 90E",
			lat:  0, lon: 90, alt: 0,
			x: 0, y: SemiMajorAxis, z: 0,
			tol: 1e-6,
		},
		{
			name: "north pole",
			lat:  90, lon: 0, alt: 0,
			// Polar radius b = a*sqrt(1-e²).
			x: 0, y: 0, z: 6356752.314245179,
			tol: 1e-6,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y, z := GeodeticToGeocentric(tt.lat, tt.lon, tt.alt)
			if math.Abs(x-tt.x) > tt.tol || math.Abs(y-tt.y) > tt.tol || math.Abs(z-tt.z) > tt.tol {
				t.Errorf("GeodeticToGeocentric(%v,%v,%v) = (%v,%v,%v), want (%v,%v,%v)",
					tt.lat, tt.lon, tt.alt, x, y, z, tt.x, tt.y, tt.z)
			}
		})
	}
}

func TestRoundTripGrid(t *testing.T) {
	// Grid sweep over the usable latitude band: inverse(forward(p)) must
	// reproduce p to within 1e-6 (degrees for lat/lon, meters for alt).
	const tol = 1e-6
	for lat := -80.0; lat <= 80.0; lat += 20.0 {
		for lon := -180.0; lon <= 180.0; lon += 30.0 {
			for alt := 0.0; alt <= 8000.0; alt += 2000.0 {
				x, y, z := GeodeticToGeocentric(lat, lon, alt)
				gotLat, gotLon, gotAlt := GeocentricToGeodetic(x, y, z)

				if math.Abs(gotLat-lat) > tol {
					t.Fatalf("lat round trip at (%v,%v,%v): got %v", lat, lon, alt, gotLat)
				}
				// Longitude wraps at the antimeridian: -180 and 180 are
				// the same meridian.
				dLon := math.Abs(gotLon - lon)
				if dLon > 180 {
					dLon = 360 - dLon
				}
				if dLon > tol {
					t.Fatalf("lon round trip at (%v,%v,%v): got %v", lat, lon, alt, gotLon)
				}
				if math.Abs(gotAlt-alt) > tol {
					t.Fatalf("alt round trip at (%v,%v,%v): got %v", lat, lon, alt, gotAlt)
				}
			}
		}
	}
}

func TestGeocentricToGeodeticPole(t *testing.T) {
	// p = 0 exactly: must not fail and must report the pole.
	lat, lon, alt := GeocentricToGeodetic(0, 0, 6356752.314245179)
	if math.IsNaN(lat) || math.IsNaN(lon) || math.IsNaN(alt) {
		t.Fatalf("pole conversion produced NaN: (%v,%v,%v)", lat, lon, alt)
	}
	if math.Abs(lat-90) > 1e-6 {
		t.Errorf("pole latitude = %v, want 90", lat)
	}
	if lon != 0 {
		t.Errorf("pole longitude = %v, want 0 (atan2 convention)", lon)
	}
}

func TestDualBackendMatchesFloat(t *testing.T) {
	// The dual backend must produce identical real parts to the float64
	// backend: one formula, two numeric representations.
	x, y, z := GeodeticToGeocentric(-34.5, -58.4, 30.0)

	dLat, dLon, dAlt := GeocentricToGeodeticGeneric[dual.Number](DualOps{},
		dual.Number{Real: x}, dual.Number{Real: y}, dual.Number{Real: z})
	fLat, fLon, fAlt := GeocentricToGeodetic(x, y, z)

	// Division maps to Mul(x, Inv(y)) on duals, so the real parts may
	// differ from plain float64 division by rounding only.
	if math.Abs(dLat.Real-fLat) > 1e-12 || math.Abs(dLon.Real-fLon) > 1e-12 ||
		math.Abs(dAlt.Real-fAlt) > 1e-6 {
		t.Errorf("dual real parts (%v,%v,%v) differ from float results (%v,%v,%v)",
			dLat.Real, dLon.Real, dAlt.Real, fLat, fLon, fAlt)
	}
}

func TestDualDerivativeAgainstFiniteDifference(t *testing.T) {
	// d lat / d x by dual evaluation vs central finite difference.
	x, y, z := GeodeticToGeocentric(48.85, 2.35, 120.0)

	dLat, _, _ := GeocentricToGeodeticGeneric[dual.Number](DualOps{},
		dual.Number{Real: x, Emag: 1},
		dual.Number{Real: y},
		dual.Number{Real: z})

	const h = 1e-2
	latPlus, _, _ := GeocentricToGeodetic(x+h, y, z)
	latMinus, _, _ := GeocentricToGeodetic(x-h, y, z)
	fd := (latPlus - latMinus) / (2 * h)

	if math.Abs(dLat.Emag-fd) > 1e-9 {
		t.Errorf("d lat/d x: dual %v vs finite difference %v", dLat.Emag, fd)
	}
}

func TestBatchMatchesScalar(t *testing.T) {
	lats := []float64{10, -20, 45.5}
	lons := []float64{100, -60, 7.25}
	alts := []float64{0, 500, 2400}

	xs, ys, zs := GeodeticToGeocentricBatch(lats, lons, alts)
	for i := range lats {
		x, y, z := GeodeticToGeocentric(lats[i], lons[i], alts[i])
		if xs[i] != x || ys[i] != y || zs[i] != z {
			t.Errorf("batch[%d] = (%v,%v,%v), scalar = (%v,%v,%v)", i, xs[i], ys[i], zs[i], x, y, z)
		}
	}

	backLats, backLons, backAlts := GeocentricToGeodeticBatch(xs, ys, zs)
	for i := range lats {
		if math.Abs(backLats[i]-lats[i]) > 1e-6 ||
			math.Abs(backLons[i]-lons[i]) > 1e-6 ||
			math.Abs(backAlts[i]-alts[i]) > 1e-6 {
			t.Errorf("batch round trip[%d] = (%v,%v,%v), want (%v,%v,%v)",
				i, backLats[i], backLons[i], backAlts[i], lats[i], lons[i], alts[i])
		}
	}
}
