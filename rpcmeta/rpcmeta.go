// Package rpcmeta translates rational polynomial camera (RPC) models
// into the GeoTIFF RPC tag naming so corrected cameras can be written
// back into image metadata.
package rpcmeta

import (
	"strconv"
	"strings"
)

// Model holds the offsets, scales and polynomial coefficients of an RPC
// camera. Row/Col refer to image line and sample; the four mandatory
// coefficient slices describe the projection polynomials, the optional
// Lon/Lat slices the inverse localization polynomials.
type Model struct {
	RowOffset float64
	ColOffset float64
	LatOffset float64
	LonOffset float64
	AltOffset float64

	RowScale float64
	ColScale float64
	LatScale float64
	LonScale float64
	AltScale float64

	RowNum []float64
	RowDen []float64
	ColNum []float64
	ColDen []float64

	// Inverse polynomials, present on some providers' models only.
	LonNum []float64
	LonDen []float64
	LatNum []float64
	LatDen []float64
}

// HasInverse reports whether the model carries inverse localization
// polynomials.
func (m *Model) HasInverse() bool {
	return len(m.LonNum) > 0
}

// GeoTIFFTags returns the model as GeoTIFF RPC tag names. Coefficient
// lists are rendered as space-separated values without commas. The
// LON/LAT inverse tags appear only when the model carries inverse
// polynomials.
func (m *Model) GeoTIFFTags() map[string]string {
	tags := map[string]string{
		"LINE_OFF":   formatValue(m.RowOffset),
		"SAMP_OFF":   formatValue(m.ColOffset),
		"LAT_OFF":    formatValue(m.LatOffset),
		"LONG_OFF":   formatValue(m.LonOffset),
		"HEIGHT_OFF": formatValue(m.AltOffset),

		"LINE_SCALE":   formatValue(m.RowScale),
		"SAMP_SCALE":   formatValue(m.ColScale),
		"LAT_SCALE":    formatValue(m.LatScale),
		"LONG_SCALE":   formatValue(m.LonScale),
		"HEIGHT_SCALE": formatValue(m.AltScale),

		"LINE_NUM_COEFF": formatCoeffs(m.RowNum),
		"LINE_DEN_COEFF": formatCoeffs(m.RowDen),
		"SAMP_NUM_COEFF": formatCoeffs(m.ColNum),
		"SAMP_DEN_COEFF": formatCoeffs(m.ColDen),
	}
	if m.HasInverse() {
		tags["LON_NUM_COEFF"] = formatCoeffs(m.LonNum)
		tags["LON_DEN_COEFF"] = formatCoeffs(m.LonDen)
		tags["LAT_NUM_COEFF"] = formatCoeffs(m.LatNum)
		tags["LAT_DEN_COEFF"] = formatCoeffs(m.LatDen)
	}
	return tags
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func formatCoeffs(coeffs []float64) string {
	parts := make([]string, len(coeffs))
	for i, c := range coeffs {
		parts[i] = formatValue(c)
	}
	return strings.Join(parts, " ")
}
