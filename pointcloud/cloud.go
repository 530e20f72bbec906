// Package pointcloud reads and writes the ASCII point-cloud formats
// exchanged with the reconstruction pipeline: a fixed-header PLY layout and
// a headerless "x y z" text layout.
package pointcloud

// Point is a 3D point in whatever frame the producing stage used
// (ECEF meters or projected UTM meters).
type Point struct {
	X, Y, Z float64
}

// Cloud is an ordered point sequence. Order is preserved by all codecs so
// that downstream indices stay valid.
type Cloud []Point

// Color is an RGB point color used by the PLY writer.
type Color struct {
	R, G, B uint8
}

// White is the default color; writing with it omits the color block from
// the PLY header entirely.
var White = Color{R: 255, G: 255, B: 255}
