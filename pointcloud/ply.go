package pointcloud

import (
	"bufio"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/banshee-data/terrain.report/internal/fsutil"
)

// plyHeaderLines is the exact header length of the PLY layout this package
// accepts: ply / format / element vertex / three properties / end_header.
const plyHeaderLines = 7

// ReadPLY reads an ASCII PLY point cloud with the fixed 7-line header:
//
//	ply
//	format ascii 1.0
//	element vertex N
//	property float x
//	property float y
//	property float z
//	end_header
//
// followed by one "x y z" line per point. A vertex count that does not
// match the number of data lines is a format error, detected before any
// data row is parsed.
func ReadPLY(fsys fsutil.FileSystem, path string) (Cloud, error) {
	lines, err := readLines(fsys, path)
	if err != nil {
		return nil, err
	}
	if len(lines) < plyHeaderLines {
		return nil, fmt.Errorf("ply %s: %d lines, want at least the %d header lines", path, len(lines), plyHeaderLines)
	}

	if lines[0] != "ply" {
		return nil, fmt.Errorf("ply %s: first line %q, want \"ply\"", path, lines[0])
	}
	if lines[1] != "format ascii 1.0" {
		return nil, fmt.Errorf("ply %s: format line %q, want \"format ascii 1.0\"", path, lines[1])
	}
	var vertexCount int
	if _, err := fmt.Sscanf(lines[2], "element vertex %d", &vertexCount); err != nil {
		return nil, fmt.Errorf("ply %s: bad element line %q: %w", path, lines[2], err)
	}
	for i, want := range []string{"property float x", "property float y", "property float z"} {
		if lines[3+i] != want {
			return nil, fmt.Errorf("ply %s: header line %d is %q, want %q", path, 4+i, lines[3+i], want)
		}
	}
	if lines[6] != "end_header" {
		return nil, fmt.Errorf("ply %s: header line 7 is %q, want \"end_header\"", path, lines[6])
	}

	data := lines[plyHeaderLines:]
	if len(data) != vertexCount {
		return nil, fmt.Errorf("ply %s: header declares %d vertices but file has %d data lines",
			path, vertexCount, len(data))
	}

	return parseXYZLines(path, data)
}

// ReadTxt reads a headerless point cloud with one "x y z" line per point.
func ReadTxt(fsys fsutil.FileSystem, path string) (Cloud, error) {
	lines, err := readLines(fsys, path)
	if err != nil {
		return nil, err
	}
	return parseXYZLines(path, lines)
}

// WritePLY writes the cloud in the fixed-header PLY layout. A non-white
// color switches the header to the RGBA extension block (uchar red, green,
// blue, alpha plus an empty face element) and appends "r g b 255" to every
// data row, matching the layout the fused-cloud viewer expects.
func WritePLY(fsys fsutil.FileSystem, path string, cloud Cloud, color Color) error {
	f, err := fsys.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	colored := color != White

	fmt.Fprintf(w, "ply\n")
	fmt.Fprintf(w, "format ascii 1.0\n")
	fmt.Fprintf(w, "element vertex %d\n", len(cloud))
	fmt.Fprintf(w, "property float x\nproperty float y\nproperty float z\n")
	if colored {
		fmt.Fprintf(w, "property uchar red\nproperty uchar green\nproperty uchar blue\nproperty uchar alpha\n")
		fmt.Fprintf(w, "element face 0\nproperty list uchar int vertex_indices\n")
	}
	fmt.Fprintf(w, "end_header\n")

	for _, p := range cloud {
		fmt.Fprintf(w, "%s %s %s", formatCoord(p.X), formatCoord(p.Y), formatCoord(p.Z))
		if colored {
			fmt.Fprintf(w, " %d %d %d 255", color.R, color.G, color.B)
		}
		fmt.Fprintln(w)
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	log.Printf("Wrote %d points to %s", len(cloud), path)
	return nil
}

// Merge concatenates clouds in order. Raw points are pooled, never
// re-aggregated, so downstream statistics see every original sample.
func Merge(clouds ...Cloud) Cloud {
	total := 0
	for _, c := range clouds {
		total += len(c)
	}
	merged := make(Cloud, 0, total)
	for _, c := range clouds {
		merged = append(merged, c...)
	}
	return merged
}

// formatCoord renders a coordinate with the shortest representation that
// round-trips through ParseFloat.
func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// readLines reads a whole file and splits it into trimmed, non-empty
// trailing lines. The file handle is closed on every path.
func readLines(fsys fsutil.FileSystem, path string) ([]string, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	raw := strings.Split(string(data), "\n")
	// Only trailing blank lines are dropped; an interior blank line is a
	// data line and will fail coordinate parsing.
	for len(raw) > 0 && strings.TrimSpace(raw[len(raw)-1]) == "" {
		raw = raw[:len(raw)-1]
	}
	lines := make([]string, len(raw))
	for i, l := range raw {
		lines[i] = strings.TrimSpace(l)
	}
	return lines, nil
}

// parseXYZLines parses "x y z" rows; extra columns are ignored.
func parseXYZLines(path string, lines []string) (Cloud, error) {
	cloud := make(Cloud, 0, len(lines))
	for i, line := range lines {
		fields := strings.Fields(line)
		if len(fields) < 3 {
			return nil, fmt.Errorf("%s: line %d has %d fields, want 3 coordinates", path, i+1, len(fields))
		}
		var p Point
		var err error
		if p.X, err = strconv.ParseFloat(fields[0], 64); err != nil {
			return nil, fmt.Errorf("%s: line %d: bad x %q: %w", path, i+1, fields[0], err)
		}
		if p.Y, err = strconv.ParseFloat(fields[1], 64); err != nil {
			return nil, fmt.Errorf("%s: line %d: bad y %q: %w", path, i+1, fields[1], err)
		}
		if p.Z, err = strconv.ParseFloat(fields[2], 64); err != nil {
			return nil, fmt.Errorf("%s: line %d: bad z %q: %w", path, i+1, fields[2], err)
		}
		cloud = append(cloud, p)
	}
	return cloud, nil
}
