// Package pairs loads precomputed image-pair orderings used to seed
// feature matching. Orderings come from small text files, one pair per
// line, either as 1-based image indices or as image filenames.
package pairs

import (
	"bufio"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/banshee-data/terrain.report/internal/fsutil"
)

// DefaultLimit is the number of pairs loaded when Options.Limit is zero.
const DefaultLimit = 50

// Mode selects how each line of a pair file is interpreted.
type Mode int

const (
	// ModeIndex parses each line as two 1-based image indices.
	ModeIndex Mode = iota
	// ModeFilename parses each line as two image paths resolved against
	// Options.KnownImages by basename.
	ModeFilename
)

// Pair is a 0-based ordered pair of image indices.
type Pair struct {
	P, Q int
}

// Options controls pair-file loading.
type Options struct {
	Mode Mode

	// KnownImages are the image paths of the current scene, in index
	// order. Required for ModeFilename; ignored for ModeIndex.
	KnownImages []string

	// AppendTifExt appends ".tif" to each name read from the file before
	// resolving it, for orderings that list images without an extension.
	// Only meaningful in ModeFilename.
	AppendTifExt bool

	// Limit caps the number of pairs loaded. Zero means DefaultLimit.
	Limit int
}

// Load reads up to opts.Limit pairs from the file at path.
//
// The file may hold fewer pairs than the limit; the partial list is
// returned with a nil error. In ModeFilename, lines naming images not
// present in opts.KnownImages are skipped and do not count toward the
// limit. In ModeIndex a line without two integers is a format error.
func Load(fsys fsutil.FileSystem, path string, opts Options) ([]Pair, error) {
	limit := opts.Limit
	if limit == 0 {
		limit = DefaultLimit
	}

	f, err := fsys.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening pair file %s: %w", path, err)
	}
	defer f.Close()

	var known map[string]int
	if opts.Mode == ModeFilename {
		known = make(map[string]int, len(opts.KnownImages))
		for i, img := range opts.KnownImages {
			known[filepath.Base(img)] = i
		}
	}

	var pairs []Pair
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for len(pairs) < limit && scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		switch opts.Mode {
		case ModeIndex:
			p, err := parseIndexLine(line)
			if err != nil {
				return nil, fmt.Errorf("pair file %s line %d: %w", path, lineNo, err)
			}
			pairs = append(pairs, p)
		case ModeFilename:
			fields := strings.Fields(line)
			if len(fields) < 2 {
				continue
			}
			a, b := filepath.Base(fields[0]), filepath.Base(fields[1])
			if opts.AppendTifExt {
				a += ".tif"
				b += ".tif"
			}
			p, okP := known[a]
			q, okQ := known[b]
			if !okP || !okQ {
				continue
			}
			pairs = append(pairs, Pair{P: p, Q: q})
		default:
			return nil, fmt.Errorf("pair file %s: unknown mode %d", path, opts.Mode)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading pair file %s: %w", path, err)
	}
	return pairs, nil
}

// parseIndexLine converts a "p q" line of 1-based indices to a 0-based
// Pair. Extra fields after the first two integers are ignored.
func parseIndexLine(line string) (Pair, error) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return Pair{}, fmt.Errorf("want two indices, got %q", line)
	}
	p, err := strconv.Atoi(fields[0])
	if err != nil {
		return Pair{}, fmt.Errorf("bad index %q: %v", fields[0], err)
	}
	q, err := strconv.Atoi(fields[1])
	if err != nil {
		return Pair{}, fmt.Errorf("bad index %q: %v", fields[1], err)
	}
	if p < 1 || q < 1 {
		return Pair{}, fmt.Errorf("indices are 1-based, got %d %d", p, q)
	}
	return Pair{P: p - 1, Q: q - 1}, nil
}
