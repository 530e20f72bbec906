package dsm

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCloseSmallHolesMissingTools(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.tif")
	out := filepath.Join(dir, "out.tif")
	if err := os.WriteFile(in, []byte("not a raster"), 0644); err != nil {
		t.Fatalf("writing input: %v", err)
	}

	err := CloseSmallHoles(in, out, filepath.Join(dir, "no-such-bin"))
	if err == nil {
		t.Fatal("expected error when imscript tools are absent")
	}
	if !strings.Contains(err.Error(), "morsi") && !strings.Contains(err.Error(), "plambda") {
		t.Errorf("error does not name the failing tool: %v", err)
	}

	// The intermediate file must not be left behind.
	entries, readErr := os.ReadDir(dir)
	if readErr != nil {
		t.Fatalf("reading temp dir: %v", readErr)
	}
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), "closing-") {
			t.Errorf("temporary file %s left behind", e.Name())
		}
	}
}

func TestCloseSmallHolesNoOutputOnFailure(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.tif")
	out := filepath.Join(dir, "out.tif")
	if err := os.WriteFile(in, []byte("not a raster"), 0644); err != nil {
		t.Fatalf("writing input: %v", err)
	}

	if err := CloseSmallHoles(in, out, dir); err == nil {
		t.Fatal("expected error when imscript tools are absent")
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Errorf("output file written despite failure (stat err: %v)", err)
	}
}
