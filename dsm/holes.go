package dsm

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
)

// plambdaKeepFinite keeps the original value where it is finite and
// falls back to the closed value only inside small holes.
const plambdaKeepFinite = "x isfinite x y isfinite y nan if if"

// CloseSmallHoles interpolates small no-data holes in a DSM raster by
// morphological closing, using the external imscript tools (morsi and
// plambda) found in binDir. The closed raster is written to outPath;
// inPath is left untouched.
func CloseSmallHoles(inPath, outPath, binDir string) error {
	tmp, err := os.CreateTemp(filepath.Dir(outPath), "closing-*.tif")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()
	tmp.Close()
	defer os.Remove(tmpPath)

	morsi := exec.Command(filepath.Join(binDir, "morsi"), "square", "closing", inPath)
	plambda := exec.Command(filepath.Join(binDir, "plambda"), inPath, "-", plambdaKeepFinite, "-o", tmpPath)

	pipe, err := morsi.StdoutPipe()
	if err != nil {
		return fmt.Errorf("connecting morsi to plambda: %w", err)
	}
	plambda.Stdin = pipe

	var morsiErr, plambdaErr bytes.Buffer
	morsi.Stderr = &morsiErr
	plambda.Stderr = &plambdaErr

	if err := morsi.Start(); err != nil {
		return fmt.Errorf("starting morsi: %w", err)
	}
	if err := plambda.Start(); err != nil {
		morsi.Process.Kill()
		morsi.Wait()
		return fmt.Errorf("starting plambda: %w", err)
	}

	morsiWait := morsi.Wait()
	plambdaWait := plambda.Wait()
	if morsiWait != nil {
		return fmt.Errorf("morsi closing failed: %v (stderr: %s)", morsiWait, morsiErr.String())
	}
	if plambdaWait != nil {
		return fmt.Errorf("plambda failed: %v (stderr: %s)", plambdaWait, plambdaErr.String())
	}

	if err := copyFile(tmpPath, outPath); err != nil {
		return fmt.Errorf("writing closed dsm: %w", err)
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
