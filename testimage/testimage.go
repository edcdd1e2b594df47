// Package testimage generates the grayscale test fixture used to exercise
// the edge detector: a 352x288 gray ramp that steps one level every four
// pixels, stored as an ASCII PGM file.
package testimage

import (
	"fmt"
	"image"
	"io"
	"log/slog"
	"os"

	"golang.org/x/image/draw"

	"github.com/MarlonBando/EdgeDetector-FPGA/pattern"
	"github.com/MarlonBando/EdgeDetector-FPGA/pgm"
)

const (
	Width     = 352
	Height    = 288
	MaxValue  = pgm.MaxValue
	RunLength = 4 // pixels per gray level

	// OutputFile is the default name of the generated file.
	OutputFile = "output.pgm"
)

// Render returns the test image.
func Render() *image.Gray {
	rect := image.Rect(0, 0, Width, Height)
	canvas := image.NewGray(rect)
	draw.Draw(canvas, rect, pattern.NewRamp(rect, RunLength), image.Point{}, draw.Src)
	return canvas
}

// Write writes the test image to w as an ASCII PGM.
func Write(w io.Writer) error {
	return pgm.Encode(w, Render())
}

// WriteFile creates or truncates the file name and writes the test image to
// it.  The file is always closed; if writing succeeded but closing failed,
// the close error is returned.
func WriteFile(name string) (err error) {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	slog.Debug("writing test image", "filename", name, "width", Width, "height", Height)
	if err := Write(f); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	return nil
}
