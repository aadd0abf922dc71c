// seehuhn.de/go/sphere - drawing on the equirectangular projection of a sphere
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package sphere draws angular primitives - filled spherical caps, ring
// outlines and great-circle lines - onto the equirectangular projection
// of a sphere, producing an RGBA image.  All user-facing quantities are
// degrees of arc, not pixels.  Images in this format are used, for
// example, by Science On a Sphere projectors.
package sphere

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/tiff"
)

// drawState tracks the accumulate/flush protocol of a Canvas.
type drawState int

const (
	// stateIdle: the coverage mask is all zero and Flush is a no-op.
	stateIdle drawState = iota

	// stateAccumulating: at least one primitive has written coverage
	// since the last flush.
	stateAccumulating
)

// Canvas draws primitives onto the equirectangular projection of a unit
// sphere.  An image of height H is always 2H pixels wide; row 0 is the
// lat=+90 edge and column 0 the lon=-180 edge.
//
// Drawing is a two-phase protocol.  Primitive calls accumulate
// fractional coverage into a transient mask (overlapping primitives
// combine by pointwise maximum, not by addition), and Flush composites
// the mask in a single colour over the persistent RGBA buffer and
// clears it.  This lets several primitives share one level of
// transparency.
//
// A Canvas is not safe for concurrent use.
type Canvas struct {
	// MaxStep is the maximum angular extent, in degrees, of one
	// sub-segment generated when Line subdivides a great circle.
	// Must be positive.
	MaxStep float64

	// PoleLimit is the latitude, in degrees, beyond which the bounding
	// box of a bounded primitive is widened to the full longitude
	// range.  Meridians converge above this latitude too fast for the
	// longitude padding to stay finite.
	PoleLimit float64

	// BoxMargin is the pixel safety margin added on each side of the
	// bounding rectangle of a bounded primitive.
	BoxMargin int

	height, width int
	grid          *grid
	mask          []float64    // coverage in [0,1] per pixel, row-major
	rgba          *image.NRGBA // persistent output buffer
	state         drawState
}

// New creates a canvas for an image of the given height in pixels.  The
// width is fixed at twice the height.  Construction builds the full
// direction table and dominates the cost of short drawing runs.
func New(height int) (*Canvas, error) {
	if height <= 0 {
		return nil, fmt.Errorf("%w: height %d", ErrConfiguration, height)
	}
	width := 2 * height
	c := &Canvas{
		MaxStep:   defaultMaxStep,
		PoleLimit: defaultPoleLimit,
		BoxMargin: defaultBoxMargin,

		height: height,
		width:  width,
		grid:   newGrid(height),
		mask:   make([]float64, height*width),
		rgba:   image.NewNRGBA(image.Rect(0, 0, width, height)),
	}
	Logger().Debug("canvas created", "height", height, "width", width)
	return c, nil
}

// Height returns the image height in pixels.
func (c *Canvas) Height() int { return c.height }

// Width returns the image width in pixels (twice the height).
func (c *Canvas) Width() int { return c.width }

// Image returns the live RGBA buffer.  The buffer is owned by the
// canvas and mutated by Flush; encode or copy it before drawing again
// if a snapshot is needed.  The pixel at row r, column col starts at
// Pix[4*(r*Width()+col)].
func (c *Canvas) Image() *image.NRGBA { return c.rgba }

// Mask returns the live coverage mask, one value in [0,1] per pixel in
// row-major order.  Exposed for debugging and cross-validation; callers
// must not modify it.
func (c *Canvas) Mask() []float64 { return c.mask }

// MaskImage returns a grayscale copy of the coverage mask.
func (c *Canvas) MaskImage() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, c.width, c.height))
	for i, m := range c.mask {
		img.Pix[i] = uint8(m*255 + 0.5)
	}
	return img
}

// Save writes the RGBA buffer to a file.  The encoding is chosen by the
// file extension: ".tif"/".tiff" for TIFF, anything else PNG.
func (c *Canvas) Save(filename string) error {
	return saveImage(filename, c.rgba)
}

// SaveMask writes the current coverage mask as a grayscale image, for
// debugging.
func (c *Canvas) SaveMask(filename string) error {
	return saveImage(filename, c.MaskImage())
}

func saveImage(filename string, img image.Image) (err error) {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".tif", ".tiff":
		err = tiff.Encode(f, img, nil)
	default:
		err = png.Encode(f, img)
	}
	if err == nil {
		Logger().Info("image written", "file", filename)
	}
	return err
}

// Default values for canvas parameters.  All three are empirical
// constants; the corresponding Canvas fields can be adjusted between
// draw calls.
const (
	// defaultMaxStep is the maximum great-circle subdivision step in
	// degrees.  It keeps every sub-segment well inside the validity
	// region of the bounded segment rasterizer.
	defaultMaxStep = 5.0

	// defaultPoleLimit is the latitude beyond which bounded primitives
	// fall back to scanning the full longitude range.
	defaultPoleLimit = 85.0

	// defaultBoxMargin is the pixel slack around bounding rectangles.
	defaultBoxMargin = 1
)
