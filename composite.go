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

package sphere

import (
	"image/color"
	"math"
)

// White is the default draw colour: fully opaque white.
var White = color.NRGBA{R: 255, G: 255, B: 255, A: 255}

// Flush composites the accumulated coverage mask over the RGBA buffer
// in the given colour and clears the mask.  The mask acts as the source
// alpha of a Porter-Duff "over" operation: per pixel, the effective new
// alpha is mask * A/255, combined with the stored alpha, and the colour
// channels are mixed with the corresponding weights.  Pixels where the
// combined alpha is zero stay fully transparent.
//
// The mask is a single-use coverage layer: after Flush it is all zero
// and the canvas is back in the idle state.  Flushing with no coverage
// accumulated is a no-op.
func (c *Canvas) Flush(col color.NRGBA) {
	if c.state == stateIdle {
		return
	}

	pix := c.rgba.Pix
	for i, m := range c.mask {
		newA := m * float64(col.A) / 255
		oldA := float64(pix[4*i+3]) / 255
		combined := newA + (1-newA)*oldA
		if combined > 0 {
			top := newA / combined
			bottom := (1 - newA) * oldA / combined
			px := pix[4*i : 4*i+4 : 4*i+4]
			px[0] = uint8(top*float64(col.R) + bottom*float64(px[0]))
			px[1] = uint8(top*float64(col.G) + bottom*float64(px[1]))
			px[2] = uint8(top*float64(col.B) + bottom*float64(px[2]))
			px[3] = uint8(math.Round(combined * 255))
		}
		c.mask[i] = 0
	}
	c.state = stateIdle
}
