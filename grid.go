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
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// grid is the direction table: one unit vector per pixel centre, stored
// row-major.  It is built once per canvas and never mutated afterwards.
// Precomputing the directions reduces every later angular test to a dot
// product against the cosine of a threshold angle, instead of repeated
// arc-cosine evaluation.
type grid struct {
	height, width int
	dirs          []r3.Vec // row-major, length height*width
}

// newGrid builds the direction table for an image of the given height
// (width 2*height).  Longitude depends only on the column, so the
// per-column cosine and sine terms are computed once and reused for
// every row; only the latitude terms vary per row.
func newGrid(height int) *grid {
	width := 2 * height
	g := &grid{
		height: height,
		width:  width,
		dirs:   make([]r3.Vec, height*width),
	}

	cosLon := make([]float64, width)
	sinLon := make([]float64, width)
	for col := range cosLon {
		sin, cos := math.Sincos(ColToLon(height, col) * degToRad)
		cosLon[col] = cos
		sinLon[col] = sin
	}

	for row := 0; row < height; row++ {
		sinLat, cosLat := math.Sincos(RowToLat(height, row) * degToRad)
		dirs := g.dirs[row*width : (row+1)*width]
		for col := range dirs {
			dirs[col] = r3.Vec{
				X: cosLat * cosLon[col],
				Y: cosLat * sinLon[col],
				Z: sinLat,
			}
		}
	}
	return g
}

// row returns the directions of one pixel row as a shared slice.
// Callers must not modify the result.
func (g *grid) row(row int) []r3.Vec {
	return g.dirs[row*g.width : (row+1)*g.width]
}
