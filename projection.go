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

const (
	degToRad = math.Pi / 180
	radToDeg = 180 / math.Pi
)

// The projection maps an image of height H and width 2H onto the full
// sphere.  The lat=+90 edge coincides with the top edge of row 0 and the
// lon=-180 edge with the left edge of column 0, so grid lines fall on
// pixel edges and the formulas below give the coordinates of pixel
// centres.

// RowToLat returns the latitude, in degrees, of the centre of pixel row
// row in an image of the given height.
func RowToLat(height, row int) float64 {
	return 90 - 180*(float64(row)+0.5)/float64(height)
}

// LatToRow returns the pixel row containing the given latitude.  This is
// the floor-based inverse of RowToLat, not nearest-pixel rounding: the
// result is the row whose cell [top edge, bottom edge) contains lat.
func LatToRow(height int, lat float64) int {
	return int(math.Floor((90 - lat) * float64(height) / 180))
}

// ColToLon returns the longitude, in degrees, of the centre of pixel
// column col.  The image width is 2*height.
func ColToLon(height, col int) float64 {
	return 180*(float64(col)+0.5)/float64(height) - 180
}

// LonToCol returns the pixel column containing the given longitude, the
// floor-based inverse of ColToLon.  The caller must reduce lon to
// [-180, 180] first; the conversion does not wrap.
func LonToCol(height int, lon float64) int {
	return int(math.Floor((lon + 180) * float64(height) / 180))
}

// LatLonToVec converts a position in degrees to a unit vector in the
// right-handed XYZ frame with +X at lat=0/lon=0, +Y at lat=0/lon=90 and
// +Z at lat=90.  The sphere is perfect; there are no ellipsoidal
// corrections.
func LatLonToVec(lat, lon float64) r3.Vec {
	sinLat, cosLat := math.Sincos(lat * degToRad)
	sinLon, cosLon := math.Sincos(lon * degToRad)
	return r3.Vec{X: cosLat * cosLon, Y: cosLat * sinLon, Z: sinLat}
}

// VecToLatLon recovers latitude and longitude, in degrees, from a
// direction vector (which need not be normalised).  Longitude is
// ill-defined at the poles; for the exact pole vectors (0,0,±1) the
// atan2 convention yields lon=0, while vectors computed from a pole
// latitude retain a residual longitude from rounding.
func VecToLatLon(v r3.Vec) (lat, lon float64) {
	lat = math.Atan2(v.Z, math.Hypot(v.X, v.Y)) * radToDeg
	lon = math.Atan2(v.Y, v.X) * radToDeg
	return lat, lon
}
