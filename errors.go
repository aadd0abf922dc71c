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
	"errors"
	"fmt"
	"math"
)

// A draw call which returns a non-nil error has not touched the canvas:
// the distinction between "nothing drawn because the input was invalid"
// (non-nil error) and "nothing drawn because no pixel was covered" (nil
// error, empty coverage) is part of the API contract.
var (
	// ErrConfiguration indicates an invalid canvas parameter, such as a
	// non-positive image height.
	ErrConfiguration = errors.New("invalid canvas configuration")

	// ErrInvalidGeometry indicates a structurally invalid primitive: a
	// non-positive diameter or line width, or line endpoints which are
	// coincident or antipodal so that the great-circle plane is
	// undefined.
	ErrInvalidGeometry = errors.New("invalid geometry")

	// ErrOutOfRange indicates a latitude outside [-90, 90] or a
	// longitude outside [-180, 180].
	ErrOutOfRange = errors.New("coordinate out of range")
)

// checkPoint validates a latitude/longitude pair.  Longitude must
// already be reduced to [-180, 180]; the right edge is included because
// atan2-derived longitudes can be exactly 180.
func checkPoint(lat, lon float64) error {
	if math.IsNaN(lat) || lat < -90 || lat > 90 {
		return fmt.Errorf("%w: latitude %g", ErrOutOfRange, lat)
	}
	if math.IsNaN(lon) || lon < -180 || lon > 180 {
		return fmt.Errorf("%w: longitude %g", ErrOutOfRange, lon)
	}
	return nil
}

// checkSize validates an angular diameter or line width, which must be
// a positive finite number of degrees.
func checkSize(name string, deg float64) error {
	if math.IsNaN(deg) || math.IsInf(deg, 0) || deg <= 0 {
		return fmt.Errorf("%w: %s %g", ErrInvalidGeometry, name, deg)
	}
	return nil
}
