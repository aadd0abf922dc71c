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

// Package chart maps star-catalog records to drawing calls on a sphere
// canvas: constellation figures, star markers and coordinate
// graticules.
package chart

import (
	"errors"
	"fmt"
	"image/color"

	"seehuhn.de/go/sphere"
	"seehuhn.de/go/sphere/catalog"
)

// Figures draws one great-circle line per star pair and flushes them in
// a single colour.  Longitude is mirrored (the sky is drawn as seen
// from inside the sphere).  Pairs referencing catalog numbers that are
// not present, and degenerate pairs joining a star to itself, are
// skipped.
func Figures(c *sphere.Canvas, cat catalog.Catalog, pairs [][2]int, width float64, col color.NRGBA) error {
	for _, p := range pairs {
		a, okA := cat[p[0]]
		b, okB := cat[p[1]]
		if !okA || !okB {
			sphere.Logger().Debug("skipping figure pair", "a", p[0], "b", p[1])
			continue
		}
		err := c.Line(a.Lat, -a.Lon, b.Lat, -b.Lon, width)
		if errors.Is(err, sphere.ErrInvalidGeometry) {
			sphere.Logger().Debug("skipping degenerate figure pair", "a", p[0], "b", p[1])
			continue
		}
		if err != nil {
			return fmt.Errorf("figure %d-%d: %w", p[0], p[1], err)
		}
	}
	c.Flush(col)
	return nil
}

// Stars draws a filled disk per catalog star brighter than maxMag, with
// an angular diameter of (8-mag)*scale degrees, and flushes them in a
// single colour.  Longitude is mirrored as in Figures.
func Stars(c *sphere.Canvas, cat catalog.Catalog, maxMag, scale float64, col color.NRGBA) error {
	for _, s := range cat {
		if s.Mag >= maxMag {
			continue
		}
		diameter := (8 - s.Mag) * scale
		if diameter <= 0 {
			continue
		}
		if err := c.Disk(s.Lat, -s.Lon, diameter); err != nil {
			return fmt.Errorf("star %d: %w", s.Num, err)
		}
	}
	c.Flush(col)
	return nil
}

// Graticule draws lines of latitude and longitude every spacing
// degrees, accumulated and flushed together so that all lines share one
// level of transparency.  Lines of latitude are rings about the north
// pole; meridians are rings of diameter 180 about points on the
// equator (each such ring is a pair of opposite meridians).
func Graticule(c *sphere.Canvas, spacing, width float64, col color.NRGBA) error {
	if spacing <= 0 || spacing >= 180 {
		return fmt.Errorf("%w: graticule spacing %g", sphere.ErrConfiguration, spacing)
	}
	for radius := spacing; radius < 180; radius += spacing {
		if err := c.Ring(90, 0, 2*radius, width); err != nil {
			return err
		}
	}
	for lon := 0.0; lon < 180; lon += spacing {
		if err := c.Ring(0, lon, 180, width); err != nil {
			return err
		}
	}
	c.Flush(col)
	return nil
}
