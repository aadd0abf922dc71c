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
	"image/color"
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func mustNew(t *testing.T, height int) *Canvas {
	t.Helper()
	c, err := New(height)
	if err != nil {
		t.Fatal(err)
	}
	return c
}

// TestDiskMatchesSimple cross-validates the bounded disk against the
// full-scan oracle: for centres away from the poles the two must select
// identical pixel sets.
func TestDiskMatchesSimple(t *testing.T) {
	centres := []struct{ lat, lon float64 }{
		{0, 0},
		{40, 30},
		{-55, 100},
		{70, -120},
		{20, 179}, // near the anti-meridian: clamp widens the scan
	}
	for _, ctr := range centres {
		t.Run(fmt.Sprintf("%g_%g", ctr.lat, ctr.lon), func(t *testing.T) {
			oracle := mustNew(t, 64)
			bounded := mustNew(t, 64)
			if err := oracle.DiskSimple(ctr.lat, ctr.lon, 25); err != nil {
				t.Fatal(err)
			}
			if err := bounded.Disk(ctr.lat, ctr.lon, 25); err != nil {
				t.Fatal(err)
			}
			for i := range oracle.Mask() {
				if oracle.Mask()[i] != bounded.Mask()[i] {
					t.Fatalf("pixel %d: oracle %g, bounded %g",
						i, oracle.Mask()[i], bounded.Mask()[i])
				}
			}
		})
	}
}

// TestDiskStaysInRect verifies that the bounded disk touches no pixel
// outside its computed rectangle, and that the rectangle contains every
// pixel the full-scan oracle selects.
func TestDiskStaysInRect(t *testing.T) {
	const lat, lon, diameter = 40, 30, 25

	c := mustNew(t, 64)
	r0, r1, c0, c1 := c.diskRect(lat, lon, diameter)
	if err := c.Disk(lat, lon, diameter); err != nil {
		t.Fatal(err)
	}

	oracle := mustNew(t, 64)
	if err := oracle.DiskSimple(lat, lon, diameter); err != nil {
		t.Fatal(err)
	}

	for row := 0; row < c.Height(); row++ {
		for col := 0; col < c.Width(); col++ {
			i := row*c.Width() + col
			inside := row >= r0 && row < r1 && col >= c0 && col < c1
			if c.Mask()[i] != 0 && !inside {
				t.Fatalf("bounded disk painted (%d,%d) outside rect", row, col)
			}
			if oracle.Mask()[i] != 0 && !inside {
				t.Fatalf("rect misses oracle pixel (%d,%d)", row, col)
			}
		}
	}
}

// TestLineSegmentCoversSimple verifies that for a short, well-behaved
// arc the bounded segment covers at least the strip the unbounded
// oracle selects (the bounded version adds endpoint caps on top).
func TestLineSegmentCoversSimple(t *testing.T) {
	const latA, lonA, latB, lonB, width = 10, 20, 13, 26, 2

	oracle := mustNew(t, 64)
	if err := oracle.LineSimple(latA, lonA, latB, lonB, width); err != nil {
		t.Fatal(err)
	}
	bounded := mustNew(t, 64)
	if err := bounded.lineSegment(latA, lonA, latB, lonB, width); err != nil {
		t.Fatal(err)
	}

	for i := range oracle.Mask() {
		if oracle.Mask()[i] != 0 && bounded.Mask()[i] == 0 {
			t.Fatalf("bounded segment misses oracle pixel %d", i)
		}
	}
}

// TestRingAtPole draws a ring of angular radius 10 about the north
// pole.  Only pixels whose angle from the pole is strictly between 9
// and 11 degrees may be painted; at height 64 that is exactly the row
// at latitude 80.15625, every column of it.
func TestRingAtPole(t *testing.T) {
	c := mustNew(t, 64)
	if err := c.Ring(90, 0, 20, 2); err != nil {
		t.Fatal(err)
	}

	painted := 0
	for row := 0; row < c.Height(); row++ {
		for col := 0; col < c.Width(); col++ {
			if c.Mask()[row*c.Width()+col] == 0 {
				continue
			}
			painted++
			if lat := RowToLat(c.Height(), row); lat < 80 {
				t.Fatalf("ring painted (%d,%d) at latitude %g", row, col, lat)
			}
		}
	}
	if painted != c.Width() {
		t.Errorf("painted %d pixels, want one full row (%d)", painted, c.Width())
	}
}

// TestLineAlongEquator draws a quarter of the equator.  All painted
// pixels must sit at latitude ~0 and span longitudes 0 to 90.
func TestLineAlongEquator(t *testing.T) {
	c := mustNew(t, 256)
	if err := c.Line(0, 0, 0, 90, 1); err != nil {
		t.Fatal(err)
	}

	painted := 0
	minLon, maxLon := math.Inf(1), math.Inf(-1)
	for row := 0; row < c.Height(); row++ {
		for col := 0; col < c.Width(); col++ {
			if c.Mask()[row*c.Width()+col] == 0 {
				continue
			}
			painted++
			lat := RowToLat(c.Height(), row)
			lon := ColToLon(c.Height(), col)
			if math.Abs(lat) > 0.6 {
				t.Fatalf("equator line painted (%d,%d) at latitude %g", row, col, lat)
			}
			if lon < -1 || lon > 91 {
				t.Fatalf("equator line painted (%d,%d) at longitude %g", row, col, lon)
			}
			minLon = math.Min(minLon, lon)
			maxLon = math.Max(maxLon, lon)
		}
	}
	if painted < 200 {
		t.Errorf("painted only %d pixels", painted)
	}
	if minLon > 1 || maxLon < 89 {
		t.Errorf("line spans longitudes [%g, %g], want ~[0, 90]", minLon, maxLon)
	}
}

// TestLineAcrossAntiMeridian draws a short line across the lon=180
// seam.  Coverage must appear on both sides of the seam and nowhere
// near lon=0.
func TestLineAcrossAntiMeridian(t *testing.T) {
	c := mustNew(t, 64)
	if err := c.Line(0, 170, 0, -170, 2); err != nil {
		t.Fatal(err)
	}

	east, west := 0, 0
	for row := 0; row < c.Height(); row++ {
		for col := 0; col < c.Width(); col++ {
			if c.Mask()[row*c.Width()+col] == 0 {
				continue
			}
			lon := ColToLon(c.Height(), col)
			switch {
			case lon > 168:
				east++
			case lon < -168:
				west++
			default:
				t.Fatalf("seam line painted at longitude %g", lon)
			}
		}
	}
	if east == 0 || west == 0 {
		t.Errorf("coverage east=%d west=%d, want both sides of the seam", east, west)
	}
}

// TestLineOverPole draws a meridian arc from (80,0) to (80,180), whose
// great circle passes through the north pole.
func TestLineOverPole(t *testing.T) {
	c := mustNew(t, 64)
	if err := c.Line(80, 0, 80, 180, 1); err != nil {
		t.Fatal(err)
	}

	nearPole := 0
	for row := 0; row < c.Height(); row++ {
		for col := 0; col < c.Width(); col++ {
			if c.Mask()[row*c.Width()+col] != 0 &&
				RowToLat(c.Height(), row) > 88 {
				nearPole++
			}
		}
	}
	if nearPole == 0 {
		t.Error("no coverage near the pole")
	}
}

// TestGreatCircleSubdivision checks the chain Line draws: each step is
// at most MaxStep degrees, intermediate points stay on the great circle
// through the endpoints, and the chain ends at the second endpoint.
func TestGreatCircleSubdivision(t *testing.T) {
	vecA := LatLonToVec(0, 0)
	vecB := LatLonToVec(45, 120)
	gc, err := newGreatCircle(vecA, vecB)
	if err != nil {
		t.Fatal(err)
	}

	const maxStep = 5.0
	theta := gc.theta()
	divisions := int(math.Ceil(theta / maxStep))
	step := theta / float64(divisions)
	if step > maxStep+1e-12 {
		t.Fatalf("step %g exceeds %g", step, maxStep)
	}

	for d := 0; d <= divisions; d++ {
		p := gc.point(float64(d) * step)
		if math.Abs(r3.Dot(p, gc.orth)) > 1e-12 {
			t.Fatalf("point %d is off the great-circle plane", d)
		}
		if math.Abs(r3.Norm(p)-1) > 1e-12 {
			t.Fatalf("point %d is not a unit vector", d)
		}
	}
	if r3.Norm(r3.Sub(gc.point(theta), vecB)) > 1e-9 {
		t.Error("chain does not end at the second endpoint")
	}
}

// TestDegenerateLineEndpoints verifies that coincident and antipodal
// endpoints are rejected without touching the mask.
func TestDegenerateLineEndpoints(t *testing.T) {
	cases := []struct {
		name                   string
		latA, lonA, latB, lonB float64
	}{
		{"coincident", 10, 20, 10, 20},
		{"antipodal", 10, 20, -10, -160},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := mustNew(t, 16)
			err := c.Line(tc.latA, tc.lonA, tc.latB, tc.lonB, 1)
			if !errors.Is(err, ErrInvalidGeometry) {
				t.Fatalf("got %v, want ErrInvalidGeometry", err)
			}
			for i, m := range c.Mask() {
				if m != 0 {
					t.Fatalf("failed call wrote mask pixel %d", i)
				}
			}
		})
	}
}

// TestInvalidInputs checks the rejection of structurally invalid
// primitives and out-of-range coordinates.
func TestInvalidInputs(t *testing.T) {
	c := mustNew(t, 16)
	cases := []struct {
		name string
		call func() error
		want error
	}{
		{"disk zero diameter", func() error { return c.Disk(0, 0, 0) }, ErrInvalidGeometry},
		{"disk simple negative diameter", func() error { return c.DiskSimple(0, 0, -2) }, ErrInvalidGeometry},
		{"ring negative width", func() error { return c.Ring(0, 0, 10, -1) }, ErrInvalidGeometry},
		{"line zero width", func() error { return c.LineSimple(0, 0, 10, 10, 0) }, ErrInvalidGeometry},
		{"latitude out of range", func() error { return c.Disk(95, 0, 10) }, ErrOutOfRange},
		{"longitude out of range", func() error { return c.Line(0, 0, 10, 200, 1) }, ErrOutOfRange},
		{"highlight latitude NaN", func() error { return c.DiskHighlight(math.NaN(), 0, 10) }, ErrOutOfRange},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.call(); !errors.Is(err, tc.want) {
				t.Errorf("got %v, want %v", err, tc.want)
			}
		})
	}
	for i, m := range c.Mask() {
		if m != 0 {
			t.Fatalf("rejected calls wrote mask pixel %d", i)
		}
	}
}

// TestMaskAccumulatesByMaximum verifies that repeated coverage combines
// by pointwise maximum rather than adding up.
func TestMaskAccumulatesByMaximum(t *testing.T) {
	once := mustNew(t, 32)
	if err := once.Disk(0, 0, 20); err != nil {
		t.Fatal(err)
	}
	twice := mustNew(t, 32)
	for range 2 {
		if err := twice.Disk(0, 0, 20); err != nil {
			t.Fatal(err)
		}
	}
	for i := range once.Mask() {
		if once.Mask()[i] != twice.Mask()[i] {
			t.Fatalf("pixel %d: once %g, twice %g", i, once.Mask()[i], twice.Mask()[i])
		}
		if twice.Mask()[i] > 1 {
			t.Fatalf("pixel %d: coverage %g > 1", i, twice.Mask()[i])
		}
	}
}

// TestRedDiskScenario: on a height-64 canvas, a 20-degree opaque red
// disk at lat=0/lon=0 must leave the image centre opaque red and the
// top-left corner untouched.
func TestRedDiskScenario(t *testing.T) {
	c := mustNew(t, 64)
	if err := c.Disk(0, 0, 20); err != nil {
		t.Fatal(err)
	}
	c.Flush(color.NRGBA{R: 255, A: 255})

	want := color.NRGBA{R: 255, A: 255}
	if got := c.Image().NRGBAAt(64, 32); got != want {
		t.Errorf("centre pixel %v, want %v", got, want)
	}
	if got := c.Image().NRGBAAt(0, 0); got != (color.NRGBA{}) {
		t.Errorf("corner pixel %v, want transparent black", got)
	}
}

// TestDiskHighlight verifies the emphasis mode: mask coverage like a
// normal disk, plus an immediate 50/50 red/alpha tint of the whole
// bounding rectangle that bypasses the compositor.
func TestDiskHighlight(t *testing.T) {
	c := mustNew(t, 64)
	r0, r1, c0, c1 := c.diskRect(0, 0, 20)
	if err := c.DiskHighlight(0, 0, 20); err != nil {
		t.Fatal(err)
	}

	// mask covered at the centre
	if c.Mask()[32*c.Width()+64] != 1 {
		t.Error("centre not covered in mask")
	}

	// the whole rectangle is tinted, including corners outside the cap
	for _, px := range []struct{ row, col int }{{32, 64}, {r0, c0}, {r1 - 1, c1 - 1}} {
		got := c.Image().NRGBAAt(px.col, px.row)
		if got.R != 127 || got.A != 127 || got.G != 0 || got.B != 0 {
			t.Errorf("pixel (%d,%d) = %v, want R=127 A=127", px.row, px.col, got)
		}
	}

	// pixels outside the rectangle are untouched
	if got := c.Image().NRGBAAt(0, 0); got != (color.NRGBA{}) {
		t.Errorf("corner pixel %v, want untouched", got)
	}
}
