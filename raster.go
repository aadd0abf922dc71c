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
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
	"seehuhn.de/go/geom/rect"
)

// Every angular test below has the form "is this pixel within angle
// theta of a reference direction?".  Since the grid directions are unit
// vectors, the test reduces to comparing a dot product against
// cos(theta) (or sin(theta) for distances from a plane), which is
// monotonic and far cheaper than evaluating arc-cosines per pixel.

// greatCircle is the frame of the great circle through two points: orth
// is the unit normal of the circle's plane, alongA and alongB the
// in-plane tangents at the endpoints.  A pixel direction P lies
// angularly between the endpoints, on the shorter arc, iff
// dot(P, alongA) > 0 and dot(P, alongB) < 0.
type greatCircle struct {
	vecA, vecB         r3.Vec
	orth               r3.Vec
	alongA, alongB     r3.Vec
	sinTheta, cosTheta float64
}

func newGreatCircle(vecA, vecB r3.Vec) (greatCircle, error) {
	cross := r3.Cross(vecA, vecB)
	sinTheta := r3.Norm(cross)
	if sinTheta < degenerateNormThreshold {
		return greatCircle{}, fmt.Errorf("%w: coincident or antipodal line endpoints", ErrInvalidGeometry)
	}
	orth := r3.Scale(1/sinTheta, cross)
	return greatCircle{
		vecA:     vecA,
		vecB:     vecB,
		orth:     orth,
		alongA:   r3.Cross(orth, vecA),
		alongB:   r3.Cross(orth, vecB),
		sinTheta: sinTheta,
		cosTheta: r3.Dot(vecA, vecB),
	}, nil
}

// theta returns the angular separation of the endpoints in degrees.
func (gc greatCircle) theta() float64 {
	return math.Atan2(gc.sinTheta, gc.cosTheta) * radToDeg
}

// point returns the point t degrees from the first endpoint towards the
// second, along the great circle.
func (gc greatCircle) point(t float64) r3.Vec {
	sin, cos := math.Sincos(t * degToRad)
	return r3.Add(r3.Scale(cos, gc.vecA), r3.Scale(sin, gc.alongA))
}

// DiskSimple accumulates a filled spherical cap of the given angular
// diameter, scanning every pixel of the image.  It is the slow
// reference implementation for Disk.
func (c *Canvas) DiskSimple(lat, lon, diameter float64) error {
	if err := checkPoint(lat, lon); err != nil {
		return err
	}
	if err := checkSize("diameter", diameter); err != nil {
		return err
	}

	center := LatLonToVec(lat, lon)
	limit := math.Cos(0.5 * diameter * degToRad)
	for i, p := range c.grid.dirs {
		if r3.Dot(p, center) > limit {
			c.mask[i] = 1
		}
	}
	c.state = stateAccumulating
	return nil
}

// Ring accumulates the outline of a spherical cap: an annulus of the
// given line width around the angular radius diameter/2.  A ring about
// a pole is a line of latitude; a ring of diameter 180 about a point on
// the equator is a pair of opposite meridians.  The full image is
// scanned; rings usually span most of it anyway.
func (c *Canvas) Ring(lat, lon, diameter, width float64) error {
	if err := checkPoint(lat, lon); err != nil {
		return err
	}
	if err := checkSize("diameter", diameter); err != nil {
		return err
	}
	if err := checkSize("line width", width); err != nil {
		return err
	}

	center := LatLonToVec(lat, lon)
	radius := 0.5 * diameter
	inner := math.Cos((radius - 0.5*width) * degToRad)
	outer := math.Cos((radius + 0.5*width) * degToRad)
	for i, p := range c.grid.dirs {
		d := r3.Dot(p, center)
		if d < inner && d > outer {
			c.mask[i] = 1
		}
	}
	c.state = stateAccumulating
	return nil
}

// LineSimple accumulates a great-circle line of the given angular width
// between two endpoints, scanning every pixel of the image.  A pixel is
// covered iff it lies within width/2 of the circle's plane and
// angularly between the endpoints.  This is the unbounded reference for
// Line; it becomes ambiguous as the separation approaches 180 degrees.
func (c *Canvas) LineSimple(latA, lonA, latB, lonB, width float64) error {
	if err := checkPoint(latA, lonA); err != nil {
		return err
	}
	if err := checkPoint(latB, lonB); err != nil {
		return err
	}
	if err := checkSize("line width", width); err != nil {
		return err
	}
	gc, err := newGreatCircle(LatLonToVec(latA, lonA), LatLonToVec(latB, lonB))
	if err != nil {
		return err
	}

	limit := math.Sin(0.5 * width * degToRad)
	for i, p := range c.grid.dirs {
		d1 := r3.Dot(p, gc.orth)
		if d1 < limit && d1 > -limit &&
			r3.Dot(p, gc.alongA) > 0 && r3.Dot(p, gc.alongB) < 0 {
			c.mask[i] = 1
		}
	}
	c.state = stateAccumulating
	return nil
}

// Line accumulates a great-circle line of the given angular width
// between two arbitrary endpoints.  The geodesic is subdivided into
// equal-angle pieces of at most MaxStep degrees, each rendered through
// the bounded segment rasterizer, so arbitrary separations work,
// including arcs crossing the anti-meridian or passing near a pole.
// The shorter of the two arcs through the endpoints is drawn.
func (c *Canvas) Line(latA, lonA, latB, lonB, width float64) error {
	if err := checkPoint(latA, lonA); err != nil {
		return err
	}
	if err := checkPoint(latB, lonB); err != nil {
		return err
	}
	if err := checkSize("line width", width); err != nil {
		return err
	}
	gc, err := newGreatCircle(LatLonToVec(latA, lonA), LatLonToVec(latB, lonB))
	if err != nil {
		return err
	}

	theta := gc.theta()
	divisions := int(math.Ceil(theta / c.MaxStep))
	if divisions < 1 {
		divisions = 1
	}
	step := theta / float64(divisions)
	Logger().Debug("subdividing great circle",
		"theta", theta, "divisions", divisions)

	lat0, lon0 := latA, lonA
	for d := 1; d <= divisions; d++ {
		lat1, lon1 := VecToLatLon(gc.point(float64(d) * step))
		if err := c.lineSegment(lat0, lon0, lat1, lon1, width); err != nil {
			return err
		}
		lat0, lon0 = lat1, lon1
	}
	return nil
}

// lineSegment accumulates one short great-circle segment plus endpoint
// caps, scanning only a bounding rectangle around the endpoints.  It is
// valid only for arcs that do not bulge beyond the latitude/longitude
// envelope of their endpoints; Line guarantees this by subdividing.
//
// The caps (radius width/2 at each endpoint) make chained segments join
// without gaps: where a cap is clipped by this segment's rectangle, the
// neighbouring segment's cap fills the rest.  Coverage combines by
// pointwise maximum, so overlapping caps do not stack.
func (c *Canvas) lineSegment(latA, lonA, latB, lonB, width float64) error {
	gc, err := newGreatCircle(LatLonToVec(latA, lonA), LatLonToVec(latB, lonB))
	if err != nil {
		return err
	}

	limit := math.Sin(0.5 * width * degToRad)
	limit2 := limit * limit

	// Pad the lat/lon envelope of the endpoints by the half width.  The
	// longitude padding is scaled by 1/cos(max |lat|) to compensate
	// meridian convergence.
	maxAbsLat := math.Max(math.Abs(latA), math.Abs(latB))
	lonPad := 0.5 * width / math.Cos(maxAbsLat*degToRad)
	box := rect.Rect{
		LLx: math.Min(lonA, lonB) - lonPad,
		LLy: math.Min(latA, latB) - 0.5*width,
		URx: math.Max(lonA, lonB) + lonPad,
		URy: math.Max(latA, latB) + 0.5*width,
	}
	r0, r1, c0, c1 := c.boundingRect(box, lonPad)

	for row := r0; row < r1; row++ {
		dirs := c.grid.row(row)
		maskRow := c.mask[row*c.width : (row+1)*c.width]
		for col := c0; col < c1; col++ {
			p := dirs[col]
			d1 := r3.Dot(p, gc.orth)
			d2 := r3.Dot(p, gc.alongA)
			d3 := r3.Dot(p, gc.alongB)
			switch {
			case d1 < limit && d1 > -limit && d2 > 0 && d3 < 0:
				maskRow[col] = 1 // strip between the endpoints
			case d1*d1+d2*d2 < limit2:
				maskRow[col] = 1 // cap at the first endpoint
			case d1*d1+d3*d3 < limit2:
				maskRow[col] = 1 // cap at the second endpoint
			}
		}
	}
	c.state = stateAccumulating
	return nil
}

// Disk accumulates a filled spherical cap like DiskSimple, but scans
// only a bounding rectangle around the cap.  For centres away from the
// poles and the anti-meridian it selects exactly the pixels DiskSimple
// selects.
func (c *Canvas) Disk(lat, lon, diameter float64) error {
	if err := checkPoint(lat, lon); err != nil {
		return err
	}
	if err := checkSize("diameter", diameter); err != nil {
		return err
	}

	r0, r1, c0, c1 := c.diskRect(lat, lon, diameter)
	c.scanDisk(lat, lon, diameter, r0, r1, c0, c1)
	c.state = stateAccumulating
	return nil
}

// DiskHighlight is the emphasis variant of Disk preserved from the
// original renderer: the cap is accumulated into the coverage mask as
// usual, and in addition the red and alpha channels of the whole
// bounding rectangle are immediately blended 50/50 towards full
// intensity, bypassing the compositor.  The rectangle, not just the
// cap, is tinted.
func (c *Canvas) DiskHighlight(lat, lon, diameter float64) error {
	if err := checkPoint(lat, lon); err != nil {
		return err
	}
	if err := checkSize("diameter", diameter); err != nil {
		return err
	}

	r0, r1, c0, c1 := c.diskRect(lat, lon, diameter)
	c.scanDisk(lat, lon, diameter, r0, r1, c0, c1)

	pix := c.rgba.Pix
	for row := r0; row < r1; row++ {
		base := (row*c.width + c0) * 4
		for col := c0; col < c1; col++ {
			pix[base] = uint8(0.5*float64(pix[base]) + 127.5)
			pix[base+3] = uint8(0.5*float64(pix[base+3]) + 127.5)
			base += 4
		}
	}
	c.state = stateAccumulating
	return nil
}

// scanDisk runs the cap selection test over one pixel rectangle.
func (c *Canvas) scanDisk(lat, lon, diameter float64, r0, r1, c0, c1 int) {
	center := LatLonToVec(lat, lon)
	limit := math.Cos(0.5 * diameter * degToRad)
	for row := r0; row < r1; row++ {
		dirs := c.grid.row(row)
		maskRow := c.mask[row*c.width : (row+1)*c.width]
		for col := c0; col < c1; col++ {
			if r3.Dot(dirs[col], center) > limit {
				maskRow[col] = 1
			}
		}
	}
}

// diskRect computes the clamped pixel rectangle of a cap: the lat/lon
// box around the centre padded by the angular radius, with the
// longitude padding scaled by 1/cos(lat).
func (c *Canvas) diskRect(lat, lon, diameter float64) (r0, r1, c0, c1 int) {
	radius := 0.5 * diameter
	lonPad := radius / math.Cos(lat*degToRad)
	box := rect.Rect{
		LLx: lon - lonPad,
		LLy: lat - radius,
		URx: lon + lonPad,
		URy: lat + radius,
	}
	return c.boundingRect(box, lonPad)
}

// boundingRect converts a degree-space box (longitude on the x axis,
// latitude on the y axis) into a clamped pixel rectangle.  lonPad is
// the longitude padding already applied to the box; it determines how
// close the box may come to the anti-meridian before the scan widens to
// the full longitude range.  Boxes reaching beyond PoleLimit widen the
// same way, since no finite longitude padding survives meridian
// convergence at the poles.  This local clamping is how pole and
// anti-meridian cases degrade to a wider safe scan instead of failing.
//
// The returned rectangle [r0,r1) x [c0,c1) carries BoxMargin pixels of
// slack on each side and is clamped to the image.
func (c *Canvas) boundingRect(box rect.Rect, lonPad float64) (r0, r1, c0, c1 int) {
	if box.URy > c.PoleLimit {
		box.URy = 90
		box.LLx, box.URx = -180, 180
	}
	if box.LLy < -c.PoleLimit {
		box.LLy = -90
		box.LLx, box.URx = -180, 180
	}
	if box.URx > 180-lonPad || box.LLx < -180+lonPad {
		box.LLx, box.URx = -180, 180
	}

	r0 = max(LatToRow(c.height, box.URy)-c.BoxMargin, 0)
	r1 = min(LatToRow(c.height, box.LLy)+c.BoxMargin+1, c.height)
	c0 = max(LonToCol(c.height, box.LLx)-c.BoxMargin, 0)
	c1 = min(LonToCol(c.height, box.URx)+c.BoxMargin+1, c.width)
	return r0, r1, c0, c1
}

// Numerical tolerances for the rasterizer.
const (
	// degenerateNormThreshold is the minimum |vecA x vecB| for two line
	// endpoints to define a great-circle plane.  Below it the endpoints
	// are coincident or antipodal.
	degenerateNormThreshold = 1e-9
)
