// Copyright 2020 The Cockroach Authors.
//
// Use of this software is governed by the Business Source License
// included in the file licenses/BSL.txt.
//
// As of the Change Date specified in that file, in accordance with
// the Business Source License, use of this software will be governed
// by the Apache License, Version 2.0, included in the file
// licenses/APL.txt.

package geowkb

import (
	"math"

	"github.com/cockroachdb/errors"
	"github.com/lbartoletti/postgis/pkg/geo/geoarray"
	"github.com/lbartoletti/postgis/pkg/geo/geogeom"
	"github.com/lbartoletti/postgis/pkg/geo/geonurbs"
	"github.com/lbartoletti/postgis/pkg/geo/geopb"
)

// Encode serializes g to binary WKB under opts (spec.md §4.G). It sizes the
// output exactly, allocates once, and writes; a sizer/writer mismatch
// panics as an assertion failure rather than returning a truncated buffer,
// mirroring geoserial.Encode's contract.
//
// The SFSQL dialect is always 2D: Decode can read a LineString's Z/M
// coordinates, but Encode under WithDialect(SFSQL) discards them, writing
// only X/Y (spec.md §9's documented asymmetry).
func Encode(g geogeom.Geometry, opts ...Option) ([]byte, error) {
	o := NewOptions(opts...)
	if g == nil {
		return nil, geopb.ErrNilGeometry
	}
	c := newCtx(o)

	size, err := sizeGeom(g, c)
	if err != nil {
		return nil, errors.Wrap(err, "geowkb: encode")
	}
	if err := geopb.CheckAlloc(size); err != nil {
		return nil, err
	}

	buf := make([]byte, size)
	n, err := encodeGeom(buf, g, c)
	if err != nil {
		return nil, errors.Wrap(err, "geowkb: encode")
	}
	if n != len(buf) {
		panic(errors.AssertionFailedf(
			"geowkb: sizer/writer mismatch: sizer predicted %d bytes, writer wrote %d", len(buf), n))
	}

	if o.hex {
		return []byte(EncodeHex(buf)), nil
	}
	return buf, nil
}

func encodeGeom(cur []byte, g geogeom.Geometry, c ctx) (int, error) {
	start := len(cur)
	order := wireByteOrder(c.order)

	cur[0] = endianByte(c.order)
	cur = cur[1:]

	hasSRID := needsSRID(c.dialect, c.noSRID, g.SRID())
	tc := typeCode(c.dialect, g.Type(), g.Flags(), hasSRID)
	order.PutUint32(cur[:4], tc)
	cur = cur[4:]

	if hasSRID {
		order.PutUint32(cur[:4], uint32(int32(g.SRID())))
		cur = cur[4:]
	}

	n, err := encodePayload(cur, g, c)
	if err != nil {
		return 0, err
	}
	return start - len(cur) + n, nil
}

func encodePayload(cur []byte, g geogeom.Geometry, c ctx) (int, error) {
	switch g := g.(type) {
	case *geogeom.Point:
		return encodePoint(cur, g, c)
	case *geogeom.LineString:
		return encodeSimpleSeq(cur, g.Points, c)
	case *geogeom.CircularString:
		return encodeSimpleSeq(cur, g.Points, c)
	case *geogeom.Triangle:
		return encodeSimpleSeq(cur, g.Points, c)
	case *geogeom.Polygon:
		return encodePolygon(cur, g, c)
	case *geogeom.NurbsCurve:
		return encodeNurbs(cur, g, c)
	default:
		return encodeCollection(cur, g, c)
	}
}

func encodePoint(cur []byte, g *geogeom.Point, c ctx) (int, error) {
	order := wireByteOrder(c.order)
	start := len(cur)
	if g.IsEmpty() && c.dialect != Extended && c.topLevel {
		order.PutUint32(cur[:4], 0)
		return start - len(cur[4:]), nil
	}
	if g.IsEmpty() {
		n := coordDims(g.Flags(), c.dialect)
		for i := 0; i < n; i++ {
			order.PutUint64(cur[i*8:i*8+8], math.Float64bits(math.NaN()))
		}
		return n * 8, nil
	}
	return encodeCoordSeq(cur, g.Points, c)
}

// encodeSimpleSeq writes "[npoints:4][coords]" for LineString/CircularString/
// Triangle payloads, matching sizer.go's sizePayload accounting (which
// always reserves 4 bytes for this count word ahead of the coordinates).
func encodeSimpleSeq(cur []byte, points *geoarray.PointArray, c ctx) (int, error) {
	order := wireByteOrder(c.order)
	start := len(cur)
	order.PutUint32(cur[:4], npointsOf(points))
	cur = cur[4:]
	n, err := encodeCoordSeq(cur, points, c)
	if err != nil {
		return 0, err
	}
	cur = cur[n:]
	return start - len(cur), nil
}

// encodeCoordSeq writes points.NPoints coordinates of c.dialect's dimension
// width (pointByteSize/coordDims). The bulk-copy fast path only applies when
// the wire dimension count matches the point array's own dimensionality and
// byte order needs no swap — an SFSQL write of an XYZ/XYM/XYZM array always
// takes the per-coordinate path below so the Z/M ordinates are dropped
// rather than copied (original_source/liblwgeom/lwout_wkb.c:488's
// `dims == pa_dims` bulk-copy guard).
func encodeCoordSeq(cur []byte, points *geoarray.PointArray, c ctx) (int, error) {
	if points == nil {
		return 0, nil
	}
	order := wireByteOrder(c.order)
	flags := points.Flags()
	n := points.NPoints
	outDims := coordDims(flags, c.dialect)

	if outDims == flags.NDims() && (order == wireByteOrder(NativeOrder) || c.order == NativeOrder) {
		// Fast path: coordinate bytes are already in host order and every
		// active ordinate is wanted on the wire.
		b := points.Bytes()
		copy(cur, b)
		return len(b), nil
	}

	writeZ := flags.Z && c.dialect != SFSQL
	writeM := flags.M && c.dialect != SFSQL
	pointSize := outDims * 8
	for i := uint32(0); i < n; i++ {
		p := points.Get(i)
		off := int(i) * pointSize
		order.PutUint64(cur[off:off+8], math.Float64bits(p.X))
		order.PutUint64(cur[off+8:off+16], math.Float64bits(p.Y))
		next := off + 16
		if writeZ {
			order.PutUint64(cur[next:next+8], math.Float64bits(p.Z))
			next += 8
		}
		if writeM {
			order.PutUint64(cur[next:next+8], math.Float64bits(p.M))
		}
	}
	return int(n) * pointSize, nil
}

func encodePolygon(cur []byte, g *geogeom.Polygon, c ctx) (int, error) {
	order := wireByteOrder(c.order)
	start := len(cur)
	order.PutUint32(cur[:4], uint32(len(g.Rings)))
	cur = cur[4:]
	for _, r := range g.Rings {
		order.PutUint32(cur[:4], npointsOf(r))
		cur = cur[4:]
		n, err := encodeCoordSeq(cur, r, c)
		if err != nil {
			return 0, err
		}
		cur = cur[n:]
	}
	return start - len(cur), nil
}

func encodeCollection(cur []byte, g geogeom.Geometry, c ctx) (int, error) {
	children := geogeom.Children(g)
	if children == nil {
		return 0, errors.Wrapf(geopb.ErrUnsupportedType, "geowkb: encoder does not handle %T", g)
	}
	order := wireByteOrder(c.order)
	start := len(cur)
	order.PutUint32(cur[:4], uint32(len(children)))
	cur = cur[4:]

	cc := c.child()
	for i, child := range children {
		n, err := encodeGeom(cur, child, cc)
		if err != nil {
			return 0, errors.Wrapf(err, "geowkb: encoding child %d", i)
		}
		cur = cur[n:]
	}
	return start - len(cur), nil
}

// encodeNurbs writes the ISO-compliant per-control-point NURBS structure
// spec.md §4.G describes: "[degree][npoints]" then for each control point
// "[endian][coords][has_weight:1][weight:8?]", then "[nknots][knots]". A
// default weight of 1.0 is never emitted.
func encodeNurbs(cur []byte, g *geogeom.NurbsCurve, c ctx) (int, error) {
	order := wireByteOrder(c.order)
	start := len(cur)

	order.PutUint32(cur[:4], g.Degree)
	cur = cur[4:]
	npoints := npointsOf(g.Points)
	order.PutUint32(cur[:4], npoints)
	cur = cur[4:]

	flags := g.Flags()
	pointSize := flags.NDims() * 8
	for i := uint32(0); i < npoints; i++ {
		cur[0] = endianByte(c.order)
		cur = cur[1:]
		p := g.Points.Get(i)
		order.PutUint64(cur[0:8], math.Float64bits(p.X))
		order.PutUint64(cur[8:16], math.Float64bits(p.Y))
		next := 16
		if flags.Z {
			order.PutUint64(cur[next:next+8], math.Float64bits(p.Z))
			next += 8
		}
		if flags.M {
			order.PutUint64(cur[next:next+8], math.Float64bits(p.M))
			next += 8
		}
		cur = cur[pointSize:]

		// A control point's weight is only written when it differs from the
		// implicit default of 1.0, per spec.md §4.G and
		// original_source/liblwgeom/lwout_wkb.c's lwnurbscurve_to_wkb_buf
		// ("if (curve->weights && ... curve->weights[i] != 1.0) has_weight = 1").
		if g.HasWeights() && g.Weights[i] != 1.0 {
			cur[0] = 1
			cur = cur[1:]
			order.PutUint64(cur[:8], math.Float64bits(g.Weights[i]))
			cur = cur[8:]
		} else {
			cur[0] = 0
			cur = cur[1:]
		}
	}

	knots, err := geonurbs.KnotsOrSynthesize(g)
	if err != nil {
		return 0, errors.Wrap(err, "geowkb: encoding NURBS knots")
	}
	order.PutUint32(cur[:4], uint32(len(knots)))
	cur = cur[4:]
	for _, k := range knots {
		order.PutUint64(cur[:8], math.Float64bits(k))
		cur = cur[8:]
	}

	return start - len(cur), nil
}
