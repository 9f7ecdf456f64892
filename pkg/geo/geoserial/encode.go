// Copyright 2020 The Cockroach Authors.
//
// Use of this software is governed by the Business Source License
// included in the file licenses/BSL.txt.
//
// As of the Change Date specified in that file, in accordance with
// the Business Source License, use of this software will be governed
// by the Apache License, Version 2.0, included in the file
// licenses/APL.txt.

package geoserial

import (
	"encoding/binary"
	"math"

	"github.com/cockroachdb/errors"
	"github.com/lbartoletti/postgis/pkg/geo/geoarray"
	"github.com/lbartoletti/postgis/pkg/geo/geogeom"
	"github.com/lbartoletti/postgis/pkg/geo/geopb"
)

// EncodeOptions controls optional Encode behavior.
type EncodeOptions struct {
	// ComputeBBoxIfAbsent makes Encode compute and write a bounding box via
	// ComputeBBox when g.BBox() is nil, instead of omitting the bbox block.
	ComputeBBoxIfAbsent bool
}

// Encode serializes g into GS2 form (spec.md §4.D). It first sizes the
// output exactly (SizeWithBBox), allocates once, then writes the header,
// optional extflags, optional bbox, and payload in order. A mismatch
// between the predicted size and the number of bytes actually written is
// an internal bug and raises an assertion failure rather than returning a
// corrupt buffer, per spec.md §4.D's "a mismatch is a fatal internal
// error" and §7's "structural errors... fatal".
func Encode(g geogeom.Geometry, opts EncodeOptions) ([]byte, error) {
	if g == nil {
		return nil, geopb.ErrNilGeometry
	}

	bbox := g.BBox()
	if bbox == nil && opts.ComputeBBoxIfAbsent {
		bbox = ComputeBBox(g)
	}

	size, err := SizeWithBBox(g, bbox != nil)
	if err != nil {
		return nil, errors.Wrap(err, "geoserial: encode")
	}
	if err := geopb.CheckAlloc(size); err != nil {
		return nil, err
	}

	buf := make([]byte, size)
	cur := buf

	flags := g.Flags()
	gf := NewGFlags(flags, bbox != nil)
	ef := NewExtFlags(flags)

	// varsize (4).
	binary.NativeEndian.PutUint32(cur[:4], uint32(size))
	cur = cur[4:]

	// srid (3).
	srid := g.SRID()
	if !srid.Known() {
		srid = geopb.UnknownSRID
	}
	if err := PutSRID(cur[:3], srid); err != nil {
		return nil, errors.Wrap(err, "geoserial: encode")
	}
	cur = cur[3:]

	// gflags (1).
	cur[0] = byte(gf)
	cur = cur[1:]

	if gf.IsExtended() {
		binary.NativeEndian.PutUint64(cur[:8], uint64(ef))
		cur = cur[8:]
	}

	if bbox != nil {
		cur = writeBBox(cur, bbox, NDimsBox(gf))
	}

	n, err := encodePayload(cur, g)
	if err != nil {
		return nil, errors.Wrap(err, "geoserial: encode")
	}
	if n != len(cur) {
		panic(errors.AssertionFailedf(
			"geoserial: sizer/writer mismatch: sizer predicted %d payload bytes, writer wrote %d", len(cur), n))
	}

	return buf, nil
}

func writeBBox(cur []byte, bbox *geopb.BoundingBox, ndims int) []byte {
	put := func(v float32) {
		binary.NativeEndian.PutUint32(cur[:4], math.Float32bits(v))
		cur = cur[4:]
	}
	put(bbox.XMin)
	put(bbox.XMax)
	put(bbox.YMin)
	put(bbox.YMax)
	if ndims >= 3 {
		put(bbox.ZMin)
		put(bbox.ZMax)
	}
	if ndims >= 4 {
		put(bbox.MMin)
		put(bbox.MMax)
	}
	return cur
}

// encodePayload writes g's payload grammar into cur (which must be exactly
// the right length) and returns the number of bytes written.
func encodePayload(cur []byte, g geogeom.Geometry) (int, error) {
	switch g := g.(type) {
	case *geogeom.Point:
		return encodeSimple(cur, geopb.PointType, g.Points)
	case *geogeom.LineString:
		return encodeSimple(cur, geopb.LineStringType, g.Points)
	case *geogeom.CircularString:
		return encodeSimple(cur, geopb.CircularStringType, g.Points)
	case *geogeom.Triangle:
		return encodeSimple(cur, geopb.TriangleType, g.Points)
	case *geogeom.Polygon:
		return encodePolygon(cur, g)
	case *geogeom.NurbsCurve:
		return encodeNurbs(cur, g)
	default:
		return encodeCollection(cur, g)
	}
}

func encodeSimple(cur []byte, typ geopb.GeometryType, points *geoarray.PointArray) (int, error) {
	start := len(cur)
	binary.NativeEndian.PutUint32(cur[:4], uint32(typ))
	cur = cur[4:]
	n := npointsOf(points)
	binary.NativeEndian.PutUint32(cur[:4], n)
	cur = cur[4:]
	written := writeCoords(cur, points)
	return start - len(cur) + written, nil
}

func writeCoords(cur []byte, points *geoarray.PointArray) int {
	if points == nil {
		return 0
	}
	b := points.Bytes()
	copy(cur, b)
	return len(b)
}

func encodePolygon(cur []byte, g *geogeom.Polygon) (int, error) {
	start := len(cur)
	nrings := len(g.Rings)
	binary.NativeEndian.PutUint32(cur[:4], uint32(geopb.PolygonType))
	cur = cur[4:]
	binary.NativeEndian.PutUint32(cur[:4], uint32(nrings))
	cur = cur[4:]
	for _, r := range g.Rings {
		binary.NativeEndian.PutUint32(cur[:4], npointsOf(r))
		cur = cur[4:]
	}
	if nrings%2 != 0 {
		binary.NativeEndian.PutUint32(cur[:4], 0)
		cur = cur[4:]
	}
	for _, r := range g.Rings {
		n := writeCoords(cur, r)
		cur = cur[n:]
	}
	return start - len(cur), nil
}

func encodeCollection(cur []byte, g geogeom.Geometry) (int, error) {
	children := geogeom.Children(g)
	if children == nil {
		return 0, errors.Wrapf(geopb.ErrUnsupportedType, "geoserial: encoder does not handle %T", g)
	}
	start := len(cur)
	binary.NativeEndian.PutUint32(cur[:4], uint32(g.Type()))
	cur = cur[4:]
	binary.NativeEndian.PutUint32(cur[:4], uint32(len(children)))
	cur = cur[4:]
	for i, c := range children {
		n, err := encodePayload(cur, c)
		if err != nil {
			return 0, errors.Wrapf(err, "geoserial: encoding child %d", i)
		}
		cur = cur[n:]
	}
	return start - len(cur), nil
}

func encodeNurbs(cur []byte, g *geogeom.NurbsCurve) (int, error) {
	start := len(cur)
	putWord := func(v uint32) {
		binary.NativeEndian.PutUint32(cur[:4], v)
		cur = cur[4:]
	}
	putWord(uint32(geopb.NurbsCurveType))
	putWord(npointsOf(g.Points))
	putWord(g.Degree)
	putWord(uint32(len(g.Weights)))
	putWord(uint32(len(g.Knots)))

	putFloat64Slice(cur, g.Weights)
	cur = cur[len(g.Weights)*8:]
	putFloat64Slice(cur, g.Knots)
	cur = cur[len(g.Knots)*8:]

	n := writeCoords(cur, g.Points)
	cur = cur[n:]
	return start - len(cur), nil
}

func putFloat64Slice(cur []byte, vals []float64) {
	for i, v := range vals {
		binary.NativeEndian.PutUint64(cur[i*8:i*8+8], math.Float64bits(v))
	}
}
