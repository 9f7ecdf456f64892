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

// MaxNestingDepth bounds collection recursion depth during decode, per
// spec.md §5's "implementations must enforce a sane depth limit (suggested
// >= 32, <= 256)".
const MaxNestingDepth = 64

const minHeaderBytes = baseHeaderSize

// Decode reconstructs a Geometry from a GS2-encoded buffer b, per spec.md
// §4.E. The returned tree's coordinate arrays reference b directly
// (zero-copy): b must outlive the returned Geometry and must not be
// mutated while it is in use. Use DecodeOwned for a tree independent of b.
func Decode(b []byte) (geogeom.Geometry, error) {
	if len(b) < minHeaderBytes {
		return nil, errors.Newf("geoserial: buffer too short for a GS2 header: %d bytes", len(b))
	}

	srid := GetSRID(b[4:7])
	gf := GFlags(b[7])
	cur := b[8:]

	var ef ExtFlags
	if gf.IsExtended() {
		if len(cur) < 8 {
			return nil, errors.New("geoserial: buffer too short for extflags")
		}
		ef = ExtFlags(binary.NativeEndian.Uint64(cur[:8]))
		cur = cur[8:]
	}

	flags := gf.ToFlags(ef)

	var bbox *geopb.BoundingBox
	if gf.HasBBox() {
		ndims := NDimsBox(gf)
		need := 2 * ndims * bboxComponentSize
		if len(cur) < need {
			return nil, errors.New("geoserial: buffer too short for bbox")
		}
		bbox = readBBox(cur, ndims, flags)
		cur = cur[need:]
	}

	g, n, err := decodePayload(cur, srid, flags, 0)
	if err != nil {
		return nil, errors.Wrap(err, "geoserial: decode")
	}
	if n != len(cur) {
		return nil, errors.Newf("geoserial: %d trailing bytes after payload", len(cur)-n)
	}
	if bbox != nil {
		g.SetBBox(bbox)
	}
	return g, nil
}

// DecodeOwned decodes b and then deep-copies the result, so the returned
// tree no longer references b.
func DecodeOwned(b []byte) (geogeom.Geometry, error) {
	g, err := Decode(b)
	if err != nil {
		return nil, err
	}
	return g.Clone(), nil
}

func readBBox(cur []byte, ndims int, flags geopb.Flags) *geopb.BoundingBox {
	get := func(i int) float32 {
		return math.Float32frombits(binary.NativeEndian.Uint32(cur[i*4 : i*4+4]))
	}
	bbox := &geopb.BoundingBox{Flags: flags}
	bbox.XMin, bbox.XMax = get(0), get(1)
	bbox.YMin, bbox.YMax = get(2), get(3)
	if ndims >= 3 {
		bbox.ZMin, bbox.ZMax = get(4), get(5)
	}
	if ndims >= 4 {
		bbox.MMin, bbox.MMax = get(6), get(7)
	}
	return bbox
}

// decodePayload reads one payload grammar entry from cur (type word first)
// and returns the decoded geometry and the number of bytes consumed.
func decodePayload(cur []byte, srid geopb.SRID, flags geopb.Flags, depth int) (geogeom.Geometry, int, error) {
	if depth > MaxNestingDepth {
		return nil, 0, geopb.ErrMaxNestingDepth
	}
	if len(cur) < typeWordSize {
		return nil, 0, errors.New("geoserial: buffer too short for a type word")
	}
	typ := geopb.GeometryType(binary.NativeEndian.Uint32(cur[:4]))

	switch typ {
	case geopb.PointType, geopb.LineStringType, geopb.CircularStringType, geopb.TriangleType:
		return decodeSimple(cur, typ, srid, flags)
	case geopb.PolygonType:
		return decodePolygon(cur, srid, flags)
	case geopb.NurbsCurveType:
		return decodeNurbs(cur, srid, flags)
	case geopb.MultiPointType, geopb.MultiLineStringType, geopb.MultiPolygonType,
		geopb.MultiCurveType, geopb.MultiSurfaceType, geopb.CompoundCurveType,
		geopb.CurvePolygonType, geopb.GeometryCollectionType, geopb.PolyhedralSurfaceType,
		geopb.TINType:
		return decodeCollection(cur, typ, srid, flags, depth)
	default:
		return nil, 0, errors.Wrapf(geopb.ErrUnsupportedType, "geoserial: type code %d", uint32(typ))
	}
}

func decodeSimple(
	cur []byte, typ geopb.GeometryType, srid geopb.SRID, flags geopb.Flags,
) (geogeom.Geometry, int, error) {
	if len(cur) < typeWordSize+countWordSize {
		return nil, 0, errors.New("geoserial: buffer too short for npoints")
	}
	npoints := binary.NativeEndian.Uint32(cur[4:8])
	rest := cur[8:]

	points, n, err := readPointArray(rest, flags, npoints)
	if err != nil {
		return nil, 0, err
	}

	var g geogeom.Geometry
	switch typ {
	case geopb.PointType:
		g = geogeom.NewPointFromArray(srid, flags, points)
	case geopb.LineStringType:
		g = geogeom.NewLineString(srid, flags, points)
	case geopb.CircularStringType:
		g = geogeom.NewCircularString(srid, flags, points)
	case geopb.TriangleType:
		g = geogeom.NewTriangle(srid, flags, points)
	}
	return g, 8 + n, nil
}

// readPointArray builds a borrowed PointArray over the first npoints
// coordinates of data.
func readPointArray(data []byte, flags geopb.Flags, npoints uint32) (*geoarray.PointArray, int, error) {
	pointSize := flags.NDims() * 8
	need := int(npoints) * pointSize
	if len(data) < need {
		return nil, 0, errors.Newf("geoserial: buffer too short for %d coordinates", npoints)
	}
	if err := geopb.CheckAlloc(need); err != nil {
		return nil, 0, err
	}
	pa, err := geoarray.NewReference(flags.Z, flags.M, npoints, data[:need])
	if err != nil {
		return nil, 0, err
	}
	return pa, need, nil
}

func decodePolygon(cur []byte, srid geopb.SRID, flags geopb.Flags) (geogeom.Geometry, int, error) {
	if len(cur) < typeWordSize+countWordSize {
		return nil, 0, errors.New("geoserial: buffer too short for nrings")
	}
	nrings := int(binary.NativeEndian.Uint32(cur[4:8]))
	rest := cur[8:]

	if len(rest) < nrings*countWordSize {
		return nil, 0, errors.New("geoserial: buffer too short for ring counts")
	}
	ringCounts := make([]uint32, nrings)
	for i := 0; i < nrings; i++ {
		ringCounts[i] = binary.NativeEndian.Uint32(rest[i*4 : i*4+4])
	}
	rest = rest[nrings*countWordSize:]
	if nrings%2 != 0 {
		if len(rest) < 4 {
			return nil, 0, errors.New("geoserial: buffer too short for polygon pad")
		}
		rest = rest[4:]
	}

	rings := make([]*geoarray.PointArray, nrings)
	total := 0
	for i, cnt := range ringCounts {
		pa, n, err := readPointArray(rest, flags, cnt)
		if err != nil {
			return nil, 0, errors.Wrapf(err, "geoserial: decoding ring %d", i)
		}
		rings[i] = pa
		rest = rest[n:]
		total += n
	}

	headerBytes := 8 + nrings*countWordSize
	if nrings%2 != 0 {
		headerBytes += 4
	}
	g := geogeom.NewPolygon(srid, flags, rings)
	return g, headerBytes + total, nil
}

func decodeCollection(
	cur []byte, typ geopb.GeometryType, srid geopb.SRID, flags geopb.Flags, depth int,
) (geogeom.Geometry, int, error) {
	if len(cur) < typeWordSize+countWordSize {
		return nil, 0, errors.New("geoserial: buffer too short for ngeoms")
	}
	ngeoms := int(binary.NativeEndian.Uint32(cur[4:8]))
	rest := cur[8:]
	consumed := 8

	children := make([]geogeom.Geometry, ngeoms)
	for i := 0; i < ngeoms; i++ {
		child, n, err := decodePayload(rest, srid, flags, depth+1)
		if err != nil {
			return nil, 0, errors.Wrapf(err, "geoserial: decoding child %d", i)
		}
		if !geogeom.AdmitsChild(typ, child.Type()) {
			return nil, 0, errors.Wrapf(geopb.ErrDisallowedChildType,
				"geoserial: %s cannot contain a %s (child index %d)", typ, child.Type(), i)
		}
		children[i] = child
		rest = rest[n:]
		consumed += n
	}

	g, err := geogeom.NewCollection(typ, srid, flags, children)
	if err != nil {
		return nil, 0, err
	}
	return g, consumed, nil
}

func decodeNurbs(cur []byte, srid geopb.SRID, flags geopb.Flags) (geogeom.Geometry, int, error) {
	if len(cur) < nurbsHeaderWords*4 {
		return nil, 0, errors.New("geoserial: buffer too short for NURBS header")
	}
	npoints := binary.NativeEndian.Uint32(cur[4:8])
	degree := binary.NativeEndian.Uint32(cur[8:12])
	nweights := binary.NativeEndian.Uint32(cur[12:16])
	nknots := binary.NativeEndian.Uint32(cur[16:20])
	rest := cur[20:]
	consumed := 20

	weights, n, err := readFloat64Slice(rest, nweights)
	if err != nil {
		return nil, 0, errors.Wrap(err, "geoserial: decoding NURBS weights")
	}
	rest, consumed = rest[n:], consumed+n

	knots, n, err := readFloat64Slice(rest, nknots)
	if err != nil {
		return nil, 0, errors.Wrap(err, "geoserial: decoding NURBS knots")
	}
	rest, consumed = rest[n:], consumed+n

	points, n, err := readPointArray(rest, flags, npoints)
	if err != nil {
		return nil, 0, errors.Wrap(err, "geoserial: decoding NURBS control points")
	}
	consumed += n

	var weightsArg []float64
	if nweights > 0 {
		weightsArg = weights
	}
	var knotsArg []float64
	if nknots > 0 {
		knotsArg = knots
	}

	g, err := geogeom.NewNurbsCurve(srid, nil, degree, points, weightsArg, knotsArg)
	if err != nil {
		return nil, 0, err
	}
	return g, consumed, nil
}

func readFloat64Slice(data []byte, n uint32) ([]float64, int, error) {
	need := int(n) * 8
	if len(data) < need {
		return nil, 0, errors.Newf("geoserial: buffer too short for %d float64 values", n)
	}
	if n == 0 {
		return nil, 0, nil
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = math.Float64frombits(binary.NativeEndian.Uint64(data[i*8 : i*8+8]))
	}
	return out, need, nil
}
