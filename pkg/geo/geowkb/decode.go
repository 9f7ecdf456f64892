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
	"encoding/binary"
	"math"

	"github.com/cockroachdb/errors"
	"github.com/lbartoletti/postgis/pkg/geo/geoarray"
	"github.com/lbartoletti/postgis/pkg/geo/geogeom"
	"github.com/lbartoletti/postgis/pkg/geo/geopb"
)

// MaxNestingDepth bounds collection recursion depth during decode, mirroring
// geoserial.MaxNestingDepth (spec.md §5's "suggested >= 32, <= 256").
const MaxNestingDepth = 64

// Decode reconstructs a Geometry from a binary WKB buffer b (spec.md §4.G).
// Every dialect is self-describing enough to decode without being told
// which one produced b (decodeTypeCode recovers base type, Z/M, and
// SRID-presence from the type code alone), so Decode takes no Options.
//
// Unlike geoserial.Decode, the returned tree always owns its coordinate
// bytes rather than borrowing from b: once a non-native byte order has been
// swapped (or a hex string decoded into a fresh buffer), there is nothing
// left worth referencing, so this module picks "always owning" as its one
// WKB-side convention for spec.md §9's construct-by-reference/owning open
// question (DESIGN.md).
func Decode(b []byte) (geogeom.Geometry, error) {
	g, n, err := decodeGeom(b, 0, geopb.UnknownSRID, true)
	if err != nil {
		return nil, errors.Wrap(err, "geowkb: decode")
	}
	if n != len(b) {
		return nil, errors.Newf("geowkb: %d trailing bytes after geometry", len(b)-n)
	}
	return g, nil
}

// DecodeHexString decodes a hex-encoded WKB string (spec.md §4.G's HEX
// flavor), accepting either letter case.
func DecodeHexString(s string) (geogeom.Geometry, error) {
	b, err := DecodeHex(s)
	if err != nil {
		return nil, errors.Wrap(err, "geowkb: decode hex")
	}
	return Decode(b)
}

func orderFromEndianByte(b byte) (binary.ByteOrder, error) {
	switch b {
	case 1:
		return binary.LittleEndian, nil
	case 0:
		return binary.BigEndian, nil
	default:
		return nil, errors.Newf("geowkb: invalid endian byte %d", b)
	}
}

// decodeGeom reads one full self-describing WKB geometry (endian byte, type
// code, optional SRID, payload) from cur. inheritedSRID is used when the
// geometry itself carries no SRID (every collection child, per spec.md
// §4.G's "recursion carries NO_SRID") — spec.md S7 requires the decoded
// tree to assign the parent's SRID to every child even though the wire
// bytes never repeat it.
func decodeGeom(
	cur []byte, depth int, inheritedSRID geopb.SRID, topLevel bool,
) (geogeom.Geometry, int, error) {
	if depth > MaxNestingDepth {
		return nil, 0, geopb.ErrMaxNestingDepth
	}
	if len(cur) < 5 {
		return nil, 0, errors.New("geowkb: buffer too short for endian byte and type code")
	}
	order, err := orderFromEndianByte(cur[0])
	if err != nil {
		return nil, 0, err
	}
	raw := order.Uint32(cur[1:5])
	base, flags, hasSRID := decodeTypeCode(raw)
	rest := cur[5:]
	consumed := 5

	srid := inheritedSRID
	if hasSRID {
		if len(rest) < 4 {
			return nil, 0, errors.New("geowkb: buffer too short for SRID")
		}
		srid = geopb.SRID(int32(order.Uint32(rest[:4])))
		rest = rest[4:]
		consumed += 4
	}

	g, n, err := decodePayload(rest, base, flags, srid, order, depth, topLevel)
	if err != nil {
		return nil, 0, errors.Wrapf(err, "geowkb: decoding %s", base)
	}
	return g, consumed + n, nil
}

func decodePayload(
	cur []byte, typ geopb.GeometryType, flags geopb.Flags, srid geopb.SRID,
	order binary.ByteOrder, depth int, topLevel bool,
) (geogeom.Geometry, int, error) {
	switch typ {
	case geopb.PointType:
		return decodePoint(cur, flags, srid, order, topLevel)
	case geopb.LineStringType, geopb.CircularStringType, geopb.TriangleType:
		return decodeSimpleSeq(cur, typ, flags, srid, order)
	case geopb.PolygonType:
		return decodePolygon(cur, flags, srid, order)
	case geopb.NurbsCurveType:
		return decodeNurbs(cur, flags, srid, order)
	case geopb.MultiPointType, geopb.MultiLineStringType, geopb.MultiPolygonType,
		geopb.MultiCurveType, geopb.MultiSurfaceType, geopb.CompoundCurveType,
		geopb.CurvePolygonType, geopb.GeometryCollectionType, geopb.PolyhedralSurfaceType,
		geopb.TINType:
		return decodeCollection(cur, typ, flags, srid, order, depth)
	default:
		return nil, 0, errors.Wrapf(geopb.ErrUnsupportedType, "geowkb: type code %d", uint32(typ))
	}
}

// decodePoint mirrors sizePoint/encodePoint's three-way split. The
// npoints=0 shorthand is only legal at the outermost geometry (see
// sizePoint's doc comment and DESIGN.md): a nested Point always supplies a
// full pointSize coordinate block, NaN-filled when empty, so there's never
// an ambiguity about how many bytes a nested Point payload occupies.
func decodePoint(
	cur []byte, flags geopb.Flags, srid geopb.SRID, order binary.ByteOrder, topLevel bool,
) (geogeom.Geometry, int, error) {
	pointSize := flags.NDims() * 8
	if topLevel && len(cur) == 4 {
		if v := order.Uint32(cur[:4]); v != 0 {
			return nil, 0, errors.Newf("geowkb: expected point npoints=0 marker, got %d", v)
		}
		pa := geoarray.NewOwned(flags.Z, flags.M, 0)
		return geogeom.NewPointFromArray(srid, flags, pa), 4, nil
	}
	if len(cur) < pointSize {
		return nil, 0, errors.New("geowkb: buffer too short for point coordinates")
	}
	pt, isNaN := readPoint(cur[:pointSize], order, flags)
	if isNaN {
		pa := geoarray.NewOwned(flags.Z, flags.M, 0)
		return geogeom.NewPointFromArray(srid, flags, pa), pointSize, nil
	}
	pa := geoarray.NewOwned(flags.Z, flags.M, 1)
	if err := pa.Set(0, pt); err != nil {
		return nil, 0, err
	}
	return geogeom.NewPointFromArray(srid, flags, pa), pointSize, nil
}

// readPoint reads one coordinate of flags' dimensionality from b in order,
// reporting whether every active ordinate is NaN (the Extended dialect's
// empty-point marker, spec.md §4.G).
func readPoint(b []byte, order binary.ByteOrder, flags geopb.Flags) (geoarray.Point4D, bool) {
	x := math.Float64frombits(order.Uint64(b[0:8]))
	y := math.Float64frombits(order.Uint64(b[8:16]))
	next := 16
	var z, m float64
	if flags.Z {
		z = math.Float64frombits(order.Uint64(b[next : next+8]))
		next += 8
	}
	if flags.M {
		m = math.Float64frombits(order.Uint64(b[next : next+8]))
	}
	isNaN := math.IsNaN(x) && math.IsNaN(y) &&
		(!flags.Z || math.IsNaN(z)) && (!flags.M || math.IsNaN(m))
	return geoarray.Point4D{X: x, Y: y, Z: z, M: m}, isNaN
}

func decodeSimpleSeq(
	cur []byte, typ geopb.GeometryType, flags geopb.Flags, srid geopb.SRID, order binary.ByteOrder,
) (geogeom.Geometry, int, error) {
	if len(cur) < 4 {
		return nil, 0, errors.New("geowkb: buffer too short for npoints")
	}
	npoints := order.Uint32(cur[:4])
	pa, n, err := readCoordSeq(cur[4:], flags, npoints, order)
	if err != nil {
		return nil, 0, err
	}

	var g geogeom.Geometry
	switch typ {
	case geopb.LineStringType:
		g = geogeom.NewLineString(srid, flags, pa)
	case geopb.CircularStringType:
		g = geogeom.NewCircularString(srid, flags, pa)
	case geopb.TriangleType:
		g = geogeom.NewTriangle(srid, flags, pa)
	}
	return g, 4 + n, nil
}

// readCoordSeq builds an owned PointArray of npoints coordinates read from
// cur in order, byte-swapping per coordinate when order differs from the
// machine's native order (geoarray.PointArray always stores in native
// order internally).
func readCoordSeq(
	cur []byte, flags geopb.Flags, npoints uint32, order binary.ByteOrder,
) (*geoarray.PointArray, int, error) {
	pointSize := flags.NDims() * 8
	need := int(npoints) * pointSize
	if len(cur) < need {
		return nil, 0, errors.Newf("geowkb: buffer too short for %d coordinates", npoints)
	}
	if err := geopb.CheckAlloc(need); err != nil {
		return nil, 0, err
	}
	pa := geoarray.NewOwned(flags.Z, flags.M, npoints)
	for i := uint32(0); i < npoints; i++ {
		off := int(i) * pointSize
		pt, _ := readPoint(cur[off:off+pointSize], order, flags)
		if err := pa.Set(i, pt); err != nil {
			return nil, 0, err
		}
	}
	return pa, need, nil
}

func decodePolygon(
	cur []byte, flags geopb.Flags, srid geopb.SRID, order binary.ByteOrder,
) (geogeom.Geometry, int, error) {
	if len(cur) < 4 {
		return nil, 0, errors.New("geowkb: buffer too short for nrings")
	}
	nrings := int(order.Uint32(cur[:4]))
	rest := cur[4:]
	consumed := 4

	rings := make([]*geoarray.PointArray, nrings)
	for i := 0; i < nrings; i++ {
		if len(rest) < 4 {
			return nil, 0, errors.New("geowkb: buffer too short for ring npoints")
		}
		npoints := order.Uint32(rest[:4])
		rest = rest[4:]
		consumed += 4

		pa, n, err := readCoordSeq(rest, flags, npoints, order)
		if err != nil {
			return nil, 0, errors.Wrapf(err, "geowkb: decoding ring %d", i)
		}
		rings[i] = pa
		rest = rest[n:]
		consumed += n
	}
	return geogeom.NewPolygon(srid, flags, rings), consumed, nil
}

func decodeCollection(
	cur []byte, typ geopb.GeometryType, flags geopb.Flags, srid geopb.SRID,
	order binary.ByteOrder, depth int,
) (geogeom.Geometry, int, error) {
	if len(cur) < 4 {
		return nil, 0, errors.New("geowkb: buffer too short for ngeoms")
	}
	ngeoms := int(order.Uint32(cur[:4]))
	rest := cur[4:]
	consumed := 4

	children := make([]geogeom.Geometry, ngeoms)
	for i := 0; i < ngeoms; i++ {
		child, n, err := decodeGeom(rest, depth+1, srid, false)
		if err != nil {
			return nil, 0, errors.Wrapf(err, "geowkb: decoding child %d", i)
		}
		if !geogeom.AdmitsChild(typ, child.Type()) {
			return nil, 0, errors.Wrapf(geopb.ErrDisallowedChildType,
				"geowkb: %s cannot contain a %s (child index %d)", typ, child.Type(), i)
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

// decodeNurbs reverses encodeNurbs's ISO-compliant per-control-point
// layout: "[degree][npoints]" then, for each control point,
// "[endian][coords][has_weight][weight?]", then "[nknots][knots]". A
// control point's has_weight=0 means an implicit weight of 1.0; if any
// point in the curve carries an explicit weight, every point's weight
// (explicit or implicit) is recorded, since geogeom.NewNurbsCurve requires
// an all-or-nothing Weights slice.
func decodeNurbs(
	cur []byte, flags geopb.Flags, srid geopb.SRID, order binary.ByteOrder,
) (geogeom.Geometry, int, error) {
	if len(cur) < 8 {
		return nil, 0, errors.New("geowkb: buffer too short for NURBS header")
	}
	degree := order.Uint32(cur[0:4])
	npoints := order.Uint32(cur[4:8])
	rest := cur[8:]
	consumed := 8

	pointSize := flags.NDims() * 8
	points := geoarray.NewOwned(flags.Z, flags.M, npoints)
	weights := make([]float64, npoints)
	anyWeight := false

	for i := uint32(0); i < npoints; i++ {
		if len(rest) < 1 {
			return nil, 0, errors.New("geowkb: buffer too short for NURBS control point endian byte")
		}
		pointOrder, err := orderFromEndianByte(rest[0])
		if err != nil {
			return nil, 0, err
		}
		rest = rest[1:]
		consumed++

		if len(rest) < pointSize {
			return nil, 0, errors.New("geowkb: buffer too short for NURBS control point coordinates")
		}
		pt, _ := readPoint(rest[:pointSize], pointOrder, flags)
		if err := points.Set(i, pt); err != nil {
			return nil, 0, err
		}
		rest = rest[pointSize:]
		consumed += pointSize

		if len(rest) < 1 {
			return nil, 0, errors.New("geowkb: buffer too short for NURBS has_weight byte")
		}
		hasWeight := rest[0]
		rest = rest[1:]
		consumed++

		switch hasWeight {
		case 0:
			weights[i] = 1.0
		case 1:
			if len(rest) < 8 {
				return nil, 0, errors.New("geowkb: buffer too short for NURBS weight")
			}
			weights[i] = math.Float64frombits(pointOrder.Uint64(rest[:8]))
			rest = rest[8:]
			consumed += 8
			anyWeight = true
		default:
			return nil, 0, errors.Newf("geowkb: invalid NURBS has_weight byte %d", hasWeight)
		}
	}

	if len(rest) < 4 {
		return nil, 0, errors.New("geowkb: buffer too short for NURBS nknots")
	}
	nknots := order.Uint32(rest[:4])
	rest = rest[4:]
	consumed += 4

	need := int(nknots) * 8
	if len(rest) < need {
		return nil, 0, errors.New("geowkb: buffer too short for NURBS knots")
	}
	knots := make([]float64, nknots)
	for i := range knots {
		knots[i] = math.Float64frombits(order.Uint64(rest[i*8 : i*8+8]))
	}
	consumed += need

	var weightsArg []float64
	if anyWeight {
		weightsArg = weights
	}

	g, err := geogeom.NewNurbsCurve(srid, nil, degree, points, weightsArg, knots)
	if err != nil {
		return nil, 0, err
	}
	return g, consumed, nil
}
