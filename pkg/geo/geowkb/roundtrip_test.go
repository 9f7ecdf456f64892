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
	"strings"
	"testing"

	"github.com/lbartoletti/postgis/pkg/geo/geoarray"
	"github.com/lbartoletti/postgis/pkg/geo/geogeom"
	"github.com/lbartoletti/postgis/pkg/geo/geopb"
	"github.com/stretchr/testify/require"
)

func mustPointArray(t *testing.T, z, m bool, pts ...geoarray.Point4D) *geoarray.PointArray {
	pa := geoarray.NewOwned(z, m, uint32(len(pts)))
	for i, p := range pts {
		require.NoError(t, pa.Set(uint32(i), p))
	}
	return pa
}

// TestScenarioS1PointLiteral checks spec.md S1: POINT(1 2) in SFSQL/NDR
// encodes to the documented literal hex string.
func TestScenarioS1PointLiteral(t *testing.T) {
	pt := geogeom.NewPoint(geopb.UnknownSRID, geopb.Flags{}, &geoarray.Point4D{X: 1, Y: 2})

	encoded, err := Encode(pt, WithDialect(SFSQL), WithByteOrder(NDR))
	require.NoError(t, err)
	require.Equal(t, "0101000000000000000000F03F0000000000000040", EncodeHex(encoded))

	decoded, err := Decode(encoded)
	require.NoError(t, err)
	got, ok := decoded.(*geogeom.Point)
	require.True(t, ok)
	p := got.Points.Get(0)
	require.Equal(t, 1.0, p.X)
	require.Equal(t, 2.0, p.Y)
}

func TestRoundTripPointAllDialectsAndOrders(t *testing.T) {
	pt := geogeom.NewPoint(geopb.SRID(4326), geopb.Flags{}, &geoarray.Point4D{X: 1, Y: 2})

	for _, dialect := range []Dialect{SFSQL, ISO, Extended} {
		for _, order := range []ByteOrder{NDR, XDR} {
			encoded, err := Encode(pt, WithDialect(dialect), WithByteOrder(order))
			require.NoError(t, err)

			decoded, err := Decode(encoded)
			require.NoError(t, err)
			got, ok := decoded.(*geogeom.Point)
			require.True(t, ok)
			p := got.Points.Get(0)
			require.Equal(t, 1.0, p.X)
			require.Equal(t, 2.0, p.Y)

			if dialect == Extended {
				require.Equal(t, geopb.SRID(4326), got.SRID())
			}
		}
	}
}

func TestRoundTripPointZM(t *testing.T) {
	flags := geopb.Flags{Z: true, M: true}
	pt := geogeom.NewPoint(geopb.UnknownSRID, flags, &geoarray.Point4D{X: 1, Y: 2, Z: 3, M: 4})

	encoded, err := Encode(pt, WithDialect(ISO))
	require.NoError(t, err)

	decoded, err := Decode(encoded)
	require.NoError(t, err)
	got, ok := decoded.(*geogeom.Point)
	require.True(t, ok)
	p := got.Points.Get(0)
	require.Equal(t, 1.0, p.X)
	require.Equal(t, 2.0, p.Y)
	require.Equal(t, 3.0, p.Z)
	require.Equal(t, 4.0, p.M)
}

// TestScenarioS2EmptyPoint checks spec.md S2: an empty point encodes as the
// 4-byte npoints=0 marker in SFSQL/ISO but as all-NaN coordinates in
// Extended, and both forms decode back to an empty point.
func TestScenarioS2EmptyPoint(t *testing.T) {
	empty := geogeom.NewPointFromArray(geopb.UnknownSRID, geopb.Flags{}, geoarray.NewOwned(false, false, 0))

	isoEncoded, err := Encode(empty, WithDialect(ISO))
	require.NoError(t, err)
	require.Len(t, isoEncoded, 1+4+4)

	decoded, err := Decode(isoEncoded)
	require.NoError(t, err)
	got, ok := decoded.(*geogeom.Point)
	require.True(t, ok)
	require.True(t, got.IsEmpty())

	extEncoded, err := Encode(empty, WithDialect(Extended))
	require.NoError(t, err)
	require.Len(t, extEncoded, 1+4+16)

	decoded, err = Decode(extEncoded)
	require.NoError(t, err)
	got, ok = decoded.(*geogeom.Point)
	require.True(t, ok)
	require.True(t, got.IsEmpty())
}

func TestRoundTripLineString(t *testing.T) {
	ls := geogeom.NewLineString(geopb.SRID(4326), geopb.Flags{},
		mustPointArray(t, false, false, geoarray.Point4D{X: 0, Y: 0}, geoarray.Point4D{X: 10, Y: 5}))

	predicted, err := Size(ls, NewOptions(WithDialect(Extended)))
	require.NoError(t, err)

	encoded, err := Encode(ls, WithDialect(Extended))
	require.NoError(t, err)
	require.Equal(t, predicted, len(encoded))

	decoded, err := Decode(encoded)
	require.NoError(t, err)
	got, ok := decoded.(*geogeom.LineString)
	require.True(t, ok)
	require.Equal(t, geopb.SRID(4326), got.SRID())
	require.Equal(t, uint32(2), got.Points.NPoints)
	require.Equal(t, 10.0, got.Points.Get(1).X)
}

// TestSFSQLDiscardsZM checks spec.md §9's documented asymmetry: SFSQL
// encoding of a 3D LineString writes 2D coordinates only, while ISO/Extended
// preserve Z, matching original_source/liblwgeom/lwout_wkb.c's
// ptarray_to_wkb_buf ("SFSQL is always 2-d").
func TestSFSQLDiscardsZM(t *testing.T) {
	ls := geogeom.NewLineString(geopb.UnknownSRID, geopb.Flags{Z: true},
		mustPointArray(t, true, false,
			geoarray.Point4D{X: 0, Y: 0, Z: 1}, geoarray.Point4D{X: 10, Y: 5, Z: 2}))

	sfsqlEncoded, err := Encode(ls, WithDialect(SFSQL))
	require.NoError(t, err)
	// endian(1) + type(4) + npoints(4) + 2 points * 2 dims * 8 bytes.
	require.Len(t, sfsqlEncoded, 1+4+4+2*2*8)

	isoEncoded, err := Encode(ls, WithDialect(ISO))
	require.NoError(t, err)
	// Z adds one more ordinate per point than the SFSQL encoding.
	require.Len(t, isoEncoded, 1+4+4+2*3*8)

	decoded, err := Decode(isoEncoded)
	require.NoError(t, err)
	got, ok := decoded.(*geogeom.LineString)
	require.True(t, ok)
	require.Equal(t, 1.0, got.Points.Get(0).Z)
}

func TestRoundTripPolygon(t *testing.T) {
	outer := mustPointArray(t, false, false,
		geoarray.Point4D{X: 0, Y: 0}, geoarray.Point4D{X: 10, Y: 0},
		geoarray.Point4D{X: 10, Y: 10}, geoarray.Point4D{X: 0, Y: 0})
	poly := geogeom.NewPolygon(geopb.UnknownSRID, geopb.Flags{}, []*geoarray.PointArray{outer})

	encoded, err := Encode(poly, WithDialect(SFSQL))
	require.NoError(t, err)

	decoded, err := Decode(encoded)
	require.NoError(t, err)
	got, ok := decoded.(*geogeom.Polygon)
	require.True(t, ok)
	require.Len(t, got.Rings, 1)
	require.Equal(t, uint32(4), got.Rings[0].NPoints)
}

// TestScenarioS7CollectionSRIDInheritance checks that a collection's
// children, which never carry their own SRID on the wire, inherit the
// parent's SRID on decode.
func TestScenarioS7CollectionSRIDInheritance(t *testing.T) {
	p1 := geogeom.NewPoint(geopb.SRID(9999), geopb.Flags{}, &geoarray.Point4D{X: 1, Y: 1})
	p2 := geogeom.NewPoint(geopb.SRID(9999), geopb.Flags{}, &geoarray.Point4D{X: 2, Y: 2})
	mp, err := geogeom.NewCollection(geopb.MultiPointType, geopb.SRID(4326), geopb.Flags{},
		[]geogeom.Geometry{p1, p2})
	require.NoError(t, err)

	encoded, err := Encode(mp, WithDialect(Extended))
	require.NoError(t, err)

	decoded, err := Decode(encoded)
	require.NoError(t, err)
	require.Equal(t, geopb.SRID(4326), decoded.SRID())

	children := geogeom.Children(decoded)
	require.Len(t, children, 2)
	for _, c := range children {
		require.Equal(t, geopb.SRID(4326), c.SRID())
	}
}

func TestRoundTripNurbsCurve(t *testing.T) {
	points := mustPointArray(t, false, false,
		geoarray.Point4D{X: 0, Y: 0}, geoarray.Point4D{X: 1, Y: 1},
		geoarray.Point4D{X: 2, Y: 0}, geoarray.Point4D{X: 3, Y: 1})
	curve, err := geogeom.NewNurbsCurve(geopb.UnknownSRID, nil, 2, points, nil, nil)
	require.NoError(t, err)

	encoded, err := Encode(curve, WithDialect(ISO))
	require.NoError(t, err)

	decoded, err := Decode(encoded)
	require.NoError(t, err)
	got, ok := decoded.(*geogeom.NurbsCurve)
	require.True(t, ok)
	require.Equal(t, uint32(2), got.Degree)
	require.Equal(t, uint32(4), got.Points.NPoints)
	require.False(t, got.HasWeights())
	require.True(t, got.HasKnots())
}

func TestRoundTripNurbsCurveWithWeights(t *testing.T) {
	points := mustPointArray(t, false, false,
		geoarray.Point4D{X: 0, Y: 0}, geoarray.Point4D{X: 1, Y: 1}, geoarray.Point4D{X: 2, Y: 0})
	curve, err := geogeom.NewNurbsCurve(geopb.UnknownSRID, nil, 2, points, []float64{1, 2, 1}, nil)
	require.NoError(t, err)

	encoded, err := Encode(curve, WithDialect(ISO))
	require.NoError(t, err)

	decoded, err := Decode(encoded)
	require.NoError(t, err)
	got, ok := decoded.(*geogeom.NurbsCurve)
	require.True(t, ok)
	require.True(t, got.HasWeights())
	require.Equal(t, []float64{1, 2, 1}, got.Weights)
}

// TestNurbsDefaultWeightOmitted checks spec.md §4.G's "a default weight of
// 1.0 is not emitted (has_weight=0)", even for a single point inside an
// otherwise-weighted curve, matching
// original_source/liblwgeom/lwout_wkb.c's lwnurbscurve_to_wkb_buf.
func TestNurbsDefaultWeightOmitted(t *testing.T) {
	points := mustPointArray(t, false, false,
		geoarray.Point4D{X: 0, Y: 0}, geoarray.Point4D{X: 1, Y: 1}, geoarray.Point4D{X: 2, Y: 0})
	curve, err := geogeom.NewNurbsCurve(geopb.UnknownSRID, nil, 2, points, []float64{1, 2, 1}, nil)
	require.NoError(t, err)

	predicted, err := Size(curve, NewOptions(WithDialect(ISO)))
	require.NoError(t, err)
	encoded, err := Encode(curve, WithDialect(ISO))
	require.NoError(t, err)
	require.Equal(t, predicted, len(encoded))

	// Control points 0 and 2 carry the implicit weight 1.0 and must not
	// spend a has_weight byte + 8-byte weight; only point 1 (weight 2) does.
	// [endian(1)][type(4)][degree(4)][npoints(4)] then per point [endian(1)][16 coord bytes][has_weight(1)][weight(8)?].
	header := 1 + 4 + 4 + 4
	point0HasWeight := encoded[header+1+16]
	require.EqualValues(t, 0, point0HasWeight)
	point1HasWeight := encoded[header+(1+16+1)+1+16]
	require.EqualValues(t, 1, point1HasWeight)

	decoded, err := Decode(encoded)
	require.NoError(t, err)
	got, ok := decoded.(*geogeom.NurbsCurve)
	require.True(t, ok)
	require.Equal(t, []float64{1, 2, 1}, got.Weights)
}

func TestRoundTripHex(t *testing.T) {
	pt := geogeom.NewPoint(geopb.SRID(4326), geopb.Flags{}, &geoarray.Point4D{X: 1, Y: 2})

	encoded, err := Encode(pt, WithDialect(Extended), WithHex())
	require.NoError(t, err)
	s := string(encoded)
	require.Equal(t, strings.ToUpper(s), s)

	decoded, err := DecodeHexString(s)
	require.NoError(t, err)
	got, ok := decoded.(*geogeom.Point)
	require.True(t, ok)
	require.Equal(t, geopb.SRID(4326), got.SRID())
}

func TestDecodeTrailingBytesRejected(t *testing.T) {
	pt := geogeom.NewPoint(geopb.UnknownSRID, geopb.Flags{}, &geoarray.Point4D{X: 1, Y: 2})
	encoded, err := Encode(pt, WithDialect(SFSQL))
	require.NoError(t, err)

	_, err = Decode(append(encoded, 0x00))
	require.Error(t, err)
}

func TestDecodeInvalidEndianByte(t *testing.T) {
	_, err := Decode([]byte{2, 0, 0, 0, 0})
	require.Error(t, err)
}
