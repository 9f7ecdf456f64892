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

func TestSizeIsExact(t *testing.T) {
	ls := geogeom.NewLineString(geopb.SRID(4326), geopb.Flags{},
		mustPointArray(t, false, false, geoarray.Point4D{X: 0, Y: 0}, geoarray.Point4D{X: 10, Y: 5}))

	predicted, err := Size(ls)
	require.NoError(t, err)

	encoded, err := Encode(ls, EncodeOptions{})
	require.NoError(t, err)
	require.Equal(t, predicted, len(encoded))
}

func TestRoundTripPoint(t *testing.T) {
	pt := geogeom.NewPoint(geopb.SRID(4326), geopb.Flags{}, &geoarray.Point4D{X: 1, Y: 2})

	encoded, err := Encode(pt, EncodeOptions{})
	require.NoError(t, err)

	decoded, err := Decode(encoded)
	require.NoError(t, err)

	got, ok := decoded.(*geogeom.Point)
	require.True(t, ok)
	require.Equal(t, geopb.SRID(4326), got.SRID())
	require.Equal(t, uint32(1), got.Points.NPoints)
	p := got.Points.Get(0)
	require.Equal(t, 1.0, p.X)
	require.Equal(t, 2.0, p.Y)
}

func TestRoundTripPolygon(t *testing.T) {
	outer := mustPointArray(t, false, false,
		geoarray.Point4D{X: 0, Y: 0}, geoarray.Point4D{X: 10, Y: 0},
		geoarray.Point4D{X: 10, Y: 10}, geoarray.Point4D{X: 0, Y: 0})
	poly := geogeom.NewPolygon(geopb.UnknownSRID, geopb.Flags{}, []*geoarray.PointArray{outer})

	encoded, err := Encode(poly, EncodeOptions{})
	require.NoError(t, err)

	decoded, err := Decode(encoded)
	require.NoError(t, err)

	got, ok := decoded.(*geogeom.Polygon)
	require.True(t, ok)
	require.Len(t, got.Rings, 1)
	require.Equal(t, uint32(4), got.Rings[0].NPoints)
}

func TestRoundTripOddRingCountPolygonPad(t *testing.T) {
	ring := func() *geoarray.PointArray {
		return mustPointArray(t, false, false,
			geoarray.Point4D{X: 0, Y: 0}, geoarray.Point4D{X: 1, Y: 0}, geoarray.Point4D{X: 0, Y: 0})
	}
	poly := geogeom.NewPolygon(geopb.UnknownSRID, geopb.Flags{}, []*geoarray.PointArray{ring(), ring(), ring()})

	predicted, err := Size(poly)
	require.NoError(t, err)
	encoded, err := Encode(poly, EncodeOptions{})
	require.NoError(t, err)
	require.Equal(t, predicted, len(encoded))

	decoded, err := Decode(encoded)
	require.NoError(t, err)
	got := decoded.(*geogeom.Polygon)
	require.Len(t, got.Rings, 3)
}

func TestRoundTripCollectionSRIDInheritance(t *testing.T) {
	l1 := geogeom.NewLineString(geopb.UnknownSRID, geopb.Flags{},
		mustPointArray(t, false, false, geoarray.Point4D{X: 0, Y: 0}, geoarray.Point4D{X: 1, Y: 1}))
	l2 := geogeom.NewLineString(geopb.UnknownSRID, geopb.Flags{},
		mustPointArray(t, false, false, geoarray.Point4D{X: 2, Y: 2}, geoarray.Point4D{X: 3, Y: 3}))

	mls, err := geogeom.NewCollection(geopb.MultiLineStringType, geopb.SRID(4326), geopb.Flags{},
		[]geogeom.Geometry{l1, l2})
	require.NoError(t, err)

	encoded, err := Encode(mls, EncodeOptions{})
	require.NoError(t, err)

	decoded, err := Decode(encoded)
	require.NoError(t, err)
	got, ok := decoded.(*geogeom.MultiLineString)
	require.True(t, ok)
	require.Equal(t, geopb.SRID(4326), got.SRID())

	children := geogeom.Children(got)
	require.Len(t, children, 2)
	for _, c := range children {
		require.Equal(t, geopb.SRID(4326), c.SRID())
	}
}

// TestDecodeRejectsDisallowedChildType hand-assembles a MultiPoint whose
// lone child is a LineString — a shape geogeom.NewCollection's own
// constructor would refuse to build — to exercise the decoder's
// admissibility check directly (spec.md §4.E: "Refuses child types not
// allowed by the parent collection type").
func TestDecodeRejectsDisallowedChildType(t *testing.T) {
	ls := geogeom.NewLineString(geopb.UnknownSRID, geopb.Flags{},
		mustPointArray(t, false, false, geoarray.Point4D{X: 0, Y: 0}, geoarray.Point4D{X: 1, Y: 1}))

	childSize, err := payloadSize(ls)
	require.NoError(t, err)

	payload := make([]byte, 8+childSize)
	binary.NativeEndian.PutUint32(payload[0:4], uint32(geopb.MultiPointType))
	binary.NativeEndian.PutUint32(payload[4:8], 1)
	n, err := encodePayload(payload[8:], ls)
	require.NoError(t, err)
	require.Equal(t, childSize, n)

	buf := make([]byte, 8+len(payload))
	binary.NativeEndian.PutUint32(buf[0:4], uint32(len(buf)))
	require.NoError(t, PutSRID(buf[4:7], geopb.UnknownSRID))
	buf[7] = byte(NewGFlags(geopb.Flags{}, false))
	copy(buf[8:], payload)

	_, err = Decode(buf)
	require.Error(t, err)
}

func TestRoundTripNurbs(t *testing.T) {
	points := mustPointArray(t, false, false,
		geoarray.Point4D{X: 0, Y: 0}, geoarray.Point4D{X: 1, Y: 1}, geoarray.Point4D{X: 2, Y: 0})
	curve, err := geogeom.NewNurbsCurve(geopb.SRID(3857), nil, 2, points, []float64{1, 2, 1}, nil)
	require.NoError(t, err)

	encoded, err := Encode(curve, EncodeOptions{})
	require.NoError(t, err)

	decoded, err := Decode(encoded)
	require.NoError(t, err)
	got, ok := decoded.(*geogeom.NurbsCurve)
	require.True(t, ok)
	require.Equal(t, geopb.SRID(3857), got.SRID())
	require.Equal(t, uint32(2), got.Degree)
	require.Equal(t, []float64{1, 2, 1}, got.Weights)
	require.Equal(t, uint32(3), got.Points.NPoints)
}

func TestRoundTripWithComputedBBox(t *testing.T) {
	ls := geogeom.NewLineString(geopb.UnknownSRID, geopb.Flags{},
		mustPointArray(t, false, false, geoarray.Point4D{X: 0, Y: 0}, geoarray.Point4D{X: 10, Y: 5}))

	encoded, err := Encode(ls, EncodeOptions{ComputeBBoxIfAbsent: true})
	require.NoError(t, err)

	decoded, err := Decode(encoded)
	require.NoError(t, err)
	bbox := decoded.BBox()
	require.NotNil(t, bbox)
	require.LessOrEqual(t, bbox.XMin, float32(0))
	require.GreaterOrEqual(t, bbox.XMax, float32(10))
}

func TestDecodeOwnedDetachesFromBuffer(t *testing.T) {
	pt := geogeom.NewPoint(geopb.UnknownSRID, geopb.Flags{}, &geoarray.Point4D{X: 5, Y: 6})
	encoded, err := Encode(pt, EncodeOptions{})
	require.NoError(t, err)

	decoded, err := DecodeOwned(encoded)
	require.NoError(t, err)
	got := decoded.(*geogeom.Point)
	require.True(t, got.Points.Owned())
}
