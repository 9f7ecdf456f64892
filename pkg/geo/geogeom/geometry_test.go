// Copyright 2020 The Cockroach Authors.
//
// Use of this software is governed by the Business Source License
// included in the file licenses/BSL.txt.
//
// As of the Change Date specified in that file, in accordance with
// the Business Source License, use of this software will be governed
// by the Apache License, Version 2.0, included in the file
// licenses/APL.txt.

package geogeom

import (
	"testing"

	"github.com/lbartoletti/postgis/pkg/geo/geoarray"
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

func TestAdmitsChild(t *testing.T) {
	require.True(t, AdmitsChild(geopb.MultiPointType, geopb.PointType))
	require.False(t, AdmitsChild(geopb.MultiPointType, geopb.LineStringType))
	require.True(t, AdmitsChild(geopb.MultiPolygonType, geopb.TriangleType))
	require.True(t, AdmitsChild(geopb.GeometryCollectionType, geopb.MultiPolygonType))
	require.False(t, AdmitsChild(geopb.TINType, geopb.PolygonType))
}

func TestNewCollectionRejectsDisallowedChild(t *testing.T) {
	pt := NewPoint(geopb.UnknownSRID, geopb.Flags{}, &geoarray.Point4D{X: 1, Y: 1})
	ls := NewLineString(geopb.UnknownSRID, geopb.Flags{}, mustPointArray(t, false, false))

	_, err := NewCollection(geopb.MultiPointType, geopb.UnknownSRID, geopb.Flags{}, []Geometry{pt, ls})
	require.Error(t, err)
}

func TestNewCollectionGeometryCollectionAdmitsAnything(t *testing.T) {
	pt := NewPoint(geopb.UnknownSRID, geopb.Flags{}, &geoarray.Point4D{X: 1, Y: 1})
	ls := NewLineString(geopb.UnknownSRID, geopb.Flags{},
		mustPointArray(t, false, false, geoarray.Point4D{X: 0, Y: 0}, geoarray.Point4D{X: 1, Y: 1}))

	gc, err := NewCollection(geopb.GeometryCollectionType, geopb.SRID(4326), geopb.Flags{}, []Geometry{pt, ls})
	require.NoError(t, err)
	require.Len(t, Children(gc), 2)
}

func TestCheckDimConsistencyDetectsMismatch(t *testing.T) {
	// A 3D child under a 2D MultiPoint parent.
	child := NewPoint(geopb.UnknownSRID, geopb.Flags{Z: true}, &geoarray.Point4D{X: 1, Y: 1, Z: 1})
	mp, err := NewCollection(geopb.MultiPointType, geopb.UnknownSRID, geopb.Flags{}, []Geometry{child})
	require.NoError(t, err)

	err = CheckDimConsistency(mp)
	require.Error(t, err)
}

func TestCheckDimConsistencyAcceptsMatchingDims(t *testing.T) {
	flags := geopb.Flags{Z: true}
	child := NewPoint(geopb.UnknownSRID, flags, &geoarray.Point4D{X: 1, Y: 1, Z: 1})
	mp, err := NewCollection(geopb.MultiPointType, geopb.UnknownSRID, flags, []Geometry{child})
	require.NoError(t, err)

	require.NoError(t, CheckDimConsistency(mp))
}

func TestClonePointDeepCopiesCoordinates(t *testing.T) {
	pt := NewPoint(geopb.SRID(4326), geopb.Flags{}, &geoarray.Point4D{X: 1, Y: 2})
	clone := pt.Clone().(*Point)

	require.NoError(t, clone.Points.Set(0, geoarray.Point4D{X: 99, Y: 99}))
	require.Equal(t, 1.0, pt.Points.Get(0).X)
	require.Equal(t, geopb.SRID(4326), clone.SRID())
}

func TestCloneCollectionDeepCopiesChildren(t *testing.T) {
	pt := NewPoint(geopb.UnknownSRID, geopb.Flags{}, &geoarray.Point4D{X: 1, Y: 1})
	mp, err := NewCollection(geopb.MultiPointType, geopb.SRID(4326), geopb.Flags{}, []Geometry{pt})
	require.NoError(t, err)

	clone := mp.Clone()
	cloneChild := Children(clone)[0].(*Point)
	require.NoError(t, cloneChild.Points.Set(0, geoarray.Point4D{X: 42, Y: 42}))

	origChild := Children(mp)[0].(*Point)
	require.Equal(t, 1.0, origChild.Points.Get(0).X)
}

func TestNewPointEmpty(t *testing.T) {
	pt := NewPoint(geopb.UnknownSRID, geopb.Flags{}, nil)
	require.True(t, pt.IsEmpty())
}
