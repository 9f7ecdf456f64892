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

import "github.com/lbartoletti/postgis/pkg/geo/geopb"

// admissibleChildren is the collection admissibility table from spec.md §6,
// checked by decoders (spec.md §4.E: "Refuses child types not allowed by
// the parent collection type and reports which pair failed") and by
// NewCollection for tree construction from scratch.
var admissibleChildren = map[geopb.GeometryType]map[geopb.GeometryType]bool{
	geopb.MultiPointType: {
		geopb.PointType: true,
	},
	geopb.MultiLineStringType: {
		geopb.LineStringType: true,
	},
	geopb.MultiPolygonType: {
		geopb.PolygonType:  true,
		geopb.TriangleType: true,
	},
	geopb.MultiCurveType: {
		geopb.LineStringType:     true,
		geopb.CircularStringType: true,
		geopb.CompoundCurveType:  true,
	},
	geopb.MultiSurfaceType: {
		geopb.PolygonType:      true,
		geopb.CurvePolygonType: true,
	},
	geopb.CurvePolygonType: {
		geopb.LineStringType:     true,
		geopb.CircularStringType: true,
		geopb.CompoundCurveType:  true,
	},
	geopb.CompoundCurveType: {
		geopb.LineStringType:     true,
		geopb.CircularStringType: true,
	},
	geopb.PolyhedralSurfaceType: {
		geopb.PolygonType: true,
	},
	geopb.TINType: {
		geopb.TriangleType: true,
	},
	// GeometryCollectionType admits any geometry type: absence from this
	// map is handled explicitly in AdmitsChild rather than enumerating
	// every GeometryType here.
}

// AdmitsChild reports whether a collection of type parent may contain a
// child of type child, per the table in spec.md §6.
func AdmitsChild(parent, child geopb.GeometryType) bool {
	if parent == geopb.GeometryCollectionType {
		return true
	}
	allowed, ok := admissibleChildren[parent]
	if !ok {
		return false
	}
	return allowed[child]
}
