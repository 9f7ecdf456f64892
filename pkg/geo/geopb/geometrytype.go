// Copyright 2020 The Cockroach Authors.
//
// Use of this software is governed by the Business Source License
// included in the file licenses/BSL.txt.
//
// As of the Change Date specified in that file, in accordance with
// the Business Source License, use of this software will be governed
// by the Apache License, Version 2.0, included in the file
// licenses/APL.txt.

package geopb

// GeometryType discriminates the variants of the tagged-union Geometry tree
// (geogeom.Geometry). Its numeric values double as the base WKB/GS2 "type"
// word (spec.md §4.D, §6): SFSQL/ISO/EXTENDED dimension offsets and flags
// are applied on top of these base values, never in place of them.
//
// Values 1-17 follow the OGC SFSQL/ISO 13249-3 numbering so SFSQL/ISO WKB
// type codes match this module's GeometryType numerically with no
// translation table. NurbsCurveType has no OGC analog; spec.md §6 calls it
// "a reserved numeric code" without specifying one, so this module picks
// 100 — comfortably clear of the current and any foreseeable OGC range —
// and documents the choice here rather than leaving it implicit.
type GeometryType uint32

const (
	UnknownType GeometryType = 0

	PointType              GeometryType = 1
	LineStringType         GeometryType = 2
	PolygonType            GeometryType = 3
	MultiPointType         GeometryType = 4
	MultiLineStringType    GeometryType = 5
	MultiPolygonType       GeometryType = 6
	GeometryCollectionType GeometryType = 7
	CircularStringType     GeometryType = 8
	CompoundCurveType      GeometryType = 9
	CurvePolygonType       GeometryType = 10
	MultiCurveType         GeometryType = 11
	MultiSurfaceType       GeometryType = 12
	PolyhedralSurfaceType  GeometryType = 15
	TINType                GeometryType = 16
	TriangleType           GeometryType = 17

	// NurbsCurveType is this module's reserved, non-OGC type code for a
	// NurbsCurve geometry. See the type's doc comment above.
	NurbsCurveType GeometryType = 100
)

// String returns the type's conventional SQL/WKT name, used in error
// messages the way the spec requires ("unsupported geometry type (fatal
// with type name)", spec.md §4.G).
func (t GeometryType) String() string {
	switch t {
	case PointType:
		return "Point"
	case LineStringType:
		return "LineString"
	case PolygonType:
		return "Polygon"
	case MultiPointType:
		return "MultiPoint"
	case MultiLineStringType:
		return "MultiLineString"
	case MultiPolygonType:
		return "MultiPolygon"
	case GeometryCollectionType:
		return "GeometryCollection"
	case CircularStringType:
		return "CircularString"
	case CompoundCurveType:
		return "CompoundCurve"
	case CurvePolygonType:
		return "CurvePolygon"
	case MultiCurveType:
		return "MultiCurve"
	case MultiSurfaceType:
		return "MultiSurface"
	case PolyhedralSurfaceType:
		return "PolyhedralSurface"
	case TINType:
		return "TIN"
	case TriangleType:
		return "Triangle"
	case NurbsCurveType:
		return "NurbsCurve"
	default:
		return "Unknown"
	}
}
