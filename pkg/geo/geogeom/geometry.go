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
	"github.com/cockroachdb/errors"
	"github.com/lbartoletti/postgis/pkg/geo/geoarray"
	"github.com/lbartoletti/postgis/pkg/geo/geopb"
)

// Geometry is the tagged-variant geometry tree spec.md §3 describes: every
// implementation carries an SRID, a dimensionality flag set, an optional
// cached bounding box, and a variant-specific payload. Operations dispatch
// on Type() rather than on a language-level downcast, per spec.md §9's
// "opaque base + downcast" re-architecture note.
type Geometry interface {
	// Type identifies which variant this value is.
	Type() geopb.GeometryType
	// SRID returns the geometry's spatial reference identifier.
	SRID() geopb.SRID
	// SetSRID overwrites the geometry's SRID in place.
	SetSRID(geopb.SRID)
	// Flags returns the geometry's dimensionality/validity flag set.
	Flags() geopb.Flags
	// BBox returns the geometry's cached bounding box, or nil if none is
	// cached.
	BBox() *geopb.BoundingBox
	// SetBBox overwrites the geometry's cached bounding box in place.
	SetBBox(*geopb.BoundingBox)
	// IsEmpty reports whether the geometry has zero coordinates (and, for
	// collections, zero children).
	IsEmpty() bool
	// Clone returns a deep copy: every point array, weight/knot slice, and
	// bounding box is copied, never shared with the original (spec.md §3:
	// "a clone operation deep-copies all buffers").
	Clone() Geometry
}

// base holds the fields every Geometry variant carries, embedded by value in
// each concrete type so Type()-based dispatch never needs a common
// superclass pointer.
type base struct {
	srid  geopb.SRID
	flags geopb.Flags
	bbox  *geopb.BoundingBox
}

func (b *base) SRID() geopb.SRID             { return b.srid }
func (b *base) SetSRID(s geopb.SRID)         { b.srid = s }
func (b *base) Flags() geopb.Flags           { return b.flags }
func (b *base) BBox() *geopb.BoundingBox     { return b.bbox }
func (b *base) SetBBox(bb *geopb.BoundingBox) { b.bbox = bb }

// Point holds 0 or 1 coordinate.
type Point struct {
	base
	Points *geoarray.PointArray
}

func (g *Point) Type() geopb.GeometryType { return geopb.PointType }
func (g *Point) IsEmpty() bool            { return g.Points == nil || g.Points.NPoints == 0 }

// NewPoint constructs a Point from an optional single coordinate. If p is
// nil the result is an empty point.
func NewPoint(srid geopb.SRID, flags geopb.Flags, p *geoarray.Point4D) *Point {
	pt := &Point{base: base{srid: srid, flags: flags}}
	if p == nil {
		pt.Points = geoarray.NewOwned(flags.Z, flags.M, 0)
		return pt
	}
	pt.Points = geoarray.NewOwned(flags.Z, flags.M, 1)
	_ = pt.Points.Set(0, *p)
	return pt
}

// LineString is an ordered sequence of coordinates (possibly empty).
type LineString struct {
	base
	Points *geoarray.PointArray
}

func (g *LineString) Type() geopb.GeometryType { return geopb.LineStringType }
func (g *LineString) IsEmpty() bool             { return g.Points == nil || g.Points.NPoints == 0 }

// NewLineString wraps an existing PointArray as a LineString, taking
// ownership of points the way the constructor functions in
// original_source/liblwgeom take ownership of a POINTARRAY*.
func NewLineString(srid geopb.SRID, flags geopb.Flags, points *geoarray.PointArray) *LineString {
	return &LineString{base: base{srid: srid, flags: flags}, Points: points}
}

// CircularString is an ordered sequence of coordinates interpreted as a
// chain of circular arcs (every 3 consecutive points describe one arc).
type CircularString struct {
	base
	Points *geoarray.PointArray
}

func (g *CircularString) Type() geopb.GeometryType { return geopb.CircularStringType }
func (g *CircularString) IsEmpty() bool             { return g.Points == nil || g.Points.NPoints == 0 }

// Triangle is exactly one closed ring of coordinates (first point equals
// last). It serializes as a polygon with exactly one ring (spec.md §3).
type Triangle struct {
	base
	Points *geoarray.PointArray
}

func (g *Triangle) Type() geopb.GeometryType { return geopb.TriangleType }
func (g *Triangle) IsEmpty() bool            { return g.Points == nil || g.Points.NPoints == 0 }

// Polygon is an ordered sequence of rings; ring 0 is the outer ring.
type Polygon struct {
	base
	Rings []*geoarray.PointArray
}

func (g *Polygon) Type() geopb.GeometryType { return geopb.PolygonType }
func (g *Polygon) IsEmpty() bool            { return len(g.Rings) == 0 }

// multi is the shared shape of every collection-like variant: an ordered
// sequence of sub-geometries. Each concrete collection type wraps multi and
// reports its own Type(); admissibility of its children is enforced by
// admissible.go, not by the Go type system, because spec.md §6's
// admissibility table is a runtime decode-time check, not a compile-time
// one (a GeometryCollection admits "any", so the types can't differ at
// this layer).
type multi struct {
	base
	Geoms []Geometry
}

func (g *multi) IsEmpty() bool { return len(g.Geoms) == 0 }

// MultiPoint admits only Point children.
type MultiPoint struct{ multi }

func (g *MultiPoint) Type() geopb.GeometryType { return geopb.MultiPointType }

// MultiLineString admits only LineString children.
type MultiLineString struct{ multi }

func (g *MultiLineString) Type() geopb.GeometryType { return geopb.MultiLineStringType }

// MultiPolygon admits Polygon and Triangle children.
type MultiPolygon struct{ multi }

func (g *MultiPolygon) Type() geopb.GeometryType { return geopb.MultiPolygonType }

// MultiCurve admits LineString, CircularString, and CompoundCurve children.
type MultiCurve struct{ multi }

func (g *MultiCurve) Type() geopb.GeometryType { return geopb.MultiCurveType }

// MultiSurface admits Polygon and CurvePolygon children.
type MultiSurface struct{ multi }

func (g *MultiSurface) Type() geopb.GeometryType { return geopb.MultiSurfaceType }

// CompoundCurve admits LineString and CircularString children, forming one
// continuous curve end-to-end.
type CompoundCurve struct{ multi }

func (g *CompoundCurve) Type() geopb.GeometryType { return geopb.CompoundCurveType }

// CurvePolygon admits LineString, CircularString, and CompoundCurve
// children as its rings; ring 0 is the outer ring.
type CurvePolygon struct{ multi }

func (g *CurvePolygon) Type() geopb.GeometryType { return geopb.CurvePolygonType }

// GeometryCollection admits any geometry type as a child.
type GeometryCollection struct{ multi }

func (g *GeometryCollection) Type() geopb.GeometryType { return geopb.GeometryCollectionType }

// PolyhedralSurface admits only Polygon children, each a face of the
// surface.
type PolyhedralSurface struct{ multi }

func (g *PolyhedralSurface) Type() geopb.GeometryType { return geopb.PolyhedralSurfaceType }

// TIN admits only Triangle children.
type TIN struct{ multi }

func (g *TIN) Type() geopb.GeometryType { return geopb.TINType }

// NewCollection constructs a collection of typ (one of the Multi*, Compound,
// CurvePolygon, GeometryCollection, PolyhedralSurface, or TIN types) from
// already-validated children. It returns an error if any child fails
// AdmitsChild(typ, child.Type()).
func NewCollection(typ geopb.GeometryType, srid geopb.SRID, flags geopb.Flags, children []Geometry) (Geometry, error) {
	for i, c := range children {
		if !AdmitsChild(typ, c.Type()) {
			return nil, errors.Wrapf(geopb.ErrDisallowedChildType,
				"%s cannot contain a %s (child index %d)", typ, c.Type(), i)
		}
	}
	m := multi{base: base{srid: srid, flags: flags}, Geoms: children}
	switch typ {
	case geopb.MultiPointType:
		return &MultiPoint{m}, nil
	case geopb.MultiLineStringType:
		return &MultiLineString{m}, nil
	case geopb.MultiPolygonType:
		return &MultiPolygon{m}, nil
	case geopb.MultiCurveType:
		return &MultiCurve{m}, nil
	case geopb.MultiSurfaceType:
		return &MultiSurface{m}, nil
	case geopb.CompoundCurveType:
		return &CompoundCurve{m}, nil
	case geopb.CurvePolygonType:
		return &CurvePolygon{m}, nil
	case geopb.GeometryCollectionType:
		return &GeometryCollection{m}, nil
	case geopb.PolyhedralSurfaceType:
		return &PolyhedralSurface{m}, nil
	case geopb.TINType:
		return &TIN{m}, nil
	default:
		return nil, errors.Wrapf(geopb.ErrUnsupportedType, "%s is not a collection type", typ)
	}
}

// Children returns g's sub-geometries if it is a collection type, or nil
// otherwise. Used by encoders/decoders that need to walk the tree generically
// without a type switch over every concrete collection type.
func Children(g Geometry) []Geometry {
	switch g := g.(type) {
	case *MultiPoint:
		return g.Geoms
	case *MultiLineString:
		return g.Geoms
	case *MultiPolygon:
		return g.Geoms
	case *MultiCurve:
		return g.Geoms
	case *MultiSurface:
		return g.Geoms
	case *CompoundCurve:
		return g.Geoms
	case *CurvePolygon:
		return g.Geoms
	case *GeometryCollection:
		return g.Geoms
	case *PolyhedralSurface:
		return g.Geoms
	case *TIN:
		return g.Geoms
	default:
		return nil
	}
}
