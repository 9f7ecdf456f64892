// Copyright 2020 The Cockroach Authors.
//
// Use of this software is governed by the Business Source License
// included in the file licenses/BSL.txt.
//
// As of the Change Date specified in that file, in accordance with
// the Business Source License, use of this software will be governed
// by the Apache License, Version 2.0, included in the file
// licenses/APL.txt.

// Package geo contains types that represent spatial objects on a plane or
// sphere. These respectively correspond to the SQL GEOMETRY and GEOGRAPHY
// types.
//
// Subpackages implement the pieces a Geometry/Geography is built from:
//   - geo/geogeom holds the in-memory tagged-variant geometry tree.
//   - geo/geonurbs evaluates and tessellates the NURBS curve variant.
//   - geo/geoserial reads and writes the internal GS2 binary format.
//   - geo/geowkb reads and writes WKB in the SFSQL, ISO, and EXTENDED
//     dialects.
package geo

import (
	"github.com/cockroachdb/errors"
	"github.com/lbartoletti/postgis/pkg/geo/geogeom"
	"github.com/lbartoletti/postgis/pkg/geo/geopb"
)

// Geometry is a planar spatial object: its coordinates are plain Cartesian
// numbers with no associated ellipsoid. It wraps a geogeom.Geometry the way
// the teacher's Region wrapped an s2.Region, but without the type-switch
// awkwardness the teacher's WIP comment complained about: every operation
// here dispatches through geogeom.Geometry's own Type() instead.
type Geometry struct {
	g geogeom.Geometry
}

// Geography is a spatial object expressed on an Earth-centered
// sphere/ellipsoid; its geopb.Flags.Geodetic bit is always set.
type Geography struct {
	g geogeom.Geometry
}

// MakeGeometry wraps g as a Geometry, rejecting a geodetic tree since that
// belongs in a Geography instead.
func MakeGeometry(g geogeom.Geometry) (Geometry, error) {
	if g == nil {
		return Geometry{}, geopb.ErrNilGeometry
	}
	if g.Flags().Geodetic {
		return Geometry{}, errors.New(
			"geo: cannot make a Geometry from a geodetic geogeom.Geometry, use MakeGeography")
	}
	return Geometry{g: g}, nil
}

// MakeGeography wraps g as a Geography, requiring geopb.Flags.Geodetic.
func MakeGeography(g geogeom.Geometry) (Geography, error) {
	if g == nil {
		return Geography{}, geopb.ErrNilGeometry
	}
	if !g.Flags().Geodetic {
		return Geography{}, errors.New(
			"geo: cannot make a Geography from a non-geodetic geogeom.Geometry, use MakeGeometry")
	}
	return Geography{g: g}, nil
}

// AsGeomT exposes the underlying in-memory geometry tree.
func (g Geometry) AsGeomT() geogeom.Geometry { return g.g }

// AsGeomT exposes the underlying in-memory geometry tree.
func (g Geography) AsGeomT() geogeom.Geometry { return g.g }

// SRID returns the spatial reference identifier, or geopb.UnknownSRID.
func (g Geometry) SRID() geopb.SRID { return g.g.SRID() }

// SRID returns the spatial reference identifier, or geopb.UnknownSRID.
func (g Geography) SRID() geopb.SRID { return g.g.SRID() }

// Flags returns the dimensionality/validity flag set.
func (g Geometry) Flags() geopb.Flags { return g.g.Flags() }

// Flags returns the dimensionality/validity flag set.
func (g Geography) Flags() geopb.Flags { return g.g.Flags() }

// BoundingBox returns the cached bounding box, or an error if none has been
// computed yet. Only a bbox stored in the decoded GS2 buffer, or one set
// explicitly with SetBBox (e.g. from geoserial.ComputeBBox), is cached.
func (g Geometry) BoundingBox() (*geopb.BoundingBox, error) { return boundingBoxOf(g.g) }

// BoundingBox returns the cached bounding box, or an error if none has been
// computed yet.
func (g Geography) BoundingBox() (*geopb.BoundingBox, error) { return boundingBoxOf(g.g) }

func boundingBoxOf(g geogeom.Geometry) (*geopb.BoundingBox, error) {
	if g == nil {
		return nil, geopb.ErrNilGeometry
	}
	if bbox := g.BBox(); bbox != nil {
		return bbox, nil
	}
	return nil, errors.New("geo: no bounding box cached on this geometry")
}

// IsEmpty reports whether the geometry has no coordinates.
func (g Geometry) IsEmpty() bool { return g.g.IsEmpty() }

// IsEmpty reports whether the geography has no coordinates.
func (g Geography) IsEmpty() bool { return g.g.IsEmpty() }
