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
	"github.com/lbartoletti/postgis/pkg/geo/geoarray"
	"github.com/lbartoletti/postgis/pkg/geo/geogeom"
	"github.com/lbartoletti/postgis/pkg/geo/geopb"
)

// ComputeBBox walks every coordinate reachable from g and returns the
// outward-rounded bounding box geopb.BoundingBoxBuilder produces, or nil if
// g has no coordinates at all. Geodetic geometries accumulate their box in
// Earth-centered XYZ via geopb.BoundingBoxBuilder.UpdateGeodetic, per
// spec.md §3's "geodetic-Earth-centered 3D" bbox case.
func ComputeBBox(g geogeom.Geometry) *geopb.BoundingBox {
	flags := g.Flags()
	b := geopb.NewBoundingBoxBuilder(flags)
	walkCoords(g, flags.Geodetic, b)
	return b.Box()
}

func walkCoords(g geogeom.Geometry, geodetic bool, b *geopb.BoundingBoxBuilder) {
	switch g := g.(type) {
	case *geogeom.Point:
		addPointArray(g.Points, geodetic, b)
	case *geogeom.LineString:
		addPointArray(g.Points, geodetic, b)
	case *geogeom.CircularString:
		addPointArray(g.Points, geodetic, b)
	case *geogeom.Triangle:
		addPointArray(g.Points, geodetic, b)
	case *geogeom.Polygon:
		for _, r := range g.Rings {
			addPointArray(r, geodetic, b)
		}
	case *geogeom.NurbsCurve:
		addPointArray(g.Points, geodetic, b)
	default:
		for _, c := range geogeom.Children(g) {
			walkCoords(c, geodetic, b)
		}
	}
}

func addPointArray(pa *geoarray.PointArray, geodetic bool, b *geopb.BoundingBoxBuilder) {
	if pa == nil {
		return
	}
	for i := uint32(0); i < pa.NPoints; i++ {
		p := pa.Get(i)
		if geodetic {
			b.UpdateGeodetic(p.X, p.Y)
		} else {
			b.UpdatePlanar(p.X, p.Y, p.Z, p.M)
		}
	}
}
