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

import "github.com/lbartoletti/postgis/pkg/geo/geoarray"

// Clone implementations. Every variant deep-copies its point arrays,
// weights/knots, and bounding box, per spec.md §3's "a clone operation
// deep-copies all buffers" and generalizing
// original_source/liblwgeom/lwgeom_nurbs.c's lwnurbscurve_clone_deep (which
// the original only implements for NURBS) to every geometry variant.

func (g *Point) Clone() Geometry {
	return &Point{base: g.cloneBase(), Points: clonePA(g.Points)}
}

func (g *LineString) Clone() Geometry {
	return &LineString{base: g.cloneBase(), Points: clonePA(g.Points)}
}

func (g *CircularString) Clone() Geometry {
	return &CircularString{base: g.cloneBase(), Points: clonePA(g.Points)}
}

func (g *Triangle) Clone() Geometry {
	return &Triangle{base: g.cloneBase(), Points: clonePA(g.Points)}
}

func (g *Polygon) Clone() Geometry {
	out := &Polygon{base: g.cloneBase()}
	out.Rings = make([]*geoarray.PointArray, len(g.Rings))
	for i, r := range g.Rings {
		out.Rings[i] = clonePA(r)
	}
	return out
}

func (g *NurbsCurve) Clone() Geometry {
	out := &NurbsCurve{base: g.cloneBase(), Degree: g.Degree, Points: clonePA(g.Points)}
	if g.Weights != nil {
		out.Weights = append([]float64(nil), g.Weights...)
	}
	if g.Knots != nil {
		out.Knots = append([]float64(nil), g.Knots...)
	}
	return out
}

func (g *MultiPoint) Clone() Geometry         { return &MultiPoint{g.multi.cloneMulti()} }
func (g *MultiLineString) Clone() Geometry    { return &MultiLineString{g.multi.cloneMulti()} }
func (g *MultiPolygon) Clone() Geometry       { return &MultiPolygon{g.multi.cloneMulti()} }
func (g *MultiCurve) Clone() Geometry         { return &MultiCurve{g.multi.cloneMulti()} }
func (g *MultiSurface) Clone() Geometry       { return &MultiSurface{g.multi.cloneMulti()} }
func (g *CompoundCurve) Clone() Geometry      { return &CompoundCurve{g.multi.cloneMulti()} }
func (g *CurvePolygon) Clone() Geometry       { return &CurvePolygon{g.multi.cloneMulti()} }
func (g *GeometryCollection) Clone() Geometry { return &GeometryCollection{g.multi.cloneMulti()} }
func (g *PolyhedralSurface) Clone() Geometry  { return &PolyhedralSurface{g.multi.cloneMulti()} }
func (g *TIN) Clone() Geometry                { return &TIN{g.multi.cloneMulti()} }

func (b *base) cloneBase() base {
	return base{srid: b.srid, flags: b.flags, bbox: b.bbox.Clone()}
}

func clonePA(pa *geoarray.PointArray) *geoarray.PointArray {
	if pa == nil {
		return nil
	}
	return pa.Clone()
}

func (m *multi) cloneMulti() multi {
	out := multi{base: m.base.cloneBase()}
	if m.Geoms != nil {
		out.Geoms = make([]Geometry, len(m.Geoms))
		for i, c := range m.Geoms {
			out.Geoms[i] = c.Clone()
		}
	}
	return out
}
