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

// MinDegree and MaxDegree bound a NURBS curve's polynomial degree, per
// spec.md §3 and §4.H, and matching
// original_source/liblwgeom/lwgeom_nurbs.c's lwnurbscurve_construct check.
const (
	MinDegree = 1
	MaxDegree = 10
)

// NurbsCurve is a Non-Uniform Rational B-Spline curve: a degree, an array of
// control points, optional per-point weights (a rational curve when
// present, implicitly all 1.0 when absent), and an optional explicit knot
// vector (synthesized on demand by geonurbs when absent).
type NurbsCurve struct {
	base
	Degree  uint32
	Points  *geoarray.PointArray
	Weights []float64
	Knots   []float64
}

func (g *NurbsCurve) Type() geopb.GeometryType { return geopb.NurbsCurveType }
func (g *NurbsCurve) IsEmpty() bool             { return g.Points == nil || g.Points.NPoints == 0 }

// HasWeights reports whether this is a rational curve (has an explicit
// weight per control point rather than the implicit weight 1.0 for every
// point).
func (g *NurbsCurve) HasWeights() bool { return len(g.Weights) > 0 }

// HasKnots reports whether this curve carries an explicit knot vector,
// rather than relying on one being synthesized on demand.
func (g *NurbsCurve) HasKnots() bool { return len(g.Knots) > 0 }

// NewNurbsCurve constructs and validates a NURBS curve, mirroring
// original_source/liblwgeom/lwgeom_nurbs.c's lwnurbscurve_construct:
// ownership of points is transferred to the returned curve; weights and
// knots, if provided, are deep-copied.
func NewNurbsCurve(
	srid geopb.SRID, bbox *geopb.BoundingBox, degree uint32,
	points *geoarray.PointArray, weights, knots []float64,
) (*NurbsCurve, error) {
	if degree < MinDegree || degree > MaxDegree {
		return nil, errors.Newf("geo: NURBS degree %d out of range [%d, %d]", degree, MinDegree, MaxDegree)
	}
	if points != nil {
		if weights != nil && uint32(len(weights)) != points.NPoints {
			return nil, errors.Newf(
				"geo: NURBS weight count %d must equal control point count %d", len(weights), points.NPoints)
		}
		expectedKnots := points.NPoints + degree + 1
		if knots != nil && uint32(len(knots)) != expectedKnots {
			return nil, errors.Newf(
				"geo: NURBS knot count %d must equal npoints+degree+1 (%d)", len(knots), expectedKnots)
		}
	}

	curve := &NurbsCurve{Degree: degree, Points: points}
	curve.srid = srid
	curve.bbox = bbox
	if points != nil {
		curve.flags = points.Flags()
	}
	if weights != nil {
		curve.Weights = append([]float64(nil), weights...)
	}
	if knots != nil {
		curve.Knots = append([]float64(nil), knots...)
	}
	return curve, nil
}

// NewEmptyNurbsCurve constructs a valid but empty NURBS curve with the
// given dimensional flags, matching
// original_source/liblwgeom/lwgeom_nurbs.c's lwnurbscurve_construct_empty:
// degree is forced to the minimum valid value, there are no control points,
// weights, or knots.
func NewEmptyNurbsCurve(srid geopb.SRID, hasZ, hasM bool) *NurbsCurve {
	return &NurbsCurve{
		base:   base{srid: srid, flags: geopb.Flags{Z: hasZ, M: hasM}},
		Degree: MinDegree,
		Points: geoarray.NewOwned(hasZ, hasM, 0),
	}
}

// Validate checks the invariants spec.md §4.H's "is-valid" predicate
// describes: degree range, npoints >= degree+1, all weights positive, and
// (if present) a non-decreasing knot vector of the exact expected length.
func (g *NurbsCurve) Validate() error {
	if g.Degree < MinDegree || g.Degree > MaxDegree {
		return errors.Newf("geo: NURBS degree %d out of range [%d, %d]", g.Degree, MinDegree, MaxDegree)
	}
	if g.Points == nil {
		return nil
	}
	if g.Points.NPoints > 0 && g.Points.NPoints < g.Degree+1 {
		return errors.Newf(
			"geo: NURBS needs at least degree+1 (%d) control points, has %d", g.Degree+1, g.Points.NPoints)
	}
	for i, w := range g.Weights {
		if w <= 0 {
			return errors.Newf("geo: NURBS weight at index %d must be positive, got %f", i, w)
		}
	}
	if len(g.Knots) > 0 {
		expected := int(g.Points.NPoints + g.Degree + 1)
		if len(g.Knots) != expected {
			return errors.Newf("geo: NURBS knot count %d must equal npoints+degree+1 (%d)", len(g.Knots), expected)
		}
		for i := 1; i < len(g.Knots); i++ {
			if g.Knots[i] < g.Knots[i-1] {
				return errors.Newf(
					"geo: NURBS knot vector is not non-decreasing at index %d (%f < %f)",
					i, g.Knots[i], g.Knots[i-1])
			}
		}
	}
	return nil
}
