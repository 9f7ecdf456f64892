// Copyright 2020 The Cockroach Authors.
//
// Use of this software is governed by the Business Source License
// included in the file licenses/BSL.txt.
//
// As of the Change Date specified in that file, in accordance with
// the Business Source License, use of this software will be governed
// by the Apache License, Version 2.0, included in the file
// licenses/APL.txt.

package geonurbs

import (
	"github.com/cockroachdb/errors"
	"github.com/lbartoletti/postgis/pkg/geo/geogeom"
)

// ErrNoKnots is returned by Knots when npoints < degree+1, the condition
// under which original_source/liblwgeom/lwgeom_nurbs.c's
// lwnurbscurve_generate_uniform_knots returns NULL with *nknots_out set to
// 0 — there are not enough control points to clamp both ends of a
// degree-p curve.
var ErrNoKnots = errors.New("geonurbs: not enough control points to synthesize a knot vector")

// Knots synthesizes a clamped uniform knot vector of length
// npoints+degree+1: the first degree+1 entries are 0.0, the last degree+1
// are 1.0, and the K = npoints-degree-1 interior entries are i/(K+1) for
// i = 1..K (spec.md §4.H "uniform_clamped").
func Knots(npoints, degree uint32) ([]float64, error) {
	if degree == 0 || npoints < degree+1 {
		return nil, ErrNoKnots
	}

	n := npoints + degree + 1
	k := make([]float64, n)

	for i := uint32(0); i <= degree; i++ {
		k[i] = 0.0
	}
	for i := n - degree - 1; i < n; i++ {
		k[i] = 1.0
	}

	if n > 2*(degree+1) {
		interior := n - 2*(degree+1)
		for i := uint32(0); i < interior; i++ {
			k[degree+1+i] = float64(i+1) / float64(interior+1)
		}
	}

	return k, nil
}

// KnotsOrSynthesize returns curve's explicit knot vector if it has one
// (deep-copied so the caller can't mutate the curve's own slice), or
// synthesizes a clamped uniform one from its degree and control point count
// otherwise. This is the "fetch-or-synthesize" accessor
// original_source/liblwgeom/lwgeom_nurbs.c calls
// lwnurbscurve_get_knots_for_wkb, used identically here by Evaluate,
// ToLineString, and geowkb's NURBS writer (spec.md §4.G: "If no knots are
// stored, a clamped uniform knot vector is synthesized and serialized").
func KnotsOrSynthesize(curve *geogeom.NurbsCurve) ([]float64, error) {
	if curve == nil || curve.Points == nil {
		return nil, nil
	}
	if curve.HasKnots() {
		return append([]float64(nil), curve.Knots...), nil
	}
	return Knots(curve.Points.NPoints, curve.Degree)
}
