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
	"github.com/lbartoletti/postgis/pkg/geo/geoarray"
	"github.com/lbartoletti/postgis/pkg/geo/geogeom"
)

// Evaluate computes the point on curve at parameter u, where u is clamped to
// the curve's knot domain [knots[degree], knots[npoints]] before evaluation —
// matching original_source/liblwgeom/lwgeom_nurbs.c's lwnurbscurve_evaluate,
// which clamps rather than erroring on an out-of-domain parameter. The
// result is the weighted (rational) Cox-de-Boor sum: a curve with no
// explicit weights is evaluated as though every weight were 1.0.
func Evaluate(curve *geogeom.NurbsCurve, u float64) (geoarray.Point4D, error) {
	if curve == nil || curve.Points == nil || curve.Points.NPoints == 0 {
		return geoarray.Point4D{}, errors.New("geonurbs: cannot evaluate an empty curve")
	}
	if err := curve.Validate(); err != nil {
		return geoarray.Point4D{}, errors.Wrap(err, "geonurbs: evaluate")
	}

	knots, err := KnotsOrSynthesize(curve)
	if err != nil {
		return geoarray.Point4D{}, errors.Wrap(err, "geonurbs: evaluate")
	}

	n := int(curve.Points.NPoints)
	p := int(curve.Degree)

	lo, hi := knots[p], knots[n]
	if u < lo {
		u = lo
	} else if u > hi {
		u = hi
	}
	// Basis's base case treats the domain as half-open [knots[i], knots[i+1]),
	// so at the right endpoint of the domain every basis function evaluates to
	// zero. u stays at hi; the loop below instead gives the last control point
	// basis 1 and every other control point basis 0 there.
	atUpperBound := u == hi
	if atUpperBound {
		u = hi
	}

	var sumX, sumY, sumZ, sumM, sumW float64
	for i := 0; i < n; i++ {
		var w float64
		if curve.HasWeights() {
			w = curve.Weights[i]
		} else {
			w = 1.0
		}

		var basis float64
		if atUpperBound && i == n-1 {
			basis = 1.0
		} else if atUpperBound {
			basis = 0.0
		} else {
			basis = Basis(i, p, u, knots)
		}

		wn := w * basis
		pt := curve.Points.Get(uint32(i))
		sumX += wn * pt.X
		sumY += wn * pt.Y
		sumZ += wn * pt.Z
		sumM += wn * pt.M
		sumW += wn
	}

	if sumW == 0 {
		return geoarray.Point4D{}, errors.Newf("geonurbs: basis functions summed to zero at u=%f", u)
	}

	return geoarray.Point4D{
		X: sumX / sumW,
		Y: sumY / sumW,
		Z: sumZ / sumW,
		M: sumM / sumW,
	}, nil
}
