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

// Basis evaluates the Cox-de-Boor B-spline basis function N_{i,p}(u)
// recursively, matching
// original_source/liblwgeom/lwgeom_nurbs.c's lwnurbscurve_basis_function:
//
//	N_{i,0}(u) = 1 if knots[i] <= u < knots[i+1], else 0
//	N_{i,p}(u) = alpha*N_{i,p-1}(u) + beta*N_{i+1,p-1}(u)
//
// where alpha = (u-knots[i])/(knots[i+p]-knots[i]) and
// beta = (knots[i+p+1]-u)/(knots[i+p+1]-knots[i+1]), each term treated as
// zero when its denominator is zero rather than propagating a NaN.
func Basis(i, p int, u float64, knots []float64) float64 {
	nknots := len(knots)
	if i < 0 || i+p+1 >= nknots {
		return 0.0
	}

	if p == 0 {
		if knots[i] <= u && u < knots[i+1] {
			return 1.0
		}
		return 0.0
	}

	var term1 float64
	if denom1 := knots[i+p] - knots[i]; denom1 != 0.0 {
		term1 = (u - knots[i]) / denom1 * Basis(i, p-1, u, knots)
	}

	var term2 float64
	if denom2 := knots[i+p+1] - knots[i+1]; denom2 != 0.0 {
		term2 = (knots[i+p+1] - u) / denom2 * Basis(i+1, p-1, u, knots)
	}

	return term1 + term2
}
