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
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBasisLinear(t *testing.T) {
	// Two control points, degree 1, clamped knots [0,0,1,1]: this is a plain
	// linear interpolation, so N_0,1(u) = 1-u and N_1,1(u) = u on [0,1].
	knots := []float64{0, 0, 1, 1}

	require.InDelta(t, 1.0, Basis(0, 1, 0.0, knots), 1e-9)
	require.InDelta(t, 0.0, Basis(1, 1, 0.0, knots), 1e-9)

	require.InDelta(t, 0.5, Basis(0, 1, 0.5, knots), 1e-9)
	require.InDelta(t, 0.5, Basis(1, 1, 0.5, knots), 1e-9)

	require.InDelta(t, 0.25, Basis(0, 1, 0.75, knots), 1e-9)
	require.InDelta(t, 0.75, Basis(1, 1, 0.75, knots), 1e-9)
}

func TestBasisPartitionOfUnity(t *testing.T) {
	// For any valid NURBS knot vector, the basis functions active at a
	// parameter sum to 1 (Cox-de-Boor's defining property).
	knots := []float64{0, 0, 0, 0.5, 1, 1, 1}
	degree := 2
	n := 4

	for _, u := range []float64{0.0, 0.1, 0.5, 0.75, 0.999} {
		var sum float64
		for i := 0; i < n; i++ {
			sum += Basis(i, degree, u, knots)
		}
		require.InDelta(t, 1.0, sum, 1e-9, "u=%f", u)
	}
}

func TestBasisOutOfRangeIndexIsZero(t *testing.T) {
	knots := []float64{0, 0, 1, 1}
	require.Equal(t, 0.0, Basis(-1, 1, 0.5, knots))
	require.Equal(t, 0.0, Basis(5, 1, 0.5, knots))
}
