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

	"github.com/lbartoletti/postgis/pkg/geo/geoarray"
	"github.com/lbartoletti/postgis/pkg/geo/geogeom"
	"github.com/lbartoletti/postgis/pkg/geo/geopb"
	"github.com/stretchr/testify/require"
)

func TestKnots(t *testing.T) {
	testCases := []struct {
		name           string
		npoints, degree uint32
		expected       []float64
		expectErr      bool
	}{
		{
			name:    "linear, two points",
			npoints: 2,
			degree:  1,
			expected: []float64{0, 0, 1, 1},
		},
		{
			name:    "quadratic, four points has one interior knot",
			npoints: 4,
			degree:  2,
			expected: []float64{0, 0, 0, 0.5, 1, 1, 1},
		},
		{
			name:    "cubic, five points",
			npoints: 5,
			degree:  3,
			expected: []float64{0, 0, 0, 0, 0.5, 1, 1, 1, 1},
		},
		{
			name:      "too few points for degree",
			npoints:   2,
			degree:    3,
			expectErr: true,
		},
		{
			name:      "degree zero is rejected",
			npoints:   4,
			degree:    0,
			expectErr: true,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Knots(tc.npoints, tc.degree)
			if tc.expectErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.expected, got)
		})
	}
}

func TestKnotsOrSynthesize(t *testing.T) {
	points := geoarray.NewOwned(false, false, 2)
	require.NoError(t, points.Set(0, geoarray.Point4D{X: 0, Y: 0}))
	require.NoError(t, points.Set(1, geoarray.Point4D{X: 2, Y: 2}))

	t.Run("synthesizes when absent", func(t *testing.T) {
		curve, err := geogeom.NewNurbsCurve(geopb.UnknownSRID, nil, 1, points, nil, nil)
		require.NoError(t, err)
		knots, err := KnotsOrSynthesize(curve)
		require.NoError(t, err)
		require.Equal(t, []float64{0, 0, 1, 1}, knots)
	})

	t.Run("returns a copy of explicit knots", func(t *testing.T) {
		explicit := []float64{0, 0, 1, 1}
		curve, err := geogeom.NewNurbsCurve(geopb.UnknownSRID, nil, 1, points, nil, explicit)
		require.NoError(t, err)
		got, err := KnotsOrSynthesize(curve)
		require.NoError(t, err)
		require.Equal(t, explicit, got)

		got[0] = 99
		require.NotEqual(t, got[0], curve.Knots[0])
	})
}
