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
	"testing"

	"github.com/lbartoletti/postgis/pkg/geo/geopb"
	"github.com/stretchr/testify/require"
)

func TestGFlagsRoundTrip(t *testing.T) {
	testCases := []struct {
		name  string
		flags geopb.Flags
		bbox  bool
	}{
		{name: "2D, no bbox", flags: geopb.Flags{}, bbox: false},
		{name: "3D with bbox", flags: geopb.Flags{Z: true}, bbox: true},
		{name: "4D geodetic", flags: geopb.Flags{Z: true, M: true, Geodetic: true}, bbox: true},
		{name: "extended bits set", flags: geopb.Flags{Solid: true, HasHash: true}, bbox: false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			gf := NewGFlags(tc.flags, tc.bbox)
			ef := NewExtFlags(tc.flags)
			got := gf.ToFlags(ef)
			require.Equal(t, tc.flags.Z, got.Z)
			require.Equal(t, tc.flags.M, got.M)
			require.Equal(t, tc.flags.Geodetic, got.Geodetic)
			require.Equal(t, tc.bbox, got.BBoxCached)
			require.Equal(t, tc.flags.Solid, got.Solid)
			require.Equal(t, tc.flags.HasHash, got.HasHash)
		})
	}
}

func TestHeaderSize(t *testing.T) {
	testCases := []struct {
		name     string
		flags    geopb.Flags
		bbox     bool
		expected int
	}{
		{name: "bare 2D", flags: geopb.Flags{}, bbox: false, expected: 8},
		{name: "2D with bbox", flags: geopb.Flags{}, bbox: true, expected: 8 + 2*2*4},
		{name: "3D with bbox", flags: geopb.Flags{Z: true}, bbox: true, expected: 8 + 2*3*4},
		{name: "extended, no bbox", flags: geopb.Flags{Solid: true}, bbox: false, expected: 8 + 8},
		{
			name: "geodetic box is always 3D regardless of M",
			flags: geopb.Flags{Geodetic: true, M: true}, bbox: true,
			expected: 8 + 2*3*4,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			gf := NewGFlags(tc.flags, tc.bbox)
			require.Equal(t, tc.expected, HeaderSize(gf))
		})
	}
}

func TestSRIDPacking(t *testing.T) {
	testCases := []geopb.SRID{0, 1, 4326, -1, MaxSRID, MinSRID}
	for _, srid := range testCases {
		buf := make([]byte, 3)
		require.NoError(t, PutSRID(buf, srid))
		require.Equal(t, srid, GetSRID(buf))
	}
}

func TestPutSRIDRejectsOutOfRange(t *testing.T) {
	buf := make([]byte, 3)
	require.Error(t, PutSRID(buf, MaxSRID+1))
	require.Error(t, PutSRID(buf, MinSRID-1))
}
