// Copyright 2020 The Cockroach Authors.
//
// Use of this software is governed by the Business Source License
// included in the file licenses/BSL.txt.
//
// As of the Change Date specified in that file, in accordance with
// the Business Source License, use of this software will be governed
// by the Apache License, Version 2.0, included in the file
// licenses/APL.txt.

package geoarray

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewOwnedGetSet(t *testing.T) {
	pa := NewOwned(true, false, 2)
	require.True(t, pa.Owned())
	require.Equal(t, 24, pa.PointSize())

	require.NoError(t, pa.Set(0, Point4D{X: 1, Y: 2, Z: 3}))
	require.NoError(t, pa.Set(1, Point4D{X: 4, Y: 5, Z: 6}))

	p := pa.Get(0)
	require.Equal(t, Point4D{X: 1, Y: 2, Z: 3}, p)
	p = pa.Get(1)
	require.Equal(t, Point4D{X: 4, Y: 5, Z: 6}, p)
}

func TestNewReferenceIsNotMutable(t *testing.T) {
	pa := NewOwned(false, false, 1)
	require.NoError(t, pa.Set(0, Point4D{X: 9, Y: 9}))

	ref, err := NewReference(false, false, 1, pa.Bytes())
	require.NoError(t, err)
	require.False(t, ref.Owned())
	require.Equal(t, Point4D{X: 9, Y: 9}, ref.Get(0))

	require.Error(t, ref.Set(0, Point4D{X: 0, Y: 0}))
	require.Error(t, ref.Append(Point4D{X: 0, Y: 0}))
}

func TestNewReferenceTooShort(t *testing.T) {
	_, err := NewReference(false, false, 2, make([]byte, 8))
	require.Error(t, err)
}

func TestAppendGrowsOwned(t *testing.T) {
	pa := NewOwned(false, false, 0)
	require.NoError(t, pa.Append(Point4D{X: 1, Y: 1}))
	require.NoError(t, pa.Append(Point4D{X: 2, Y: 2}))
	require.Equal(t, uint32(2), pa.NPoints)
	require.Equal(t, Point4D{X: 2, Y: 2}, pa.Get(1))
}

func TestCloneDetachesFromReferencedBuffer(t *testing.T) {
	owned := NewOwned(false, false, 1)
	require.NoError(t, owned.Set(0, Point4D{X: 7, Y: 8}))

	ref, err := NewReference(false, false, 1, owned.Bytes())
	require.NoError(t, err)

	clone := ref.Clone()
	require.True(t, clone.Owned())
	require.NoError(t, clone.Set(0, Point4D{X: 0, Y: 0}))
	require.Equal(t, Point4D{X: 7, Y: 8}, ref.Get(0))
}

func TestCopyFromRequiresMatchingDimensions(t *testing.T) {
	dst := NewOwned(true, false, 0)
	src := NewOwned(false, true, 1)
	require.NoError(t, src.Set(0, Point4D{X: 1, M: 2}))

	err := dst.CopyFrom(src)
	require.Error(t, err)
}

func TestCopyFromBulkCopies(t *testing.T) {
	dst := NewOwned(false, false, 0)
	src := NewOwned(false, false, 2)
	require.NoError(t, src.Set(0, Point4D{X: 1, Y: 1}))
	require.NoError(t, src.Set(1, Point4D{X: 2, Y: 2}))

	require.NoError(t, dst.CopyFrom(src))
	require.Equal(t, uint32(2), dst.NPoints)
	require.Equal(t, Point4D{X: 2, Y: 2}, dst.Get(1))
}
