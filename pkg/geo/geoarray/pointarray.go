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
	"encoding/binary"
	"math"

	"github.com/cockroachdb/errors"
	"github.com/lbartoletti/postgis/pkg/geo/geopb"
)

// Point4D is a fully-expanded coordinate. Z and M are zero when the owning
// PointArray doesn't carry that dimension, per spec.md §3's "Point access
// yields a 4D point (x,y,z,m) with z/m zeroed when absent".
type Point4D struct {
	X, Y, Z, M float64
}

// PointArray is a contiguous buffer of float64 coordinates. Its backing
// bytes are either owned (allocated and mutable by this array) or
// referenced (borrowed from another buffer, e.g. the payload bytes of a
// GS2-decoded geometry) — spec.md §3's "construct by reference" vs
// "construct by value", and spec.md §9's instruction to model that
// distinction explicitly rather than let it become implicit pointer
// aliasing.
type PointArray struct {
	NPoints uint32
	Z, M    bool

	data  []byte
	owned bool
}

// Flags returns the dimensionality of this array as a geopb.Flags, leaving
// every non-dimensional bit (Geodetic, Solid, ...) false. Callers that need
// those bits get them from the owning geometry, not from the coordinate
// block.
func (pa *PointArray) Flags() geopb.Flags {
	return geopb.Flags{Z: pa.Z, M: pa.M}
}

// PointSize returns the byte size of a single coordinate: 16, 24, or 32
// bytes depending on which of Z and M are present.
func (pa *PointArray) PointSize() int {
	n := 2
	if pa.Z {
		n++
	}
	if pa.M {
		n++
	}
	return n * 8
}

// NewOwned allocates a zeroed, owned PointArray for npoints coordinates of
// the given dimensionality.
func NewOwned(z, m bool, npoints uint32) *PointArray {
	pa := &PointArray{NPoints: npoints, Z: z, M: m, owned: true}
	pa.data = make([]byte, int(npoints)*pa.PointSize())
	return pa
}

// NewReference constructs a PointArray whose coordinates are borrowed
// directly from data, starting at byte offset 0. data must outlive the
// returned PointArray and must not be mutated while it is in use — the
// provenance spec.md §9 requires "construct by reference" views to carry
// explicitly.
func NewReference(z, m bool, npoints uint32, data []byte) (*PointArray, error) {
	pa := &PointArray{NPoints: npoints, Z: z, M: m, owned: false}
	need := int(npoints) * pa.PointSize()
	if len(data) < need {
		return nil, errors.Newf("geoarray: reference buffer too short: have %d bytes, need %d", len(data), need)
	}
	pa.data = data[:need]
	return pa, nil
}

// Owned reports whether this array's backing bytes were allocated by (and
// are safely mutable through) this PointArray.
func (pa *PointArray) Owned() bool {
	return pa.owned
}

// Bytes returns the raw coordinate bytes in machine-native byte order.
// Callers must not mutate the returned slice unless Owned() is true.
func (pa *PointArray) Bytes() []byte {
	return pa.data
}

// Get returns the i'th coordinate as a fully-expanded Point4D.
func (pa *PointArray) Get(i uint32) Point4D {
	off := int(i) * pa.PointSize()
	var p Point4D
	p.X = readFloat64(pa.data[off:])
	p.Y = readFloat64(pa.data[off+8:])
	next := off + 16
	if pa.Z {
		p.Z = readFloat64(pa.data[next:])
		next += 8
	}
	if pa.M {
		p.M = readFloat64(pa.data[next:])
	}
	return p
}

// Set writes the i'th coordinate. It returns an error if the array is not
// owned, since a referenced array must not be mutated in place (spec.md §3:
// "that tree must not outlive the buffer and must not be mutated in
// place").
func (pa *PointArray) Set(i uint32, p Point4D) error {
	if !pa.owned {
		return errors.New("geoarray: cannot mutate a referenced point array")
	}
	off := int(i) * pa.PointSize()
	writeFloat64(pa.data[off:], p.X)
	writeFloat64(pa.data[off+8:], p.Y)
	next := off + 16
	if pa.Z {
		writeFloat64(pa.data[next:], p.Z)
		next += 8
	}
	if pa.M {
		writeFloat64(pa.data[next:], p.M)
	}
	return nil
}

// Append grows an owned PointArray by one coordinate. It is used by the
// NURBS tessellator (geonurbs.ToLineString) to build a LineString's point
// array sample by sample.
func (pa *PointArray) Append(p Point4D) error {
	if !pa.owned {
		return errors.New("geoarray: cannot append to a referenced point array")
	}
	pa.data = append(pa.data, make([]byte, pa.PointSize())...)
	pa.NPoints++
	return pa.Set(pa.NPoints-1, p)
}

// Clone returns a deep, owned copy of pa, regardless of whether pa itself
// was owned or referenced. This is the only way to detach a tree built by
// reference from the buffer it borrows from (spec.md §3's "a clone
// operation deep-copies all buffers").
func (pa *PointArray) Clone() *PointArray {
	clone := &PointArray{NPoints: pa.NPoints, Z: pa.Z, M: pa.M, owned: true}
	clone.data = append([]byte(nil), pa.data...)
	return clone
}

// CopyFrom bulk-copies src's coordinate bytes into pa. Both arrays must
// share the same dimensionality (spec.md §4.B: "Bulk copy is allowed when
// source and target dimensionalities match") and pa must be owned.
func (pa *PointArray) CopyFrom(src *PointArray) error {
	if !pa.owned {
		return errors.New("geoarray: cannot bulk-copy into a referenced point array")
	}
	if pa.Z != src.Z || pa.M != src.M {
		return errors.Newf(
			"geoarray: dimension mismatch in bulk copy: dst(z=%v,m=%v) src(z=%v,m=%v)",
			pa.Z, pa.M, src.Z, src.M,
		)
	}
	pa.NPoints = src.NPoints
	pa.data = append(pa.data[:0], src.data...)
	return nil
}

func readFloat64(b []byte) float64 {
	return math.Float64frombits(binary.NativeEndian.Uint64(b))
}

func writeFloat64(b []byte, v float64) {
	binary.NativeEndian.PutUint64(b, math.Float64bits(v))
}
