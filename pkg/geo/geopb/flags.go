// Copyright 2020 The Cockroach Authors.
//
// Use of this software is governed by the Business Source License
// included in the file licenses/BSL.txt.
//
// As of the Change Date specified in that file, in accordance with
// the Business Source License, use of this software will be governed
// by the Apache License, Version 2.0, included in the file
// licenses/APL.txt.

package geopb

// Flags is the richer in-memory dimensionality/validity flag set carried by
// every geometry. It is distinct from the compact on-disk encodings
// (geoserial.GFlags, geoserial.ExtFlags) that geoserial translates to and
// from; see geoserial/flags.go for that mapping.
type Flags struct {
	// Z indicates the geometry's coordinates carry a Z ordinate.
	Z bool
	// M indicates the geometry's coordinates carry an M ordinate.
	M bool
	// Geodetic indicates the geometry is expressed on an Earth-centered
	// sphere/ellipsoid rather than a plane; its bounding box is always 3D.
	Geodetic bool
	// Solid indicates a PolyhedralSurface/TIN is known to enclose a volume.
	Solid bool
	// BBoxCached indicates a bounding box is present alongside the geometry
	// rather than needing to be recomputed from the coordinates.
	BBoxCached bool
	// CheckedValid indicates validity has already been checked at least once.
	CheckedValid bool
	// IsValid caches the result of that check; only meaningful if CheckedValid.
	IsValid bool
	// HasHash indicates a content hash has been computed and cached.
	HasHash bool
}

// NDims returns the number of ordinates per coordinate: 2, plus one each for
// Z and M.
func (f Flags) NDims() int {
	n := 2
	if f.Z {
		n++
	}
	if f.M {
		n++
	}
	return n
}

// NDimsBox returns the number of dimensions carried by this geometry's
// bounding box. A geodetic geometry's box is always 3D (Earth-centered X,
// Y, Z) regardless of whether the geometry itself carries Z or M.
func (f Flags) NDimsBox() int {
	if f.Geodetic {
		return 3
	}
	n := 2
	if f.Z {
		n++
	}
	if f.M {
		n++
	}
	return n
}

// SameDims reports whether f and other describe the same Z/M dimensionality.
// Used to enforce the invariant that a geometry's flags match every
// contained coordinate block's flags.
func (f Flags) SameDims(other Flags) bool {
	return f.Z == other.Z && f.M == other.M
}
