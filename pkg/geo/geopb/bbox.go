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

import (
	"math"

	"github.com/golang/geo/s2"
)

// BoundingBox is an axis-aligned min/max over each dimension active for its
// Flags. Coordinates are stored as float32, rounded outward at construction
// time (minimums rounded down, maximums rounded up) so that after rounding
// every original coordinate still satisfies Min <= coord <= Max.
//
// A geodetic BoundingBox's X/Y/Z fields hold Earth-centered unit-sphere
// coordinates (s2.Point's XYZ), not longitude/latitude/height; its M fields
// are always zero and unused, since geodetic geometries carry no M bbox
// dimension (spec.md §3: "geodetic-Earth-centered 3D").
type BoundingBox struct {
	Flags      Flags
	XMin, XMax float32
	YMin, YMax float32
	ZMin, ZMax float32
	MMin, MMax float32
}

// NDims returns the number of dimensions actually stored in this box, which
// is Flags.NDimsBox() inlined so callers don't need the flags around.
func (b *BoundingBox) NDims() int {
	return b.Flags.NDimsBox()
}

// Contains reports whether the given coordinate falls within this box,
// after accounting for which dimensions the box actually stores.
func (b *BoundingBox) Contains(x, y, z, m float64) bool {
	if b == nil {
		return false
	}
	if float32(x) < b.XMin || float32(x) > b.XMax {
		return false
	}
	if float32(y) < b.YMin || float32(y) > b.YMax {
		return false
	}
	if b.Flags.Geodetic || b.Flags.Z {
		if float32(z) < b.ZMin || float32(z) > b.ZMax {
			return false
		}
	}
	if !b.Flags.Geodetic && b.Flags.M {
		if float32(m) < b.MMin || float32(m) > b.MMax {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of b. BoundingBox has no reference fields, so
// this is a plain value copy, but it exists so callers that clone a whole
// geometry tree never need to special-case "this one struct happens to be
// copyable for free".
func (b *BoundingBox) Clone() *BoundingBox {
	if b == nil {
		return nil
	}
	clone := *b
	return &clone
}

// BoundingBoxBuilder accumulates coordinates in full float64 precision and
// produces an outward-rounded float32 BoundingBox on demand. Accumulating in
// float64 and rounding once at the end, rather than rounding every
// coordinate as it arrives, avoids compounding rounding error across a large
// point array.
type BoundingBoxBuilder struct {
	flags Flags
	any   bool

	xmin, xmax float64
	ymin, ymax float64
	zmin, zmax float64
	mmin, mmax float64
}

// NewBoundingBoxBuilder returns a builder for a box with the given
// dimensionality.
func NewBoundingBoxBuilder(flags Flags) *BoundingBoxBuilder {
	return &BoundingBoxBuilder{
		flags: flags,
		xmin:  math.Inf(1), xmax: math.Inf(-1),
		ymin: math.Inf(1), ymax: math.Inf(-1),
		zmin: math.Inf(1), zmax: math.Inf(-1),
		mmin: math.Inf(1), mmax: math.Inf(-1),
	}
}

// UpdatePlanar folds a planar (non-geodetic) x, y, z, m coordinate into the
// running box. z and m are ignored when the builder's flags don't carry
// them.
func (b *BoundingBoxBuilder) UpdatePlanar(x, y, z, m float64) {
	b.any = true
	b.xmin, b.xmax = math.Min(b.xmin, x), math.Max(b.xmax, x)
	b.ymin, b.ymax = math.Min(b.ymin, y), math.Max(b.ymax, y)
	if b.flags.Z {
		b.zmin, b.zmax = math.Min(b.zmin, z), math.Max(b.zmax, z)
	}
	if b.flags.M {
		b.mmin, b.mmax = math.Min(b.mmin, m), math.Max(b.mmax, m)
	}
}

// UpdateGeodetic folds a longitude/latitude (in degrees) coordinate into the
// running box by converting it to an Earth-centered unit-sphere point and
// taking componentwise min/max of its XYZ, per spec.md §3's "geodetic
// Earth-centered 3D" bounding box.
func (b *BoundingBoxBuilder) UpdateGeodetic(lngDegrees, latDegrees float64) {
	b.any = true
	ll := s2.LatLngFromDegrees(latDegrees, lngDegrees)
	pt := s2.PointFromLatLng(ll)
	b.xmin, b.xmax = math.Min(b.xmin, pt.X), math.Max(b.xmax, pt.X)
	b.ymin, b.ymax = math.Min(b.ymin, pt.Y), math.Max(b.ymax, pt.Y)
	b.zmin, b.zmax = math.Min(b.zmin, pt.Z), math.Max(b.zmax, pt.Z)
}

// Box finalizes the builder into an outward-rounded BoundingBox. It returns
// nil if no coordinate was ever folded in (e.g. an empty geometry).
func (b *BoundingBoxBuilder) Box() *BoundingBox {
	if !b.any {
		return nil
	}
	box := &BoundingBox{
		Flags: b.flags,
		XMin:  NextFloat32Down(float32(b.xmin)), XMax: NextFloat32Up(float32(b.xmax)),
		YMin: NextFloat32Down(float32(b.ymin)), YMax: NextFloat32Up(float32(b.ymax)),
	}
	if b.flags.Geodetic || b.flags.Z {
		box.ZMin, box.ZMax = NextFloat32Down(float32(b.zmin)), NextFloat32Up(float32(b.zmax))
	}
	if !b.flags.Geodetic && b.flags.M {
		box.MMin, box.MMax = NextFloat32Down(float32(b.mmin)), NextFloat32Up(float32(b.mmax))
	}
	return box
}
