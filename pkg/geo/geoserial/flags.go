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
	"github.com/cockroachdb/errors"
	"github.com/lbartoletti/postgis/pkg/geo/geopb"
)

// GFlags is the single on-disk flags byte described by spec.md §4.A and
// §6's "gflags (1) — Z|M|BBOX|GEODETIC|EXTENDED|VERSION". Bit layout, low to
// high:
//
//	bit 0: Z present
//	bit 1: M present
//	bit 2: inline bbox present
//	bit 3: geodetic
//	bit 4: extended flags word follows
//	bits 5-6: version (2 bits)
//	bit 7: reserved
type GFlags byte

const (
	gflagZ         GFlags = 1 << 0
	gflagM         GFlags = 1 << 1
	gflagBBox      GFlags = 1 << 2
	gflagGeodetic  GFlags = 1 << 3
	gflagExtended  GFlags = 1 << 4
	gflagVersionLo GFlags = 1 << 5
	gflagVersionHi GFlags = 1 << 6
)

// CurrentVersion is the GS2 format version this package writes.
const CurrentVersion = 2

func (f GFlags) HasZ() bool        { return f&gflagZ != 0 }
func (f GFlags) HasM() bool        { return f&gflagM != 0 }
func (f GFlags) HasBBox() bool     { return f&gflagBBox != 0 }
func (f GFlags) IsGeodetic() bool  { return f&gflagGeodetic != 0 }
func (f GFlags) IsExtended() bool  { return f&gflagExtended != 0 }

// Version extracts the 2-bit version field from bits 5-6.
func (f GFlags) Version() uint8 {
	return uint8((f >> 5) & 0x3)
}

// ToFlags expands the compact on-disk byte into the richer in-memory
// geopb.Flags. Solid/CheckedValid/IsValid/HasHash live in the extended
// flags word, not in GFlags itself, so callers pass the decoded ExtFlags
// (zero if !IsExtended()) to fold them in.
func (f GFlags) ToFlags(ext ExtFlags) geopb.Flags {
	return geopb.Flags{
		Z:            f.HasZ(),
		M:            f.HasM(),
		Geodetic:     f.IsGeodetic(),
		BBoxCached:   f.HasBBox(),
		Solid:        ext.HasSolid(),
		CheckedValid: ext.HasCheckedValid(),
		IsValid:      ext.HasIsValid(),
		HasHash:      ext.HasHash(),
	}
}

// NewGFlags packs flags (plus whether a bbox will be written) into a
// GFlags byte, setting the EXTENDED bit whenever any bit that only the
// extended flags word can carry (Solid, CheckedValid, IsValid, HasHash) is
// set.
func NewGFlags(flags geopb.Flags, bboxPresent bool) GFlags {
	var f GFlags
	if flags.Z {
		f |= gflagZ
	}
	if flags.M {
		f |= gflagM
	}
	if bboxPresent {
		f |= gflagBBox
	}
	if flags.Geodetic {
		f |= gflagGeodetic
	}
	if flags.Solid || flags.CheckedValid || flags.IsValid || flags.HasHash {
		f |= gflagExtended
	}
	f |= GFlags(CurrentVersion&0x3) << 5
	return f
}

// ExtFlags is the optional 64-bit extended flags word described by spec.md
// §4.A: "carries SOLID and reserved future bits (CHECKED_VALID, IS_VALID,
// HAS_HASH)".
type ExtFlags uint64

const (
	extFlagSolid        ExtFlags = 1 << 0
	extFlagCheckedValid ExtFlags = 1 << 1
	extFlagIsValid      ExtFlags = 1 << 2
	extFlagHasHash      ExtFlags = 1 << 3
)

func (e ExtFlags) HasSolid() bool        { return e&extFlagSolid != 0 }
func (e ExtFlags) HasCheckedValid() bool { return e&extFlagCheckedValid != 0 }
func (e ExtFlags) HasIsValid() bool      { return e&extFlagIsValid != 0 }
func (e ExtFlags) HasHash() bool         { return e&extFlagHasHash != 0 }

// NewExtFlags packs the extended-flags-only bits of flags into an ExtFlags
// word. It is zero (and thus omittable) when none of those bits are set.
func NewExtFlags(flags geopb.Flags) ExtFlags {
	var e ExtFlags
	if flags.Solid {
		e |= extFlagSolid
	}
	if flags.CheckedValid {
		e |= extFlagCheckedValid
	}
	if flags.IsValid {
		e |= extFlagIsValid
	}
	if flags.HasHash {
		e |= extFlagHasHash
	}
	return e
}

// NDims returns the number of ordinates per coordinate encoded by f: 2,
// plus one each for Z and M.
func NDims(f GFlags) int {
	n := 2
	if f.HasZ() {
		n++
	}
	if f.HasM() {
		n++
	}
	return n
}

// NDimsBox returns the number of dimensions the inline bounding box
// carries: always 3 for a geodetic geometry (spec.md §4.A), otherwise the
// same as NDims.
func NDimsBox(f GFlags) int {
	if f.IsGeodetic() {
		return 3
	}
	return NDims(f)
}

// sizeFieldSize, sridFieldSize, and gflagsFieldSize are the three header
// fields present unconditionally, per spec.md §6's byte layout.
const (
	sizeFieldSize   = 4
	sridFieldSize   = 3
	gflagsFieldSize = 1
	extFlagsSize    = 8
	bboxComponentSize = 4

	// baseHeaderSize is "8 (size+srid+flags)" per spec.md §4.A.
	baseHeaderSize = sizeFieldSize + sridFieldSize + gflagsFieldSize
)

// HeaderSize computes the number of bytes occupied by the fixed header and
// optional extflags/bbox blocks that precede the payload, per spec.md
// §4.A's `header_size(flags)`.
func HeaderSize(f GFlags) int {
	n := baseHeaderSize
	if f.IsExtended() {
		n += extFlagsSize
	}
	if f.HasBBox() {
		n += 2 * NDimsBox(f) * bboxComponentSize
	}
	return n
}

// MaxSRID is the largest magnitude representable in the header's packed
// 21-bit signed SRID field.
const MaxSRID = 1<<20 - 1

// MinSRID is the smallest (most negative) representable SRID.
const MinSRID = -(1 << 20)

// PutSRID packs s into the 3-byte on-disk SRID field at buf[0:3], matching
// spec.md §4.A's `set_srid`: SRID 0 ("unknown") is the on-disk
// representation of geopb.UnknownSRID.
func PutSRID(buf []byte, s geopb.SRID) error {
	if s < MinSRID || s > MaxSRID {
		return errors.Newf("geoserial: srid %d does not fit in 21 packed bits", s)
	}
	v := uint32(int32(s)) & 0x1FFFFF
	buf[0] = byte(v)
	buf[1] = byte(v >> 8)
	buf[2] = byte(v >> 16)
	return nil
}

// GetSRID unpacks the 3-byte on-disk SRID field at buf[0:3], sign-extending
// the 21-bit value and remapping the on-disk 0 to geopb.UnknownSRID (which
// is itself 0, so this is the identity — spelled out because spec.md §4.E
// calls the remap out explicitly as an operation the decoder performs).
func GetSRID(buf []byte) geopb.SRID {
	v := uint32(buf[0]) | uint32(buf[1])<<8 | uint32(buf[2])<<16
	if v&(1<<20) != 0 {
		v |= 0xFFE00000 // sign-extend bit 20 through bit 31
	}
	return geopb.SRID(int32(v))
}
