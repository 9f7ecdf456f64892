// Copyright 2020 The Cockroach Authors.
//
// Use of this software is governed by the Business Source License
// included in the file licenses/BSL.txt.
//
// As of the Change Date specified in that file, in accordance with
// the Business Source License, use of this software will be governed
// by the Apache License, Version 2.0, included in the file
// licenses/APL.txt.

package geowkb

import "github.com/lbartoletti/postgis/pkg/geo/geopb"

// Extended dialect high-bit flags, per spec.md §6.
const (
	extendedZFlag    uint32 = 0x80000000
	extendedMFlag    uint32 = 0x40000000
	extendedSRIDFlag uint32 = 0x20000000
	extendedTypeMask uint32 = 0x1FFFFFFF
)

// isoOffset computes the ISO 13249-3 additive type-code offset for a
// dimensionality (spec.md §6: "POINTZ = 1001, POINTM = 2001, POINTZM =
// 3001").
func isoOffset(flags geopb.Flags) uint32 {
	switch {
	case flags.Z && flags.M:
		return 3000
	case flags.M:
		return 2000
	case flags.Z:
		return 1000
	default:
		return 0
	}
}

// typeCode computes the on-wire type code for base under dialect and
// flags. NurbsCurveType always uses ISO offsets regardless of the outer
// dialect, per spec.md §4.G's "Dialect dimension rule".
func typeCode(dialect Dialect, base geopb.GeometryType, flags geopb.Flags, hasSRID bool) uint32 {
	if base == geopb.NurbsCurveType {
		return uint32(base) + isoOffset(flags)
	}
	switch dialect {
	case ISO:
		return uint32(base) + isoOffset(flags)
	case Extended:
		v := uint32(base)
		if flags.Z {
			v |= extendedZFlag
		}
		if flags.M {
			v |= extendedMFlag
		}
		if hasSRID {
			v |= extendedSRIDFlag
		}
		return v
	default: // SFSQL
		return uint32(base)
	}
}

// decodeTypeCode reverses typeCode: it recovers the base geometry type, the
// Z/M flags the wire form encoded, and whether a SRID follows, without
// knowing the dialect in advance — every dialect's type code is
// self-describing enough for this (SFSQL's base values never collide with
// ISO's +1000/+2000/+3000 range or Extended's high-bit range).
func decodeTypeCode(raw uint32) (base geopb.GeometryType, flags geopb.Flags, hasSRID bool) {
	if raw&extendedSRIDFlag != 0 || raw&extendedZFlag != 0 || raw&extendedMFlag != 0 {
		hasSRID = raw&extendedSRIDFlag != 0
		flags.Z = raw&extendedZFlag != 0
		flags.M = raw&extendedMFlag != 0
		base = geopb.GeometryType(raw & extendedTypeMask)
		return base, flags, hasSRID
	}
	switch {
	case raw >= 3000:
		flags.Z, flags.M = true, true
		base = geopb.GeometryType(raw - 3000)
	case raw >= 2000:
		flags.M = true
		base = geopb.GeometryType(raw - 2000)
	case raw >= 1000:
		flags.Z = true
		base = geopb.GeometryType(raw - 1000)
	default:
		base = geopb.GeometryType(raw)
	}
	return base, flags, false
}

// needsSRID implements spec.md §9's resolved open question: a geometry's
// WKB form carries its SRID iff the dialect is Extended, the caller hasn't
// forced suppression, and the geometry actually has a known SRID. This is
// the exact predicate original_source/liblwgeom/lwout_wkb.c's
// lwgeom_wkb_needs_srid implements (see DESIGN.md).
func needsSRID(dialect Dialect, noSRID bool, srid geopb.SRID) bool {
	if noSRID {
		return false
	}
	return dialect == Extended && srid.Known()
}
