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
	"encoding/binary"
	"math"

	"github.com/lbartoletti/postgis/pkg/geo/geopb"
)

// PeekBoundingBox implements spec.md §4.F's fast path: it answers "give me
// a bounding box" for a narrow set of trivial shapes without building an
// in-memory tree. It handles exactly four cases — a non-empty Point, a
// two-point LineString, a MultiPoint with one sub-point, and a
// MultiLineString with one two-point sub-line — and reports ok=false for
// everything else, including any geometry whose bbox is already stored
// (the caller should read that instead) and any geodetic geometry (whose
// box lives in Earth-centered coordinates, never peeked).
func PeekBoundingBox(b []byte) (bbox *geopb.BoundingBox, ok bool) {
	if len(b) < minHeaderBytes {
		return nil, false
	}
	gf := GFlags(b[7])
	if gf.HasBBox() || gf.IsGeodetic() {
		return nil, false
	}

	cur := b[8:]
	if gf.IsExtended() {
		if len(cur) < 8 {
			return nil, false
		}
		cur = cur[8:]
	}

	flags := gf.ToFlags(0)
	return peekPayload(cur, flags)
}

func peekPayload(cur []byte, flags geopb.Flags) (*geopb.BoundingBox, bool) {
	if len(cur) < 8 {
		return nil, false
	}
	typ := geopb.GeometryType(binary.NativeEndian.Uint32(cur[:4]))
	count := binary.NativeEndian.Uint32(cur[4:8])

	switch typ {
	case geopb.PointType:
		if count != 1 {
			return nil, false
		}
		return peekCoords(cur[8:], flags, 1)
	case geopb.LineStringType:
		if count != 2 {
			return nil, false
		}
		return peekCoords(cur[8:], flags, 2)
	case geopb.MultiPointType:
		if count != 1 {
			return nil, false
		}
		return peekPayload(cur[8:], flags)
	case geopb.MultiLineStringType:
		if count != 1 {
			return nil, false
		}
		return peekPayload(cur[8:], flags)
	default:
		return nil, false
	}
}

// peekCoords reads exactly n coordinates starting at data and builds their
// outward-rounded bounding box the same way geoserial.ComputeBBox does, so
// property 7 ("peek agreement") holds by construction.
func peekCoords(data []byte, flags geopb.Flags, n uint32) (*geopb.BoundingBox, bool) {
	pointSize := flags.NDims() * 8
	need := int(n) * pointSize
	if len(data) < need {
		return nil, false
	}
	b := geopb.NewBoundingBoxBuilder(flags)
	for i := uint32(0); i < n; i++ {
		off := int(i) * pointSize
		x := readF64(data[off:])
		y := readF64(data[off+8:])
		var z, m float64
		next := off + 16
		if flags.Z {
			z = readF64(data[next:])
			next += 8
		}
		if flags.M {
			m = readF64(data[next:])
		}
		b.UpdatePlanar(x, y, z, m)
	}
	box := b.Box()
	if box == nil {
		return nil, false
	}
	return box, true
}

func readF64(b []byte) float64 {
	return math.Float64frombits(binary.NativeEndian.Uint64(b))
}
