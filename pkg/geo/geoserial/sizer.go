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
	"github.com/lbartoletti/postgis/pkg/geo/geoarray"
	"github.com/lbartoletti/postgis/pkg/geo/geogeom"
	"github.com/lbartoletti/postgis/pkg/geo/geopb"
)

// typeWordSize, countWordSize are the two 4-byte words every non-NURBS
// payload grammar opens with (spec.md §4.D): "[type:4][npoints:4]" or
// "[type:4][ngeoms:4]".
const (
	typeWordSize  = 4
	countWordSize = 4
)

// Size computes the exact number of bytes Encode will write for g,
// including the fixed header, optional extflags, and optional bbox — spec.md
// §4.C's "pure function... computes exact bytes needed = header + optional
// bbox + payload". Size never allocates the buffer itself; it only predicts
// its length.
func Size(g geogeom.Geometry) (int, error) {
	if g == nil {
		return 0, geopb.ErrNilGeometry
	}
	return SizeWithBBox(g, g.BBox() != nil)
}

// SizeWithBBox is Size, but with bbox presence supplied explicitly rather
// than read off g — used by Encode when the caller asks to compute a bbox
// that isn't already cached on g.
func SizeWithBBox(g geogeom.Geometry, bboxPresent bool) (int, error) {
	if g == nil {
		return 0, geopb.ErrNilGeometry
	}
	flags := g.Flags()
	gf := NewGFlags(flags, bboxPresent)

	payload, err := payloadSize(g)
	if err != nil {
		return 0, err
	}
	return HeaderSize(gf) + payload, nil
}

// payloadSize computes the size of g's payload grammar alone — the part
// that recurses into a collection's children, which per spec.md §4.D
// "carry no size/srid header" of their own.
func payloadSize(g geogeom.Geometry) (int, error) {
	pointSize := pointByteSize(g.Flags())

	switch g := g.(type) {
	case *geogeom.Point:
		return typeWordSize + countWordSize + int(npointsOf(g.Points))*pointSize, nil
	case *geogeom.LineString:
		return typeWordSize + countWordSize + int(npointsOf(g.Points))*pointSize, nil
	case *geogeom.CircularString:
		return typeWordSize + countWordSize + int(npointsOf(g.Points))*pointSize, nil
	case *geogeom.Triangle:
		return typeWordSize + countWordSize + int(npointsOf(g.Points))*pointSize, nil
	case *geogeom.Polygon:
		return polygonPayloadSize(g, pointSize), nil
	case *geogeom.NurbsCurve:
		return nurbsPayloadSize(g, pointSize), nil
	default:
		children := geogeom.Children(g)
		if children == nil {
			return 0, errors.Wrapf(geopb.ErrUnsupportedType, "geoserial: sizer does not handle %T", g)
		}
		total := typeWordSize + countWordSize
		for i, c := range children {
			n, err := payloadSize(c)
			if err != nil {
				return 0, errors.Wrapf(err, "geoserial: sizing child %d", i)
			}
			total += n
		}
		return total, nil
	}
}

// polygonPayloadSize accounts for spec.md §4.C's "for polygons, adds a
// 4-byte pad when nrings is odd so that coordinate blocks remain 8-byte
// aligned".
func polygonPayloadSize(g *geogeom.Polygon, pointSize int) int {
	nrings := len(g.Rings)
	total := typeWordSize + countWordSize + nrings*countWordSize
	if nrings%2 != 0 {
		total += 4
	}
	for _, r := range g.Rings {
		total += int(npointsOf(r)) * pointSize
	}
	return total
}

// nurbsHeaderWords is the fixed "[type][npoints][degree][nweights][nknots]"
// prefix spec.md §4.C and §4.D both call out.
const nurbsHeaderWords = 5

func nurbsPayloadSize(g *geogeom.NurbsCurve, pointSize int) int {
	total := nurbsHeaderWords * 4
	nweights := len(g.Weights)
	nknots := len(g.Knots)
	total += nweights * 8
	total += nknots * 8
	total += int(npointsOf(g.Points)) * pointSize
	return total
}

func pointByteSize(f geopb.Flags) int {
	return f.NDims() * 8
}

func npointsOf(pa *geoarray.PointArray) uint32 {
	if pa == nil {
		return 0
	}
	return pa.NPoints
}
