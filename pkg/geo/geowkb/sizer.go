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

import (
	"github.com/cockroachdb/errors"
	"github.com/lbartoletti/postgis/pkg/geo/geoarray"
	"github.com/lbartoletti/postgis/pkg/geo/geogeom"
	"github.com/lbartoletti/postgis/pkg/geo/geonurbs"
	"github.com/lbartoletti/postgis/pkg/geo/geopb"
)

// ctx carries per-call dialect/order state through recursion. Children of a
// collection always encode with noSRID forced true, per spec.md §4.G: "For
// each subgeometry inside a collection, recursion carries NO_SRID."
type ctx struct {
	dialect  Dialect
	order    ByteOrder
	noSRID   bool
	topLevel bool
}

func newCtx(opts Options) ctx {
	return ctx{dialect: opts.dialect, order: opts.order, noSRID: opts.noSRID, topLevel: true}
}

func (c ctx) child() ctx {
	c.noSRID = true
	c.topLevel = false
	return c
}

// Size computes the exact number of binary bytes Encode will write for g
// under opts, before hex expansion (spec.md §4.G: "first compute size
// (matches sizer style)").
func Size(g geogeom.Geometry, opts Options) (int, error) {
	if g == nil {
		return 0, geopb.ErrNilGeometry
	}
	return sizeGeom(g, newCtx(opts))
}

func sizeGeom(g geogeom.Geometry, c ctx) (int, error) {
	header := 1 + 4 // endian byte + type code
	if needsSRID(c.dialect, c.noSRID, g.SRID()) {
		header += 4
	}
	payload, err := sizePayload(g, c)
	if err != nil {
		return 0, err
	}
	return header + payload, nil
}

func sizePayload(g geogeom.Geometry, c ctx) (int, error) {
	pointSize := pointByteSize(g.Flags(), c)

	switch g := g.(type) {
	case *geogeom.Point:
		return sizePoint(g, c, pointSize), nil
	case *geogeom.LineString:
		return 4 + int(npointsOf(g.Points))*pointSize, nil
	case *geogeom.CircularString:
		return 4 + int(npointsOf(g.Points))*pointSize, nil
	case *geogeom.Triangle:
		return 4 + int(npointsOf(g.Points))*pointSize, nil
	case *geogeom.Polygon:
		total := 4
		for _, r := range g.Rings {
			total += 4 + int(npointsOf(r))*pointSize
		}
		return total, nil
	case *geogeom.NurbsCurve:
		return sizeNurbs(g, c)
	default:
		children := geogeom.Children(g)
		if children == nil {
			return 0, errors.Wrapf(geopb.ErrUnsupportedType, "geowkb: sizer does not handle %T", g)
		}
		total := 4
		cc := c.child()
		for i, child := range children {
			n, err := sizeGeom(child, cc)
			if err != nil {
				return 0, errors.Wrapf(err, "geowkb: sizing child %d", i)
			}
			total += n
		}
		return total, nil
	}
}

// sizePoint accounts for spec.md §4.G's empty-point special case: SFSQL and
// ISO represent an empty point as a 4-byte npoints=0 marker instead of
// coordinates; Extended always writes coordinates (NaN when empty) and
// never an npoints word, matching S1/S2. The npoints=0 shorthand only
// applies at the outermost geometry: a Point nested inside a collection has
// no length envelope of its own to disambiguate "4-byte marker" from "first
// half of a coordinate", so nested empty points always use the NaN-coords
// form regardless of dialect (see DESIGN.md's resolution of this decode
// ambiguity).
func sizePoint(g *geogeom.Point, c ctx, pointSize int) int {
	if g.IsEmpty() && c.dialect != Extended && c.topLevel {
		return 4
	}
	return pointSize
}

// sizeNurbs always sizes control points at full dimensionality regardless of
// dialect: spec.md §4.G's "Dialect dimension rule" only exempts the type
// code's dimension offsets, not the coordinate width, and
// original_source/liblwgeom/lwout_wkb.c's lwnurbscurve_to_wkb_size computes
// `dims = FLAGS_NDIMS(curve->points->flags)` unconditionally, never
// restricted to 2 by an SFSQL outer dialect.
func sizeNurbs(g *geogeom.NurbsCurve, c ctx) (int, error) {
	pointSize := g.Flags().NDims() * 8
	npoints := int(npointsOf(g.Points))

	// [degree:4][npoints:4], then per control point: [endian:1][coords][has_weight:1][weight:8?].
	total := 4 + 4
	total += npoints * (1 + pointSize + 1)
	for i := 0; i < npoints; i++ {
		if i < len(g.Weights) && g.Weights[i] != 1.0 {
			total += 8
		}
	}

	knots, err := geonurbs.KnotsOrSynthesize(g)
	if err != nil {
		return 0, errors.Wrap(err, "geowkb: sizing NURBS knots")
	}
	total += 4 + len(knots)*8
	return total, nil
}

// pointByteSize returns the wire width of one coordinate under c's dialect:
// SFSQL always writes 2 ordinates, discarding Z/M, while ISO and Extended
// write every active dimension (original_source/liblwgeom/lwout_wkb.c:488,
// ptarray_to_wkb_buf: "SFSQL is always 2-d. Extended and ISO use all
// available dimensions").
func pointByteSize(f geopb.Flags, c ctx) int {
	return coordDims(f, c.dialect) * 8
}

// coordDims is the dimension count pointByteSize multiplies by 8.
func coordDims(f geopb.Flags, d Dialect) int {
	if d == SFSQL {
		return 2
	}
	return f.NDims()
}

func npointsOf(pa *geoarray.PointArray) uint32 {
	if pa == nil {
		return 0
	}
	return pa.NPoints
}
