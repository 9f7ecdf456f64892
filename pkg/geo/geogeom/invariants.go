// Copyright 2020 The Cockroach Authors.
//
// Use of this software is governed by the Business Source License
// included in the file licenses/BSL.txt.
//
// As of the Change Date specified in that file, in accordance with
// the Business Source License, use of this software will be governed
// by the Apache License, Version 2.0, included in the file
// licenses/APL.txt.

package geogeom

import (
	"github.com/cockroachdb/errors"
	"github.com/lbartoletti/postgis/pkg/geo/geoarray"
	"github.com/lbartoletti/postgis/pkg/geo/geopb"
)

// CheckDimConsistency walks g and every descendant, verifying that each
// geometry's Z/M flags match every point array it directly owns. This is
// the invariant spec.md §3 states and requires encoders to enforce loudly
// rather than silently write mismatched coordinates
// (original_source/liblwgeom/gserialized2.c checks the equivalent
// FLAGS_GET_ZM(x->flags) != FLAGS_GET_ZM(pa->flags) before every geometry
// type's size/encode pass).
func CheckDimConsistency(g Geometry) error {
	if g == nil {
		return errors.WithStack(geopb.ErrNilGeometry)
	}
	switch g := g.(type) {
	case *Point:
		return checkPA(g.flags, g.Points)
	case *LineString:
		return checkPA(g.flags, g.Points)
	case *CircularString:
		return checkPA(g.flags, g.Points)
	case *Triangle:
		return checkPA(g.flags, g.Points)
	case *Polygon:
		for i, r := range g.Rings {
			if err := checkPA(g.flags, r); err != nil {
				return errors.Wrapf(err, "ring %d", i)
			}
		}
		return nil
	case *NurbsCurve:
		return checkPA(g.flags, g.Points)
	default:
		for i, child := range Children(g) {
			if !g.Flags().SameDims(child.Flags()) {
				return errors.Wrapf(geopb.ErrDimensionMismatch,
					"child %d of %s has mismatched Z/M flags", i, g.Type())
			}
			if err := CheckDimConsistency(child); err != nil {
				return errors.Wrapf(err, "child %d of %s", i, g.Type())
			}
		}
		return nil
	}
}

func checkPA(flags geopb.Flags, pa *geoarray.PointArray) error {
	if pa == nil {
		return nil
	}
	if !flags.SameDims(pa.Flags()) {
		return errors.WithStack(geopb.ErrDimensionMismatch)
	}
	return nil
}
