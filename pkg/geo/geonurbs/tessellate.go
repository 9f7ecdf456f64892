// Copyright 2020 The Cockroach Authors.
//
// Use of this software is governed by the Business Source License
// included in the file licenses/BSL.txt.
//
// As of the Change Date specified in that file, in accordance with
// the Business Source License, use of this software will be governed
// by the Apache License, Version 2.0, included in the file
// licenses/APL.txt.

package geonurbs

import (
	"github.com/cockroachdb/errors"
	"github.com/lbartoletti/postgis/pkg/geo/geoarray"
	"github.com/lbartoletti/postgis/pkg/geo/geogeom"
)

// MaxSegments bounds the number of segments ToLineString will tessellate
// into, per spec.md §4.H's tessellation budget: a caller-requested count
// above this is clamped rather than rejected, mirroring
// original_source/liblwgeom/lwgeom_nurbs.c's lwnurbscurve_to_linestring
// defensive clamp on its segment count argument.
const MaxSegments = 10000

// MinSegments is the smallest segment count ToLineString accepts, per
// spec.md §4.H's "Clamp segments >= 2": a tessellation always has at least
// a start and end point plus one interior sample.
const MinSegments = 2

// ToLineString tessellates curve into a LineString of segments+1 points
// evenly spaced in parameter space between the curve's knot domain
// endpoints, evaluating each with Evaluate. segments is clamped to
// [MinSegments, MaxSegments].
func ToLineString(curve *geogeom.NurbsCurve, segments uint32) (*geogeom.LineString, error) {
	if curve == nil || curve.Points == nil || curve.Points.NPoints == 0 {
		return nil, errors.New("geonurbs: cannot tessellate an empty curve")
	}
	if err := curve.Validate(); err != nil {
		return nil, errors.Wrap(err, "geonurbs: tessellate")
	}

	if segments < MinSegments {
		segments = MinSegments
	} else if segments > MaxSegments {
		segments = MaxSegments
	}

	knots, err := KnotsOrSynthesize(curve)
	if err != nil {
		return nil, errors.Wrap(err, "geonurbs: tessellate")
	}
	n := int(curve.Points.NPoints)
	p := int(curve.Degree)
	lo, hi := knots[p], knots[n]

	flags := curve.Points.Flags()
	out := geoarray.NewOwned(flags.Z, flags.M, 0)

	for i := uint32(0); i <= segments; i++ {
		t := float64(i) / float64(segments)
		u := lo + t*(hi-lo)
		pt, err := Evaluate(curve, u)
		if err != nil {
			return nil, errors.Wrapf(err, "geonurbs: tessellate at segment %d", i)
		}
		if err := out.Append(pt); err != nil {
			return nil, errors.Wrap(err, "geonurbs: tessellate")
		}
	}

	ls := geogeom.NewLineString(curve.SRID(), flags, out)
	return ls, nil
}
