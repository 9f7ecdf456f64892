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
	"github.com/lbartoletti/postgis/pkg/geo/geoarray"
	"github.com/lbartoletti/postgis/pkg/geo/geopb"
)

// NewPointFromArray wraps an existing 0-or-1-point PointArray as a Point,
// taking ownership of points rather than copying a single coordinate the
// way NewPoint does. Used by geoserial/geowkb decoders building a
// borrowed-buffer tree.
func NewPointFromArray(srid geopb.SRID, flags geopb.Flags, points *geoarray.PointArray) *Point {
	return &Point{base: base{srid: srid, flags: flags}, Points: points}
}

// NewCircularString wraps an existing PointArray as a CircularString.
func NewCircularString(srid geopb.SRID, flags geopb.Flags, points *geoarray.PointArray) *CircularString {
	return &CircularString{base: base{srid: srid, flags: flags}, Points: points}
}

// NewTriangle wraps an existing closed-ring PointArray as a Triangle.
func NewTriangle(srid geopb.SRID, flags geopb.Flags, ring *geoarray.PointArray) *Triangle {
	return &Triangle{base: base{srid: srid, flags: flags}, Points: ring}
}

// NewPolygon wraps existing ring PointArrays as a Polygon; rings[0] is the
// outer ring.
func NewPolygon(srid geopb.SRID, flags geopb.Flags, rings []*geoarray.PointArray) *Polygon {
	return &Polygon{base: base{srid: srid, flags: flags}, Rings: rings}
}
