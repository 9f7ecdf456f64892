// Copyright 2020 The Cockroach Authors.
//
// Use of this software is governed by the Business Source License
// included in the file licenses/BSL.txt.
//
// As of the Change Date specified in that file, in accordance with
// the Business Source License, use of this software will be governed
// by the Apache License, Version 2.0, included in the file
// licenses/APL.txt.

// Package geogeom defines the in-memory geometry tree shared by the GS2
// codec (geoserial), the WKB codec (geowkb), and the NURBS engine
// (geonurbs). It is deliberately independent of any third-party geometry
// library: spec.md's data model includes variants (NurbsCurve,
// CircularString, CompoundCurve, CurvePolygon, PolyhedralSurface, TIN) that
// github.com/twpayne/go-geom's geom.T hierarchy has no equivalent for, so
// wiring through it would mean lossy conversions at every call site. See
// DESIGN.md's dependency ledger for the full reasoning.
package geogeom
