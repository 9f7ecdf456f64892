// Copyright 2020 The Cockroach Authors.
//
// Use of this software is governed by the Business Source License
// included in the file licenses/BSL.txt.
//
// As of the Change Date specified in that file, in accordance with
// the Business Source License, use of this software will be governed
// by the Apache License, Version 2.0, included in the file
// licenses/APL.txt.

// Package geonurbs implements the NURBS curve engine (spec.md §4.H):
// clamped-uniform knot synthesis, Cox-de-Boor basis function evaluation,
// rational point evaluation, and polyline tessellation. It operates on
// geogeom.NurbsCurve values constructed and validated by package geogeom.
//
// Every algorithm here is grounded line-for-line in structure on
// original_source/liblwgeom/lwgeom_nurbs.c, translated to Go rather than
// transliterated from C.
package geonurbs
