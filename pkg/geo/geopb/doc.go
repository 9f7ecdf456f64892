// Copyright 2020 The Cockroach Authors.
//
// Use of this software is governed by the Business Source License
// included in the file licenses/BSL.txt.
//
// As of the Change Date specified in that file, in accordance with
// the Business Source License, use of this software will be governed
// by the Apache License, Version 2.0, included in the file
// licenses/APL.txt.

// Package geopb contains the scalar types shared by every geometry
// representation in this module: spatial reference identifiers, the
// in-memory dimensionality flag set, and axis-aligned bounding boxes.
//
// Nothing in this package knows how to serialize a geometry tree; it only
// defines the vocabulary that geoarray, geogeom, geoserial and geowkb share.
package geopb
