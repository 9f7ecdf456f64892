// Copyright 2020 The Cockroach Authors.
//
// Use of this software is governed by the Business Source License
// included in the file licenses/BSL.txt.
//
// As of the Change Date specified in that file, in accordance with
// the Business Source License, use of this software will be governed
// by the Apache License, Version 2.0, included in the file
// licenses/APL.txt.

// Package geoarray implements the point-array coordinate block shared by
// every geometry variant (spec.md §4.B): a contiguous buffer of float64
// ordinates with a known dimensionality, constructible either by copying
// (an owned array) or by borrowing another buffer's bytes (a referenced
// array used by zero-copy decode).
package geoarray
