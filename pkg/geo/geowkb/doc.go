// Copyright 2020 The Cockroach Authors.
//
// Use of this software is governed by the Business Source License
// included in the file licenses/BSL.txt.
//
// As of the Change Date specified in that file, in accordance with
// the Business Source License, use of this software will be governed
// by the Apache License, Version 2.0, included in the file
// licenses/APL.txt.

// Package geowkb implements the Well-Known Binary codec (spec.md §4.G):
// SFSQL, ISO 13249-3, and EXTENDED dialects, NDR/XDR byte order, and a hex
// flavor. Its byte-cursor, sizer-then-encoder shape is grounded on
// other_examples/murphy214-pgpush__wkb.go (the per-geometry-type writer
// functions and the single leading endian byte) combined with
// geoserial's exact-size-first discipline (spec.md §4.G: "first compute
// size (matches sizer style), allocate, then walk the tree emitting").
package geowkb
