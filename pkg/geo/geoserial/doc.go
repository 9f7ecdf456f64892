// Copyright 2020 The Cockroach Authors.
//
// Use of this software is governed by the Business Source License
// included in the file licenses/BSL.txt.
//
// As of the Change Date specified in that file, in accordance with
// the Business Source License, use of this software will be governed
// by the Apache License, Version 2.0, included in the file
// licenses/APL.txt.

// Package geoserial implements the GS2 internal serialized form (spec.md
// §4.A, §4.C-§4.F, §6): a compact, PostgreSQL-VARLENA-compatible binary
// layout with an inline outward-rounded bounding box, an optional extended
// flags word, and a recursive geometry payload.
//
// Grounded structurally on the buffer-cursor encode/decode style of
// other_examples/dolthub-dolt__write_geometry.go and
// __read_geometry.go — a flat byte slice walked forward by slicing, rather
// than an io.Writer/io.Reader pair — because GS2's exact-size-first,
// write-once contract (spec.md §4.D: "the number of bytes written equals
// the predicted size") fits a pre-sized buffer better than a growable
// stream writer.
package geoserial
