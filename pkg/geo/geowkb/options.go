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

// Dialect selects which of the three WKB type-code/flag conventions
// (spec.md §4.G) Encode uses.
type Dialect int

const (
	// SFSQL is the original "Simple Features for SQL" dialect: 2D only, no
	// SRID, no Z/M.
	SFSQL Dialect = iota
	// ISO is the ISO 13249-3 dialect: Z/M expressed via +1000/+2000/+3000
	// additive type-code offsets, never carries SRID.
	ISO
	// Extended is the PostGIS-style EWKB dialect: high-bit flags in the type
	// code for Z, M, and (optionally) SRID.
	Extended
)

// ByteOrder selects the wire byte order Encode uses.
type ByteOrder int

const (
	// NativeOrder resolves to the host machine's byte order at Encode time,
	// matching spec.md §6's "at most one endianness (default = native)".
	NativeOrder ByteOrder = iota
	// NDR is little-endian.
	NDR
	// XDR is big-endian.
	XDR
)

// Options controls Encode's output. The zero value is {SFSQL, NativeOrder,
// not hex}.
type Options struct {
	dialect  Dialect
	order    ByteOrder
	hex      bool
	noSRID   bool
	noNPoint bool
}

// Option configures an Options value, matching the functional-options shape
// the teacher's encode.go uses for its own EWKB flags
// (DefaultEWKBEncodingFormat).
type Option func(*Options)

// WithDialect selects the WKB dialect.
func WithDialect(d Dialect) Option { return func(o *Options) { o.dialect = d } }

// WithByteOrder selects the wire byte order.
func WithByteOrder(b ByteOrder) Option { return func(o *Options) { o.order = b } }

// WithHex requests hex-encoded output (spec.md §6 WKB_HEX).
func WithHex() Option { return func(o *Options) { o.hex = true } }

// WithNoSRID forces SRID suppression even in the Extended dialect
// (spec.md §6 WKB_NO_SRID).
func WithNoSRID() Option { return func(o *Options) { o.noSRID = true } }

// NewOptions builds an Options from the given functional options.
func NewOptions(opts ...Option) Options {
	var o Options
	for _, fn := range opts {
		fn(&o)
	}
	return o
}

func resolveOrder(b ByteOrder) ByteOrder {
	if b != NativeOrder {
		return b
	}
	if hostIsLittleEndian() {
		return NDR
	}
	return XDR
}
