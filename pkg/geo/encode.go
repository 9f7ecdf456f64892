// Copyright 2020 The Cockroach Authors.
//
// Use of this software is governed by the Business Source License
// included in the file licenses/BSL.txt.
//
// As of the Change Date specified in that file, in accordance with
// the Business Source License, use of this software will be governed
// by the Apache License, Version 2.0, included in the file
// licenses/APL.txt.

package geo

import (
	"strings"

	"github.com/lbartoletti/postgis/pkg/geo/geoserial"
	"github.com/lbartoletti/postgis/pkg/geo/geowkb"
)

// ToGS2 serializes g into the internal GS2 binary format (pkg/geo/geoserial),
// the canonical on-disk representation for this module the way EWKB is the
// teacher's.
func ToGS2(g Geometry, opts geoserial.EncodeOptions) ([]byte, error) {
	return geoserial.Encode(g.AsGeomT(), opts)
}

// ToGS2 serializes g into the internal GS2 binary format.
func (g Geography) ToGS2(opts geoserial.EncodeOptions) ([]byte, error) {
	return geoserial.Encode(g.AsGeomT(), opts)
}

// ToWKB serializes g to binary WKB under opts.
func ToWKB(g Geometry, opts ...geowkb.Option) ([]byte, error) {
	return geowkb.Encode(g.AsGeomT(), opts...)
}

// ToWKB serializes g to binary WKB under opts.
func (g Geography) ToWKB(opts ...geowkb.Option) ([]byte, error) {
	return geowkb.Encode(g.AsGeomT(), opts...)
}

// ToWKBHex serializes g to hex-encoded WKB under opts, forcing the hex flag
// regardless of what the caller passed.
func ToWKBHex(g Geometry, opts ...geowkb.Option) (string, error) {
	b, err := geowkb.Encode(g.AsGeomT(), append(opts, geowkb.WithHex())...)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// StringToByteOrder maps "ndr"/"xdr" (case-insensitively) to the
// corresponding geowkb.ByteOrder, defaulting to geowkb.NDR for any other
// input, so its result plugs directly into geowkb.WithByteOrder.
func StringToByteOrder(s string) geowkb.ByteOrder {
	switch strings.ToLower(s) {
	case "xdr":
		return geowkb.XDR
	default:
		return geowkb.NDR
	}
}
