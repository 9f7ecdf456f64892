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

import "github.com/cockroachdb/errors"

// hexDigits is the fixed lookup table spec.md §9 calls for: "a fixed
// constant array; precompute at build time" rather than formatting each
// byte through fmt at encode time.
const hexDigits = "0123456789ABCDEF"

// EncodeHex renders b as upper-case ASCII hex, two characters per byte, per
// spec.md §4.G's HEX flavor (WKB_HEX).
func EncodeHex(b []byte) string {
	out := make([]byte, len(b)*2)
	for i, v := range b {
		out[i*2] = hexDigits[v>>4]
		out[i*2+1] = hexDigits[v&0x0F]
	}
	return string(out)
}

// DecodeHex reverses EncodeHex, accepting either case, per spec.md §8
// property 4: "unhex(encode_hex(G)) == encode_binary(G)".
func DecodeHex(s string) ([]byte, error) {
	if len(s)%2 != 0 {
		return nil, errors.Newf("geowkb: hex string has odd length %d", len(s))
	}
	out := make([]byte, len(s)/2)
	for i := range out {
		hi, err := hexNibble(s[i*2])
		if err != nil {
			return nil, err
		}
		lo, err := hexNibble(s[i*2+1])
		if err != nil {
			return nil, err
		}
		out[i] = hi<<4 | lo
	}
	return out, nil
}

func hexNibble(c byte) (byte, error) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', nil
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, nil
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, nil
	default:
		return 0, errors.Newf("geowkb: invalid hex digit %q", c)
	}
}
