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

import "encoding/binary"

// hostIsLittleEndian detects the machine's native byte order, per spec.md
// §9's "portable byte-reversal... never depend on a specific compiler
// builtin": encoding/binary.NativeEndian already abstracts the platform
// detection, so this just asks it to interpret a known 2-byte pattern
// rather than hand-rolling a new unsafe check.
func hostIsLittleEndian() bool {
	return binary.NativeEndian.Uint16([]byte{0x01, 0x00}) == 0x0001
}

func wireByteOrder(b ByteOrder) binary.ByteOrder {
	if resolveOrder(b) == NDR {
		return binary.LittleEndian
	}
	return binary.BigEndian
}

// endianByte is the single leading WKB byte identifying byte order: 1 for
// NDR (little-endian), 0 for XDR (big-endian) — the convention
// other_examples/murphy214-pgpush__wkb.go's Encoder.Encode uses.
func endianByte(b ByteOrder) byte {
	if resolveOrder(b) == NDR {
		return 1
	}
	return 0
}
