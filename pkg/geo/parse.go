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
	"github.com/cockroachdb/errors"
	"github.com/lbartoletti/postgis/pkg/geo/geogeom"
	"github.com/lbartoletti/postgis/pkg/geo/geopb"
	"github.com/lbartoletti/postgis/pkg/geo/geoserial"
	"github.com/lbartoletti/postgis/pkg/geo/geowkb"
)

// ParseGS2 decodes b as the internal GS2 binary format into a Geometry,
// assigning defaultSRID if the decoded geometry carries none.
func ParseGS2(b []byte, defaultSRID geopb.SRID) (Geometry, error) {
	g, err := geoserial.DecodeOwned(b)
	if err != nil {
		return Geometry{}, err
	}
	adjustSRID(g, defaultSRID)
	return MakeGeometry(g)
}

// ParseGeographyGS2 decodes b as the internal GS2 binary format into a
// Geography.
func ParseGeographyGS2(b []byte, defaultSRID geopb.SRID) (Geography, error) {
	g, err := geoserial.DecodeOwned(b)
	if err != nil {
		return Geography{}, err
	}
	adjustSRID(g, defaultSRID)
	return MakeGeography(g)
}

// ParseWKB decodes b as binary WKB into a Geometry, assigning defaultSRID
// if the decoded geometry carries none (WKB's SFSQL and ISO dialects never
// carry a SRID at all).
func ParseWKB(b []byte, defaultSRID geopb.SRID) (Geometry, error) {
	g, err := geowkb.Decode(b)
	if err != nil {
		return Geometry{}, err
	}
	adjustSRID(g, defaultSRID)
	return MakeGeometry(g)
}

// ParseWKBHex decodes s as hex-encoded WKB into a Geometry.
func ParseWKBHex(s string, defaultSRID geopb.SRID) (Geometry, error) {
	g, err := geowkb.DecodeHexString(s)
	if err != nil {
		return Geometry{}, err
	}
	adjustSRID(g, defaultSRID)
	return MakeGeometry(g)
}

// ParseAmbiguousWKBOrHex decodes str as either raw binary WKB or
// hex-encoded WKB, using the leading byte as a heuristic the way the
// teacher's parseAmbiguousTextToEWKB picks between EWKB binary, EWKB hex,
// and EWKT: a raw WKB buffer always starts with an endian byte (0x00 or
// 0x01), while hex-encoded WKB always starts with an ASCII hex digit.
func ParseAmbiguousWKBOrHex(str string, defaultSRID geopb.SRID) (Geometry, error) {
	if len(str) == 0 {
		return Geometry{}, errors.New("geo: parsing empty string to geo type")
	}
	if str[0] == 0x00 || str[0] == 0x01 {
		return ParseWKB([]byte(str), defaultSRID)
	}
	return ParseWKBHex(str, defaultSRID)
}

// adjustSRID overwrites g's SRID with defaultSRID when g has none and
// defaultSRID is known, mirroring the teacher's adjustGeomSRID but without
// a type switch: geogeom.Geometry exposes SetSRID directly.
func adjustSRID(g geogeom.Geometry, defaultSRID geopb.SRID) {
	if defaultSRID.Known() && !g.SRID().Known() {
		g.SetSRID(defaultSRID)
	}
}
