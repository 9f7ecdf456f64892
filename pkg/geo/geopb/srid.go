// Copyright 2020 The Cockroach Authors.
//
// Use of this software is governed by the Business Source License
// included in the file licenses/BSL.txt.
//
// As of the Change Date specified in that file, in accordance with
// the Business Source License, use of this software will be governed
// by the Apache License, Version 2.0, included in the file
// licenses/APL.txt.

package geopb

// SRID is a spatial reference identifier: an integer key into an external
// coordinate reference system registry. That registry is host glue and is
// out of scope for this module; SRID is carried as an opaque key throughout.
type SRID int32

// UnknownSRID is both the on-disk and in-memory sentinel for "no SRID known".
// PostGIS uses 0 for this purpose and this module keeps the same convention
// so on-disk bytes never need remapping to a different in-memory sentinel.
const UnknownSRID SRID = 0

// Known reports whether s is anything other than the "unknown" sentinel.
func (s SRID) Known() bool {
	return s != UnknownSRID
}
