// Copyright 2020 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

//go:build !invariants && !race

package invariants

import "golang.org/x/exp/constraints"

// Enabled is true if we were built with the "invariants" or "race" build tags.
const Enabled = false

// CheckBounds panics if the index is not in the range [0, n). No-op in
// non-invariant builds.
func CheckBounds[T constraints.Integer](i T, n T) {}

// SafeSub returns a - b. If a < b, it panics in invariant builds and returns 0
// in non-invariant builds.
func SafeSub[T constraints.Integer](a, b T) T {
	if a < b {
		return 0
	}
	return a - b
}

// MaybeMangle overwrites the buffer with garbage, to make any use of memory
// that was freed or recycled more detectable. No-op in non-invariant builds.
func MaybeMangle(b []byte) {}
