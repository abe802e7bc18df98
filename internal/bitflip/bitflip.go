// Copyright 2023 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package bitflip provides a probe that checks whether a checksum mismatch
// can be explained by a single flipped bit, which points at hardware rather
// than software corruption.
package bitflip

// CheckSliceForBitFlip flips each bit of data in turn and recomputes the
// checksum, reporting the byte index and bit position of a flip that makes
// the checksum match. The scan is bounded to a prefix of large buffers.
//
// data is restored before returning.
func CheckSliceForBitFlip(
	data []byte, computeChecksum func([]byte) uint32, expectedChecksum uint32,
) (found bool, indexFound int, bitFound int) {
	const probeLimit = 40 << 10
	n := min(len(data), probeLimit)
	for i := 0; i < n; i++ {
		if ok, bit := checkByteForFlip(data, i, computeChecksum, expectedChecksum); ok {
			return true, i, bit
		}
	}
	return false, 0, 0
}

func checkByteForFlip(
	data []byte, i int, computeChecksum func([]byte) uint32, expectedChecksum uint32,
) (found bool, bit int) {
	for bit := 0; bit < 8; bit++ {
		data[i] ^= 1 << bit
		computed := computeChecksum(data)
		data[i] ^= 1 << bit
		if computed == expectedChecksum {
			return true, bit
		}
	}
	return false, 0
}
