// Copyright 2025 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package byteview_test

import (
	"slices"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/redact"
	"github.com/lczhang/byteview"
	"github.com/lczhang/byteview/manual"
	"github.com/stretchr/testify/require"
)

func TestChecksumContentBased(t *testing.T) {
	for _, typ := range []byteview.ChecksumType{
		byteview.ChecksumTypeCRC32c,
		byteview.ChecksumTypeXXHash64,
	} {
		t.Run(typ.String(), func(t *testing.T) {
			c := byteview.Checksummer{Type: typ}
			b1 := []byte("equal contents, distinct buffers")
			b2 := slices.Clone(b1)
			v1, v2 := byteview.Make(b1), byteview.Make(b2)
			require.True(t, v1.Data() != v2.Data())
			require.Equal(t, c.Checksum(v1), c.Checksum(v2))
			require.NoError(t, byteview.ValidateChecksum(typ, v2, c.Checksum(v1)))

			// Reusing the checksummer yields stable results.
			require.Equal(t, c.Checksum(v1), c.Checksum(v1))

			// A view over manually managed memory checksums the same as one
			// over a Go buffer with the same contents.
			buf := manual.New(manual.BlockData, uintptr(len(b1)))
			defer manual.Free(manual.BlockData, buf)
			copy(buf.Slice(), b1)
			require.Equal(t, c.Checksum(v1), c.Checksum(buf.View()))
		})
	}
}

func TestValidateChecksumDetectsCorruption(t *testing.T) {
	c := byteview.Checksummer{Type: byteview.ChecksumTypeCRC32c}
	b := []byte("some block contents worth protecting")
	v := byteview.Make(b)
	sum := c.Checksum(v)

	// Flipping bit 5 of a letter toggles its ASCII case.
	b[3] ^= 1 << 5
	require.Equal(t, byte('E'), b[3])
	err := byteview.ValidateChecksum(byteview.ChecksumTypeCRC32c, v, sum)
	require.Error(t, err)
	require.True(t, errors.Is(err, byteview.ErrCorruption))
	require.Contains(t, err.Error(), "checksum mismatch")
	// Validation must not modify the viewed bytes.
	require.Equal(t, byte('E'), b[3])

	b[3] ^= 1 << 5
	require.NoError(t, byteview.ValidateChecksum(byteview.ChecksumTypeCRC32c, v, sum))
}

func TestValidateChecksumMultiByteCorruption(t *testing.T) {
	c := byteview.Checksummer{Type: byteview.ChecksumTypeXXHash64}
	b := []byte("0123456789")
	v := byteview.Make(b)
	sum := c.Checksum(v)

	b[0], b[1] = b[1], b[0]
	err := byteview.ValidateChecksum(byteview.ChecksumTypeXXHash64, v, sum)
	require.Error(t, err)
	require.True(t, errors.Is(err, byteview.ErrCorruption))
}

func TestValidateChecksumUnsupported(t *testing.T) {
	err := byteview.ValidateChecksum(byteview.ChecksumTypeNone, byteview.MakeString("x"), 0)
	require.Error(t, err)
	require.False(t, errors.Is(err, byteview.ErrCorruption))
}

func TestChecksumTypeString(t *testing.T) {
	require.Equal(t, "none", byteview.ChecksumTypeNone.String())
	require.Equal(t, "crc32c", byteview.ChecksumTypeCRC32c.String())
	require.Equal(t, "xxhash", byteview.ChecksumTypeXXHash.String())
	require.Equal(t, "xxhash64", byteview.ChecksumTypeXXHash64.String())
	// The type name is reporting-safe.
	require.Equal(t, "crc32c", string(redact.Sprint(byteview.ChecksumTypeCRC32c)))
}

func TestChecksumEmptyView(t *testing.T) {
	c := byteview.Checksummer{Type: byteview.ChecksumTypeCRC32c}
	var v byteview.View
	sum := c.Checksum(v)
	require.NoError(t, byteview.ValidateChecksum(byteview.ChecksumTypeCRC32c, v, sum))
	require.Equal(t, sum, c.Checksum(byteview.Make(nil)))
}
