// Copyright 2025 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package byteview

import (
	"github.com/cespare/xxhash/v2"
	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/redact"
	"github.com/lczhang/byteview/internal/bitflip"
	"github.com/lczhang/byteview/internal/crc"
)

// ErrCorruption is the marker error for checksum mismatches.
var ErrCorruption = errors.New("byteview: corruption")

// ChecksumType specifies the checksum algorithm guarding a span of bytes.
type ChecksumType byte

// The available checksum types. These values are part of durable formats
// and should not be changed.
const (
	ChecksumTypeNone     ChecksumType = 0
	ChecksumTypeCRC32c   ChecksumType = 1
	ChecksumTypeXXHash   ChecksumType = 2
	ChecksumTypeXXHash64 ChecksumType = 3
)

// String implements fmt.Stringer.
func (t ChecksumType) String() string {
	switch t {
	case ChecksumTypeCRC32c:
		return "crc32c"
	case ChecksumTypeNone:
		return "none"
	case ChecksumTypeXXHash:
		return "xxhash"
	case ChecksumTypeXXHash64:
		return "xxhash64"
	default:
		panic(errors.Newf("byteview: unknown checksum type: %d", t))
	}
}

// SafeFormat implements redact.SafeFormatter.
func (t ChecksumType) SafeFormat(w redact.SafePrinter, _ rune) {
	w.Print(redact.SafeString(t.String()))
}

// A Checksummer calculates checksums over views. It carries reusable hasher
// state; the zero value with the Type filled in is ready for use.
type Checksummer struct {
	Type     ChecksumType
	xxHasher *xxhash.Digest
}

// Checksum computes a checksum of the viewed bytes. The checksum is a
// function of the contents only; views over distinct memory holding equal
// bytes produce equal checksums.
func (c *Checksummer) Checksum(v View) uint32 {
	switch c.Type {
	case ChecksumTypeCRC32c:
		return crc.New(v.Bytes()).Value()
	case ChecksumTypeXXHash64:
		if c.xxHasher == nil {
			c.xxHasher = xxhash.New()
		} else {
			c.xxHasher.Reset()
		}
		c.xxHasher.Write(v.Bytes())
		return uint32(c.xxHasher.Sum64())
	default:
		panic(errors.Newf("byteview: unsupported checksum type: %d", c.Type))
	}
}

// ValidateChecksum recomputes the checksum of the viewed bytes and compares
// it to want. A mismatch is reported as an error marked with ErrCorruption;
// if the mismatch can be explained by a single flipped bit, its position is
// attached to the error as a safe detail.
func ValidateChecksum(t ChecksumType, v View, want uint32) error {
	var computed uint32
	switch t {
	case ChecksumTypeCRC32c:
		computed = crc.New(v.Bytes()).Value()
	case ChecksumTypeXXHash64:
		computed = uint32(xxhash.Sum64(v.Bytes()))
	default:
		return errors.Errorf("byteview: unsupported checksum type: %d", t)
	}
	if computed == want {
		return nil
	}

	// The bit flip probe mutates the buffer it scans, so it runs on an owned
	// copy rather than the viewed memory.
	data := v.Materialize()
	var checksumFn func([]byte) uint32
	switch t {
	case ChecksumTypeCRC32c:
		checksumFn = func(data []byte) uint32 { return crc.New(data).Value() }
	case ChecksumTypeXXHash64:
		checksumFn = func(data []byte) uint32 { return uint32(xxhash.Sum64(data)) }
	}
	found, idx, bit := bitflip.CheckSliceForBitFlip(data, checksumFn, want)
	err := errors.Mark(
		errors.Newf("byteview: %s checksum mismatch %x != %x", t, want, computed),
		ErrCorruption)
	if found {
		err = errors.WithSafeDetails(err, ". bit flip found: byte index %d. got: %x. want: %x.",
			idx, data[idx], data[idx]^(1<<bit))
	}
	return err
}
