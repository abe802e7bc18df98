// Copyright 2024 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package manual

import (
	"unsafe"

	"github.com/cockroachdb/errors"
	"github.com/lczhang/byteview"
	"github.com/lczhang/byteview/internal/invariants"
)

// Buf describes a manually allocated buffer.
type Buf struct {
	data unsafe.Pointer
	// n is the size of the buffer, in bytes.
	n uintptr
}

// MakeBufUnsafe returns a Buf for the given pointer and length. The caller
// is responsible for the validity of the memory.
func MakeBufUnsafe(data unsafe.Pointer, n uintptr) Buf {
	if invariants.Enabled && n > MaxArrayLen {
		panic(errors.AssertionFailedf("manual: buffer size %d exceeds maximum array length", n))
	}
	return Buf{data: data, n: n}
}

// Data returns the buffer base address.
func (b Buf) Data() unsafe.Pointer {
	return b.data
}

// Len returns the size of the buffer, in bytes.
func (b Buf) Len() uintptr {
	return b.n
}

// Slice returns the buffer as a byte slice, without copying.
func (b Buf) Slice() []byte {
	return unsafe.Slice((*byte)(b.data), b.n)
}

// View returns a byteview.View over the buffer's contents. The view (and
// any view derived from it) must not be used after the buffer is freed.
func (b Buf) View() byteview.View {
	return byteview.MakeUnsafe(b.data, int(b.n))
}
