// Copyright 2025 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package byteview

import (
	"bytes"
	"fmt"
	"slices"
	"unsafe"

	"github.com/cockroachdb/errors"
	"github.com/lczhang/byteview/internal/invariants"
)

// View references a span of n bytes starting at ptr. It is a non-owning
// value type: copying a View copies the pointer and the length, never the
// data. The zero value is a valid, empty view.
//
// Note that == on two views compares the pointer and length, not the
// referenced contents; use Equal for content equality.
type View struct {
	ptr unsafe.Pointer
	n   int
}

// emptyData is the byte addressed by empty views. Data never returns nil,
// so that the result can be handed to code that treats a null pointer as
// the absence of a value; an empty view is present, just empty.
var emptyData byte

// empty returns the canonical empty view.
func empty() View {
	return View{ptr: unsafe.Pointer(&emptyData)}
}

// MakeUnsafe returns a view of the n bytes starting at ptr. The caller is
// responsible for the memory staying live and unmodified for the lifetime
// of the view.
func MakeUnsafe(ptr unsafe.Pointer, n int) View {
	if invariants.Enabled && (n < 0 || (ptr == nil && n != 0)) {
		panic(errors.AssertionFailedf("byteview: invalid span %p/%d", ptr, n))
	}
	if ptr == nil {
		return empty()
	}
	return View{ptr: ptr, n: n}
}

// MakeCString returns a view of the bytes starting at ptr up to, and
// excluding, the first NUL byte. ptr must address a NUL-terminated sequence.
func MakeCString(ptr unsafe.Pointer) View {
	if invariants.Enabled && ptr == nil {
		panic(errors.AssertionFailedf("byteview: nil C string"))
	}
	n := 0
	for *(*byte)(unsafe.Add(ptr, n)) != 0 {
		n++
	}
	return View{ptr: ptr, n: n}
}

// Make returns a view of the bytes of b, without copying. The view goes
// stale if b's backing array is recycled or rewritten.
func Make(b []byte) View {
	if len(b) == 0 {
		return empty()
	}
	return View{ptr: unsafe.Pointer(unsafe.SliceData(b)), n: len(b)}
}

// MakeString returns a view of the bytes of s, without copying. Strings are
// immutable; the caller must not write through slices obtained from Bytes
// on such a view.
func MakeString(s string) View {
	if len(s) == 0 {
		return empty()
	}
	return View{ptr: unsafe.Pointer(unsafe.StringData(s)), n: len(s)}
}

// Data returns the address of the first byte of the view. The result is
// never nil; an empty view addresses a static sentinel byte.
func (v View) Data() unsafe.Pointer {
	if v.ptr == nil {
		// Zero value View.
		return unsafe.Pointer(&emptyData)
	}
	return v.ptr
}

// Len returns the number of bytes in the view.
func (v View) Len() int {
	return v.n
}

// Empty reports whether the view has zero length.
func (v View) Empty() bool {
	return v.n == 0
}

// At returns the i-th byte of the view. It performs no bounds checking in
// regular builds.
func (v View) At(i int) byte {
	invariants.CheckBounds(i, v.n)
	return *(*byte)(unsafe.Add(v.ptr, i))
}

// Bytes returns the contents of the view as a byte slice, without copying.
// The slice aliases the viewed memory and is subject to the same lifetime
// constraints as the view itself.
func (v View) Bytes() []byte {
	return unsafe.Slice((*byte)(v.Data()), v.n)
}

// Clear resets the view to empty.
func (v *View) Clear() {
	*v = empty()
}

// RemovePrefix narrows the view, dropping its first n bytes. It requires
// 0 <= n <= Len. Copies of the view are unaffected and continue to
// reference the wider span.
func (v *View) RemovePrefix(n int) {
	if invariants.Enabled && (n < 0 || n > v.n) {
		panic(errors.AssertionFailedf("byteview: RemovePrefix(%d) of %d-byte view", n, v.n))
	}
	if n >= v.n {
		// The view is consumed entirely. A pointer just past the end of an
		// allocation is not valid, so reset to the canonical empty view.
		*v = empty()
		return
	}
	v.ptr = unsafe.Add(v.ptr, n)
	v.n -= n
}

// Materialize returns an owned copy of the viewed bytes. The result stays
// valid after the underlying memory is freed or reused.
func (v View) Materialize() []byte {
	return slices.Clone(v.Bytes())
}

// AppendTo appends the viewed bytes to dst and returns the result.
func (v View) AppendTo(dst []byte) []byte {
	return append(dst, v.Bytes()...)
}

// Compare returns -1, 0, or +1 depending on whether v is 'less than',
// 'equal to' or 'greater than' o: the natural byte ordering, with the
// shorter operand ordering first when one is a prefix of the other.
func (v View) Compare(o View) int {
	return bytes.Compare(v.Bytes(), o.Bytes())
}

// Equal reports whether v and o have the same length and contents. Views
// over distinct memory holding the same bytes are equal.
func (v View) Equal(o View) bool {
	return bytes.Equal(v.Bytes(), o.Bytes())
}

// HasPrefix reports whether v begins with the bytes of p.
func (v View) HasPrefix(p View) bool {
	return bytes.HasPrefix(v.Bytes(), p.Bytes())
}

// String returns the contents of the view with non-printable bytes escaped
// as hexadecimal.
func (v View) String() string {
	return fmt.Sprint(FormatBytes(v.Bytes()))
}
