// Copyright 2025 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package byteview_test

import (
	"fmt"
	"math/rand/v2"
	"testing"
	"time"
	"unsafe"

	"github.com/lczhang/byteview"
	"github.com/lczhang/byteview/manual"
	"github.com/stretchr/testify/require"
)

func TestZeroValue(t *testing.T) {
	var v byteview.View
	require.Equal(t, 0, v.Len())
	require.True(t, v.Empty())
	require.True(t, v.Data() != nil)
	require.Equal(t, "", string(v.Materialize()))
}

func TestMake(t *testing.T) {
	b := []byte("hello world")
	v := byteview.Make(b)
	require.Equal(t, 11, v.Len())
	require.False(t, v.Empty())
	require.True(t, v.Data() == unsafe.Pointer(unsafe.SliceData(b)))
	require.Equal(t, byte('h'), v.At(0))
	require.Equal(t, byte('d'), v.At(10))

	// The view aliases b rather than copying it.
	b[0] = 'j'
	require.Equal(t, byte('j'), v.At(0))

	require.True(t, byteview.Make(nil).Data() != nil)
	require.True(t, byteview.Make([]byte{}).Data() != nil)
}

func TestMakeString(t *testing.T) {
	s := "leveldb"
	v := byteview.MakeString(s)
	require.Equal(t, len(s), v.Len())
	require.True(t, v.Data() == unsafe.Pointer(unsafe.StringData(s)))
	require.Equal(t, s, string(v.Materialize()))

	require.True(t, byteview.MakeString("").Data() != nil)
}

func TestMakeUnsafe(t *testing.T) {
	b := []byte("block cache entry")
	v := byteview.MakeUnsafe(unsafe.Pointer(&b[6]), 5)
	require.Equal(t, "cache", string(v.Bytes()))

	v = byteview.MakeUnsafe(nil, 0)
	require.True(t, v.Data() != nil)
	require.True(t, v.Empty())
}

func TestMakeCString(t *testing.T) {
	b := []byte("hello\x00world\x00")
	v := byteview.MakeCString(unsafe.Pointer(unsafe.SliceData(b)))
	require.Equal(t, 5, v.Len())
	require.Equal(t, "hello", string(v.Bytes()))

	// An empty C string: the first byte is the terminator.
	v = byteview.MakeCString(unsafe.Pointer(&b[5]))
	require.True(t, v.Empty())
	require.True(t, v.Data() != nil)

	// C strings in manually managed memory.
	buf := manual.New(manual.Scratch, 8)
	copy(buf.Slice(), "abc\x00")
	v = byteview.MakeCString(buf.Data())
	require.Equal(t, "abc", string(v.Materialize()))
	manual.Free(manual.Scratch, buf)
}

func TestRemovePrefix(t *testing.T) {
	v := byteview.MakeString("hello world")
	v.RemovePrefix(6)
	require.Equal(t, "world", string(v.Bytes()))
	require.Equal(t, 5, v.Len())

	v.RemovePrefix(0)
	require.Equal(t, "world", string(v.Bytes()))

	v.RemovePrefix(5)
	require.True(t, v.Empty())
	require.True(t, v.Data() != nil)

	// Narrowing one view does not affect copies of it.
	a := byteview.MakeString("hello world")
	b := a
	a.RemovePrefix(6)
	require.Equal(t, "world", string(a.Bytes()))
	require.Equal(t, "hello world", string(b.Bytes()))
}

func TestClear(t *testing.T) {
	v := byteview.MakeString("nonempty")
	v.Clear()
	require.True(t, v.Empty())
	require.Equal(t, 0, v.Len())
	require.True(t, v.Data() != nil)
}

func TestCompare(t *testing.T) {
	testCases := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"", "a", -1},
		{"a", "", 1},
		{"abc", "abc", 0},
		{"abc", "abd", -1},
		{"abc", "abcd", -1},
		{"abcd", "abc", 1},
		{"a", "\xff", -1},
	}
	for _, tc := range testCases {
		t.Run("", func(t *testing.T) {
			a, b := byteview.MakeString(tc.a), byteview.MakeString(tc.b)
			require.Equal(t, tc.want, a.Compare(b))
			require.Equal(t, -tc.want, b.Compare(a))
			require.Equal(t, tc.want == 0, a.Equal(b))
		})
	}
}

func TestEqualAcrossBuffers(t *testing.T) {
	// Distinct buffers holding the same contents.
	b1 := []byte("leveldb")
	b2 := []byte("leveldb")
	v1, v2 := byteview.Make(b1), byteview.Make(b2)
	require.True(t, v1.Data() != v2.Data())
	require.True(t, v1.Equal(v2))
	require.Equal(t, 0, v1.Compare(v2))

	b2[0] = 'L'
	require.False(t, v1.Equal(v2))
}

func TestHasPrefix(t *testing.T) {
	v := byteview.MakeString("Hello, world!")
	require.True(t, v.HasPrefix(byteview.MakeString("Hello")))
	require.True(t, v.HasPrefix(byteview.MakeString("")))
	require.True(t, v.HasPrefix(v))
	require.False(t, v.HasPrefix(byteview.MakeString("hello")))
	require.False(t, v.HasPrefix(byteview.MakeString("Hello, world!!")))

	empty := byteview.Make(nil)
	require.True(t, empty.HasPrefix(byteview.MakeString("")))
	require.False(t, empty.HasPrefix(byteview.MakeString("a")))
}

func TestMaterialize(t *testing.T) {
	b := []byte("abc")
	v := byteview.Make(b)
	m := v.Materialize()
	require.Equal(t, "abc", string(m))

	// The materialized copy is independent of the viewed buffer.
	b[0] = 'x'
	require.Equal(t, "abc", string(m))
	require.Equal(t, "xbc", string(v.Bytes()))

	got := v.AppendTo([]byte("dst-"))
	require.Equal(t, "dst-xbc", string(got))
}

func TestViewString(t *testing.T) {
	require.Equal(t, "hello", byteview.MakeString("hello").String())
	require.Equal(t, `\x00\x01ab\xff`, byteview.Make([]byte{0, 1, 'a', 'b', 0xff}).String())
}

func TestViewOpsRandomized(t *testing.T) {
	rng := rand.New(rand.NewPCG(0, uint64(time.Now().UnixNano())))

	newBacking := func() []byte {
		b := make([]byte, 1+rng.IntN(512))
		for i := range b {
			b[i] = byte(rng.Uint32())
		}
		return b
	}

	backing := newBacking()
	v := byteview.Make(backing)
	oracle := backing

	for i := 0; i < 1000; i++ {
		switch rng.IntN(4) {
		case 0:
			n := rng.IntN(len(oracle) + 1)
			v.RemovePrefix(n)
			oracle = oracle[n:]
		case 1:
			if len(oracle) > 0 {
				j := rng.IntN(len(oracle))
				require.Equal(t, oracle[j], v.At(j))
			}
		case 2:
			p := rng.IntN(len(oracle) + 1)
			require.True(t, v.HasPrefix(byteview.Make(oracle[:p])))
			require.Equal(t, 0, v.Compare(byteview.Make(oracle)))
		case 3:
			if len(oracle) == 0 {
				backing = newBacking()
				v = byteview.Make(backing)
				oracle = backing
			}
		}
		require.Equal(t, len(oracle), v.Len())
		require.Equal(t, len(oracle) == 0, v.Empty())
		require.Equal(t, oracle, v.Materialize())
	}
}

func BenchmarkViewCompare(b *testing.B) {
	rng := rand.New(rand.NewPCG(0, 1449168817))
	keys := make([]byteview.View, 1000)
	for i := range keys {
		data := make([]byte, 16)
		for j := range data {
			data[j] = byte(rng.Int() & 0xff)
		}
		keys[i] = byteview.Make(data)
	}

	b.ResetTimer()
	var sum int
	for i := 0; i < b.N; i++ {
		j := i % (len(keys) - 1)
		sum += keys[j].Compare(keys[j+1])
	}

	if testing.Verbose() {
		// Ensure the compiler doesn't optimize away our benchmark.
		fmt.Println(sum)
	}
}

func BenchmarkMaterialize(b *testing.B) {
	buf := manual.New(manual.BlockData, 4096)
	defer manual.Free(manual.BlockData, buf)
	s := buf.Slice()
	for i := range s {
		s[i] = byte(i)
	}
	v := buf.View()

	b.ResetTimer()
	var sum int
	for i := 0; i < b.N; i++ {
		sum += len(v.Materialize())
	}

	if testing.Verbose() {
		// Ensure the compiler doesn't optimize away our benchmark.
		fmt.Println(sum)
	}
}
