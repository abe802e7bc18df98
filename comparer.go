// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package byteview

import (
	"encoding/binary"
	"fmt"
	"slices"
	"strconv"
	"unicode/utf8"

	"github.com/cockroachdb/crlib/crbytes"
	"github.com/cockroachdb/errors"
)

// Compare returns -1, 0, or +1 depending on whether a is 'less than',
// 'equal to' or 'greater than' b. An implementation must define a total
// ordering over the space of keys.
type Compare func(a, b View) int

// Equal returns true if a and b are equivalent.
//
// For a given Compare, Equal(a,b)=true iff Compare(a,b)=0; that is, Equal is
// a (potentially faster) specialization of Compare.
type Equal func(a, b View) bool

// AbbreviatedKey returns a fixed length prefix of a key such that
//
//	AbbreviatedKey(a) < AbbreviatedKey(b) implies a < b, and
//	AbbreviatedKey(a) > AbbreviatedKey(b) implies a > b.
//
// If AbbreviatedKey(a) == AbbreviatedKey(b), an additional comparison is
// required to determine if the two keys are actually equal.
//
// This helps optimize sorted-structure comparisons for cache locality.
type AbbreviatedKey func(key View) uint64

// FormatKey returns a formatter for the key.
type FormatKey func(key View) fmt.Formatter

// DefaultFormatter is the default implementation of key formatting:
// non-ASCII data is formatted as escaped hexadecimal values.
var DefaultFormatter FormatKey = func(key View) fmt.Formatter {
	return FormatBytes(key.Bytes())
}

// Separator appends to dst a key k such that, given keys a, b for which
// Compare(a, b) < 0:
//
//  1. Compare(a, k) <= 0, and
//  2. Compare(k, b) < 0.
//
// A trivial implementation is `return a.AppendTo(dst)`, but appending fewer
// bytes leads to smaller index structures. For example, if a and b are the
// views of the strings "black" and "blue", the function may append "blb" to
// dst.
type Separator func(dst []byte, a, b View) []byte

// Successor appends to dst a shortened key k given a key a such that
// Compare(a, k) <= 0. A simple implementation may return a unchanged.
// The appended key k must be valid to pass to Compare.
type Successor func(dst []byte, a View) []byte

// Comparer defines a total ordering over the space of keys: a 'less than'
// relationship.
type Comparer struct {
	// The following must always be specified.
	AbbreviatedKey AbbreviatedKey
	Separator      Separator
	Successor      Successor

	// Compare defaults to the natural byte ordering if it is not specified.
	Compare Compare
	// Equal defaults to using Compare() == 0 if it is not specified.
	Equal Equal
	// FormatKey defaults to the DefaultFormatter if it is not specified.
	FormatKey FormatKey

	// Name is the name of the comparer.
	//
	// On-disk formats store the comparer name, and opening stored data with a
	// different comparer from the one it was written with results in an
	// error.
	Name string
}

// EnsureDefaults ensures that all non-optional fields are set.
//
// If c is nil, returns DefaultComparer.
//
// If any fields need to be set, returns a modified copy of c.
func (c *Comparer) EnsureDefaults() *Comparer {
	if c == nil {
		return DefaultComparer
	}
	if c.AbbreviatedKey == nil || c.Separator == nil || c.Successor == nil || c.Name == "" {
		panic("invalid Comparer: mandatory field not set")
	}
	if c.Compare != nil && c.Equal != nil && c.FormatKey != nil {
		return c
	}
	n := &Comparer{}
	*n = *c

	if n.Compare == nil {
		n.Compare = View.Compare
		if n.Equal == nil {
			n.Equal = View.Equal
		}
	}
	if n.Equal == nil {
		n.Equal = func(a, b View) bool {
			return n.Compare(a, b) == 0
		}
	}
	if n.FormatKey == nil {
		n.FormatKey = DefaultFormatter
	}
	return n
}

// DefaultComparer is the default implementation of the Comparer interface.
// It uses the natural ordering, consistent with View.Compare.
var DefaultComparer = &Comparer{
	Compare: View.Compare,
	Equal:   View.Equal,

	AbbreviatedKey: func(key View) uint64 {
		kb := key.Bytes()
		if len(kb) >= 8 {
			return binary.BigEndian.Uint64(kb)
		}
		var v uint64
		for _, b := range kb {
			v <<= 8
			v |= uint64(b)
		}
		return v << uint(8*(8-len(kb)))
	},

	FormatKey: DefaultFormatter,

	Separator: func(dst []byte, a, b View) []byte {
		ab, bb := a.Bytes(), b.Bytes()
		i, n := CommonPrefixLen(a, b), len(dst)
		dst = append(dst, ab...)

		min := len(ab)
		if min > len(bb) {
			min = len(bb)
		}
		if i >= min {
			// Do not shorten if one key is a prefix of the other.
			return dst
		}

		if ab[i] >= bb[i] {
			// b is smaller than a or a is already the shortest possible.
			return dst
		}

		if i < len(bb)-1 || ab[i]+1 < bb[i] {
			i += n
			dst[i]++
			return dst[:i+1]
		}

		i += n + 1
		for ; i < len(dst); i++ {
			if dst[i] != 0xff {
				dst[i]++
				return dst[:i+1]
			}
		}
		return dst
	},

	Successor: func(dst []byte, a View) []byte {
		ab := a.Bytes()
		for i := 0; i < len(ab); i++ {
			if ab[i] != 0xff {
				dst = append(dst, ab[:i+1]...)
				dst[len(dst)-1]++
				return dst
			}
		}
		// a is a run of 0xffs, leave it alone.
		return append(dst, ab...)
	},

	// This name is part of the C++ Level-DB implementation's default file
	// format, and should not be changed.
	Name: "leveldb.BytewiseComparator",
}

// CommonPrefixLen returns the largest i such that the first i bytes of a
// equal the first i bytes of b. This function can be useful in implementing
// the Comparer interface.
func CommonPrefixLen(a, b View) int {
	return crbytes.CommonPrefix(a.Bytes(), b.Bytes())
}

// FormatBytes formats a byte slice using hexadecimal escapes for non-ASCII
// data.
type FormatBytes []byte

const lowerhex = "0123456789abcdef"

// Format implements the fmt.Formatter interface.
func (p FormatBytes) Format(s fmt.State, c rune) {
	buf := make([]byte, 0, len(p))
	for _, b := range p {
		if b < utf8.RuneSelf && strconv.IsPrint(rune(b)) {
			buf = append(buf, b)
			continue
		}
		buf = append(buf, `\x`...)
		buf = append(buf, lowerhex[b>>4])
		buf = append(buf, lowerhex[b&0xF])
	}
	s.Write(buf)
}

// MakeAssertComparer creates a Comparer that is the same as the given
// Comparer except that its Compare and Equal verify their contracts on
// every call. The given Comparer must be complete (see EnsureDefaults).
func MakeAssertComparer(c Comparer) Comparer {
	return Comparer{
		Compare: func(a, b View) int {
			res := c.Compare(a, b)
			// Verify antisymmetry against the reversed comparison.
			rev := c.Compare(b, a)
			if (res == 0) != (rev == 0) || (res < 0) != (rev > 0) {
				panic(errors.AssertionFailedf("%s: Compare(%s, %s)=%d but Compare(%s, %s)=%d",
					c.Name, c.FormatKey(a), c.FormatKey(b), res, c.FormatKey(b), c.FormatKey(a), rev))
			}
			return res
		},

		Equal: func(a, b View) bool {
			eq := c.Equal(a, b)
			// Verify that Equal is consistent with Compare.
			if expected := c.Compare(a, b); eq != (expected == 0) {
				panic("Compare and Equal are not consistent")
			}
			return eq
		},

		AbbreviatedKey: c.AbbreviatedKey,
		Separator:      c.Separator,
		Successor:      c.Successor,
		FormatKey:      c.FormatKey,
		Name:           c.Name,
	}
}

// CheckComparer is a mini test suite that verifies a comparer
// implementation against a sample of keys. It is recommended that the
// sample contain at least three distinct values.
func CheckComparer(c *Comparer, keys []View) error {
	c = c.EnsureDefaults()

	sorted := slices.Clone(keys)
	slices.SortFunc(sorted, c.Compare)
	if !slices.IsSortedFunc(sorted, c.Compare) {
		return errors.Errorf("%s: Compare does not define a total order", c.Name)
	}

	for _, a := range sorted {
		for _, b := range sorted {
			cmp := c.Compare(a, b)
			if rev := c.Compare(b, a); (cmp == 0) != (rev == 0) || (cmp < 0) != (rev > 0) {
				return errors.Errorf("%s: Compare(%s, %s)=%d but Compare(%s, %s)=%d",
					c.Name, c.FormatKey(a), c.FormatKey(b), cmp, c.FormatKey(b), c.FormatKey(a), rev)
			}
			if eq := c.Equal(a, b); eq != (cmp == 0) {
				return errors.Errorf("%s: Equal(%s, %s) doesn't agree with Compare",
					c.Name, c.FormatKey(a), c.FormatKey(b))
			}
			abbrevA, abbrevB := c.AbbreviatedKey(a), c.AbbreviatedKey(b)
			if cmp == 0 && abbrevA != abbrevB {
				return errors.Errorf("%s: AbbreviatedKey differs for equal keys %s and %s",
					c.Name, c.FormatKey(a), c.FormatKey(b))
			}
			if cmp < 0 && abbrevA > abbrevB {
				return errors.Errorf("%s: AbbreviatedKey(%s) > AbbreviatedKey(%s) for ordered keys",
					c.Name, c.FormatKey(a), c.FormatKey(b))
			}
		}
	}

	for i := 1; i < len(sorted); i++ {
		a, b := sorted[i-1], sorted[i]
		if c.Compare(a, b) == 0 {
			continue
		}
		sep := Make(c.Separator(nil, a, b))
		if c.Compare(a, sep) > 0 || c.Compare(sep, b) >= 0 {
			return errors.Errorf("%s: Separator(%s, %s)=%s violates its contract",
				c.Name, c.FormatKey(a), c.FormatKey(b), c.FormatKey(sep))
		}
	}
	for _, a := range keys {
		succ := Make(c.Successor(nil, a))
		if c.Compare(a, succ) > 0 {
			return errors.Errorf("%s: Successor(%s)=%s sorts before its input",
				c.Name, c.FormatKey(a), c.FormatKey(succ))
		}
	}
	return nil
}
