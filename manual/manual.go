// Copyright 2024 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package manual provides routines for allocating and freeing memory that
// is not managed by the Go runtime. Views over such memory do not keep it
// alive; the caller must not free a buffer while views of it are still in
// use.
package manual

import (
	"sync/atomic"

	"github.com/lczhang/byteview/internal/invariants"
)

// Purpose identifies the use-case for an allocation.
type Purpose uint8

const (
	_ Purpose = iota

	// BlockData is for long-lived buffers holding data blocks that views
	// are handed out into.
	BlockData
	// Scratch is for transient buffers.
	Scratch

	NumPurposes
)

// String implements fmt.Stringer.
func (p Purpose) String() string {
	switch p {
	case BlockData:
		return "block-data"
	case Scratch:
		return "scratch"
	default:
		return "unknown"
	}
}

// Metrics contains memory statistics by purpose.
type Metrics [NumPurposes]struct {
	// InUseBytes is the total number of bytes currently allocated. This is just
	// the sum of the lengths of the allocations and does not include any
	// overhead or fragmentation.
	InUseBytes uint64

	// TotalBytes is the total cumulative number of bytes allocated since the
	// process started. This is just the sum of the lengths of the allocations
	// and does not include any overhead or fragmentation.
	TotalBytes uint64
}

var counters [NumPurposes]struct {
	TotalAllocated atomic.Uint64
	TotalFreed     atomic.Uint64
	// Pad to separate counters into cache lines. This reduces the overhead when
	// multiple purposes are used frequently. We assume 64 byte cache line size
	// which is the case for ARM64 servers and AMD64.
	_ [6]uint64
}

func recordAlloc(purpose Purpose, n uintptr) {
	counters[purpose].TotalAllocated.Add(uint64(n))
}

func recordFree(purpose Purpose, n uintptr) {
	counters[purpose].TotalFreed.Add(uint64(n))
}

// GetMetrics returns manual memory usage statistics.
func GetMetrics() Metrics {
	var res Metrics
	for i := range res {
		total := counters[i].TotalAllocated.Load()
		res[i].TotalBytes = total
		// Freed exceeding allocated indicates a double free.
		res[i].InUseBytes = invariants.SafeSub(total, counters[i].TotalFreed.Load())
	}
	return res
}
