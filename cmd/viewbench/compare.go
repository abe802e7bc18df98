// Copyright 2025 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package main

import (
	"math/rand/v2"
	"time"

	"github.com/lczhang/byteview/manual"
	"github.com/spf13/cobra"
)

var (
	compareValueSize = 16
	compareBuffers   = 1024
	comparePrefixLen = 4
)

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "run the view comparison benchmark",
	Long:  ``,
	Args:  cobra.ExactArgs(0),
	Run:   runCompare,
}

func runCompare(cmd *cobra.Command, args []string) {
	if comparePrefixLen > compareValueSize {
		comparePrefixLen = compareValueSize
	}
	bufs, views := newRandomBuffers(manual.Scratch, compareBuffers, compareValueSize)
	// Give the values a shared prefix so comparisons advance past the first
	// byte.
	for i := range bufs {
		s := bufs[i].Slice()
		for j := 0; j < comparePrefixLen; j++ {
			s[j] = 'k'
		}
	}

	runWorkload("compare", workload{
		newWorker: func() func(rng *rand.Rand) {
			var sink int
			return func(rng *rand.Rand) {
				a := views[rng.IntN(len(views))]
				b := views[rng.IntN(len(views))]
				sink += a.Compare(b)
			}
		},
		done: func(elapsed time.Duration) {
			freeBuffers(manual.Scratch, bufs)
		},
	})
}
