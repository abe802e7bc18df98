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
	materializeValueSize = 1024
	materializeBuffers   = 64
	materializeReuse     = false
)

var materializeCmd = &cobra.Command{
	Use:   "materialize",
	Short: "run the view materialization benchmark",
	Long:  ``,
	Args:  cobra.ExactArgs(0),
	Run:   runMaterialize,
}

func runMaterialize(cmd *cobra.Command, args []string) {
	bufs, views := newRandomBuffers(manual.BlockData, materializeBuffers, materializeValueSize)

	runWorkload("materialize", workload{
		bytesPerOp: int64(materializeValueSize),
		newWorker: func() func(rng *rand.Rand) {
			var dst []byte
			return func(rng *rand.Rand) {
				v := views[rng.IntN(len(views))]
				if materializeReuse {
					dst = v.AppendTo(dst[:0])
				} else {
					dst = v.Materialize()
				}
			}
		},
		done: func(elapsed time.Duration) {
			freeBuffers(manual.BlockData, bufs)
		},
	})
}
