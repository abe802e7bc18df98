// Copyright 2025 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package main

import (
	"fmt"
	"log"
	"math/rand/v2"
	"time"

	"github.com/lczhang/byteview"
	"github.com/lczhang/byteview/manual"
	"github.com/spf13/cobra"
)

var (
	checksumValueSize = 4096
	checksumBuffers   = 64
	checksumTypeName  = "crc32c"
)

var checksumCmd = &cobra.Command{
	Use:   "checksum",
	Short: "run the view checksum benchmark",
	Long:  ``,
	Args:  cobra.ExactArgs(0),
	Run:   runChecksum,
}

func runChecksum(cmd *cobra.Command, args []string) {
	var typ byteview.ChecksumType
	switch checksumTypeName {
	case "crc32c":
		typ = byteview.ChecksumTypeCRC32c
	case "xxhash64":
		typ = byteview.ChecksumTypeXXHash64
	default:
		log.Fatalf("unknown checksum type %q", checksumTypeName)
	}

	bufs, views := newRandomBuffers(manual.BlockData, checksumBuffers, checksumValueSize)

	runWorkload("checksum", workload{
		bytesPerOp: int64(checksumValueSize),
		newWorker: func() func(rng *rand.Rand) {
			// Each worker gets its own Checksummer so the xxhash digest can
			// be reused without synchronization.
			cs := &byteview.Checksummer{Type: typ}
			var sink uint32
			return func(rng *rand.Rand) {
				sink ^= cs.Checksum(views[rng.IntN(len(views))])
			}
		},
		done: func(elapsed time.Duration) {
			freeBuffers(manual.BlockData, bufs)
			m := manual.GetMetrics()
			fmt.Printf("manual memory: %d bytes allocated over the run, %d bytes in use\n",
				m[manual.BlockData].TotalBytes, m[manual.BlockData].InUseBytes)
		},
	})
}
