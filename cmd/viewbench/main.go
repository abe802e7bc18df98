// Copyright 2025 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package main

import (
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	concurrency int
	duration    time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "viewbench [command] (flags)",
	Short: "byteview benchmarking tool",
	Long:  ``,
}

func main() {
	log.SetFlags(0)

	cobra.EnableCommandSorting = false
	rootCmd.AddCommand(
		compareCmd,
		checksumCmd,
		materializeCmd,
	)

	for _, cmd := range []*cobra.Command{compareCmd, checksumCmd, materializeCmd} {
		cmd.Flags().IntVarP(
			&concurrency, "concurrency", "c", 1, "number of concurrent workers")
		cmd.Flags().DurationVarP(
			&duration, "duration", "d", 10*time.Second, "the duration to run (0, run forever)")
	}

	compareCmd.Flags().IntVar(
		&compareValueSize, "value", compareValueSize, "size of the values to compare")
	compareCmd.Flags().IntVar(
		&compareBuffers, "buffers", compareBuffers, "number of buffers to compare across")
	compareCmd.Flags().IntVar(
		&comparePrefixLen, "prefix", comparePrefixLen, "length of the shared prefix of the values")

	checksumCmd.Flags().IntVar(
		&checksumValueSize, "value", checksumValueSize, "size of the values to checksum")
	checksumCmd.Flags().IntVar(
		&checksumBuffers, "buffers", checksumBuffers, "number of buffers to checksum")
	checksumCmd.Flags().StringVar(
		&checksumTypeName, "type", checksumTypeName, "checksum type (crc32c or xxhash64)")

	materializeCmd.Flags().IntVar(
		&materializeValueSize, "value", materializeValueSize, "size of the values to materialize")
	materializeCmd.Flags().IntVar(
		&materializeBuffers, "buffers", materializeBuffers, "number of buffers to materialize from")
	materializeCmd.Flags().BoolVar(
		&materializeReuse, "reuse", false, "append into a reused buffer instead of allocating")

	if err := rootCmd.Execute(); err != nil {
		// Cobra has already printed the error message.
		os.Exit(1)
	}
}
