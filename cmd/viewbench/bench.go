// Copyright 2025 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package main

import (
	"context"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
	"github.com/cockroachdb/crlib/crtime"
	"github.com/lczhang/byteview"
	"github.com/lczhang/byteview/internal/buildtags"
	"github.com/lczhang/byteview/manual"
	"golang.org/x/sync/errgroup"
)

const (
	minLatency = 10 * time.Nanosecond
	maxLatency = 10 * time.Second
)

func newHistogram() *hdrhistogram.Histogram {
	return hdrhistogram.New(minLatency.Nanoseconds(), maxLatency.Nanoseconds(), 1)
}

// A latencyRecorder accumulates per-operation latencies for a single worker.
// The harness swaps the histogram out once per tick so that recording never
// contends with reporting.
type latencyRecorder struct {
	mu struct {
		sync.Mutex
		current *hdrhistogram.Histogram
	}
}

func newLatencyRecorder() *latencyRecorder {
	r := &latencyRecorder{}
	r.mu.current = newHistogram()
	return r
}

func (r *latencyRecorder) Record(elapsed time.Duration) {
	if elapsed < minLatency {
		elapsed = minLatency
	} else if elapsed > maxLatency {
		elapsed = maxLatency
	}

	r.mu.Lock()
	err := r.mu.current.RecordValue(elapsed.Nanoseconds())
	r.mu.Unlock()

	if err != nil {
		// Values are clamped to the histogram's range above, so recording
		// cannot fail.
		panic(err)
	}
}

func (r *latencyRecorder) take() *hdrhistogram.Histogram {
	r.mu.Lock()
	defer r.mu.Unlock()
	h := r.mu.current
	r.mu.current = newHistogram()
	return h
}

// A workload describes one benchmark: a per-worker operation run in a loop
// until the run ends, and a cleanup step.
type workload struct {
	// newWorker returns the operation to run on one worker goroutine. It is
	// called once per worker; any state the returned function captures is
	// private to that worker.
	newWorker func() func(rng *rand.Rand)
	// bytesPerOp is the number of bytes processed by each operation, used
	// for throughput reporting.
	bytesPerOp int64
	// done runs after all workers have stopped.
	done func(elapsed time.Duration)
}

func runWorkload(name string, w workload) {
	fmt.Printf("%s: concurrency %d, duration %s, allocator %s\n",
		name, concurrency, duration, allocator())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	g, ctx := errgroup.WithContext(ctx)

	recorders := make([]*latencyRecorder, concurrency)
	for i := range recorders {
		recorders[i] = newLatencyRecorder()
	}

	for i := 0; i < concurrency; i++ {
		rec := recorders[i]
		seed := uint64(i)
		g.Go(func() error {
			work := w.newWorker()
			rng := rand.New(rand.NewPCG(seed, uint64(time.Now().UnixNano())))
			for ctx.Err() == nil {
				start := crtime.NowMono()
				work(rng)
				rec.Record(start.Elapsed())
			}
			return nil
		})
	}

	tick := func() *hdrhistogram.Histogram {
		merged := newHistogram()
		for _, rec := range recorders {
			merged.Merge(rec.take())
		}
		return merged
	}

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)

	var timeout <-chan time.Time
	if duration > 0 {
		timeout = time.After(duration)
	}

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	cumulative := newHistogram()
	start := crtime.NowMono()
	var lastElapsed time.Duration

	for i := 0; ; i++ {
		select {
		case <-ticker.C:
			if i%20 == 0 {
				fmt.Println("_elapsed_______ops/sec_______MB/sec_____p50(ns)_____p99(ns)____pMax(ns)")
			}
			h := tick()
			cumulative.Merge(h)
			elapsed := start.Elapsed()
			dur := (elapsed - lastElapsed).Seconds()
			lastElapsed = elapsed
			fmt.Printf("%8s %13.1f %12.1f %11d %11d %11d\n",
				time.Duration(elapsed.Seconds()+0.5)*time.Second,
				float64(h.TotalCount())/dur,
				float64(h.TotalCount()*w.bytesPerOp)/(dur*(1<<20)),
				h.ValueAtPercentile(50),
				h.ValueAtPercentile(99),
				h.Max())

		case <-timeout:
			finishWorkload(cancel, g, tick, cumulative, start, w)
			return

		case <-interrupt:
			finishWorkload(cancel, g, tick, cumulative, start, w)
			return
		}
	}
}

func finishWorkload(
	cancel context.CancelFunc,
	g *errgroup.Group,
	tick func() *hdrhistogram.Histogram,
	cumulative *hdrhistogram.Histogram,
	start crtime.Mono,
	w workload,
) {
	cancel()
	if err := g.Wait(); err != nil {
		log.Fatal(err)
	}
	cumulative.Merge(tick())
	elapsed := start.Elapsed()

	fmt.Println("\n_elapsed___ops/sec(cum)__MB/sec(cum)_____p50(ns)_____p99(ns)____pMax(ns)")
	fmt.Printf("%7.1fs %14.1f %12.1f %11d %11d %11d\n",
		elapsed.Seconds(),
		float64(cumulative.TotalCount())/elapsed.Seconds(),
		float64(cumulative.TotalCount()*w.bytesPerOp)/(elapsed.Seconds()*(1<<20)),
		cumulative.ValueAtPercentile(50),
		cumulative.ValueAtPercentile(99),
		cumulative.Max())

	if w.done != nil {
		w.done(elapsed)
	}
}

func allocator() string {
	if buildtags.Cgo {
		return "cgo"
	}
	return "go"
}

// newRandomBuffers allocates count manually managed buffers of size bytes
// each, fills them with pseudorandom data, and returns views over them. The
// buffers must be released with freeBuffers once the workload is done.
func newRandomBuffers(purpose manual.Purpose, count, size int) ([]manual.Buf, []byteview.View) {
	rng := rand.New(rand.NewPCG(1449168817, 0))
	bufs := make([]manual.Buf, count)
	views := make([]byteview.View, count)
	for i := range bufs {
		bufs[i] = manual.New(purpose, uintptr(size))
		s := bufs[i].Slice()
		for j := range s {
			s[j] = byte(rng.Uint32())
		}
		views[i] = bufs[i].View()
	}
	return bufs, views
}

func freeBuffers(purpose manual.Purpose, bufs []manual.Buf) {
	for i := range bufs {
		manual.Free(purpose, bufs[i])
	}
}
