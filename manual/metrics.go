// Copyright 2025 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package manual

import "github.com/prometheus/client_golang/prometheus"

var (
	inUseBytesDesc = prometheus.NewDesc(
		"byteview_manual_in_use_bytes",
		"Bytes currently allocated from manually managed memory, by purpose.",
		[]string{"purpose"}, nil,
	)
	totalBytesDesc = prometheus.NewDesc(
		"byteview_manual_total_bytes",
		"Cumulative bytes allocated from manually managed memory, by purpose.",
		[]string{"purpose"}, nil,
	)
)

// NewCollector returns a prometheus.Collector exposing the manual memory
// metrics.
func NewCollector() prometheus.Collector {
	return collector{}
}

type collector struct{}

// Describe implements prometheus.Collector.
func (collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- inUseBytesDesc
	ch <- totalBytesDesc
}

// Collect implements prometheus.Collector.
func (collector) Collect(ch chan<- prometheus.Metric) {
	m := GetMetrics()
	for p := Purpose(1); p < NumPurposes; p++ {
		ch <- prometheus.MustNewConstMetric(
			inUseBytesDesc, prometheus.GaugeValue, float64(m[p].InUseBytes), p.String())
		ch <- prometheus.MustNewConstMetric(
			totalBytesDesc, prometheus.CounterValue, float64(m[p].TotalBytes), p.String())
	}
}
