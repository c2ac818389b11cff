package serve

import (
	"sort"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var durationBuckets = []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1}

type kindStats struct {
	renders uint64
	errors  uint64
	sum     float64
	buckets []uint64
}

// renderCollector keeps per kind counters and exposes them on scrape.
type renderCollector struct {
	mu    sync.Mutex
	stats map[string]*kindStats

	rendersDesc  *prometheus.Desc
	errorsDesc   *prometheus.Desc
	durationDesc *prometheus.Desc
}

func newRenderCollector() *renderCollector {
	return &renderCollector{
		stats: make(map[string]*kindStats),
		rendersDesc: prometheus.NewDesc(
			"effcharts_renders_total",
			"Total number of charts rendered.",
			[]string{"kind"},
			nil,
		),
		errorsDesc: prometheus.NewDesc(
			"effcharts_render_errors_total",
			"Total number of failed render requests.",
			[]string{"kind"},
			nil,
		),
		durationDesc: prometheus.NewDesc(
			"effcharts_render_duration_seconds",
			"Time spent rendering a chart.",
			[]string{"kind"},
			nil,
		),
	}
}

func (c *renderCollector) get(kind string) *kindStats {
	st, ok := c.stats[kind]
	if !ok {
		st = &kindStats{
			buckets: make([]uint64, len(durationBuckets)),
		}
		c.stats[kind] = st
	}
	return st
}

func (c *renderCollector) observe(kind string, elapsed time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var (
		st  = c.get(kind)
		sec = elapsed.Seconds()
	)
	st.renders++
	st.sum += sec
	for i, b := range durationBuckets {
		if sec <= b {
			st.buckets[i]++
		}
	}
}

func (c *renderCollector) fail(kind string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.get(kind).errors++
}

func (c *renderCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.rendersDesc
	ch <- c.errorsDesc
	ch <- c.durationDesc
}

func (c *renderCollector) Collect(ch chan<- prometheus.Metric) {
	c.mu.Lock()
	defer c.mu.Unlock()

	kinds := make([]string, 0, len(c.stats))
	for k := range c.stats {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	for _, kind := range kinds {
		st := c.stats[kind]
		ch <- prometheus.MustNewConstMetric(c.rendersDesc, prometheus.CounterValue, float64(st.renders), kind)
		ch <- prometheus.MustNewConstMetric(c.errorsDesc, prometheus.CounterValue, float64(st.errors), kind)

		buckets := make(map[float64]uint64, len(durationBuckets))
		for i, b := range durationBuckets {
			buckets[b] = st.buckets[i]
		}
		ch <- prometheus.MustNewConstHistogram(c.durationDesc, st.renders, st.sum, buckets, kind)
	}
}
