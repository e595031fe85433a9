package llrb

import "sort"

import "github.com/prometheus/client_golang/prometheus"

// gauges, rest of the counters only increase.
var gaugecounters = map[string]bool{"n_count": true}

type collector struct {
	counters func() map[string]int64
	descs    map[string]*prometheus.Desc
	names    []string
}

// NewCollector return a prometheus collector exporting the statistics
// counters of llrb, labelled with the tree's ID. Counters are read
// atomically, hence it is safe to scrape while the tree is mutated by
// another go-routine.
func NewCollector[K, V any](llrb *LLRB[K, V]) prometheus.Collector {
	c := &collector{
		counters: llrb.counters,
		descs:    make(map[string]*prometheus.Desc),
	}
	labels := prometheus.Labels{"index": llrb.ID()}
	for name := range llrb.counters() {
		c.names = append(c.names, name)
		c.descs[name] = prometheus.NewDesc(
			prometheus.BuildFQName("ordmap", "llrb", name[2:]),
			"llrb statistics counter "+name, nil, labels,
		)
	}
	sort.Strings(c.names)
	return c
}

// Describe implement prometheus.Collector interface.
func (c *collector) Describe(ch chan<- *prometheus.Desc) {
	for _, name := range c.names {
		ch <- c.descs[name]
	}
}

// Collect implement prometheus.Collector interface.
func (c *collector) Collect(ch chan<- prometheus.Metric) {
	counters := c.counters()
	for _, name := range c.names {
		valtype := prometheus.CounterValue
		if gaugecounters[name] {
			valtype = prometheus.GaugeValue
		}
		ch <- prometheus.MustNewConstMetric(
			c.descs[name], valtype, float64(counters[name]),
		)
	}
}
