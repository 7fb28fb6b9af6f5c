package store

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the store's prometheus collectors. A nil *Metrics is valid
// and records nothing.
type Metrics struct {
	// CacheHits counts loads answered from the cache.
	CacheHits prometheus.Counter
	// CacheMisses counts loads that had to go to disk.
	CacheMisses prometheus.Counter
	// CacheEvictions counts entries dropped by LRU pressure or resizing.
	CacheEvictions prometheus.Counter
	// CacheEntries tracks the number of cached records.
	CacheEntries prometheus.Gauge
	// DiskReads counts record files read from disk.
	DiskReads prometheus.Counter
	// DecodeFailures counts files that failed to decode or validate.
	DecodeFailures prometheus.Counter
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		CacheHits: f.NewCounter(prometheus.CounterOpts{
			Name: "dexwiki_store_cache_hits_total",
			Help: "Total number of record loads served from the cache",
		}),
		CacheMisses: f.NewCounter(prometheus.CounterOpts{
			Name: "dexwiki_store_cache_misses_total",
			Help: "Total number of record loads that missed the cache",
		}),
		CacheEvictions: f.NewCounter(prometheus.CounterOpts{
			Name: "dexwiki_store_cache_evictions_total",
			Help: "Total number of records evicted from the cache",
		}),
		CacheEntries: f.NewGauge(prometheus.GaugeOpts{
			Name: "dexwiki_store_cache_entries",
			Help: "Current number of records in the cache",
		}),
		DiskReads: f.NewCounter(prometheus.CounterOpts{
			Name: "dexwiki_store_disk_reads_total",
			Help: "Total number of record files read from disk",
		}),
		DecodeFailures: f.NewCounter(prometheus.CounterOpts{
			Name: "dexwiki_store_decode_failures_total",
			Help: "Total number of record files that failed to decode or validate",
		}),
	}
}

func (m *Metrics) hit() {
	if m != nil {
		m.CacheHits.Inc()
	}
}

func (m *Metrics) miss() {
	if m != nil {
		m.CacheMisses.Inc()
	}
}

func (m *Metrics) evicted() {
	if m != nil {
		m.CacheEvictions.Inc()
	}
}

func (m *Metrics) size(n int) {
	if m != nil {
		m.CacheEntries.Set(float64(n))
	}
}

func (m *Metrics) diskRead() {
	if m != nil {
		m.DiskReads.Inc()
	}
}

func (m *Metrics) decodeFailed() {
	if m != nil {
		m.DecodeFailures.Inc()
	}
}
