package node

import (
	"math"
	"strconv"
	"time"

	"github.com/NethermindEth/starkevents/blockchain"
	"github.com/NethermindEth/starkevents/db"
	"github.com/NethermindEth/starkevents/jsonrpc"
	"github.com/NethermindEth/starkevents/metrics"
	"github.com/cockroachdb/pebble"
	"github.com/prometheus/client_golang/prometheus"
)

func makeDBMetrics(registry *metrics.Registry) db.EventListener {
	latencyBuckets := []float64{
		25,
		50,
		75,
		100,
		250,
		500,
		1000, // 1ms
		2000,
		3000,
		4000,
		5000,
		10000,
		50000,
		500000,
		math.Inf(0),
	}
	readLatencyHistogram := prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "db",
		Name:      "read_latency",
		Buckets:   latencyBuckets,
	})
	writeLatencyHistogram := prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "db",
		Name:      "write_latency",
		Buckets:   latencyBuckets,
	})
	commitLatency := prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "db",
		Name:      "commit_latency",
		Buckets: []float64{
			5000,
			10000,
			50000,
			100000, // 100ms
			500000,
			1000000,
			math.Inf(0),
		},
	})

	registry.MustRegister(readLatencyHistogram, writeLatencyHistogram, commitLatency)
	return &db.SelectiveListener{
		OnIOCb: func(write bool, duration time.Duration) {
			if write {
				writeLatencyHistogram.Observe(float64(duration.Microseconds()))
			} else {
				readLatencyHistogram.Observe(float64(duration.Microseconds()))
			}
		},
		OnCommitCb: func(duration time.Duration) {
			commitLatency.Observe(float64(duration.Microseconds()))
		},
	}
}

func makeRequestCounter(registry *metrics.Registry, subsystem string) jsonrpc.NewRequestListener {
	reqCounter := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "rpc",
		Subsystem: subsystem,
		Name:      "requests",
	})
	registry.MustRegister(reqCounter)

	return &jsonrpc.SelectiveListener{
		OnNewRequestCb: func(method string) {
			reqCounter.Inc()
		},
	}
}

func makeHTTPMetrics(registry *metrics.Registry) jsonrpc.NewRequestListener {
	return makeRequestCounter(registry, "http")
}

func makeWSMetrics(registry *metrics.Registry) jsonrpc.NewRequestListener {
	return makeRequestCounter(registry, "ws")
}

func makeRPCMetrics(registry *metrics.Registry) jsonrpc.EventListener {
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "rpc",
		Subsystem: "server",
		Name:      "requests",
	}, []string{"method"})
	failedRequests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "rpc",
		Subsystem: "server",
		Name:      "failed_requests",
	}, []string{"method", "error_code"})
	requestLatencies := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "rpc",
		Subsystem: "server",
		Name:      "requests_latency",
	}, []string{"method"})
	registry.MustRegister(requests, failedRequests, requestLatencies)

	return &jsonrpc.SelectiveListener{
		OnNewRequestCb: func(method string) {
			requests.WithLabelValues(method).Inc()
		},
		OnRequestHandledCb: func(method string, took time.Duration) {
			requestLatencies.WithLabelValues(method).Observe(took.Seconds())
		},
		OnRequestFailedCb: func(method string, data any) {
			var errorCode string
			if rpcErr, ok := data.(*jsonrpc.Error); ok {
				errorCode = strconv.Itoa(rpcErr.Code)
			}
			failedRequests.WithLabelValues(method, errorCode).Inc()
		},
	}
}

func makeBlockchainMetrics(registry *metrics.Registry, bcReader blockchain.Reader) blockchain.EventListener {
	reads := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockchain",
		Name:      "reads",
	}, []string{"method"})
	eventsScanned := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "blockchain",
		Subsystem: "filter",
		Name:      "events_scanned",
	})
	blocksScanned := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "blockchain",
		Subsystem: "filter",
		Name:      "blocks_scanned",
	})
	blocksSkipped := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "blockchain",
		Subsystem: "filter",
		Name:      "blocks_skipped_bloom",
	})
	chainHeightGauge := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: "blockchain",
		Name:      "height",
	}, func() float64 {
		height, _ := bcReader.Height()
		return float64(height)
	})
	registry.MustRegister(reads, eventsScanned, blocksScanned, blocksSkipped, chainHeightGauge)

	return &blockchain.SelectiveListener{
		OnReadCb: func(method string) {
			reads.WithLabelValues(method).Inc()
		},
		OnBlockScannedCb: func(visitedEvents uint64) {
			blocksScanned.Inc()
			eventsScanned.Add(float64(visitedEvents))
		},
		OnBlockSkippedCb: func() {
			blocksSkipped.Inc()
		},
	}
}

func makePebbleMetrics(registry *metrics.Registry, nodeDB db.DB) {
	pebbleDB, ok := nodeDB.Impl().(*pebble.DB)
	if !ok {
		return
	}

	hitRate := func(hits, misses int64) float64 {
		if hits+misses == 0 {
			return 0
		}
		return float64(hits) / float64(hits+misses)
	}
	blockCacheSize := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: "pebble",
		Subsystem: "block_cache",
		Name:      "size",
	}, func() float64 {
		return float64(pebbleDB.Metrics().BlockCache.Size)
	})
	blockHitRate := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: "pebble",
		Subsystem: "block_cache",
		Name:      "hit_rate",
	}, func() float64 {
		m := pebbleDB.Metrics()
		return hitRate(m.BlockCache.Hits, m.BlockCache.Misses)
	})
	tableCacheSize := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: "pebble",
		Subsystem: "table_cache",
		Name:      "size",
	}, func() float64 {
		return float64(pebbleDB.Metrics().TableCache.Size)
	})
	tableHitRate := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: "pebble",
		Subsystem: "table_cache",
		Name:      "hit_rate",
	}, func() float64 {
		m := pebbleDB.Metrics()
		return hitRate(m.TableCache.Hits, m.TableCache.Misses)
	})
	registry.MustRegister(blockCacheSize, blockHitRate, tableCacheSize, tableHitRate)
}

func makeBuildMetrics(registry *metrics.Registry, version string) {
	registry.MustRegister(prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace:   "starkevents",
		Name:        "info",
		Help:        "Information about the starkevents binary",
		ConstLabels: prometheus.Labels{"version": version},
	}))
}
