// Package otel provides OpenTelemetry integration for xanthos engine metrics.
//
// # Overview
//
// This package implements the xanthos.MetricsCollector interface using OpenTelemetry,
// enabling enterprise-grade observability with automatic percentile calculation and
// multi-backend support (Prometheus, Jaeger, DataDog, Grafana).
//
// The package is a separate module to keep the xanthos core lightweight.
// Applications that don't need metrics collection don't pay for the OTEL dependencies.
//
// # Features
//
//   - Automatic Percentiles: OTEL Histograms calculate p50, p95, p99, p99.9 latencies
//   - Multi-Backend Support: Works with Prometheus, Jaeger, DataDog, any OTEL-compatible backend
//   - Hit Ratio Tracking: Real-time cache hit/miss monitoring
//   - Eviction and Expiration Monitoring: Track cache pressure, evictions and TTL churn
//   - Thread-Safe: Lock-free, safe for concurrent use
//   - Low Overhead: ~50-100ns per operation
//   - Industry Standard: Uses OpenTelemetry (CNCF standard)
//
// # Installation
//
//	go get github.com/agilira/xanthos/otel
//
// # Quick Start
//
// Basic setup with Prometheus exporter:
//
//	import (
//	    "github.com/agilira/xanthos"
//	    xanthosotel "github.com/agilira/xanthos/otel"
//	    "go.opentelemetry.io/otel/exporters/prometheus"
//	    "go.opentelemetry.io/otel/sdk/metric"
//	)
//
//	// Setup Prometheus exporter
//	exporter, err := prometheus.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Create OTEL MeterProvider
//	provider := metric.NewMeterProvider(metric.WithReader(exporter))
//	defer provider.Shutdown(context.Background())
//
//	// Create metrics collector
//	metricsCollector, err := xanthosotel.NewOTelMetricsCollector(provider)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Configure engine with metrics
//	cfg := xanthos.DefaultConfig()
//	cfg.MetricsCollector = metricsCollector
//	engine := xanthos.New(cfg)
//	defer engine.Close()
//
//	// Use the engine normally - metrics are automatically collected
//	engine.Set("key", value)
//	engine.Get("key")
//
//	// Expose metrics endpoint
//	http.Handle("/metrics", promhttp.Handler())
//	log.Fatal(http.ListenAndServe(":2112", nil))
//
// # Metrics Exposed
//
// Histograms (with automatic percentiles):
//   - xanthos_get_latency_ns: Get() operation latency in nanoseconds
//   - xanthos_set_latency_ns: Set() operation latency in nanoseconds
//   - xanthos_delete_latency_ns: Delete() operation latency in nanoseconds
//
// Counters:
//   - xanthos_get_hits_total: Total number of cache hits
//   - xanthos_get_misses_total: Total number of cache misses
//   - xanthos_evictions_total: Total number of evictions
//   - xanthos_expirations_total: Total number of TTL-based expirations
//
// All metrics are thread-safe and use lock-free OTEL instruments.
//
// # Configuration
//
// Custom meter name (useful for multiple engine instances):
//
//	collector, err := xanthosotel.NewOTelMetricsCollector(
//	    provider,
//	    xanthosotel.WithMeterName("myapp_user_cache"),
//	)
//
// Custom histogram buckets for better percentile accuracy:
//
//	provider := metric.NewMeterProvider(
//	    metric.WithReader(exporter),
//	    metric.WithView(metric.NewView(
//	        metric.Instrument{Name: "xanthos_get_latency_ns"},
//	        metric.Stream{
//	            Aggregation: metric.AggregationExplicitBucketHistogram{
//	                // Buckets in nanoseconds: 100ns, 500ns, 1μs, 5μs, 10μs, 50μs, 100μs
//	                Boundaries: []float64{100, 500, 1000, 5000, 10000, 50000, 100000},
//	            },
//	        },
//	    )),
//	)
//
// # Prometheus Queries
//
// Calculate P95 latency (last 5 minutes):
//
//	histogram_quantile(0.95, rate(xanthos_get_latency_ns_bucket[5m]))
//
// Calculate hit ratio:
//
//	rate(xanthos_get_hits_total[5m]) /
//	(rate(xanthos_get_hits_total[5m]) + rate(xanthos_get_misses_total[5m]))
//
// Calculate evictions per minute:
//
//	rate(xanthos_evictions_total[1m]) * 60
//
// Calculate expiration churn per minute:
//
//	rate(xanthos_expirations_total[1m]) * 60
//
// # Best Practices
//
// 1. Reuse MeterProvider across engine instances:
//
//	provider := metric.NewMeterProvider(metric.WithReader(exporter))
//	defer provider.Shutdown(context.Background())
//
//	collector1, _ := xanthosotel.NewOTelMetricsCollector(provider)
//	collector2, _ := xanthosotel.NewOTelMetricsCollector(provider,
//	    xanthosotel.WithMeterName("cache2"))
//
// 2. Always shutdown MeterProvider on exit:
//
//	defer func() {
//	    ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
//	    defer cancel()
//	    if err := provider.Shutdown(ctx); err != nil {
//	        log.Printf("Failed to shutdown meter provider: %v", err)
//	    }
//	}()
//
// 3. Monitor key metrics:
//   - Hit ratio: Target >80%
//   - P99 latency: Target <10μs (compression adds decode cost on hot reads)
//   - Eviction rate: a sustained spike means the memory budget or MaxSize is too tight
//
// # Compatibility
//
//   - Go: 1.23+
//   - OpenTelemetry: v1.31.0+
//   - Prometheus: v2.30.0+
//
// # License
//
// Same as xanthos core (see LICENSE in main repository).
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0
package otel
