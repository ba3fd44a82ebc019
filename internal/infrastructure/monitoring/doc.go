/*
Package monitoring provides Prometheus metrics for the embed host.

# Overview

This package tracks HTTP traffic, relay WebSocket connections, editor frame
sessions, and load-time milestones. The load-time histograms mirror the
telemetry records the bridge emits, so dashboards and the external telemetry
sink see the same numbers.

# Usage

	metrics := monitoring.NewMetrics()

	// Gin middleware for HTTP metrics
	router.Use(monitoring.Middleware(metrics))

	// Mirror bridge telemetry into Prometheus
	emitter := monitoring.NewTelemetryEmitter(metrics, zapEmitter)

# Metrics Endpoint

	import "github.com/prometheus/client_golang/prometheus/promhttp"
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
*/
package monitoring
