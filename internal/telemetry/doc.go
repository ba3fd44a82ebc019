// Package telemetry emits load-time performance records for embedded editor
// sessions.
//
// Records are fire-and-forget: the bridge never learns whether a sink
// accepted a record, and no buffering or retry happens on this side. The
// default sink writes structured zap events; an instrumented decorator also
// feeds Prometheus histograms.
package telemetry
