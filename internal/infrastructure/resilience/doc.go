// Package resilience provides the circuit breaker guarding outbound calls to
// the Office Online discovery service.
//
// The breaker has the usual three states. Closed passes requests through and
// counts failures; Open rejects immediately until the timeout elapses;
// Half-Open admits a small probe budget and closes again once enough probes
// succeed. State changes surface through an optional callback so the caller
// can log or meter them.
package resilience
