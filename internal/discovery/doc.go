// Package discovery resolves editor action URLs from the Office Online
// discovery service.
//
// The discovery endpoint publishes an XML document mapping app names and
// file extensions to editor URLs. The document changes rarely, so resolved
// copies are cached with a TTL; the fetch path carries retries, a rate
// limiter, and a circuit breaker so a flapping discovery endpoint cannot
// stall embed initialization.
package discovery
