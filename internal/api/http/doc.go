// Package http provides the REST surface of the embed host: the frame
// configuration endpoint the embedding page bootstraps from, localized
// strings, and health.
package http
