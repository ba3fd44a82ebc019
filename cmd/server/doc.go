// Package main is the entry point for the office bridge host.
//
// The host embeds an Office Online editor for connected pages: it serves
// frame configuration over HTTP, relays loading and rename messages over
// a WebSocket session, and records load telemetry for each editor session.
//
// Configuration is read from the environment (see internal/infrastructure/config).
// The most relevant variables:
//
//	PORT               HTTP listen port (default 8600)
//	EDITOR_URL         static editor URL
//	DISCOVERY_URL      discovery service base URL
//	DISCOVERY_ENABLED  resolve the editor URL via discovery
//	APP_TYPE           word, excel, or powerpoint
//
// Run:
//
//	go run ./cmd/server
package main
