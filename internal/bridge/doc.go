// Package bridge implements the editor frame bridge: the host-side owner of
// an embedded Office Online editor frame.
//
// The bridge inserts the frame into the hosting page, kicks off the auth
// hand-off form submission, reacts to the editor's postMessage traffic, and
// records load-time telemetry. It holds no browser globals; the page surface
// is injected through the dom package interfaces, the clock through Clock,
// and telemetry through telemetry.Emitter, so everything is substitutable in
// tests.
//
// Protocol (two message kinds, no ordering enforced):
//   - App_LoadingStatus: editor finished loading → emit EDITOR_LOAD_TIME,
//     reply with Host_PostmessageReady
//   - File_Rename: document renamed → rewrite the hosting document title
//
// Both are safe to re-deliver; the worst case is redundant work.
package bridge
