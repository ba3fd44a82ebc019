// Package ws provides the WebSocket relay between the embedding page and
// the editor frame bridge.
//
// The page owns the real DOM; the bridge owns the embed logic. The relay
// connects them: DOM directives flow down to the page, postMessage payloads
// flow up to the bridge. One bridge session lives per connection and is torn
// down when the connection closes.
//
// Message Types (Page → Host):
//   - init: start a session; carries the page URL and locale
//   - iframe_loaded: the frame element fired its load event
//   - frame_message: raw postMessage payload received from the frame
//   - ping: keep-alive
//
// Message Types (Host → Page):
//   - system: connection established
//   - session_ready: bridge initialized, frame directives already sent
//   - insert_frame: insert the described frame into the marker container
//   - submit_form: submit the auth form targeting the frame
//   - post_to_frame: postMessage this payload to the frame window
//   - set_title: write the document title
//   - pong: keep-alive reply
//   - error: request failed
package ws
