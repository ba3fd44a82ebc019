// Package wire defines the cross-frame message schema shared with the
// Office Online editor frame.
//
// The editor posts JSON text messages keyed on a MessageId field. Only two
// inbound kinds are acted upon; everything else decodes to an explicit
// Unknown variant and is ignored by callers.
//
// Message Types (Frame → Host):
//   - App_LoadingStatus: the editor finished loading
//   - File_Rename: the document was renamed inside the editor
//
// Message Types (Host → Frame):
//   - Host_PostmessageReady: handshake reply sent after the editor loads
//
// The schema is an external contract owned by the Office Online service;
// field names are fixed and must not be renamed.
package wire
