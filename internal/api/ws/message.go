package ws

import "github.com/framehost/officebridge/internal/bridge/dom"

// Relay message types, page to host.
const (
	TypeInit         = "init"
	TypeIframeLoaded = "iframe_loaded"
	TypeFrameMessage = "frame_message"
	TypePing         = "ping"
)

// Relay message types, host to page.
const (
	TypeSystem       = "system"
	TypeSessionReady = "session_ready"
	TypeInsertFrame  = "insert_frame"
	TypeSubmitForm   = "submit_form"
	TypePostToFrame  = "post_to_frame"
	TypeSetTitle     = "set_title"
	TypePong         = "pong"
	TypeError        = "error"
)

// Message is one relay frame. Fields are type-specific; unused fields are
// omitted on the wire.
type Message struct {
	Type      string `json:"type"`
	SessionID string `json:"session_id,omitempty"`

	// init
	PageURL string `json:"page_url,omitempty"`
	Locale  string `json:"locale,omitempty"`

	// frame_message / post_to_frame
	Payload      string `json:"payload,omitempty"`
	TargetOrigin string `json:"target_origin,omitempty"`

	// insert_frame
	Frame          *dom.Frame `json:"frame,omitempty"`
	ContainerClass string     `json:"container_class,omitempty"`

	// submit_form
	FormClass  string `json:"form_class,omitempty"`
	TargetName string `json:"target_name,omitempty"`

	// set_title
	Title string `json:"title,omitempty"`

	// system / error
	Message   string `json:"message,omitempty"`
	Timestamp int64  `json:"timestamp,omitempty"`
}
