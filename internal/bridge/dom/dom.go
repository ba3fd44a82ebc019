package dom

import "strings"

// Frame describes the embedded editor frame element. It is a value; the
// Document implementation owns element lifecycle.
type Frame struct {
	Name            string `json:"name"`
	Class           string `json:"class"`
	Src             string `json:"src"`
	AllowFullscreen bool   `json:"allow_fullscreen"`
	Allow           string `json:"allow"`   // feature policy, e.g. "microphone *"
	Sandbox         string `json:"sandbox"` // space-joined sandbox tokens
}

// SandboxTokens returns the sandbox attribute split into its tokens.
func (f Frame) SandboxTokens() []string {
	return strings.Fields(f.Sandbox)
}

// FrameWindow is a handle to the inserted frame's content window. PostMessage
// delivery is restricted to targetOrigin; an origin mismatch is dropped by
// the browser with no signal back to the host.
type FrameWindow interface {
	PostMessage(payload []byte, targetOrigin string) error
}

// Document gives the bridge access to the hosting page's DOM anchors.
type Document interface {
	// InsertFrame inserts f into the container identified by containerClass
	// and returns a handle to the frame's content window. A missing
	// container is an error; there is no fallback UI.
	InsertFrame(containerClass string, f Frame) (FrameWindow, error)

	// SubmitForm submits the form identified by formClass with its target
	// set to targetName. A missing form is an error.
	SubmitForm(formClass, targetName string) error

	// SetTitle writes the hosting document's title. This crosses into the
	// parent browsing context, not the frame's.
	SetTitle(title string)
}

// MessageHandler receives the raw text payload of one inbound frame message.
type MessageHandler func(payload []byte)

// Window abstracts the hosting browsing context.
type Window interface {
	// OnMessage subscribes to inbound cross-origin messages and returns the
	// unsubscribe function. At most one subscription is active per bridge.
	OnMessage(fn MessageHandler) (unsubscribe func())

	// PageQuery looks up a query parameter on the page's own URL. The
	// second return reports presence: a parameter present with an empty or
	// falsy value still counts as present.
	PageQuery(name string) (value string, present bool)
}
