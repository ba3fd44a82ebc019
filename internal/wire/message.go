package wire

import (
	"time"

	"github.com/bytedance/sonic"
)

// MessageId values fixed by the Office Online postMessage contract.
const (
	MsgAppLoaded  = "App_LoadingStatus"
	MsgFileRename = "File_Rename"
	MsgHostReady  = "Host_PostmessageReady"
)

// Kind enumerates the inbound message variants the host reacts to.
type Kind int

const (
	KindUnknown Kind = iota
	KindAppLoaded
	KindFileRename
)

// String returns the string representation of the kind
func (k Kind) String() string {
	switch k {
	case KindAppLoaded:
		return "app_loaded"
	case KindFileRename:
		return "file_rename"
	default:
		return "unknown"
	}
}

// Inbound is a decoded frame message.
type Inbound struct {
	Kind    Kind
	NewName string // set for KindFileRename
}

// envelope mirrors the raw JSON shape posted by the editor frame.
type envelope struct {
	MessageID string `json:"MessageId"`
	Values    struct {
		NewName string `json:"NewName"`
	} `json:"Values"`
}

// Decode parses a raw frame payload into a tagged Inbound message.
// Unrecognized MessageId values map to KindUnknown rather than an error;
// malformed JSON is an error the caller decides how to surface.
func Decode(payload []byte) (Inbound, error) {
	var env envelope
	if err := sonic.Unmarshal(payload, &env); err != nil {
		return Inbound{}, err
	}

	switch env.MessageID {
	case MsgAppLoaded:
		return Inbound{Kind: KindAppLoaded}, nil
	case MsgFileRename:
		return Inbound{Kind: KindFileRename, NewName: env.Values.NewName}, nil
	default:
		return Inbound{Kind: KindUnknown}, nil
	}
}

// Ready is the only message the host ever posts to the frame.
type Ready struct {
	MessageID string                 `json:"MessageId"`
	SendTime  int64                  `json:"SendTime"`
	Values    map[string]interface{} `json:"Values"`
}

// NewReady builds the handshake reply stamped with the given send time.
func NewReady(sentAt time.Time) Ready {
	return Ready{
		MessageID: MsgHostReady,
		SendTime:  sentAt.UnixMilli(),
		Values:    map[string]interface{}{},
	}
}

// Encode serializes the ready message to its wire form.
func (r Ready) Encode() ([]byte, error) {
	return sonic.Marshal(r)
}
