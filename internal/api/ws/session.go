package ws

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/framehost/officebridge/internal/bridge"
	"github.com/framehost/officebridge/internal/bridge/dom"
	"github.com/framehost/officebridge/internal/shared/id"
	"github.com/framehost/officebridge/internal/wire"
)

// session is one connected page plus, after init, its bridge. It implements
// the bridge's dom interfaces by forwarding directives over the connection.
type session struct {
	id      id.SessionID
	h       *Handler
	conn    *websocket.Conn
	bridge  *bridge.Bridge
	page    url.Values
	handler dom.MessageHandler
}

func newSession(h *Handler, conn *websocket.Conn) *session {
	return &session{
		id:   id.NewSessionID(),
		h:    h,
		conn: conn,
	}
}

// InsertFrame implements dom.Document by directing the page to insert the
// frame. The page owns the element; the session doubles as the handle to its
// content window.
func (s *session) InsertFrame(containerClass string, f dom.Frame) (dom.FrameWindow, error) {
	if err := s.send(Message{Type: TypeInsertFrame, Frame: &f, ContainerClass: containerClass}); err != nil {
		return nil, err
	}
	return s, nil
}

// SubmitForm implements dom.Document.
func (s *session) SubmitForm(formClass, targetName string) error {
	return s.send(Message{Type: TypeSubmitForm, FormClass: formClass, TargetName: targetName})
}

// SetTitle implements dom.Document.
func (s *session) SetTitle(title string) {
	_ = s.send(Message{Type: TypeSetTitle, Title: title})
}

// OnMessage implements dom.Window. Inbound frame_message payloads reach the
// registered handler until unsubscribed.
func (s *session) OnMessage(fn dom.MessageHandler) func() {
	s.handler = fn
	return func() { s.handler = nil }
}

// PageQuery implements dom.Window against the page URL sent with init.
func (s *session) PageQuery(name string) (string, bool) {
	if !s.page.Has(name) {
		return "", false
	}
	return s.page.Get(name), true
}

// PostMessage implements dom.FrameWindow. The page applies the target origin
// restriction when it forwards the payload to the frame window.
func (s *session) PostMessage(payload []byte, targetOrigin string) error {
	s.h.metrics.RecordReadySent()
	return s.send(Message{Type: TypePostToFrame, Payload: string(payload), TargetOrigin: targetOrigin})
}

func (s *session) handleInit(ctx context.Context, msg Message) {
	if s.bridge != nil {
		s.sendError("session already initialized")
		return
	}

	page, err := url.Parse(msg.PageURL)
	if err != nil {
		s.sendError("invalid page_url")
		return
	}
	s.page = page.Query()

	cfg, err := s.h.planner.BridgeConfig(ctx, msg.Locale)
	if err != nil {
		s.h.logger.Error("bridge config failed", zap.Error(err), zap.String("session", s.id.String()))
		s.sendError(err.Error())
		return
	}

	b := bridge.New(cfg, s, s, s.h.emitter, s.h.logger)
	if err := b.Initialize(); err != nil {
		s.sendError(err.Error())
		return
	}

	s.bridge = b
	s.h.metrics.SessionStarted()
	_ = s.send(Message{Type: TypeSessionReady, SessionID: s.id.String()})
}

func (s *session) handleFrameLoaded() {
	if s.bridge == nil {
		s.sendError("no active session")
		return
	}
	s.bridge.FrameLoaded()
}

func (s *session) handleFrameMessage(msg Message) {
	if s.handler == nil {
		// Torn down or never initialized; drop like a browser with no
		// listener would.
		return
	}

	payload := []byte(msg.Payload)
	if decoded, err := wire.Decode(payload); err == nil && len(payload) > 0 {
		s.h.metrics.RecordFrameMessage(decoded.Kind.String())
	}
	s.handler(payload)
}

func (s *session) teardown() {
	if s.bridge == nil {
		return
	}
	s.bridge.Teardown()
	s.bridge = nil
	s.h.metrics.SessionEnded()
}

func (s *session) send(msg Message) error {
	if err := s.conn.WriteJSON(msg); err != nil {
		return fmt.Errorf("relay send: %w", err)
	}
	s.h.metrics.RecordWSMessage("outbound", msg.Type)
	return nil
}

func (s *session) sendError(text string) {
	_ = s.send(Message{
		Type:      TypeError,
		Message:   text,
		Timestamp: time.Now().Unix(),
	})
}
