package bridge

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/framehost/officebridge/internal/bridge/dom"
	"github.com/framehost/officebridge/internal/infrastructure/logging"
	"github.com/framehost/officebridge/internal/telemetry"
	"github.com/framehost/officebridge/internal/wire"
)

// Fixed DOM anchors shared with the embedding page.
const (
	// FrameName is the frame's name attribute; the auth form targets it.
	FrameName = "office_frame"
	// FrameClass marks the frame element for later lookup.
	FrameClass = "office-frame"
	// ContainerClass marks the element the frame is inserted into.
	ContainerClass = "office-frame-container"
	// AuthFormClass marks the same-origin auth hand-off form.
	AuthFormClass = "office-form"
)

// SameOriginFlag is the page-URL query parameter that drops
// allow-same-origin from the sandbox. Presence alone toggles it; the value
// is never inspected, so disableAllowSameOrigin=false still disables.
const SameOriginFlag = "disableAllowSameOrigin"

// slowLoadThreshold is the fixed cutoff above which a second, slow-suffixed
// telemetry record is emitted per milestone.
const slowLoadThreshold = 10 * time.Second

// frameAllow is the feature policy granted to the editor frame.
const frameAllow = "microphone *"

// sandboxBase is granted unconditionally; allow-same-origin is appended
// unless the page carries SameOriginFlag.
var sandboxBase = []string{
	"allow-scripts",
	"allow-forms",
	"allow-popups",
	"allow-top-navigation",
	"allow-popups-to-escape-sandbox",
	"allow-downloads",
}

const sandboxSameOrigin = "allow-same-origin"

var (
	// ErrNotInitialized is returned when a frame operation runs before
	// Initialize inserted the frame.
	ErrNotInitialized = errors.New("bridge: frame not inserted")

	// ErrAlreadyInitialized is returned when Initialize runs twice; the
	// start timestamp is captured exactly once per session.
	ErrAlreadyInitialized = errors.New("bridge: already initialized")
)

// Config describes one editor embed. Built once at session start, immutable
// afterward.
type Config struct {
	EditorURL     string // frame src, resolved from discovery or static config
	Origin        string // target origin for outbound postMessage
	ServiceID     string // telemetry service identifier
	AppType       string // word, excel, powerpoint
	FileExtension string // appended to renamed files for the title
	TitleTemplate string // fmt template combining display name and NoFileTitle
	NoFileTitle   string // localized title used when no filename applies
}

// Bridge owns the frame element handle, the message subscription, and
// telemetry emission for one editor session.
type Bridge struct {
	cfg     Config
	doc     dom.Document
	win     dom.Window
	emitter telemetry.Emitter
	clock   Clock
	logger  *logging.Logger

	initialized bool
	start       time.Time
	frame       dom.FrameWindow
	unsubscribe func()
}

// New creates a bridge for one editor session. The system clock is used
// unless overridden with WithClock.
func New(cfg Config, doc dom.Document, win dom.Window, emitter telemetry.Emitter, logger *logging.Logger) *Bridge {
	if emitter == nil {
		emitter = telemetry.Nop{}
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Bridge{
		cfg:     cfg,
		doc:     doc,
		win:     win,
		emitter: emitter,
		clock:   SystemClock{},
		logger:  logger,
	}
}

// WithClock overrides the bridge clock. Call before Initialize.
func (b *Bridge) WithClock(c Clock) *Bridge {
	b.clock = c
	return b
}

// Initialize captures the timing origin, inserts the frame, submits the auth
// hand-off form targeting it, and subscribes to inbound frame messages.
// Missing DOM anchors abort initialization; there is no fallback UI.
func (b *Bridge) Initialize() error {
	if b.initialized {
		return ErrAlreadyInitialized
	}

	// Timing origin for both load milestones, captured before insertion.
	b.start = b.clock.Now()

	_, strict := b.win.PageQuery(SameOriginFlag)
	frame, err := b.doc.InsertFrame(ContainerClass, b.BuildFrame(strict))
	if err != nil {
		return fmt.Errorf("insert frame: %w", err)
	}
	b.frame = frame

	if err := b.doc.SubmitForm(AuthFormClass, FrameName); err != nil {
		return fmt.Errorf("submit auth form: %w", err)
	}

	b.unsubscribe = b.win.OnMessage(func(payload []byte) {
		if err := b.HandleMessage(payload); err != nil {
			b.logger.Warn("frame message dropped", zap.Error(err))
		}
	})

	b.initialized = true
	b.logger.Info("editor frame initialized",
		zap.String("app_type", b.cfg.AppType),
		zap.Bool("strict_sandbox", strict),
	)
	return nil
}

// BuildFrame constructs the editor frame element. sandboxFlagPresent selects
// the strict sandbox (no allow-same-origin).
func (b *Bridge) BuildFrame(sandboxFlagPresent bool) dom.Frame {
	return BuildFrame(b.cfg, sandboxFlagPresent)
}

// BuildFrame constructs the frame element for a configuration without a
// running bridge; the frame config API uses it to describe the embed.
func BuildFrame(cfg Config, sandboxFlagPresent bool) dom.Frame {
	tokens := sandboxBase
	if !sandboxFlagPresent {
		tokens = append(append([]string{}, sandboxBase...), sandboxSameOrigin)
	}
	return dom.Frame{
		Name:            FrameName,
		Class:           FrameClass,
		Src:             cfg.EditorURL,
		AllowFullscreen: true,
		Allow:           frameAllow,
		Sandbox:         strings.Join(tokens, " "),
	}
}

// FrameLoaded records the frame-insertion milestone. The embedding page
// signals it when the frame element fires its load event.
func (b *Bridge) FrameLoaded() {
	b.emitLoadTiming(telemetry.EventIframeLoad)
}

// HandleMessage reacts to one raw frame payload. An empty payload is a
// no-op. Malformed JSON is returned as an error for the caller to surface;
// unknown message kinds are ignored without error. Both handled kinds are
// safe to re-deliver.
func (b *Bridge) HandleMessage(payload []byte) error {
	if len(payload) == 0 {
		return nil
	}

	msg, err := wire.Decode(payload)
	if err != nil {
		return fmt.Errorf("decode frame message: %w", err)
	}

	switch msg.Kind {
	case wire.KindAppLoaded:
		b.emitLoadTiming(telemetry.EventEditorLoad)
		return b.SendReady()
	case wire.KindFileRename:
		b.doc.SetTitle(b.renderTitle(msg.NewName))
		return nil
	default:
		return nil
	}
}

// SendReady posts the handshake reply to the frame, restricted to the
// configured origin. An origin mismatch is dropped silently by the browser;
// the bridge has no visibility into that.
func (b *Bridge) SendReady() error {
	if b.frame == nil {
		return ErrNotInitialized
	}

	payload, err := wire.NewReady(b.clock.Now()).Encode()
	if err != nil {
		return fmt.Errorf("encode ready message: %w", err)
	}
	return b.frame.PostMessage(payload, b.cfg.Origin)
}

// Teardown removes the message subscription. The frame element's lifecycle
// belongs to the DOM container, not the bridge.
func (b *Bridge) Teardown() {
	if b.unsubscribe != nil {
		b.unsubscribe()
		b.unsubscribe = nil
	}
}

// renderTitle combines the renamed file's display name with the localized
// no-filename title through the configured template.
func (b *Bridge) renderTitle(newName string) string {
	display := newName + "." + b.cfg.FileExtension
	return fmt.Sprintf(b.cfg.TitleTemplate, display, b.cfg.NoFileTitle)
}

// emitLoadTiming emits one record for the milestone, plus a slow-suffixed
// second record when elapsed crosses the fixed threshold.
func (b *Bridge) emitLoadTiming(name string) {
	elapsed := b.clock.Now().Sub(b.start)

	rec := telemetry.Record{
		EventName:  name,
		LoadTimeMs: elapsed.Milliseconds(),
		ServiceID:  b.cfg.ServiceID,
		AppType:    b.cfg.AppType,
	}
	b.emitter.Emit(rec)

	if elapsed >= slowLoadThreshold {
		b.emitter.Emit(rec.Slow())
	}
}
