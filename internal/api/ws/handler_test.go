package ws

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/framehost/officebridge/internal/bridge"
	"github.com/framehost/officebridge/internal/embed"
	"github.com/framehost/officebridge/internal/infrastructure/config"
	"github.com/framehost/officebridge/internal/infrastructure/monitoring"
	"github.com/framehost/officebridge/internal/locale"
	"github.com/framehost/officebridge/internal/telemetry"
	"github.com/framehost/officebridge/internal/wire"
)

type recordingEmitter struct {
	records []telemetry.Record
}

func (r *recordingEmitter) Emit(rec telemetry.Record) { r.records = append(r.records, rec) }

func testHostConfig() *config.Config {
	cfg := config.Default()
	cfg.Editor.URL = "https://excel.officeapps.example.com/x/editor.aspx"
	cfg.Editor.Origin = "https://excel.officeapps.example.com"
	return cfg
}

// dialRelay starts a relay server and connects a fake page to it.
func dialRelay(t *testing.T, cfg *config.Config, emitter telemetry.Emitter) *websocket.Conn {
	t.Helper()
	gin.SetMode(gin.TestMode)

	metrics := monitoring.NewMetricsWith(prometheus.NewRegistry())
	planner := embed.NewPlanner(cfg, locale.MustLoad(), nil, nil)
	handler := NewHandler(planner, emitter, metrics, nil)

	router := gin.New()
	router.GET("/relay", handler.HandleConnection)
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/relay"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()
	var msg Message
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

// readUntil drains relay messages until one of the wanted type arrives.
func readUntil(t *testing.T, conn *websocket.Conn, msgType string) Message {
	t.Helper()
	for i := 0; i < 10; i++ {
		msg := readMessage(t, conn)
		if msg.Type == msgType {
			return msg
		}
	}
	t.Fatalf("no %q message received", msgType)
	return Message{}
}

func initSession(t *testing.T, conn *websocket.Conn, pageURL string) {
	t.Helper()
	welcome := readMessage(t, conn)
	require.Equal(t, TypeSystem, welcome.Type)

	require.NoError(t, conn.WriteJSON(Message{Type: TypeInit, PageURL: pageURL}))
}

func TestInitDrivesFrameDirectives(t *testing.T) {
	conn := dialRelay(t, testHostConfig(), nil)
	initSession(t, conn, "https://host.example.com/doc/42")

	insert := readMessage(t, conn)
	require.Equal(t, TypeInsertFrame, insert.Type)
	require.NotNil(t, insert.Frame)
	assert.Equal(t, bridge.ContainerClass, insert.ContainerClass)
	assert.Equal(t, bridge.FrameName, insert.Frame.Name)
	assert.Equal(t, "https://excel.officeapps.example.com/x/editor.aspx", insert.Frame.Src)
	assert.Contains(t, insert.Frame.SandboxTokens(), "allow-same-origin")

	submit := readMessage(t, conn)
	require.Equal(t, TypeSubmitForm, submit.Type)
	assert.Equal(t, bridge.AuthFormClass, submit.FormClass)
	assert.Equal(t, bridge.FrameName, submit.TargetName)

	ready := readMessage(t, conn)
	require.Equal(t, TypeSessionReady, ready.Type)
	assert.NotEmpty(t, ready.SessionID)
}

func TestInitHonorsSandboxFlagOnPageURL(t *testing.T) {
	conn := dialRelay(t, testHostConfig(), nil)
	initSession(t, conn, "https://host.example.com/doc/42?disableAllowSameOrigin=false")

	insert := readMessage(t, conn)
	require.Equal(t, TypeInsertFrame, insert.Type)
	assert.NotContains(t, insert.Frame.SandboxTokens(), "allow-same-origin")
}

func TestAppLoadedRoundTrip(t *testing.T) {
	emitter := &recordingEmitter{}
	conn := dialRelay(t, testHostConfig(), emitter)
	initSession(t, conn, "https://host.example.com/doc/42")
	readUntil(t, conn, TypeSessionReady)

	require.NoError(t, conn.WriteJSON(Message{
		Type:    TypeFrameMessage,
		Payload: `{"MessageId":"App_LoadingStatus"}`,
	}))

	post := readUntil(t, conn, TypePostToFrame)
	assert.Equal(t, "https://excel.officeapps.example.com", post.TargetOrigin)

	decoded, err := wire.Decode([]byte(post.Payload))
	require.NoError(t, err)
	assert.Equal(t, wire.KindUnknown, decoded.Kind) // outbound kind, not inbound
	assert.Contains(t, post.Payload, wire.MsgHostReady)
}

func TestRenameSetsTitle(t *testing.T) {
	conn := dialRelay(t, testHostConfig(), nil)
	initSession(t, conn, "https://host.example.com/doc/42")
	readUntil(t, conn, TypeSessionReady)

	require.NoError(t, conn.WriteJSON(Message{
		Type:    TypeFrameMessage,
		Payload: `{"MessageId":"File_Rename","Values":{"NewName":"Report"}}`,
	}))

	title := readUntil(t, conn, TypeSetTitle)
	assert.Equal(t, "Report.xlsx - Excel Online", title.Title)
}

func TestUnknownRelayTypeErrors(t *testing.T) {
	conn := dialRelay(t, testHostConfig(), nil)
	readMessage(t, conn) // welcome

	require.NoError(t, conn.WriteJSON(Message{Type: "bogus"}))

	errMsg := readMessage(t, conn)
	assert.Equal(t, TypeError, errMsg.Type)
}

func TestInitWithoutEditorURL(t *testing.T) {
	cfg := testHostConfig()
	cfg.Editor.URL = ""

	conn := dialRelay(t, cfg, nil)
	initSession(t, conn, "https://host.example.com/doc/42")

	errMsg := readMessage(t, conn)
	assert.Equal(t, TypeError, errMsg.Type)
}

func TestFrameMessageBeforeInitIsDropped(t *testing.T) {
	conn := dialRelay(t, testHostConfig(), nil)
	readMessage(t, conn) // welcome

	require.NoError(t, conn.WriteJSON(Message{
		Type:    TypeFrameMessage,
		Payload: `{"MessageId":"App_LoadingStatus"}`,
	}))
	require.NoError(t, conn.WriteJSON(Message{Type: TypePing}))

	// Only the pong comes back; the frame message was dropped silently.
	msg := readMessage(t, conn)
	assert.Equal(t, TypePong, msg.Type)
}

func TestPingPong(t *testing.T) {
	conn := dialRelay(t, testHostConfig(), nil)
	readMessage(t, conn) // welcome

	require.NoError(t, conn.WriteJSON(Message{Type: TypePing}))
	msg := readMessage(t, conn)
	assert.Equal(t, TypePong, msg.Type)
}
