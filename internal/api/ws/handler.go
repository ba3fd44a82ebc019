package ws

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/framehost/officebridge/internal/embed"
	"github.com/framehost/officebridge/internal/infrastructure/logging"
	"github.com/framehost/officebridge/internal/infrastructure/monitoring"
	"github.com/framehost/officebridge/internal/telemetry"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Origins are enforced by the CORS layer in front
	},
}

// Handler manages relay WebSocket connections.
type Handler struct {
	planner *embed.Planner
	emitter telemetry.Emitter
	metrics *monitoring.Metrics
	logger  *logging.Logger
}

// NewHandler creates a relay handler.
func NewHandler(planner *embed.Planner, emitter telemetry.Emitter, metrics *monitoring.Metrics, logger *logging.Logger) *Handler {
	if emitter == nil {
		emitter = telemetry.Nop{}
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Handler{
		planner: planner,
		emitter: emitter,
		metrics: metrics,
		logger:  logger,
	}
}

// HandleConnection upgrades the request and serves relay messages until the
// page disconnects.
func (h *Handler) HandleConnection(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	connID := uuid.NewString()
	h.metrics.WSConnected()
	defer h.metrics.WSDisconnected()

	sess := newSession(h, conn)
	defer sess.teardown()

	reqCtx := c.Request.Context()

	_ = sess.send(Message{
		Type:      TypeSystem,
		Message:   "connected to officebridge relay",
		SessionID: sess.id.String(),
		Timestamp: time.Now().Unix(),
	})

	for {
		var msg Message
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Warn("relay read error", zap.Error(err), zap.String("conn", connID))
			}
			break
		}
		h.metrics.RecordWSMessage("inbound", msg.Type)

		switch msg.Type {
		case TypeInit:
			sess.handleInit(reqCtx, msg)
		case TypeIframeLoaded:
			sess.handleFrameLoaded()
		case TypeFrameMessage:
			sess.handleFrameMessage(msg)
		case TypePing:
			_ = sess.send(Message{Type: TypePong})
		default:
			sess.sendError("unknown message type")
		}
	}
}
