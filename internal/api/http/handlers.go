package http

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/framehost/officebridge/internal/bridge"
	"github.com/framehost/officebridge/internal/embed"
	"github.com/framehost/officebridge/internal/infrastructure/config"
	"github.com/framehost/officebridge/internal/infrastructure/logging"
	"github.com/framehost/officebridge/internal/locale"
)

// Version reported by the root endpoint.
const Version = "1.0.0"

// Handlers contains all HTTP handlers
type Handlers struct {
	cfg     *config.Config
	planner *embed.Planner
	catalog *locale.Catalog
	logger  *logging.Logger
}

// NewHandlers creates a new handler set
func NewHandlers(cfg *config.Config, planner *embed.Planner, catalog *locale.Catalog, logger *logging.Logger) *Handlers {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Handlers{
		cfg:     cfg,
		planner: planner,
		catalog: catalog,
		logger:  logger,
	}
}

// Root handles the root status check
func (h *Handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "online",
		"service": "officebridge",
		"version": Version,
	})
}

// Health handles detailed health check
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":            "healthy",
		"app_type":          h.cfg.Editor.AppType,
		"discovery_enabled": h.cfg.Discovery.Enabled,
	})
}

// FrameConfig returns the frame element spec and DOM anchors the embedding
// page needs to mount the editor. The caller passes its own URL so the
// sandbox flag on it applies.
func (h *Handlers) FrameConfig(c *gin.Context) {
	pageURL, err := url.Parse(c.Query("page_url"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid page_url"})
		return
	}
	_, sandboxFlag := queryPresence(pageURL, bridge.SameOriginFlag)

	cfg, err := h.planner.BridgeConfig(c.Request.Context(), c.Query("locale"))
	if err != nil {
		h.logger.Error("frame config failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"frame":           bridge.BuildFrame(cfg, sandboxFlag),
		"container_class": bridge.ContainerClass,
		"form_class":      bridge.AuthFormClass,
		"target_origin":   cfg.Origin,
	})
}

// Strings returns the localized string catalog entry for a locale.
func (h *Handlers) Strings(c *gin.Context) {
	tag := c.Query("locale")
	if tag == "" {
		tag = h.cfg.Editor.Locale
	}

	strs := h.catalog.Strings(tag)
	c.JSON(http.StatusOK, gin.H{
		"title_template": strs.TitleTemplate,
		"no_file_title":  strs.NoFile(h.cfg.Editor.AppType),
	})
}

// queryPresence reports a query parameter's value and presence; presence
// counts even for empty or falsy values.
func queryPresence(u *url.URL, name string) (string, bool) {
	values := u.Query()
	if !values.Has(name) {
		return "", false
	}
	return values.Get(name), true
}
