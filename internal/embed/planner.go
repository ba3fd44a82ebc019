// Package embed assembles per-session bridge configuration from host
// config, the localized string catalog, and the discovery service.
package embed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/framehost/officebridge/internal/bridge"
	"github.com/framehost/officebridge/internal/discovery"
	"github.com/framehost/officebridge/internal/infrastructure/config"
	"github.com/framehost/officebridge/internal/infrastructure/logging"
	"github.com/framehost/officebridge/internal/locale"
)

// resolveTimeout bounds the discovery lookup during session setup.
const resolveTimeout = 15 * time.Second

// Planner builds bridge configurations for new editor sessions.
type Planner struct {
	cfg       *config.Config
	catalog   *locale.Catalog
	discovery *discovery.Client // nil when discovery is disabled
	logger    *logging.Logger
}

// NewPlanner creates a planner. discoveryClient may be nil; sessions then
// use the statically configured editor URL.
func NewPlanner(cfg *config.Config, catalog *locale.Catalog, discoveryClient *discovery.Client, logger *logging.Logger) *Planner {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Planner{
		cfg:       cfg,
		catalog:   catalog,
		discovery: discoveryClient,
		logger:    logger,
	}
}

// BridgeConfig assembles the configuration for one session. localeTag may be
// empty; the host default applies.
func (p *Planner) BridgeConfig(ctx context.Context, localeTag string) (bridge.Config, error) {
	editor := p.cfg.Editor

	if localeTag == "" {
		localeTag = editor.Locale
	}
	strs := p.catalog.Strings(localeTag)

	editorURL := editor.URL
	if p.discovery != nil {
		resolveCtx, cancel := context.WithTimeout(ctx, resolveTimeout)
		defer cancel()

		resolved, err := p.discovery.Resolve(resolveCtx, editor.AppType, editor.FileExtension)
		switch {
		case err == nil:
			editorURL = resolved
		case editorURL == "":
			return bridge.Config{}, fmt.Errorf("resolve editor url: %w", err)
		default:
			p.logger.Warn("discovery resolve failed, using static editor url", zap.Error(err))
		}
	}
	if editorURL == "" {
		return bridge.Config{}, errors.New("no editor url configured")
	}

	return bridge.Config{
		EditorURL:     editorURL,
		Origin:        editor.Origin,
		ServiceID:     editor.ServiceID,
		AppType:       editor.AppType,
		FileExtension: editor.FileExtension,
		TitleTemplate: strs.TitleTemplate,
		NoFileTitle:   strs.NoFile(editor.AppType),
	}, nil
}
