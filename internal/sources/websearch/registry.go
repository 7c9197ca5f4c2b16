// internal/sources/websearch/registry.go
package websearch

import (
	"time"

	"onca/internal/core/domain"
	"onca/internal/core/ports"
	"onca/internal/platform/logx"
	"onca/internal/platform/registry"
)

// Auto-registro de la source al importar el package
func init() {
	if err := registry.Global().Register(
		domain.SourceWebSearch,
		func(cfg ports.SourceConfig, logger logx.Logger) (ports.Source, error) {
			return New(cfg, logger)
		},
		ports.SourceMetadata{
			Description:     "Site-restricted search engine results (optional keyword)",
			Endpoint:        DefaultEndpoint,
			DefaultTimeout:  15 * time.Second,
			SupportsKeyword: true,
		},
	); err != nil {
		logx.New().Warn("failed to register web-search source", "error", err.Error())
	}
}
