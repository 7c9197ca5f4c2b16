// internal/sources/archive/registry.go
package archive

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
		domain.SourceArchive,
		func(cfg ports.SourceConfig, logger logx.Logger) (ports.Source, error) {
			return New(cfg, logger)
		},
		ports.SourceMetadata{
			Description:    "Captured URLs from the Wayback Machine CDX index",
			Endpoint:       DefaultEndpoint,
			DefaultTimeout: 20 * time.Second,
		},
	); err != nil {
		logx.New().Warn("failed to register archive source", "error", err.Error())
	}
}
