// internal/sources/whoishistory/registry.go
package whoishistory

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
		domain.SourceWhoisHistory,
		func(cfg ports.SourceConfig, logger logx.Logger) (ports.Source, error) {
			return New(cfg, logger), nil
		},
		ports.SourceMetadata{
			Description:    "Whois history page: outbound links, DNS servers and MX records",
			Endpoint:       DefaultEndpoint,
			DefaultTimeout: 20 * time.Second,
			Throttled:      true, // bloquea con 429 tras pocas peticiones
		},
	); err != nil {
		logx.New().Warn("failed to register whois-history source", "error", err.Error())
	}
}
