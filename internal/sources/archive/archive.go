// internal/sources/archive/archive.go
package archive

import (
	"context"
	"net/url"
	"strconv"

	"onca/internal/core/domain"
	"onca/internal/core/ports"
	"onca/internal/platform/logx"
	"onca/internal/platform/registry"
	"onca/internal/sources/common"
)

const (
	// DefaultEndpoint es el índice CDX público del Wayback Machine.
	DefaultEndpoint = "https://web.archive.org/cdx/search/cdx"

	// DefaultMaxBodyBytes tope del cuerpo CDX; un dominio mediano supera el tope genérico del cliente.
	DefaultMaxBodyBytes int64 = 1 << 30
)

// Archive consulta el índice CDX y devuelve todas las URLs capturadas
// bajo el dominio.
type Archive struct {
	*common.BaseHTTPSource

	limit    int  // 0 = sin límite
	collapse bool // colapsar capturas repetidas de la misma URL
}

// New crea la fuente archive.
//
// Claves Custom soportadas: "limit" (int, >= 0), "collapse" (bool).
// Sin MaxBodyBytes en cfg se aplica DefaultMaxBodyBytes.
func New(cfg ports.SourceConfig, logger logx.Logger) (ports.Source, error) {
	limit := registry.GetIntConfig(cfg.Custom, "limit", 0)
	if err := registry.ValidateNonNegativeInt("limit", limit); err != nil {
		return nil, err
	}
	if cfg.MaxBodyBytes == 0 {
		cfg.MaxBodyBytes = DefaultMaxBodyBytes
	}

	return &Archive{
		BaseHTTPSource: common.NewBaseHTTPSource(domain.SourceArchive, cfg, DefaultEndpoint, logger),
		limit:          limit,
		collapse:       registry.GetBoolConfig(cfg.Custom, "collapse", false),
	}, nil
}

// Discover ejecuta la consulta CDX para el target.
func (a *Archive) Discover(ctx context.Context, target domain.Target) domain.Outcome {
	a.Logger().Debug("querying archive index", "target", target.Domain)

	resp, err := a.Fetch(ctx, a.Endpoint(), a.params(target))
	if err != nil {
		return a.OutcomeFromError(err)
	}

	results, skipped, err := parseCDX(resp.Body)
	if err != nil && (results == nil || results.Len() == 0) {
		a.Logger().Warn("archive response is not a CDX table", "error", err.Error())
		return domain.Failed(domain.SourceArchive, err)
	}
	if err != nil {
		a.Logger().Warn("archive table truncated, keeping complete rows",
			"urls", results.Len(),
			"error", err.Error(),
		)
	}

	a.Logger().Debug("archive index parsed",
		"target", target.Domain,
		"urls", results.Len(),
		"skipped_rows", skipped,
	)
	return domain.OK(domain.SourceArchive, results)
}

func (a *Archive) params(target domain.Target) url.Values {
	params := url.Values{
		"url":    {target.Domain + "/*"},
		"output": {"json"},
	}
	if a.limit > 0 {
		params.Set("limit", strconv.Itoa(a.limit))
	}
	if a.collapse {
		params.Set("collapse", "urlkey")
	}
	return params
}
