// internal/sources/websearch/websearch.go
package websearch

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
	// DefaultEndpoint es la página de resultados del buscador.
	DefaultEndpoint = "https://www.google.com/search"

	defaultResults = 50
)

// WebSearch lanza una búsqueda "site:<dominio> [keyword]" y extrae los
// enlaces de resultado envueltos en /url?q=.
type WebSearch struct {
	*common.BaseHTTPSource

	results int
}

// New crea la fuente web-search.
//
// Claves Custom soportadas: "results" (int, 1-100).
func New(cfg ports.SourceConfig, logger logx.Logger) (ports.Source, error) {
	results := registry.GetIntConfig(cfg.Custom, "results", defaultResults)
	if err := registry.ValidateIntRange("results", results, 1, 100); err != nil {
		return nil, err
	}

	return &WebSearch{
		BaseHTTPSource: common.NewBaseHTTPSource(domain.SourceWebSearch, cfg, DefaultEndpoint, logger),
		results:        results,
	}, nil
}

// Discover ejecuta la búsqueda para el target.
func (w *WebSearch) Discover(ctx context.Context, target domain.Target) domain.Outcome {
	query := buildQuery(target)
	w.Logger().Debug("querying search engine", "query", query)

	resp, err := w.Fetch(ctx, w.Endpoint(), url.Values{
		"q":   {query},
		"num": {strconv.Itoa(w.results)},
	})
	if err != nil {
		return w.OutcomeFromError(err)
	}

	doc, err := common.ParseHTML(resp.Body)
	if err != nil {
		w.Logger().Warn("search page could not be parsed", "error", err.Error())
		return domain.Failed(domain.SourceWebSearch, err)
	}

	results := extractResults(doc, target.Domain)
	w.Logger().Debug("search page parsed", "target", target.Domain, "urls", results.Len())
	return domain.OK(domain.SourceWebSearch, results)
}

func buildQuery(target domain.Target) string {
	query := "site:" + target.Domain
	if target.HasKeyword() {
		query += " " + target.Keyword
	}
	return query
}
