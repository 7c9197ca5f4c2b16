// internal/sources/whoishistory/whoishistory.go
package whoishistory

import (
	"context"
	"net/url"
	"strings"

	"onca/internal/core/domain"
	"onca/internal/core/ports"
	"onca/internal/platform/logx"
	"onca/internal/platform/registry"
	"onca/internal/sources/common"
)

// DefaultEndpoint es la raíz de las páginas whois; la ruta es el dominio.
const DefaultEndpoint = "https://whois.domaintools.com"

const defaultMXHeading = "MX Records"

// WhoisHistory raspa la página whois del dominio en tres pasadas
// independientes sobre el mismo documento.
type WhoisHistory struct {
	*common.BaseHTTPSource

	mxHeading string
}

// New crea la fuente whois-history.
//
// Claves Custom soportadas: "mx_heading" (string).
func New(cfg ports.SourceConfig, logger logx.Logger) ports.Source {
	return &WhoisHistory{
		BaseHTTPSource: common.NewBaseHTTPSource(domain.SourceWhoisHistory, cfg, DefaultEndpoint, logger),
		mxHeading:      registry.GetStringConfig(cfg.Custom, "mx_heading", defaultMXHeading),
	}
}

// Discover descarga la página y ejecuta las tres pasadas de extracción.
func (w *WhoisHistory) Discover(ctx context.Context, target domain.Target) domain.Outcome {
	pageURL := w.Endpoint() + "/" + url.PathEscape(target.Domain)
	w.Logger().Debug("fetching whois page", "url", pageURL)

	resp, err := w.Fetch(ctx, pageURL, nil)
	if err != nil {
		return w.OutcomeFromError(err)
	}

	doc, err := common.ParseHTML(resp.Body)
	if err != nil {
		w.Logger().Warn("whois page could not be parsed", "error", err.Error())
		return domain.Failed(domain.SourceWhoisHistory, err)
	}

	results := domain.NewResultSet()
	for _, p := range w.passes() {
		w.runPass(p, func() {
			before := results.Len()
			p.extract(doc, target.Domain, results)
			w.Logger().Debug("whois pass finished", "pass", p.name, "added", results.Len()-before)
		})
	}

	return domain.OK(domain.SourceWhoisHistory, results)
}

func (w *WhoisHistory) passes() []pass {
	return []pass{
		{name: "history-links", extract: extractHistoryLinks},
		{name: "dns-servers", extract: extractDNSServers},
		{name: "mx-records", extract: mxExtractor(w.mxHeading)},
	}
}

// runPass aísla cada pasada: un pánico se registra y las demás continúan.
func (w *WhoisHistory) runPass(p pass, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			w.Logger().Warn("whois pass failed", "pass", p.name, "panic", r)
		}
	}()
	fn()
}

func headingMatches(text, heading string) bool {
	return strings.Contains(strings.ToLower(strings.Join(strings.Fields(text), " ")), strings.ToLower(heading))
}
