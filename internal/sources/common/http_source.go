// Package common provides shared abstractions for source implementations.
package common

import (
	"context"
	"net/url"
	"strings"

	"onca/internal/core/domain"
	"onca/internal/core/ports"
	"onca/internal/platform/errors"
	"onca/internal/platform/httpclient"
	"onca/internal/platform/logx"
)

// BaseHTTPSource provides the plumbing shared by HTTP-scraping sources:
// a configured client, a scoped logger and the endpoint to query.
//
// Usage:
//  1. Embed BaseHTTPSource in your source struct
//  2. Build it with NewBaseHTTPSource from the factory's SourceConfig
//  3. Call Fetch() in your Discover() method and map failures with OutcomeFromError()
type BaseHTTPSource struct {
	id       domain.SourceID
	client   *httpclient.Client
	logger   logx.Logger
	endpoint string
}

// NewBaseHTTPSource creates a BaseHTTPSource. cfg.BaseURL, when set, replaces defaultEndpoint.
func NewBaseHTTPSource(id domain.SourceID, cfg ports.SourceConfig, defaultEndpoint string, logger logx.Logger) *BaseHTTPSource {
	if logger == nil {
		logger = logx.NewSilent()
	}

	httpCfg := httpclient.DefaultConfig()
	httpCfg.Timeout = cfg.Timeout
	httpCfg.MaxRetries = cfg.Retries
	httpCfg.RetryNetworkErrors = cfg.RetryNetworkErrors
	httpCfg.RateLimit = cfg.RateLimit
	httpCfg.Identities = httpclient.NewIdentityPool(cfg.UserAgents...)
	if cfg.RetryBackoff > 0 {
		httpCfg.RetryBackoff = cfg.RetryBackoff
	}
	if cfg.MaxBodyBytes != 0 {
		httpCfg.MaxBodyBytes = cfg.MaxBodyBytes
	}

	endpoint := defaultEndpoint
	if cfg.BaseURL != "" {
		endpoint = strings.TrimRight(cfg.BaseURL, "/")
	}

	scoped := logger.With("source", id)
	return &BaseHTTPSource{
		id:       id,
		client:   httpclient.New(httpCfg, scoped),
		logger:   scoped,
		endpoint: endpoint,
	}
}

// ID retorna el identificador de la fuente.
func (b *BaseHTTPSource) ID() domain.SourceID { return b.id }

// Logger retorna el logger con el scope de la fuente.
func (b *BaseHTTPSource) Logger() logx.Logger { return b.logger }

// Endpoint retorna la URL base consultada.
func (b *BaseHTTPSource) Endpoint() string { return b.endpoint }

// Fetch performs a GET through the source's resilient client.
func (b *BaseHTTPSource) Fetch(ctx context.Context, rawURL string, params url.Values) (*httpclient.Response, error) {
	return b.client.Fetch(ctx, rawURL, params)
}

// OutcomeFromError maps a fetch failure to an Outcome: throttling (HTTP 429)
// becomes RateLimited, anything else Failed.
func (b *BaseHTTPSource) OutcomeFromError(err error) domain.Outcome {
	if errors.IsRateLimit(err) {
		b.logger.Warn("source throttled the caller, returning empty set", "error", err.Error())
		return domain.RateLimited(b.id, errors.Join(domain.ErrSourceRateLimited, err))
	}
	if fe, ok := errors.IsFetchError(err); ok {
		b.logger.Warn("source request failed",
			"status", fe.StatusCode,
			"attempts", fe.Attempts,
			"error", err.Error(),
		)
		return domain.Failed(b.id, err)
	}
	b.logger.Warn("source request failed", "error", err.Error())
	return domain.Failed(b.id, err)
}
