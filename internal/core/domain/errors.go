// internal/core/domain/errors.go
package domain

import "errors"

// Errores de dominio comunes.
var (
	// Target errors
	ErrEmptyTarget   = errors.New("target cannot be empty")
	ErrInvalidDomain = errors.New("invalid domain format")
	ErrPublicSuffix  = errors.New("domain is a public suffix")

	// Asset errors
	ErrInvalidAsset = errors.New("invalid asset")

	// Source errors
	ErrUnknownSource       = errors.New("unknown source")
	ErrSourceRateLimited   = errors.New("source throttled the caller")
	ErrSourcePanicked      = errors.New("source panicked")
	ErrSourceNotRegistered = errors.New("source not registered")
)
