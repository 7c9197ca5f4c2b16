// internal/core/domain/asset.go
package domain

import (
	"fmt"

	"onca/internal/platform/validator"
)

// AssetKind distingue URLs reales de registros sintéticos.
type AssetKind int

const (
	// AssetURL es una URL absoluta tal como la devolvió la fuente
	AssetURL AssetKind = iota

	// AssetDNSHost es un servidor DNS, renderizado con esquema web
	AssetDNSHost

	// AssetMailExchange es un registro MX, renderizado con esquema mx://
	AssetMailExchange
)

const (
	// DNSHostScheme es el esquema sintético de los hosts DNS
	DNSHostScheme = "https"

	// MailExchangeScheme es el esquema sintético de los registros MX
	MailExchangeScheme = "mx"
)

// String retorna el nombre del tipo de asset.
func (k AssetKind) String() string {
	switch k {
	case AssetURL:
		return "url"
	case AssetDNSHost:
		return "dns-host"
	case AssetMailExchange:
		return "mail-exchange"
	default:
		return "unknown"
	}
}

// Asset es un hallazgo validado. Solo se construye mediante New*Asset,
// por lo que un Asset nunca renderiza un string vacío.
type Asset struct {
	kind  AssetKind
	value string // URL saneada o hostname normalizado
}

// NewURLAsset valida y sanea una URL extraída de una fuente.
func NewURLAsset(raw string) (Asset, error) {
	clean, ok := validator.SanitizeURL(raw)
	if !ok {
		return Asset{}, fmt.Errorf("%w: url %q", ErrInvalidAsset, raw)
	}
	return Asset{kind: AssetURL, value: clean}, nil
}

// NewDNSHostAsset construye un asset a partir de un servidor DNS.
func NewDNSHostAsset(host string) (Asset, error) {
	return newHostAsset(AssetDNSHost, host)
}

// NewMailExchangeAsset construye un asset a partir de un registro MX.
// El punto raíz final se elimina.
func NewMailExchangeAsset(host string) (Asset, error) {
	return newHostAsset(AssetMailExchange, host)
}

func newHostAsset(kind AssetKind, host string) (Asset, error) {
	clean := validator.NormalizeHost(validator.RepairUTF8(host))
	if !validator.IsHostname(clean) {
		return Asset{}, fmt.Errorf("%w: %s host %q", ErrInvalidAsset, kind, host)
	}
	return Asset{kind: kind, value: clean}, nil
}

// Kind retorna el tipo del asset.
func (a Asset) Kind() AssetKind { return a.kind }

// Value retorna la URL o el hostname sin esquema sintético.
func (a Asset) Value() string { return a.value }

// String es la única forma de renderizar un asset.
func (a Asset) String() string {
	switch a.kind {
	case AssetDNSHost:
		return DNSHostScheme + "://" + a.value
	case AssetMailExchange:
		return MailExchangeScheme + "://" + a.value
	default:
		return a.value
	}
}
