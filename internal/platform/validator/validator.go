// internal/platform/validator/validator.go
package validator

import (
	"net"
	"net/url"
	"regexp"
	"strings"
)

var (
	// Permite dominios internacionales en punycode; el label final debe existir.
	domainRegex = regexp.MustCompile(`^([a-zA-Z0-9]([a-zA-Z0-9\-]{0,61}[a-zA-Z0-9])?\.)*[a-zA-Z0-9]([a-zA-Z0-9\-]{0,61}[a-zA-Z0-9])?$`)
	hostRegex   = regexp.MustCompile(`^[a-zA-Z0-9_]([a-zA-Z0-9_\-\.]*[a-zA-Z0-9])?$`)
)

// Domain validators

// IsDomain verifica si un string es un dominio válido.
// Las IPs no se consideran dominios.
func IsDomain(domain string) bool {
	if len(domain) == 0 || len(domain) > 253 {
		return false
	}
	if !domainRegex.MatchString(domain) {
		return false
	}
	if net.ParseIP(domain) != nil {
		return false
	}
	return true
}

// IsHostname es más permisivo que IsDomain: acepta guiones bajos
// (frecuentes en registros DNS reales) pero nunca espacios ni esquemas.
func IsHostname(host string) bool {
	if len(host) == 0 || len(host) > 253 {
		return false
	}
	return hostRegex.MatchString(host)
}

// NormalizeDomain normaliza un dominio a su forma canónica:
// minúsculas, sin espacios y sin el punto raíz final.
func NormalizeDomain(domain string) string {
	domain = strings.ToLower(strings.TrimSpace(domain))
	domain = strings.TrimSuffix(domain, ".")
	return domain
}

// NormalizeHost es NormalizeDomain para hosts extraídos de tablas DNS/MX.
func NormalizeHost(host string) string {
	return NormalizeDomain(host)
}

// ContainsDomain reporta si host contiene domain como substring (sin distinguir mayúsculas).
func ContainsDomain(host, domain string) bool {
	if host == "" || domain == "" {
		return false
	}
	return strings.Contains(strings.ToLower(host), strings.ToLower(domain))
}

// URL validators

// IsURL verifica si un string es una URL válida con scheme y host.
func IsURL(urlStr string) bool {
	if len(urlStr) == 0 {
		return false
	}

	parsed, err := url.Parse(urlStr)
	if err != nil {
		return false
	}

	return parsed.Scheme != "" && parsed.Host != ""
}

// SanitizeURL limpia un candidato a URL extraído de una fuente externa.
// Los espacios internos se conservan tal cual; url.Parse decide si es válida.
// Devuelve ("", false) si tras la limpieza no es una URL absoluta.
func SanitizeURL(raw string) (string, bool) {
	raw = strings.TrimSpace(RepairUTF8(raw))
	if !IsURL(raw) {
		return "", false
	}
	return raw, true
}

// HostOf devuelve el host (sin puerto) de una URL, o "" si no parsea.
func HostOf(urlStr string) string {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return ""
	}
	return parsed.Hostname()
}

// Text helpers

// RepairUTF8 descarta secuencias UTF-8 inválidas y caracteres de control.
func RepairUTF8(s string) string {
	s = strings.ToValidUTF8(s, "")
	return strings.Map(func(r rune) rune {
		if (r < 0x20 && r != '\t' && r != '\n' && r != '\r') || r == 0x7f {
			return -1
		}
		return r
	}, s)
}

// IsEmpty verifica si un string está vacío o solo contiene espacios.
func IsEmpty(s string) bool {
	return len(strings.TrimSpace(s)) == 0
}
