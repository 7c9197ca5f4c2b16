// internal/platform/urlfilter/strict.go
package urlfilter

import (
	"net/url"

	"onca/internal/core/domain"
	"onca/internal/platform/validator"
)

// Strict retorna un nuevo ResultSet con las entradas cuyo host contiene domain.
// Las entradas que no parsean como URL o no tienen host se descartan.
// El conjunto de entrada no se modifica.
func Strict(results *domain.ResultSet, target string) *domain.ResultSet {
	out := domain.NewResultSet()
	if results == nil {
		return out
	}

	target = validator.NormalizeDomain(target)
	for _, entry := range results.Sorted() {
		if HostMatches(entry, target) {
			out.Add(entry)
		}
	}
	return out
}

// HostMatches indica si el host de rawURL (con puerto, si lo hay) contiene domain.
func HostMatches(rawURL, target string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return false
	}
	return validator.ContainsDomain(parsed.Host, target)
}
