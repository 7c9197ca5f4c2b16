// internal/core/domain/enums.go
package domain

import (
	"fmt"
	"strings"
)

// SourceID identifica una fuente de descubrimiento.
type SourceID string

const (
	// SourceArchive consulta el índice CDX de un archivo web
	SourceArchive SourceID = "archive"

	// SourceWebSearch consulta una página de resultados de búsqueda restringida al sitio
	SourceWebSearch SourceID = "web-search"

	// SourceWhoisHistory raspa una página de historial whois (enlaces, DNS y MX)
	SourceWhoisHistory SourceID = "whois-history"
)

// alias heredados de la herramienta de línea de comandos anterior
var sourceAliases = map[string]SourceID{
	"wayback":     SourceArchive,
	"google":      SourceWebSearch,
	"domaintools": SourceWhoisHistory,
}

// AllSourceIDs devuelve las fuentes conocidas en el orden de ejecución por defecto.
func AllSourceIDs() []SourceID {
	return []SourceID{SourceArchive, SourceWebSearch, SourceWhoisHistory}
}

// IsValid verifica si el identificador es una fuente conocida.
func (id SourceID) IsValid() bool {
	switch id {
	case SourceArchive, SourceWebSearch, SourceWhoisHistory:
		return true
	default:
		return false
	}
}

// String retorna la representación string del identificador.
func (id SourceID) String() string {
	return string(id)
}

// ParseSourceID acepta el identificador canónico o un alias heredado.
func ParseSourceID(s string) (SourceID, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if id := SourceID(s); id.IsValid() {
		return id, nil
	}
	if id, ok := sourceAliases[s]; ok {
		return id, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSource, s)
}

// ParseSourceIDs parsea una lista de nombres. Los duplicados se colapsan
// conservando la primera aparición; una lista vacía devuelve nil.
func ParseSourceIDs(names []string) ([]SourceID, error) {
	var (
		out  []SourceID
		seen = make(map[SourceID]bool)
	)
	for _, name := range names {
		if strings.TrimSpace(name) == "" {
			continue
		}
		id, err := ParseSourceID(name)
		if err != nil {
			return nil, err
		}
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out, nil
}

// AliasOf devuelve el alias heredado de una fuente, o "" si no tiene.
func AliasOf(id SourceID) string {
	for alias, target := range sourceAliases {
		if target == id {
			return alias
		}
	}
	return ""
}
