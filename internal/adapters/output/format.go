// internal/adapters/output/format.go
package output

import (
	"path/filepath"
	"strings"
)

// Format es el formato de serialización de los resultados.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath deduce el formato por la extensión del fichero.
// Cualquier extensión desconocida (o ninguna) es texto plano.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatText
	}
}
