// internal/platform/ui/presenter.go
package ui

import (
	"fmt"
	"io"
	"strings"

	"onca/internal/core/ports"
)

// Mode define el modo de visualización del progreso
type Mode string

const (
	ModeProgress Mode = "progress" // Spinners y resumen con pterm (default en TTY)
	ModeRaw      Mode = "raw"      // Una línea logfmt por evento
	ModeJSON     Mode = "json"     // Una línea JSON por evento
	ModeQuiet    Mode = "quiet"    // Sin salida
)

// ParseMode convierte un string en Mode.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModeProgress, ModeRaw, ModeJSON, ModeQuiet:
		return m, nil
	case "":
		return ModeProgress, nil
	default:
		return "", fmt.Errorf("invalid ui mode %q (valid: progress, raw, json, quiet)", s)
	}
}

// NewPresenter construye el observer de progreso para mode, escribiendo en w.
// w debe ser stderr o equivalente: stdout queda para los resultados.
func NewPresenter(mode Mode, w io.Writer) ports.Notifier {
	switch mode {
	case ModeProgress:
		return NewPTermPresenter(w)
	case ModeRaw:
		return NewRawPresenter(LogFormatText, w)
	case ModeJSON:
		return NewRawPresenter(LogFormatJSON, w)
	default:
		return NewNoopPresenter()
	}
}

// sourceLine es el estado final de una fuente para el resumen.
type sourceLine struct {
	name     string
	status   Status
	count    int
	detail   string
	duration string
}
