// internal/platform/ui/symbols.go
package ui

import "github.com/pterm/pterm"

// Status representa el estado de una fuente
type Status int

const (
	StatusPending Status = iota
	StatusWaiting
	StatusRunning
	StatusSuccess
	StatusWarning
	StatusError
	StatusSkipped
)

// String convierte el status a string
func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusWaiting:
		return "waiting"
	case StatusRunning:
		return "running"
	case StatusSuccess:
		return "ok"
	case StatusWarning:
		return "rate-limited"
	case StatusError:
		return "failed"
	case StatusSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// Symbol retorna el símbolo Unicode para cada estado
func (s Status) Symbol() string {
	switch s {
	case StatusPending:
		return "⏸"
	case StatusWaiting:
		return "⧗"
	case StatusRunning:
		return "⣾"
	case StatusSuccess:
		return "✓"
	case StatusWarning:
		return "⚠"
	case StatusError:
		return "✗"
	case StatusSkipped:
		return "⊘"
	default:
		return "?"
	}
}

// Style retorna el estilo de la paleta para cada estado
func (s Status) Style() *pterm.Style {
	switch s {
	case StatusWaiting, StatusRunning:
		return StyleActive
	case StatusSuccess:
		return StyleSuccess
	case StatusWarning:
		return StyleWarning
	case StatusError:
		return StyleError
	default:
		return StyleSecondary
	}
}

// Icons
var (
	IconTarget  = "🎯"
	IconKeyword = "🔎"
	IconTime    = "⏱"
	IconResults = "📦"
	IconSources = "🔌"
)

// SeparatorHeavy separa el progreso del resumen final
var SeparatorHeavy = "━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━"
