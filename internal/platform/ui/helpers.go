// internal/platform/ui/helpers.go
package ui

import (
	"fmt"
	"time"

	"onca/internal/core/domain"
)

// formatDuration formatea una duración de manera legible
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	} else if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	} else {
		minutes := int(d.Minutes())
		seconds := int(d.Seconds()) % 60
		return fmt.Sprintf("%dm%ds", minutes, seconds)
	}
}

// statusFromOutcome traduce el resultado de una fuente a un estado visual.
func statusFromOutcome(kind domain.OutcomeKind) Status {
	switch kind {
	case domain.OutcomeOK:
		return StatusSuccess
	case domain.OutcomeRateLimited:
		return StatusWarning
	default:
		return StatusError
	}
}

func sourceNames(ids []domain.SourceID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}
