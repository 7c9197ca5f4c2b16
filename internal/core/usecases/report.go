// internal/core/usecases/report.go
package usecases

import (
	"time"

	"onca/internal/core/domain"
)

// SourceReport resume la invocación de una fuente.
type SourceReport struct {
	Source   domain.SourceID
	Kind     domain.OutcomeKind
	Count    int
	Delay    time.Duration
	Duration time.Duration
	Err      string

	// Skipped la fuente no estaba disponible y no se invocó
	Skipped bool
}

// RunReport resume una ejecución completa del orquestador.
type RunReport struct {
	Target   domain.Target
	Sources  []SourceReport
	Total    int
	Started  time.Time
	Duration time.Duration
	Canceled bool
}

func newRunReport(target domain.Target) *RunReport {
	return &RunReport{Target: target, Started: time.Now()}
}

func (r *RunReport) add(sr SourceReport) {
	r.Sources = append(r.Sources, sr)
}

func (r *RunReport) finish(total int) {
	r.Total = total
	r.Duration = time.Since(r.Started)
}

// Count retorna cuántas fuentes invocadas terminaron con kind.
func (r *RunReport) Count(kind domain.OutcomeKind) int {
	n := 0
	for _, s := range r.Sources {
		if !s.Skipped && s.Kind == kind {
			n++
		}
	}
	return n
}

// Invoked retorna cuántas fuentes se llegaron a invocar.
func (r *RunReport) Invoked() int {
	n := 0
	for _, s := range r.Sources {
		if !s.Skipped {
			n++
		}
	}
	return n
}
