// internal/core/ports/notifier.go
package ports

import (
	"context"
	"time"

	"onca/internal/core/domain"
)

// Notifier es el port para notificaciones de progreso del orquestador.
// Implementa el patrón Observer para desacoplar el motor de la presentación.
type Notifier interface {
	// Notify envía una notificación para un evento
	Notify(ctx context.Context, event Event) error

	// Close cierra el notifier y libera recursos
	Close() error
}

// Event representa un evento del motor.
type Event struct {
	Type      EventType
	Timestamp time.Time

	// Source fuente relacionada (vacío en eventos de ejecución)
	Source domain.SourceID

	// Target dominio objetivo
	Target string

	// Data datos específicos del evento (ver *Event abajo)
	Data interface{}
}

// EventType define los tipos de eventos.
type EventType string

const (
	// Run events
	EventTypeRunStarted   EventType = "run.started"
	EventTypeRunCompleted EventType = "run.completed"
	EventTypeRunCanceled  EventType = "run.canceled"

	// Source events
	EventTypeSourceWaiting     EventType = "source.waiting"
	EventTypeSourceStarted     EventType = "source.started"
	EventTypeSourceCompleted   EventType = "source.completed"
	EventTypeSourceRateLimited EventType = "source.rate_limited"
	EventTypeSourceFailed      EventType = "source.failed"
	EventTypeSourceSkipped     EventType = "source.skipped"
)

// NewEvent crea un nuevo evento.
func NewEvent(eventType EventType, source domain.SourceID, data interface{}) Event {
	return Event{
		Type:      eventType,
		Timestamp: time.Now(),
		Source:    source,
		Data:      data,
	}
}

// RunStartedEvent datos para el inicio de una ejecución.
type RunStartedEvent struct {
	Target  domain.Target
	Sources []domain.SourceID
}

// SourceWaitingEvent datos de la pausa previa a una fuente.
type SourceWaitingEvent struct {
	Delay time.Duration
}

// SourceFinishedEvent datos comunes a completed / rate_limited / failed.
type SourceFinishedEvent struct {
	Kind     domain.OutcomeKind
	Count    int
	Duration time.Duration
	Err      string
}

// RunCompletedEvent datos para el fin de una ejecución.
type RunCompletedEvent struct {
	Total    int
	Duration time.Duration
}
