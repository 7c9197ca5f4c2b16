// Package rate decides how long the engine waits before invoking each source.
package rate

import (
	"context"
	"time"

	"onca/internal/core/domain"
)

const (
	// DefaultDelay pausa previa a cualquier fuente
	DefaultDelay = 3 * time.Second

	// ThrottledDelay pausa previa a las fuentes que limitan agresivamente
	ThrottledDelay = 30 * time.Second
)

// Policy asigna una pausa fija a cada fuente.
// La pausa se paga antes de cada invocación, incluida la primera.
type Policy struct {
	Default   time.Duration
	Throttled time.Duration

	throttled map[domain.SourceID]bool
	overrides map[domain.SourceID]time.Duration
}

// NewPolicy crea una política con las pausas indicadas.
// Valores negativos se tratan como cero.
func NewPolicy(def, throttled time.Duration) *Policy {
	if def < 0 {
		def = 0
	}
	if throttled < 0 {
		throttled = 0
	}
	return &Policy{
		Default:   def,
		Throttled: throttled,
		throttled: make(map[domain.SourceID]bool),
		overrides: make(map[domain.SourceID]time.Duration),
	}
}

// DefaultPolicy retorna la política conservadora por defecto (3s / 30s).
func DefaultPolicy() *Policy {
	return NewPolicy(DefaultDelay, ThrottledDelay)
}

// MarkThrottled marca fuentes que reciben la pausa larga.
func (p *Policy) MarkThrottled(ids ...domain.SourceID) *Policy {
	for _, id := range ids {
		p.throttled[id] = true
	}
	return p
}

// Override fija una pausa concreta para una fuente.
func (p *Policy) Override(id domain.SourceID, d time.Duration) *Policy {
	if d < 0 {
		d = 0
	}
	p.overrides[id] = d
	return p
}

// IsThrottled indica si la fuente está marcada como agresiva.
func (p *Policy) IsThrottled(id domain.SourceID) bool {
	return p.throttled[id]
}

// DelayFor retorna la pausa previa a invocar id.
func (p *Policy) DelayFor(id domain.SourceID) time.Duration {
	if d, ok := p.overrides[id]; ok {
		return d
	}
	if p.throttled[id] {
		return p.Throttled
	}
	return p.Default
}

// Sleeper bloquea durante d. Inyectable para tests.
type Sleeper interface {
	Sleep(ctx context.Context, d time.Duration) error
}

// SleeperFunc adapta una función a Sleeper.
type SleeperFunc func(ctx context.Context, d time.Duration) error

// Sleep implementa Sleeper.
func (f SleeperFunc) Sleep(ctx context.Context, d time.Duration) error {
	return f(ctx, d)
}

// TimerSleeper espera con un timer real; retorna antes si ctx se cancela.
type TimerSleeper struct{}

// Sleep implementa Sleeper.
func (TimerSleeper) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
