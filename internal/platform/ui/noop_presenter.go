// internal/platform/ui/noop_presenter.go
package ui

import (
	"context"

	"onca/internal/core/ports"
)

// NoopPresenter es una implementación vacía que no produce ninguna salida.
// Útil para --no-progress o ejecuciones headless.
type NoopPresenter struct{}

// NewNoopPresenter crea una instancia del presenter sin salida
func NewNoopPresenter() *NoopPresenter {
	return &NoopPresenter{}
}

// Notify no hace nada
func (n *NoopPresenter) Notify(ctx context.Context, event ports.Event) error { return nil }

// Close no hace nada
func (n *NoopPresenter) Close() error { return nil }
