// internal/core/usecases/mocks_test.go
package usecases

import (
	"context"
	"sync"
	"time"

	"onca/internal/core/domain"
	"onca/internal/core/ports"
)

// mockSource es una fuente controlable para tests.
type mockSource struct {
	id       domain.SourceID
	outcome  domain.Outcome
	panicMsg string
	calls    int
	onCall   func(ctx context.Context)
	targets  []domain.Target
}

func newOKSource(id domain.SourceID, values ...string) *mockSource {
	return &mockSource{id: id, outcome: domain.OK(id, domain.NewResultSet(values...))}
}

func (m *mockSource) ID() domain.SourceID { return m.id }

func (m *mockSource) Discover(ctx context.Context, target domain.Target) domain.Outcome {
	m.calls++
	m.targets = append(m.targets, target)
	if m.onCall != nil {
		m.onCall(ctx)
	}
	if m.panicMsg != "" {
		panic(m.panicMsg)
	}
	return m.outcome
}

// mockNotifier registra los eventos recibidos.
type mockNotifier struct {
	mu     sync.Mutex
	events []ports.Event
	err    error
}

func (m *mockNotifier) Notify(ctx context.Context, event ports.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
	return m.err
}

func (m *mockNotifier) Close() error { return nil }

func (m *mockNotifier) getEventsByType(eventType ports.EventType) []ports.Event {
	m.mu.Lock()
	defer m.mu.Unlock()

	var filtered []ports.Event
	for _, e := range m.events {
		if e.Type == eventType {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

func (m *mockNotifier) types() []ports.EventType {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]ports.EventType, len(m.events))
	for i, e := range m.events {
		out[i] = e.Type
	}
	return out
}

// recordingSleeper registra las pausas sin dormir.
type recordingSleeper struct {
	delays []time.Duration
	log    *[]string
}

func (r *recordingSleeper) Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.delays = append(r.delays, d)
	if r.log != nil {
		*r.log = append(*r.log, "sleep:"+d.String())
	}
	return nil
}
