// internal/testutil/mocks.go
package testutil

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// Nota: Los mocks específicos de domain/ports están en sus respectivos paquetes
// Este archivo contiene solo utilidades genéricas sin dependencias circulares

// StubResponse describe una respuesta enlatada del servidor de pruebas.
type StubResponse struct {
	Status      int
	Body        string
	ContentType string
}

// StubServer es un httptest.Server que responde con una secuencia de respuestas
// y registra cada request recibida.
type StubServer struct {
	*httptest.Server

	mu        sync.Mutex
	responses []StubResponse
	requests  []*http.Request
}

// NewStubServer arranca un servidor que devuelve responses en orden; la última se repite.
// Se cierra automáticamente al terminar el test.
func NewStubServer(t *testing.T, responses ...StubResponse) *StubServer {
	t.Helper()
	if len(responses) == 0 {
		responses = []StubResponse{{Status: http.StatusOK}}
	}
	s := &StubServer{responses: responses}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	t.Cleanup(s.Close)
	return s
}

func (s *StubServer) handle(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	idx := len(s.requests)
	s.requests = append(s.requests, r.Clone(r.Context()))
	if idx >= len(s.responses) {
		idx = len(s.responses) - 1
	}
	resp := s.responses[idx]
	s.mu.Unlock()

	if resp.ContentType != "" {
		w.Header().Set("Content-Type", resp.ContentType)
	}
	status := resp.Status
	if status == 0 {
		status = http.StatusOK
	}
	w.WriteHeader(status)
	_, _ = w.Write([]byte(resp.Body))
}

// Calls devuelve el número de requests recibidas.
func (s *StubServer) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.requests)
}

// Request devuelve la i-ésima request recibida (nil si no existe).
func (s *StubServer) Request(i int) *http.Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i < 0 || i >= len(s.requests) {
		return nil
	}
	return s.requests[i]
}
