// internal/core/ports/source.go
package ports

import (
	"context"
	"time"

	"onca/internal/core/domain"
)

// Source es el port primario de todas las fuentes de descubrimiento.
// Discover nunca devuelve error ni entra en pánico por entradas inválidas:
// cualquier fallo se expresa en el Outcome.
type Source interface {
	// ID retorna el identificador único de la fuente
	ID() domain.SourceID

	// Discover consulta la fuente para el target y retorna sus hallazgos
	Discover(ctx context.Context, target domain.Target) domain.Outcome
}

// SourceConfig contiene la configuración específica de una fuente.
// Los valores cero significan "usar el valor por defecto de la fuente".
type SourceConfig struct {
	// Timeout tiempo máximo de cada request HTTP
	Timeout time.Duration

	// Retries reintentos ante errores 5xx transitorios
	Retries int

	// RetryBackoff backoff inicial entre reintentos (0 = valor del cliente)
	RetryBackoff time.Duration

	// RetryNetworkErrors extiende los reintentos a errores de red
	RetryNetworkErrors bool

	// RateLimit límite de peticiones por segundo (0 = sin límite)
	RateLimit float64

	// BaseURL reemplaza el endpoint de la fuente (mirrors, tests)
	BaseURL string

	// MaxBodyBytes tope del cuerpo de respuesta (0 = valor de la fuente, <0 = sin tope)
	MaxBodyBytes int64

	// UserAgents pool de identidades; vacío = pool por defecto
	UserAgents []string

	// Custom configuración específica de la fuente
	Custom map[string]interface{}
}

// DefaultSourceConfig retorna una configuración por defecto.
func DefaultSourceConfig() SourceConfig {
	return SourceConfig{
		Retries: 3,
		Custom:  make(map[string]interface{}),
	}
}

// SourceMetadata contiene metadatos sobre una fuente.
type SourceMetadata struct {
	ID          domain.SourceID
	Description string
	Endpoint    string

	// Throttled marca fuentes que limitan agresivamente; reciben la pausa larga
	Throttled bool

	// DefaultTimeout timeout HTTP cuando la configuración no fija uno
	DefaultTimeout time.Duration

	// SupportsKeyword indica si la fuente usa Target.Keyword
	SupportsKeyword bool
}
