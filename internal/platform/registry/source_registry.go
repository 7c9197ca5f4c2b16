// internal/platform/registry/source_registry.go
package registry

import (
	"fmt"
	"sync"

	"onca/internal/core/domain"
	"onca/internal/core/ports"
	"onca/internal/platform/logx"
)

// SourceRegistry gestiona el registro y construcción de sources.
// Implementa el patrón Registry + Factory para desacoplar la creación
// de sources del código de aplicación.
type SourceRegistry struct {
	mu        sync.RWMutex
	factories map[domain.SourceID]SourceFactory
	metadata  map[domain.SourceID]ports.SourceMetadata
	logger    logx.Logger
}

// SourceFactory es una función que crea una instancia de Source.
type SourceFactory func(cfg ports.SourceConfig, logger logx.Logger) (ports.Source, error)

// globalRegistry es la instancia global del registry.
var globalRegistry *SourceRegistry
var once sync.Once

// Global retorna la instancia global del registry.
func Global() *SourceRegistry {
	once.Do(func() {
		globalRegistry = NewSourceRegistry(logx.New())
	})
	return globalRegistry
}

// NewSourceRegistry crea un nuevo registry de sources.
func NewSourceRegistry(logger logx.Logger) *SourceRegistry {
	return &SourceRegistry{
		factories: make(map[domain.SourceID]SourceFactory),
		metadata:  make(map[domain.SourceID]ports.SourceMetadata),
		logger:    logger.With("component", "source-registry"),
	}
}

// Register registra una source factory con su metadata.
// Típicamente llamado desde init() de cada source package.
func (r *SourceRegistry) Register(id domain.SourceID, factory SourceFactory, meta ports.SourceMetadata) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !id.IsValid() {
		return fmt.Errorf("%w: %q", domain.ErrUnknownSource, id)
	}

	if factory == nil {
		return fmt.Errorf("factory cannot be nil for source %s", id)
	}

	if _, exists := r.factories[id]; exists {
		return fmt.Errorf("source %s is already registered", id)
	}

	meta.ID = id
	r.factories[id] = factory
	r.metadata[id] = meta
	r.logger.Debug("source registered", "id", id, "throttled", meta.Throttled)

	return nil
}

// Build construye las sources pedidas respetando el orden de ids.
// Duplicados se colapsan (gana la primera aparición); ids no registrados
// se registran en el log y se omiten. Falla solo si no se pudo construir ninguna.
func (r *SourceRegistry) Build(ids []domain.SourceID, configs map[domain.SourceID]ports.SourceConfig, logger logx.Logger) ([]ports.Source, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if logger == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}

	sources := make([]ports.Source, 0, len(ids))
	seen := make(map[domain.SourceID]bool, len(ids))

	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true

		factory, exists := r.factories[id]
		if !exists {
			r.logger.Warn("source not registered, skipping", "source", id)
			continue
		}

		cfg, ok := configs[id]
		if !ok {
			cfg = ports.DefaultSourceConfig()
		}
		if cfg.Timeout == 0 {
			cfg.Timeout = r.metadata[id].DefaultTimeout
		}

		source, err := factory(cfg, logger)
		if err != nil {
			r.logger.Warn("source build error", "source", id, "error", err.Error())
			continue
		}

		sources = append(sources, source)
		r.logger.Debug("source built", "id", id, "timeout", cfg.Timeout)
	}

	if len(sources) == 0 && len(ids) > 0 {
		return nil, fmt.Errorf("%w: none of %v could be built", domain.ErrSourceNotRegistered, ids)
	}

	logger.Debug("sources built", "count", len(sources), "requested", len(ids))
	return sources, nil
}

// List retorna los ids registrados en el orden de ejecución por defecto.
func (r *SourceRegistry) List() []domain.SourceID {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]domain.SourceID, 0, len(r.factories))
	for _, id := range domain.AllSourceIDs() {
		if _, ok := r.factories[id]; ok {
			ids = append(ids, id)
		}
	}
	return ids
}

// GetMetadata retorna el metadata de una source.
func (r *SourceRegistry) GetMetadata(id domain.SourceID) (ports.SourceMetadata, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	meta, exists := r.metadata[id]
	return meta, exists
}

// ThrottledSources retorna los ids marcados como agresivos en su metadata.
func (r *SourceRegistry) ThrottledSources() []domain.SourceID {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []domain.SourceID
	for _, id := range domain.AllSourceIDs() {
		if meta, ok := r.metadata[id]; ok && meta.Throttled {
			out = append(out, id)
		}
	}
	return out
}
