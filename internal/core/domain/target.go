// internal/core/domain/target.go
package domain

import (
	"fmt"
	"net"
	"strings"

	"golang.org/x/net/publicsuffix"

	"onca/internal/platform/validator"
)

// Target representa el objetivo de la búsqueda de assets.
// Se construye una vez por ejecución y no cambia después de Validate.
type Target struct {
	// Domain es el dominio objetivo, clave de todas las fuentes
	Domain string

	// Keyword refina la consulta de las fuentes que la soportan (opcional)
	Keyword string
}

// NewTarget construye y valida un target.
func NewTarget(domain, keyword string) (Target, error) {
	t := Target{Domain: domain, Keyword: keyword}
	if err := t.Validate(); err != nil {
		return Target{}, err
	}
	return t, nil
}

// Validate normaliza el dominio y verifica que sea registrable.
func (t *Target) Validate() error {
	t.Domain = validator.NormalizeDomain(t.Domain)
	t.Keyword = strings.TrimSpace(t.Keyword)

	if t.Domain == "" {
		return ErrEmptyTarget
	}
	if net.ParseIP(t.Domain) != nil || !validator.IsDomain(t.Domain) {
		return fmt.Errorf("%w: %s", ErrInvalidDomain, t.Domain)
	}

	// "co.uk", "com" o etiquetas sueltas no identifican a nadie
	if _, err := publicsuffix.EffectiveTLDPlusOne(t.Domain); err != nil {
		return fmt.Errorf("%w: %s", ErrPublicSuffix, t.Domain)
	}

	return nil
}

// HasKeyword indica si el target trae keyword.
func (t Target) HasKeyword() bool {
	return !validator.IsEmpty(t.Keyword)
}

// String retorna una representación legible del target.
func (t Target) String() string {
	if !t.HasKeyword() {
		return t.Domain
	}
	return fmt.Sprintf("%s [%s]", t.Domain, t.Keyword)
}
