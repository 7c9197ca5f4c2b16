// internal/core/domain/outcome.go
package domain

// OutcomeKind clasifica el resultado de una fuente.
type OutcomeKind int

const (
	// OutcomeOK la fuente respondió; Results puede estar vacío
	OutcomeOK OutcomeKind = iota

	// OutcomeRateLimited la fuente limitó al cliente (HTTP 429)
	OutcomeRateLimited

	// OutcomeFailed error de red, de parseo o pánico
	OutcomeFailed
)

// String retorna la representación string del tipo.
func (k OutcomeKind) String() string {
	switch k {
	case OutcomeOK:
		return "ok"
	case OutcomeRateLimited:
		return "rate-limited"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Outcome es lo que devuelve una fuente por cada invocación.
// Results nunca es nil; Err es nil solo para OutcomeOK.
type Outcome struct {
	Source  SourceID
	Kind    OutcomeKind
	Results *ResultSet
	Err     error
}

// OK construye un resultado exitoso.
func OK(src SourceID, results *ResultSet) Outcome {
	if results == nil {
		results = NewResultSet()
	}
	return Outcome{Source: src, Kind: OutcomeOK, Results: results}
}

// RateLimited construye un resultado vacío por limitación de la fuente.
func RateLimited(src SourceID, err error) Outcome {
	if err == nil {
		err = ErrSourceRateLimited
	}
	return Outcome{Source: src, Kind: OutcomeRateLimited, Results: NewResultSet(), Err: err}
}

// Failed construye un resultado vacío por error.
func Failed(src SourceID, err error) Outcome {
	return Outcome{Source: src, Kind: OutcomeFailed, Results: NewResultSet(), Err: err}
}

// Succeeded indica si el resultado es OutcomeOK.
func (o Outcome) Succeeded() bool {
	return o.Kind == OutcomeOK
}
