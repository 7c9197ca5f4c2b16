// internal/sources/archive/parser.go
package archive

import (
	"bytes"
	"encoding/json"

	"onca/internal/core/domain"
	"onca/internal/platform/errors"
)

// originalField es la columna "original" de una fila CDX.
const originalField = 2

// parseCDX decodifica la tabla JSON del CDX fila a fila. La primera fila es la cabecera.
// Las filas malformadas se saltan una a una y se cuentan en skipped.
// Si el documento no es un array JSON devuelve results nil y error. Si la tabla
// se corta a mitad, devuelve las filas completas leídas hasta ese punto junto al error.
func parseCDX(body []byte) (results *domain.ResultSet, skipped int, err error) {
	results = domain.NewResultSet()

	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return results, 0, nil
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	tok, err := dec.Token()
	if err != nil {
		return nil, 0, errors.Wrapf(errors.ErrInvalidResponse, "decode cdx table: %v", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '[' {
		return nil, 0, errors.Wrap(errors.ErrInvalidResponse, "decode cdx table: not a JSON array")
	}

	rows := 0
	for dec.More() {
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return results, skipped, errors.Wrapf(errors.ErrInvalidResponse, "cdx table cut after %d rows: %v", rows, err)
		}
		rows++
		if rows == 1 {
			continue
		}

		candidate, ok := originalURL(raw)
		if !ok {
			skipped++
			continue
		}

		asset, err := domain.NewURLAsset(candidate)
		if err != nil {
			skipped++
			continue
		}
		results.AddAsset(asset)
	}

	if _, err := dec.Token(); err != nil {
		return results, skipped, errors.Wrapf(errors.ErrInvalidResponse, "cdx table cut after %d rows: %v", rows, err)
	}

	return results, skipped, nil
}

func originalURL(raw json.RawMessage) (string, bool) {
	var fields []json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || len(fields) <= originalField {
		return "", false
	}

	var value string
	if err := json.Unmarshal(fields[originalField], &value); err != nil {
		return "", false
	}
	return value, true
}
