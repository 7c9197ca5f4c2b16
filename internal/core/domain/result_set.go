// internal/core/domain/result_set.go
package domain

import (
	"sort"
	"strings"
)

// ResultSet es un conjunto de assets renderizados, deduplicado por igualdad exacta.
// No es seguro para uso concurrente; solo el orquestador lo modifica.
type ResultSet struct {
	items map[string]struct{}
}

// NewResultSet crea un conjunto, opcionalmente con valores iniciales.
func NewResultSet(values ...string) *ResultSet {
	rs := &ResultSet{items: make(map[string]struct{}, len(values))}
	for _, v := range values {
		rs.Add(v)
	}
	return rs
}

// Add inserta un string ya renderizado. Los vacíos se ignoran.
// Devuelve true si el valor no estaba.
func (rs *ResultSet) Add(value string) bool {
	if strings.TrimSpace(value) == "" {
		return false
	}
	if rs.items == nil {
		rs.items = make(map[string]struct{})
	}
	if _, ok := rs.items[value]; ok {
		return false
	}
	rs.items[value] = struct{}{}
	return true
}

// AddAsset inserta un asset validado.
func (rs *ResultSet) AddAsset(a Asset) bool {
	return rs.Add(a.String())
}

// Merge une other en rs (unión de conjuntos).
func (rs *ResultSet) Merge(other *ResultSet) {
	if other == nil {
		return
	}
	for v := range other.items {
		rs.Add(v)
	}
}

// Len retorna el número de elementos.
func (rs *ResultSet) Len() int {
	if rs == nil {
		return 0
	}
	return len(rs.items)
}

// Contains indica si value está en el conjunto.
func (rs *ResultSet) Contains(value string) bool {
	if rs == nil {
		return false
	}
	_, ok := rs.items[value]
	return ok
}

// Sorted devuelve los elementos en orden lexicográfico.
func (rs *ResultSet) Sorted() []string {
	if rs == nil {
		return []string{}
	}
	out := make([]string, 0, len(rs.items))
	for v := range rs.items {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// Equal compara dos conjuntos.
func (rs *ResultSet) Equal(other *ResultSet) bool {
	if rs.Len() != other.Len() {
		return false
	}
	if rs.Len() == 0 {
		return true
	}
	for v := range rs.items {
		if !other.Contains(v) {
			return false
		}
	}
	return true
}
