package repository

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

// ErrDocumentNotFound lo devuelven los adaptadores cuando el documento no existe.
var ErrDocumentNotFound = errors.New("documento no encontrado")

// Document campos de un documento sin esquema. Los valores son tipos escalares de Go
// (string, bool, números, time.Time), []any o map[string]any.
type Document map[string]any

// Snapshot documento leído junto con su ID asignado por el store.
type Snapshot struct {
	ID   string
	Data Document
}

// Filter condición de igualdad sobre un campo de primer nivel.
type Filter struct {
	Field string
	Value any
}

// Order criterio de ordenamiento.
type Order struct {
	Field string
	Desc  bool
}

// Query consulta sobre una colección: igualdad (AND) + orden + límite opcional.
type Query struct {
	Collection string
	Filters    []Filter
	OrderBy    []Order
	Limit      int
}

// Where agrega una condición de igualdad.
func (q Query) Where(field string, value any) Query {
	q.Filters = append(append([]Filter(nil), q.Filters...), Filter{Field: field, Value: value})
	return q
}

// Sort agrega un criterio de orden.
func (q Query) Sort(field string, desc bool) Query {
	q.OrderBy = append(append([]Order(nil), q.OrderBy...), Order{Field: field, Desc: desc})
	return q
}

// DocumentStore puerto del store de documentos administrado (DIP). Implementaciones:
// Firestore, PostgreSQL (JSONB), MongoDB y memoria.
type DocumentStore interface {
	// Get devuelve ErrDocumentNotFound si el documento no existe.
	Get(ctx context.Context, collection, id string) (*Snapshot, error)
	// Add inserta el documento y devuelve el ID generado por el store.
	Add(ctx context.Context, collection string, data Document) (string, error)
	// Update mezcla fields sobre el documento existente; ErrDocumentNotFound si no existe.
	Update(ctx context.Context, collection, id string, fields Document) error
	// Delete borra el documento; ErrDocumentNotFound si no existe.
	Delete(ctx context.Context, collection, id string) error
	Find(ctx context.Context, q Query) ([]Snapshot, error)
	Close() error
}

// NumericSummer capacidad opcional de un DocumentStore: suma en el servidor un campo
// numérico de los documentos que cumplen los filtros de q (OrderBy y Limit se ignoran).
// Los documentos sin el campo o con un valor no numérico no cuentan.
type NumericSummer interface {
	SumNumeric(ctx context.Context, q Query, field string) (sum decimal.Decimal, count int, err error)
}
