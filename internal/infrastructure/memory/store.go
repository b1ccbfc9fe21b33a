// Package memory implementa repository.DocumentStore en memoria. Se usa en tests y con
// STORE_DRIVER=memory para desarrollo local sin credenciales.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/pakurmart-api/internal/domain/repository"
)

var _ repository.DocumentStore = (*Store)(nil)

// Store colecciones en memoria protegidas por un RWMutex. Los documentos se copian al
// entrar y al salir para que los llamadores no compartan mapas con el store.
type Store struct {
	mu          sync.RWMutex
	collections map[string]map[string]repository.Document
	// insertion guarda el orden de inserción para resultados estables sin OrderBy.
	insertion map[string][]string
	// FailOn permite simular fallos del store en tests: colección -> error devuelto por Add.
	FailOn map[string]error
}

// NewStore construye un store vacío.
func NewStore() *Store {
	return &Store{
		collections: make(map[string]map[string]repository.Document),
		insertion:   make(map[string][]string),
		FailOn:      make(map[string]error),
	}
}

// Get obtiene un documento por ID.
func (s *Store) Get(_ context.Context, collection, id string) (*repository.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.collections[collection][id]
	if !ok {
		return nil, repository.ErrDocumentNotFound
	}
	return &repository.Snapshot{ID: id, Data: copyDocument(doc)}, nil
}

// Add inserta con un ID uuid.
func (s *Store) Add(_ context.Context, collection string, data repository.Document) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.FailOn[collection]; err != nil {
		return "", err
	}
	col, ok := s.collections[collection]
	if !ok {
		col = make(map[string]repository.Document)
		s.collections[collection] = col
	}
	id := uuid.New().String()
	col[id] = copyDocument(data)
	s.insertion[collection] = append(s.insertion[collection], id)
	return id, nil
}

// Update mezcla los campos sobre el documento existente.
func (s *Store) Update(_ context.Context, collection, id string, fields repository.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.collections[collection][id]
	if !ok {
		return repository.ErrDocumentNotFound
	}
	for k, v := range fields {
		doc[k] = copyValue(v)
	}
	return nil
}

// Delete borra un documento.
func (s *Store) Delete(_ context.Context, collection, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	col := s.collections[collection]
	if _, ok := col[id]; !ok {
		return repository.ErrDocumentNotFound
	}
	delete(col, id)
	order := s.insertion[collection]
	for i, v := range order {
		if v == id {
			s.insertion[collection] = append(order[:i:i], order[i+1:]...)
			break
		}
	}
	return nil
}

// Find filtra por igualdad, ordena y aplica el límite.
func (s *Store) Find(_ context.Context, q repository.Query) ([]repository.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	col := s.collections[q.Collection]
	out := make([]repository.Snapshot, 0)
	for _, id := range s.insertion[q.Collection] {
		doc := col[id]
		if !matches(doc, q.Filters) {
			continue
		}
		out = append(out, repository.Snapshot{ID: id, Data: copyDocument(doc)})
	}
	if len(q.OrderBy) > 0 {
		// Como Firestore, un documento sin el campo de orden queda fuera del resultado.
		filtered := out[:0]
		for _, snap := range out {
			if hasFields(snap.Data, q.OrderBy) {
				filtered = append(filtered, snap)
			}
		}
		out = filtered
		sort.SliceStable(out, func(i, j int) bool {
			for _, o := range q.OrderBy {
				c := compareValues(out[i].Data[o.Field], out[j].Data[o.Field])
				if c == 0 {
					continue
				}
				if o.Desc {
					return c > 0
				}
				return c < 0
			}
			return false
		})
	}
	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

// Close no-op.
func (s *Store) Close() error { return nil }

// Len cantidad de documentos de una colección (útil en tests).
func (s *Store) Len(collection string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.collections[collection])
}

func matches(doc repository.Document, filters []repository.Filter) bool {
	for _, f := range filters {
		v, ok := doc[f.Field]
		if !ok || !equalValues(v, f.Value) {
			return false
		}
	}
	return true
}

func hasFields(doc repository.Document, orders []repository.Order) bool {
	for _, o := range orders {
		if _, ok := doc[o.Field]; !ok {
			return false
		}
	}
	return true
}

func equalValues(a, b any) bool {
	if fa, ok := toFloat(a); ok {
		fb, ok := toFloat(b)
		return ok && fa == fb
	}
	switch av := a.(type) {
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	case time.Time:
		bv, ok := b.(time.Time)
		return ok && av.Equal(bv)
	}
	return fmt.Sprint(a) == fmt.Sprint(b)
}

// compareValues ordena números entre sí, strings entre sí y fechas entre sí; tipos
// mezclados se ordenan por su representación textual.
func compareValues(a, b any) int {
	if fa, ok := toFloat(a); ok {
		if fb, ok := toFloat(b); ok {
			switch {
			case fa < fb:
				return -1
			case fa > fb:
				return 1
			}
			return 0
		}
	}
	if ta, ok := a.(time.Time); ok {
		if tb, ok := b.(time.Time); ok {
			return ta.Compare(tb)
		}
	}
	sa, sb := fmt.Sprint(a), fmt.Sprint(b)
	switch {
	case sa < sb:
		return -1
	case sa > sb:
		return 1
	}
	return 0
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

func copyDocument(doc repository.Document) repository.Document {
	out := make(repository.Document, len(doc))
	for k, v := range doc {
		out[k] = copyValue(v)
	}
	return out
}

func copyValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		m := make(map[string]any, len(t))
		for k, vv := range t {
			m[k] = copyValue(vv)
		}
		return m
	case repository.Document:
		return map[string]any(copyDocument(t))
	case []any:
		s := make([]any, len(t))
		for i, vv := range t {
			s[i] = copyValue(vv)
		}
		return s
	case []string:
		s := make([]any, len(t))
		for i, vv := range t {
			s[i] = vv
		}
		return s
	case []map[string]any:
		s := make([]any, len(t))
		for i, vv := range t {
			s[i] = copyValue(vv)
		}
		return s
	}
	return v
}
