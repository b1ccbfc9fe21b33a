// Package storetest contiene la suite de contrato que debe cumplir todo adaptador de
// repository.DocumentStore. Cada adaptador la ejecuta desde su propio _test.go.
package storetest

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pakurmart-api/internal/domain/repository"
)

// Factory construye un store limpio para un subtest.
type Factory func(t *testing.T) repository.DocumentStore

// collectionName genera una colección única para no chocar con datos de otras corridas.
func collectionName(base string) string {
	return "storetest_" + base + "_" + strings.ReplaceAll(uuid.New().String()[:8], "-", "")
}

// Run ejecuta la suite completa.
func Run(t *testing.T, newStore Factory) {
	t.Run("AddGet", func(t *testing.T) { testAddGet(t, newStore(t)) })
	t.Run("GetMissing", func(t *testing.T) { testGetMissing(t, newStore(t)) })
	t.Run("UpdateMerge", func(t *testing.T) { testUpdateMerge(t, newStore(t)) })
	t.Run("UpdateMissing", func(t *testing.T) { testUpdateMissing(t, newStore(t)) })
	t.Run("Delete", func(t *testing.T) { testDelete(t, newStore(t)) })
	t.Run("FindEquality", func(t *testing.T) { testFindEquality(t, newStore(t)) })
	t.Run("FindOrderLimit", func(t *testing.T) { testFindOrderLimit(t, newStore(t)) })
	t.Run("NestedValues", func(t *testing.T) { testNestedValues(t, newStore(t)) })
}

func testAddGet(t *testing.T, s repository.DocumentStore) {
	ctx := context.Background()
	col := collectionName("addget")
	id, err := s.Add(ctx, col, repository.Document{"name": "Full Cream Milk", "isActive": true, "sortOrder": 3})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	snap, err := s.Get(ctx, col, id)
	require.NoError(t, err)
	assert.Equal(t, id, snap.ID)
	assert.Equal(t, "Full Cream Milk", snap.Data["name"])
	assert.Equal(t, true, snap.Data["isActive"])
	assert.EqualValues(t, 3, asInt(snap.Data["sortOrder"]))
}

func testGetMissing(t *testing.T, s repository.DocumentStore) {
	_, err := s.Get(context.Background(), collectionName("missing"), uuid.New().String())
	assert.True(t, errors.Is(err, repository.ErrDocumentNotFound), "got %v", err)
}

func testUpdateMerge(t *testing.T, s repository.DocumentStore) {
	ctx := context.Background()
	col := collectionName("update")
	id, err := s.Add(ctx, col, repository.Document{"userId": "u1", "quantity": 1})
	require.NoError(t, err)

	require.NoError(t, s.Update(ctx, col, id, repository.Document{"quantity": 4}))

	snap, err := s.Get(ctx, col, id)
	require.NoError(t, err)
	assert.Equal(t, "u1", snap.Data["userId"], "los campos no actualizados se conservan")
	assert.EqualValues(t, 4, asInt(snap.Data["quantity"]))
}

func testUpdateMissing(t *testing.T, s repository.DocumentStore) {
	err := s.Update(context.Background(), collectionName("update_missing"), uuid.New().String(), repository.Document{"status": "x"})
	assert.True(t, errors.Is(err, repository.ErrDocumentNotFound), "got %v", err)
}

func testDelete(t *testing.T, s repository.DocumentStore) {
	ctx := context.Background()
	col := collectionName("delete")
	id, err := s.Add(ctx, col, repository.Document{"userId": "u1"})
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, col, id))
	_, err = s.Get(ctx, col, id)
	assert.True(t, errors.Is(err, repository.ErrDocumentNotFound))

	err = s.Delete(ctx, col, id)
	assert.True(t, errors.Is(err, repository.ErrDocumentNotFound), "borrar dos veces reporta ausencia")
}

func testFindEquality(t *testing.T, s repository.DocumentStore) {
	ctx := context.Background()
	col := collectionName("find")
	mustAdd(t, s, col, repository.Document{"userId": "u1", "productId": "p1", "isActive": true})
	mustAdd(t, s, col, repository.Document{"userId": "u1", "productId": "p2", "isActive": false})
	mustAdd(t, s, col, repository.Document{"userId": "u2", "productId": "p1", "isActive": true})

	q := repository.Query{Collection: col}
	got, err := s.Find(ctx, q.Where("userId", "u1"))
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = s.Find(ctx, q.Where("userId", "u1").Where("productId", "p1"))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "p1", got[0].Data["productId"])

	got, err = s.Find(ctx, q.Where("isActive", true))
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = s.Find(ctx, q.Where("userId", "nobody"))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func testFindOrderLimit(t *testing.T, s repository.DocumentStore) {
	ctx := context.Background()
	col := collectionName("order")
	mustAdd(t, s, col, repository.Document{"name": "A", "sortOrder": 2, "createdAt": "2024-01-02T10:00:00.000Z"})
	mustAdd(t, s, col, repository.Document{"name": "B", "sortOrder": 1, "createdAt": "2024-01-03T10:00:00.000Z"})
	mustAdd(t, s, col, repository.Document{"name": "C", "sortOrder": 10, "createdAt": "2024-01-01T10:00:00.000Z"})

	q := repository.Query{Collection: col}
	got, err := s.Find(ctx, q.Sort("sortOrder", false))
	require.NoError(t, err)
	assert.Equal(t, []string{"B", "A", "C"}, names(got), "orden numérico, no lexicográfico")

	got, err = s.Find(ctx, q.Sort("createdAt", true))
	require.NoError(t, err)
	assert.Equal(t, []string{"B", "A", "C"}, names(got))

	q = q.Sort("sortOrder", true)
	q.Limit = 2
	got, err = s.Find(ctx, q)
	require.NoError(t, err)
	assert.Equal(t, []string{"C", "A"}, names(got))
}

func testNestedValues(t *testing.T, s repository.DocumentStore) {
	ctx := context.Background()
	col := collectionName("nested")
	id := mustAdd(t, s, col, repository.Document{
		"timeSlots": []any{"morning", "evening"},
		"items": []any{
			map[string]any{"productId": "p1", "quantity": 2, "price": 1.5},
		},
	})
	snap, err := s.Get(ctx, col, id)
	require.NoError(t, err)

	slots, ok := snap.Data["timeSlots"].([]any)
	require.True(t, ok, "los arreglos vuelven como []any, got %T", snap.Data["timeSlots"])
	assert.Equal(t, []any{"morning", "evening"}, slots)

	items, ok := snap.Data["items"].([]any)
	require.True(t, ok)
	require.Len(t, items, 1)
	item, ok := items[0].(map[string]any)
	require.True(t, ok, "los objetos anidados vuelven como map[string]any, got %T", items[0])
	assert.Equal(t, "p1", item["productId"])
	assert.EqualValues(t, 2, asInt(item["quantity"]))
}

func mustAdd(t *testing.T, s repository.DocumentStore, col string, doc repository.Document) string {
	t.Helper()
	id, err := s.Add(context.Background(), col, doc)
	require.NoError(t, err)
	return id
}

func names(snaps []repository.Snapshot) []string {
	out := make([]string, 0, len(snaps))
	for _, s := range snaps {
		name, _ := s.Data["name"].(string)
		out = append(out, name)
	}
	return out
}

func asInt(v any) int64 {
	switch n := v.(type) {
	case int:
		return int64(n)
	case int32:
		return int64(n)
	case int64:
		return n
	case float64:
		return int64(n)
	}
	return -1
}
