package memory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pakurmart-api/internal/domain/repository"
	"github.com/jhoicas/pakurmart-api/internal/infrastructure/memory"
	"github.com/jhoicas/pakurmart-api/internal/infrastructure/storetest"
)

func TestStore_Contrato(t *testing.T) {
	storetest.Run(t, func(t *testing.T) repository.DocumentStore {
		return memory.NewStore()
	})
}

// Los mapas devueltos son copias: modificarlos no altera el store.
func TestStore_CopiasDefensivas(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	items := []any{map[string]any{"productId": "p1"}}
	id, err := s.Add(ctx, "orders", repository.Document{"items": items})
	require.NoError(t, err)

	items[0].(map[string]any)["productId"] = "mutado"

	snap, err := s.Get(ctx, "orders", id)
	require.NoError(t, err)
	snap.Data["extra"] = true

	again, err := s.Get(ctx, "orders", id)
	require.NoError(t, err)
	assert.NotContains(t, again.Data, "extra")
	assert.Equal(t, "p1", again.Data["items"].([]any)[0].(map[string]any)["productId"])
}

func TestStore_FailOn(t *testing.T) {
	s := memory.NewStore()
	boom := errors.New("store caído")
	s.FailOn["notifications"] = boom

	_, err := s.Add(context.Background(), "notifications", repository.Document{"type": "x"})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, s.Len("notifications"))
}
