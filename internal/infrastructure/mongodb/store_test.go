package mongodb

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jhoicas/pakurmart-api/internal/domain/repository"
	"github.com/jhoicas/pakurmart-api/internal/infrastructure/storetest"
	"github.com/jhoicas/pakurmart-api/pkg/config"
)

func TestToSnapshot_NormalizaTiposBSON(t *testing.T) {
	oid := primitive.NewObjectID()
	when := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	raw := bson.M{
		"_id":       oid,
		"timeSlots": bson.A{"morning", "night"},
		"items": bson.A{
			bson.D{{Key: "productId", Value: "p1"}, {Key: "quantity", Value: int32(2)}},
			bson.M{"productId": "p2", "quantity": int64(1)},
		},
		"createdAt": primitive.NewDateTimeFromTime(when),
		"ref":       oid,
	}

	snap := toSnapshot(raw)
	assert.Equal(t, oid.Hex(), snap.ID)
	assert.NotContains(t, snap.Data, "_id")
	assert.Equal(t, []any{"morning", "night"}, snap.Data["timeSlots"])
	assert.Equal(t, oid.Hex(), snap.Data["ref"])
	assert.True(t, when.Equal(snap.Data["createdAt"].(time.Time)))

	items, ok := snap.Data["items"].([]any)
	require.True(t, ok)
	require.Len(t, items, 2)
	assert.Equal(t, map[string]any{"productId": "p1", "quantity": int32(2)}, items[0])
	assert.Equal(t, map[string]any{"productId": "p2", "quantity": int64(1)}, items[1])
}

func TestBuildFind_ExigeCamposDeOrden(t *testing.T) {
	q := repository.Query{Collection: "orders", Limit: 3}.
		Where("userId", "u1").
		Sort("createdAt", true)

	filter, opts := buildFind(q)
	assert.Equal(t, bson.D{
		{Key: "userId", Value: "u1"},
		{Key: "createdAt", Value: bson.M{"$exists": true}},
	}, filter)
	assert.Equal(t, bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: 1}}, opts.Sort)
	require.NotNil(t, opts.Limit)
	assert.EqualValues(t, 3, *opts.Limit)
}

func TestBuildFind_OrdenSobreCampoFiltrado(t *testing.T) {
	q := repository.Query{Collection: "categories"}.
		Where("sortOrder", 1).
		Sort("sortOrder", false)

	filter, opts := buildFind(q)
	assert.Equal(t, bson.D{{Key: "sortOrder", Value: 1}}, filter)
	assert.Nil(t, opts.Limit)
}

// TestStore_Contrato requiere TEST_MONGO_URI (p. ej. mongodb://localhost:27017).
func TestStore_Contrato(t *testing.T) {
	uri := os.Getenv("TEST_MONGO_URI")
	if uri == "" {
		t.Skip("TEST_MONGO_URI no definido")
	}
	ctx := context.Background()
	client, err := Connect(ctx, config.MongoConfig{URI: uri})
	require.NoError(t, err)
	store := NewStore(client, "pakurmart_test")
	t.Cleanup(func() { _ = store.Close() })

	storetest.Run(t, func(t *testing.T) repository.DocumentStore { return store })
}
