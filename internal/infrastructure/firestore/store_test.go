package firestore_test

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pakurmart-api/internal/domain/repository"
	"github.com/jhoicas/pakurmart-api/internal/infrastructure/firestore"
	"github.com/jhoicas/pakurmart-api/internal/infrastructure/storetest"
	"github.com/jhoicas/pakurmart-api/pkg/config"
)

// Requiere el emulador: firebase emulators:start --only firestore
func TestStore_Contrato(t *testing.T) {
	if os.Getenv("FIRESTORE_EMULATOR_HOST") == "" {
		t.Skip("FIRESTORE_EMULATOR_HOST no definido")
	}
	ctx := context.Background()
	client, err := firestore.NewClient(ctx, config.FirestoreConfig{ProjectID: "pakurmart-test"})
	require.NoError(t, err)
	store := firestore.NewStore(client)
	t.Cleanup(func() { _ = store.Close() })

	storetest.Run(t, func(t *testing.T) repository.DocumentStore { return store })
}
