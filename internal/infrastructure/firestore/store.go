// Package firestore implementa repository.DocumentStore sobre Cloud Firestore. Es el store
// por defecto (STORE_DRIVER=firestore).
package firestore

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/jhoicas/pakurmart-api/internal/domain/repository"
	"github.com/jhoicas/pakurmart-api/pkg/config"
)

var _ repository.DocumentStore = (*Store)(nil)

// Store adaptador Firestore. Firestore devuelve enteros como int64, arreglos como []any y
// mapas como map[string]any; la fachada normaliza los números al decodificar.
type Store struct {
	client *firestore.Client
}

// NewClient crea el cliente de Firestore a través de la app de Firebase. CredentialsFile
// vacío = Application Default Credentials; con FIRESTORE_EMULATOR_HOST el SDK usa el emulador.
func NewClient(ctx context.Context, cfg config.FirestoreConfig) (*firestore.Client, error) {
	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}
	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.ProjectID}, opts...)
	if err != nil {
		return nil, fmt.Errorf("inicializar firebase: %w", err)
	}
	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("crear cliente firestore: %w", err)
	}
	return client, nil
}

// NewStore construye el store sobre un cliente existente. Close cierra el cliente.
func NewStore(client *firestore.Client) *Store {
	return &Store{client: client}
}

// Get obtiene un documento por ID.
func (s *Store) Get(ctx context.Context, collection, id string) (*repository.Snapshot, error) {
	if id == "" {
		return nil, repository.ErrDocumentNotFound
	}
	snap, err := s.client.Collection(collection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, repository.ErrDocumentNotFound
		}
		return nil, fmt.Errorf("firestore get %s/%s: %w", collection, id, err)
	}
	return &repository.Snapshot{ID: snap.Ref.ID, Data: snap.Data()}, nil
}

// Add inserta con un ID generado por Firestore.
func (s *Store) Add(ctx context.Context, collection string, data repository.Document) (string, error) {
	ref, _, err := s.client.Collection(collection).Add(ctx, map[string]any(data))
	if err != nil {
		return "", fmt.Errorf("firestore add %s: %w", collection, err)
	}
	return ref.ID, nil
}

// Update mezcla campos de primer nivel. Firestore rechaza Update sobre un documento inexistente.
func (s *Store) Update(ctx context.Context, collection, id string, fields repository.Document) error {
	if id == "" {
		return repository.ErrDocumentNotFound
	}
	if len(fields) == 0 {
		_, err := s.Get(ctx, collection, id)
		return err
	}
	updates := make([]firestore.Update, 0, len(fields))
	for k, v := range fields {
		// FieldPath evita que un nombre con puntos se interprete como ruta anidada.
		updates = append(updates, firestore.Update{FieldPath: firestore.FieldPath{k}, Value: v})
	}
	_, err := s.client.Collection(collection).Doc(id).Update(ctx, updates)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return repository.ErrDocumentNotFound
		}
		return fmt.Errorf("firestore update %s/%s: %w", collection, id, err)
	}
	return nil
}

// Delete borra con la precondición Exists para poder reportar la ausencia.
func (s *Store) Delete(ctx context.Context, collection, id string) error {
	if id == "" {
		return repository.ErrDocumentNotFound
	}
	_, err := s.client.Collection(collection).Doc(id).Delete(ctx, firestore.Exists)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return repository.ErrDocumentNotFound
		}
		return fmt.Errorf("firestore delete %s/%s: %w", collection, id, err)
	}
	return nil
}

// Find traduce la consulta a Where/OrderBy/Limit. Igualdad sobre un campo más orden sobre
// otro requiere un índice compuesto en Firestore (ver firestore.indexes.json).
func (s *Store) Find(ctx context.Context, q repository.Query) ([]repository.Snapshot, error) {
	query := s.client.Collection(q.Collection).Query
	for _, f := range q.Filters {
		query = query.WherePath(firestore.FieldPath{f.Field}, "==", f.Value)
	}
	for _, o := range q.OrderBy {
		dir := firestore.Asc
		if o.Desc {
			dir = firestore.Desc
		}
		query = query.OrderByPath(firestore.FieldPath{o.Field}, dir)
	}
	if q.Limit > 0 {
		query = query.Limit(q.Limit)
	}

	iter := query.Documents(ctx)
	defer iter.Stop()
	out := make([]repository.Snapshot, 0)
	for {
		snap, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("firestore find %s: %w", q.Collection, err)
		}
		out = append(out, repository.Snapshot{ID: snap.Ref.ID, Data: snap.Data()})
	}
	return out, nil
}

// Close cierra el cliente.
func (s *Store) Close() error {
	return s.client.Close()
}
