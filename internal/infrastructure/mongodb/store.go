// Package mongodb implementa repository.DocumentStore sobre MongoDB (STORE_DRIVER=mongo).
// Cada colección lógica es una colección de Mongo; el ID es el hex de un ObjectID guardado
// como string en _id.
package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jhoicas/pakurmart-api/internal/domain/repository"
	"github.com/jhoicas/pakurmart-api/pkg/config"
)

var _ repository.DocumentStore = (*Store)(nil)

// Connect abre el cliente y verifica la conexión con un ping.
func Connect(ctx context.Context, cfg config.MongoConfig) (*mongo.Client, error) {
	if cfg.URI == "" {
		return nil, fmt.Errorf("MONGO_URI vacío")
	}
	clientOptions := options.Client().ApplyURI(cfg.URI).
		SetMaxPoolSize(50).
		SetMinPoolSize(2).
		SetConnectTimeout(5 * time.Second)

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	client, err := mongo.Connect(connectCtx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("conectar a MongoDB: %w", err)
	}

	pingCtx, cancelPing := context.WithTimeout(ctx, 2*time.Second)
	defer cancelPing()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping MongoDB: %w", err)
	}
	return client, nil
}

// Store adaptador MongoDB.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewStore construye el store sobre la base dbName. Close desconecta el cliente.
func NewStore(client *mongo.Client, dbName string) *Store {
	return &Store{client: client, db: client.Database(dbName)}
}

// Get obtiene un documento por ID.
func (s *Store) Get(ctx context.Context, collection, id string) (*repository.Snapshot, error) {
	var raw bson.M
	err := s.db.Collection(collection).FindOne(ctx, bson.M{"_id": id}).Decode(&raw)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrDocumentNotFound
		}
		return nil, fmt.Errorf("mongo get %s/%s: %w", collection, id, err)
	}
	return toSnapshot(raw), nil
}

// Add inserta con un ID nuevo.
func (s *Store) Add(ctx context.Context, collection string, data repository.Document) (string, error) {
	id := primitive.NewObjectID().Hex()
	doc := make(bson.M, len(data)+1)
	for k, v := range data {
		doc[k] = v
	}
	doc["_id"] = id
	if _, err := s.db.Collection(collection).InsertOne(ctx, doc); err != nil {
		return "", fmt.Errorf("mongo insert %s: %w", collection, err)
	}
	return id, nil
}

// Update mezcla campos con $set.
func (s *Store) Update(ctx context.Context, collection, id string, fields repository.Document) error {
	set := bson.M{}
	for k, v := range fields {
		if k == "_id" {
			continue
		}
		set[k] = v
	}
	if len(set) == 0 {
		_, err := s.Get(ctx, collection, id)
		return err
	}
	res, err := s.db.Collection(collection).UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("mongo update %s/%s: %w", collection, id, err)
	}
	if res.MatchedCount == 0 {
		return repository.ErrDocumentNotFound
	}
	return nil
}

// Delete borra un documento.
func (s *Store) Delete(ctx context.Context, collection, id string) error {
	res, err := s.db.Collection(collection).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("mongo delete %s/%s: %w", collection, id, err)
	}
	if res.DeletedCount == 0 {
		return repository.ErrDocumentNotFound
	}
	return nil
}

// Find ejecuta la consulta.
func (s *Store) Find(ctx context.Context, q repository.Query) ([]repository.Snapshot, error) {
	filter, opts := buildFind(q)
	cur, err := s.db.Collection(q.Collection).Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("mongo find %s: %w", q.Collection, err)
	}
	defer cur.Close(ctx)

	out := make([]repository.Snapshot, 0)
	for cur.Next(ctx) {
		var raw bson.M
		if err := cur.Decode(&raw); err != nil {
			return nil, fmt.Errorf("mongo decode %s: %w", q.Collection, err)
		}
		out = append(out, *toSnapshot(raw))
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("mongo cursor %s: %w", q.Collection, err)
	}
	return out, nil
}

// Close desconecta el cliente.
func (s *Store) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

// buildFind arma filtro y opciones. Los campos de orden se exigen con $exists para que un
// documento sin el campo quede fuera, como en Firestore; _id desempata.
func buildFind(q repository.Query) (bson.D, *options.FindOptions) {
	filter := bson.D{}
	filtered := make(map[string]bool, len(q.Filters))
	for _, f := range q.Filters {
		filter = append(filter, bson.E{Key: f.Field, Value: f.Value})
		filtered[f.Field] = true
	}
	sort := bson.D{}
	for _, o := range q.OrderBy {
		if !filtered[o.Field] {
			filter = append(filter, bson.E{Key: o.Field, Value: bson.M{"$exists": true}})
		}
		dir := 1
		if o.Desc {
			dir = -1
		}
		sort = append(sort, bson.E{Key: o.Field, Value: dir})
	}
	sort = append(sort, bson.E{Key: "_id", Value: 1})

	opts := options.Find().SetSort(sort)
	if q.Limit > 0 {
		opts.SetLimit(int64(q.Limit))
	}
	return filter, opts
}

func toSnapshot(raw bson.M) *repository.Snapshot {
	id := ""
	switch v := raw["_id"].(type) {
	case string:
		id = v
	case primitive.ObjectID:
		id = v.Hex()
	}
	data := make(repository.Document, len(raw))
	for k, v := range raw {
		if k == "_id" {
			continue
		}
		data[k] = normalize(v)
	}
	return &repository.Snapshot{ID: id, Data: data}
}

// normalize convierte los tipos BSON a los tipos planos que espera la fachada:
// documentos a map[string]any, arreglos a []any, fechas a time.Time, ObjectID a hex.
func normalize(v any) any {
	switch t := v.(type) {
	case bson.M:
		m := make(map[string]any, len(t))
		for k, vv := range t {
			m[k] = normalize(vv)
		}
		return m
	case map[string]any:
		m := make(map[string]any, len(t))
		for k, vv := range t {
			m[k] = normalize(vv)
		}
		return m
	case bson.D:
		m := make(map[string]any, len(t))
		for _, e := range t {
			m[e.Key] = normalize(e.Value)
		}
		return m
	case bson.A:
		s := make([]any, len(t))
		for i, vv := range t {
			s[i] = normalize(vv)
		}
		return s
	case []any:
		s := make([]any, len(t))
		for i, vv := range t {
			s[i] = normalize(vv)
		}
		return s
	case primitive.DateTime:
		return t.Time().UTC()
	case primitive.ObjectID:
		return t.Hex()
	case primitive.Decimal128:
		return t.String()
	}
	return v
}
