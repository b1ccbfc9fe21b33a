package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/pakurmart-api/internal/domain/repository"
)

var (
	_ repository.DocumentStore = (*DocumentStore)(nil)
	_ repository.NumericSummer = (*DocumentStore)(nil)
)

// schema tabla única: una fila por documento, la colección lógica es una columna.
const schema = `
CREATE TABLE IF NOT EXISTS documents (
	collection TEXT        NOT NULL,
	id         TEXT        NOT NULL,
	data       JSONB       NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (collection, id)
);
CREATE INDEX IF NOT EXISTS documents_data_gin ON documents USING GIN (data jsonb_path_ops);`

// DocumentStore implementa repository.DocumentStore sobre una tabla JSONB.
type DocumentStore struct {
	pool *pgxpool.Pool
}

// NewDocumentStore construye el store sobre el pool. Close cierra el pool.
func NewDocumentStore(pool *pgxpool.Pool) *DocumentStore {
	return &DocumentStore{pool: pool}
}

// EnsureSchema crea la tabla y el índice si no existen.
func (s *DocumentStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("crear esquema documents: %w", err)
	}
	return nil
}

// Get obtiene un documento por colección e ID.
func (s *DocumentStore) Get(ctx context.Context, collection, id string) (*repository.Snapshot, error) {
	var raw []byte
	err := s.pool.QueryRow(ctx,
		`SELECT data FROM documents WHERE collection = $1 AND id = $2`, collection, id,
	).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrDocumentNotFound
		}
		return nil, fmt.Errorf("get %s/%s: %w", collection, id, err)
	}
	data, err := decodeData(raw)
	if err != nil {
		return nil, fmt.Errorf("get %s/%s: %w", collection, id, err)
	}
	return &repository.Snapshot{ID: id, Data: data}, nil
}

// Add inserta con un ID uuid.
func (s *DocumentStore) Add(ctx context.Context, collection string, data repository.Document) (string, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("serializar documento: %w", err)
	}
	id := uuid.New().String()
	_, err = s.pool.Exec(ctx,
		`INSERT INTO documents (collection, id, data) VALUES ($1, $2, $3::jsonb)`,
		collection, id, string(raw),
	)
	if err != nil {
		return "", fmt.Errorf("insert %s: %w", collection, err)
	}
	return id, nil
}

// Update mezcla los campos en el nivel superior del documento (operador ||).
func (s *DocumentStore) Update(ctx context.Context, collection, id string, fields repository.Document) error {
	raw, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("serializar campos: %w", err)
	}
	tag, err := s.pool.Exec(ctx,
		`UPDATE documents SET data = data || $3::jsonb WHERE collection = $1 AND id = $2`,
		collection, id, string(raw),
	)
	if err != nil {
		return fmt.Errorf("update %s/%s: %w", collection, id, err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrDocumentNotFound
	}
	return nil
}

// Delete borra un documento.
func (s *DocumentStore) Delete(ctx context.Context, collection, id string) error {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM documents WHERE collection = $1 AND id = $2`, collection, id,
	)
	if err != nil {
		return fmt.Errorf("delete %s/%s: %w", collection, id, err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrDocumentNotFound
	}
	return nil
}

// Find ejecuta la consulta; sin OrderBy el orden es el de inserción.
func (s *DocumentStore) Find(ctx context.Context, q repository.Query) ([]repository.Snapshot, error) {
	sql, args, err := buildFindSQL(q)
	if err != nil {
		return nil, err
	}
	rows, err := s.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", q.Collection, err)
	}
	defer rows.Close()

	out := make([]repository.Snapshot, 0)
	for rows.Next() {
		var (
			id  string
			raw []byte
		)
		if err := rows.Scan(&id, &raw); err != nil {
			return nil, fmt.Errorf("scan %s: %w", q.Collection, err)
		}
		data, err := decodeData(raw)
		if err != nil {
			return nil, fmt.Errorf("find %s/%s: %w", q.Collection, id, err)
		}
		out = append(out, repository.Snapshot{ID: id, Data: data})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("find %s: %w", q.Collection, err)
	}
	return out, nil
}

// SumNumeric suma data->field como NUMERIC en el servidor; el resultado se escanea a
// decimal.Decimal con el codec registrado en NewPool, sin pasar por float.
func (s *DocumentStore) SumNumeric(ctx context.Context, q repository.Query, field string) (decimal.Decimal, int, error) {
	sql, args, err := buildSumSQL(q, field)
	if err != nil {
		return decimal.Zero, 0, err
	}
	var (
		sum   decimal.Decimal
		count int64
	)
	if err := s.pool.QueryRow(ctx, sql, args...).Scan(&sum, &count); err != nil {
		return decimal.Zero, 0, fmt.Errorf("sumar %s.%s: %w", q.Collection, field, err)
	}
	return sum, int(count), nil
}

// Close cierra el pool.
func (s *DocumentStore) Close() error {
	s.pool.Close()
	return nil
}

// buildWhere condiciones comunes: colección e igualdad con @> (usa el índice GIN).
func buildWhere(q repository.Query) ([]string, []any, error) {
	args := []any{q.Collection}
	where := []string{"collection = $1"}
	if len(q.Filters) > 0 {
		filter := make(map[string]any, len(q.Filters))
		for _, f := range q.Filters {
			filter[f.Field] = f.Value
		}
		raw, err := json.Marshal(filter)
		if err != nil {
			return nil, nil, fmt.Errorf("serializar filtro: %w", err)
		}
		args = append(args, string(raw))
		where = append(where, fmt.Sprintf("data @> $%d::jsonb", len(args)))
	}
	return where, args, nil
}

// buildFindSQL traduce la consulta: orden con el operador -> (jsonb ordena números como
// números) y exclusión de documentos sin el campo de orden, igual que Firestore.
func buildFindSQL(q repository.Query) (string, []any, error) {
	where, args, err := buildWhere(q)
	if err != nil {
		return "", nil, err
	}
	orderBy := make([]string, 0, len(q.OrderBy)+2)
	for _, o := range q.OrderBy {
		args = append(args, o.Field)
		n := len(args)
		where = append(where, fmt.Sprintf("data ? $%d::text", n))
		dir := "ASC"
		if o.Desc {
			dir = "DESC"
		}
		orderBy = append(orderBy, fmt.Sprintf("data -> $%d::text %s", n, dir))
	}
	orderBy = append(orderBy, "created_at ASC", "id ASC")

	var sb strings.Builder
	sb.WriteString("SELECT id, data FROM documents WHERE ")
	sb.WriteString(strings.Join(where, " AND "))
	sb.WriteString(" ORDER BY ")
	sb.WriteString(strings.Join(orderBy, ", "))
	if q.Limit > 0 {
		args = append(args, q.Limit)
		fmt.Fprintf(&sb, " LIMIT $%d", len(args))
	}
	return sb.String(), args, nil
}

// buildSumSQL SUM y COUNT sobre los documentos cuyo campo es un número JSON.
func buildSumSQL(q repository.Query, field string) (string, []any, error) {
	if field == "" {
		return "", nil, errors.New("campo a sumar vacío")
	}
	where, args, err := buildWhere(q)
	if err != nil {
		return "", nil, err
	}
	args = append(args, field)
	n := len(args)
	where = append(where, fmt.Sprintf("jsonb_typeof(data -> $%d::text) = 'number'", n))
	sql := fmt.Sprintf(
		"SELECT COALESCE(SUM((data ->> $%d::text)::numeric), 0), COUNT(*) FROM documents WHERE %s",
		n, strings.Join(where, " AND "))
	return sql, args, nil
}

func decodeData(raw []byte) (repository.Document, error) {
	var data repository.Document
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("decodificar jsonb: %w", err)
	}
	if data == nil {
		data = repository.Document{}
	}
	return data, nil
}
