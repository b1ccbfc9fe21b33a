// seed_catalog carga categorías y productos desde un CSV usando el store configurado
// (STORE_DRIVER y demás variables de entorno, igual que la API).
//
// Uso: go run ./cmd/seed_catalog -file catalog.csv [-charset windows-1252]
//
// Columnas: kind,name,description,category,sortOrder,timeSlots,price,unit
//   - kind: category | product
//   - timeSlots: franjas separadas por "|" (solo categorías)
//   - category: nombre de la categoría del producto
//
// Las categorías se crean primero; las que ya existen (mismo nombre) se reutilizan.
package main

import (
	"context"
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/pakurmart-api/internal/application/storage"
	"github.com/jhoicas/pakurmart-api/internal/domain/entity"
	"github.com/jhoicas/pakurmart-api/internal/domain/repository"
	infrafirestore "github.com/jhoicas/pakurmart-api/internal/infrastructure/firestore"
	"github.com/jhoicas/pakurmart-api/internal/infrastructure/mongodb"
	"github.com/jhoicas/pakurmart-api/internal/infrastructure/postgres"
	"github.com/jhoicas/pakurmart-api/pkg/config"
	"github.com/jhoicas/pakurmart-api/pkg/logger"
)

const (
	kindCategory = "category"
	kindProduct  = "product"
)

type productRow struct {
	line     int
	category string
	product  entity.Product
}

type catalog struct {
	categories []*entity.Category
	products   []productRow
}

func main() {
	file := flag.String("file", "catalog.csv", "ruta del CSV")
	charset := flag.String("charset", "utf-8", "codificación del CSV: utf-8, windows-1252, iso-8859-1")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	f, err := os.Open(*file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	r, err := decodingReader(f, *charset)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	cat, err := parseCatalog(r)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer CSV: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	store, err := openStore(ctx, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir store: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	s := storage.New(store, log, storage.Options{FanOut: cfg.Catalog.FanOut})
	created, reused, products, err := seed(ctx, s, cat)
	if err != nil {
		log.Error().Err(err).Msg("carga de catálogo interrumpida")
		os.Exit(1)
	}
	log.Info().
		Int("categoriasCreadas", created).
		Int("categoriasExistentes", reused).
		Int("productos", products).
		Msg("catálogo cargado")
}

// decodingReader convierte la entrada a UTF-8 según el charset indicado.
func decodingReader(r io.Reader, charset string) (io.Reader, error) {
	switch strings.ToLower(strings.ReplaceAll(charset, "_", "-")) {
	case "", "utf-8", "utf8":
		return r, nil
	case "windows-1252", "cp1252":
		return transform.NewReader(r, charmap.Windows1252.NewDecoder()), nil
	case "iso-8859-1", "iso8859-1", "latin1":
		return transform.NewReader(r, charmap.ISO8859_1.NewDecoder()), nil
	}
	return nil, fmt.Errorf("charset no soportado: %q", charset)
}

// parseCatalog lee el CSV. La primera fila es el encabezado.
func parseCatalog(r io.Reader) (*catalog, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 8
	cr.TrimLeadingSpace = true

	if _, err := cr.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("CSV vacío")
		}
		return nil, err
	}

	out := &catalog{}
	line := 1
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, err
		}
		kind, name := strings.ToLower(strings.TrimSpace(rec[0])), strings.TrimSpace(rec[1])
		if name == "" {
			return nil, fmt.Errorf("línea %d: name vacío", line)
		}
		switch kind {
		case kindCategory:
			c, err := parseCategory(rec)
			if err != nil {
				return nil, fmt.Errorf("línea %d: %w", line, err)
			}
			out.categories = append(out.categories, c)
		case kindProduct:
			p, err := parseProduct(rec)
			if err != nil {
				return nil, fmt.Errorf("línea %d: %w", line, err)
			}
			out.products = append(out.products, productRow{line: line, category: strings.TrimSpace(rec[3]), product: *p})
		default:
			return nil, fmt.Errorf("línea %d: kind desconocido %q", line, rec[0])
		}
	}
	return out, nil
}

func parseCategory(rec []string) (*entity.Category, error) {
	sortOrder := 0
	if s := strings.TrimSpace(rec[4]); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return nil, fmt.Errorf("sortOrder inválido %q", s)
		}
		sortOrder = n
	}
	slots := make([]entity.TimeSlot, 0, 4)
	for _, raw := range strings.Split(rec[5], "|") {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		slot, err := entity.ParseTimeSlot(raw)
		if err != nil {
			return nil, err
		}
		slots = append(slots, slot)
	}
	return &entity.Category{
		Name:        strings.TrimSpace(rec[1]),
		Description: strings.TrimSpace(rec[2]),
		SortOrder:   sortOrder,
		IsActive:    true,
		TimeSlots:   slots,
	}, nil
}

func parseProduct(rec []string) (*entity.Product, error) {
	if strings.TrimSpace(rec[3]) == "" {
		return nil, errors.New("category vacío")
	}
	price, err := decimal.NewFromString(strings.TrimSpace(rec[6]))
	if err != nil {
		return nil, fmt.Errorf("price inválido %q", rec[6])
	}
	if price.IsNegative() {
		return nil, fmt.Errorf("price negativo %s", price)
	}
	return &entity.Product{
		Name:        strings.TrimSpace(rec[1]),
		Description: strings.TrimSpace(rec[2]),
		Price:       price,
		Unit:        strings.TrimSpace(rec[7]),
		IsActive:    true,
	}, nil
}

// seed crea las categorías nuevas y luego los productos, resolviendo la categoría por nombre.
func seed(ctx context.Context, s *storage.Storage, cat *catalog) (created, reused, products int, err error) {
	existing, err := s.GetCategories(ctx)
	if err != nil {
		return 0, 0, 0, err
	}
	byName := make(map[string]string, len(existing))
	for _, c := range existing {
		byName[strings.ToLower(c.Name)] = c.ID
	}

	for _, c := range cat.categories {
		if _, ok := byName[strings.ToLower(c.Name)]; ok {
			reused++
			continue
		}
		saved, err := s.CreateCategory(ctx, c)
		if err != nil {
			return created, reused, products, fmt.Errorf("categoría %q: %w", c.Name, err)
		}
		byName[strings.ToLower(saved.Name)] = saved.ID
		created++
	}

	for _, row := range cat.products {
		id, ok := byName[strings.ToLower(row.category)]
		if !ok {
			return created, reused, products, fmt.Errorf("línea %d: categoría %q no existe", row.line, row.category)
		}
		p := row.product
		p.CategoryID = id
		if _, err := s.CreateProduct(ctx, &p); err != nil {
			return created, reused, products, fmt.Errorf("línea %d: producto %q: %w", row.line, p.Name, err)
		}
		products++
	}
	return created, reused, products, nil
}

// openStore igual que la API; memory no tiene sentido aquí porque los datos se perderían.
func openStore(ctx context.Context, cfg *config.Config) (repository.DocumentStore, error) {
	switch cfg.Store.Driver {
	case config.StoreFirestore:
		client, err := infrafirestore.NewClient(ctx, cfg.Firestore)
		if err != nil {
			return nil, err
		}
		return infrafirestore.NewStore(client), nil
	case config.StorePostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, err
		}
		store := postgres.NewDocumentStore(pool)
		if err := store.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, err
		}
		return store, nil
	case config.StoreMongo:
		client, err := mongodb.Connect(ctx, cfg.Mongo)
		if err != nil {
			return nil, err
		}
		return mongodb.NewStore(client, cfg.Mongo.DBName), nil
	}
	return nil, fmt.Errorf("STORE_DRIVER %q no soportado por el seeder", cfg.Store.Driver)
}
