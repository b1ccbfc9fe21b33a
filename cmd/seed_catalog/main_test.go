package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/jhoicas/pakurmart-api/internal/application/storage"
	"github.com/jhoicas/pakurmart-api/internal/domain/entity"
	"github.com/jhoicas/pakurmart-api/internal/infrastructure/memory"
)

const sampleCSV = `kind,name,description,category,sortOrder,timeSlots,price,unit
category,Desayuno,Pan y lácteos,,1,morning|afternoon,,
category,Cena,,,2,evening,,
product,Leche entera,Bolsa,Desayuno,,,4500,1 L
product,Pan tajado,,desayuno,,,3200.50,500 g
`

func TestParseCatalog(t *testing.T) {
	cat, err := parseCatalog(strings.NewReader(sampleCSV))
	require.NoError(t, err)

	require.Len(t, cat.categories, 2)
	assert.Equal(t, "Desayuno", cat.categories[0].Name)
	assert.Equal(t, []entity.TimeSlot{entity.TimeSlotMorning, entity.TimeSlotAfternoon}, cat.categories[0].TimeSlots)
	assert.Equal(t, 2, cat.categories[1].SortOrder)

	require.Len(t, cat.products, 2)
	assert.Equal(t, "3200.5", cat.products[1].product.Price.String())
	assert.Equal(t, "500 g", cat.products[1].product.Unit)
}

func TestParseCatalog_Errores(t *testing.T) {
	header := "kind,name,description,category,sortOrder,timeSlots,price,unit\n"
	cases := map[string]string{
		"kind desconocido":  "combo,X,,,,,,\n",
		"franja inválida":   "category,X,,,1,brunch,,\n",
		"precio inválido":   "product,X,,Cena,,,abc,\n",
		"sin categoría":     "product,X,,,,,10,\n",
		"columnas de menos": "product,X\n",
	}
	for name, row := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := parseCatalog(strings.NewReader(header + row))
			assert.Error(t, err)
		})
	}
	_, err := parseCatalog(strings.NewReader(""))
	assert.Error(t, err)
}

func TestDecodingReader_Windows1252(t *testing.T) {
	encoded, err := charmap.Windows1252.NewEncoder().String("Lácteos y café")
	require.NoError(t, err)

	r, err := decodingReader(bytes.NewBufferString(encoded), "windows-1252")
	require.NoError(t, err)
	var buf bytes.Buffer
	_, err = buf.ReadFrom(r)
	require.NoError(t, err)
	assert.Equal(t, "Lácteos y café", buf.String())

	_, err = decodingReader(strings.NewReader(""), "ebcdic")
	assert.Error(t, err)
}

func TestSeed_ReutilizaCategoriasExistentes(t *testing.T) {
	ctx := context.Background()
	s := storage.New(memory.NewStore(), nil, storage.Options{})
	_, err := s.CreateCategory(ctx, &entity.Category{Name: "Desayuno", SortOrder: 1, IsActive: true})
	require.NoError(t, err)

	cat, err := parseCatalog(strings.NewReader(sampleCSV))
	require.NoError(t, err)
	created, reused, products, err := seed(ctx, s, cat)
	require.NoError(t, err)
	assert.Equal(t, 1, created)
	assert.Equal(t, 1, reused)
	assert.Equal(t, 2, products)

	cats, err := s.GetCategories(ctx)
	require.NoError(t, err)
	require.Len(t, cats, 2)
	got, err := s.GetProductsByCategory(ctx, cats[0].ID)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestSeed_CategoriaInexistente(t *testing.T) {
	s := storage.New(memory.NewStore(), nil, storage.Options{})
	cat := &catalog{products: []productRow{{line: 2, category: "Nada", product: entity.Product{Name: "X"}}}}
	_, _, _, err := seed(context.Background(), s, cat)
	assert.ErrorContains(t, err, "Nada")
}
