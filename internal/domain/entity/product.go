package entity

import "github.com/shopspring/decimal"

// Product producto del catálogo. CategoryID es una referencia débil: la categoría puede
// no existir (sin borrado en cascada).
type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	CategoryID  string          `json:"categoryId"`
	Price       decimal.Decimal `json:"price"`
	Unit        string          `json:"unit,omitempty"` // ej. "1 L", "500 g"
	ImageURL    string          `json:"imageUrl,omitempty"`
	IsActive    bool            `json:"isActive"`
}
