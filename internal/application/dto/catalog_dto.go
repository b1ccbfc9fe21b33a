package dto

import "github.com/shopspring/decimal"

// CreateCategoryRequest entrada para crear una categoría.
type CreateCategoryRequest struct {
	Name        string   `json:"name" validate:"required,min=1,max=120"`
	Description string   `json:"description" validate:"omitempty,max=500"`
	ImageURL    string   `json:"imageUrl" validate:"omitempty,url"`
	SortOrder   int      `json:"sortOrder" validate:"min=0"`
	IsActive    *bool    `json:"isActive"` // nil = true
	TimeSlots   []string `json:"timeSlots" validate:"dive,oneof=morning afternoon evening night"`
}

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	Name        string          `json:"name" validate:"required,min=1,max=200"`
	Description string          `json:"description" validate:"omitempty,max=1000"`
	CategoryID  string          `json:"categoryId" validate:"required"`
	Price       decimal.Decimal `json:"price"`
	Unit        string          `json:"unit" validate:"omitempty,max=40"`
	ImageURL    string          `json:"imageUrl" validate:"omitempty,url"`
	IsActive    *bool           `json:"isActive"` // nil = true
}
