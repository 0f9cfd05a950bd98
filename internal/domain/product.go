package domain

import (
	"time"

	"github.com/google/uuid"
)

// Product is a sellable item owned by one account. Price is stored as an
// int64 in the smallest currency unit to avoid floating-point drift. Stock is
// mutated only as a side effect of recording a sale.
type Product struct {
	ID        uuid.UUID `json:"id"`
	AccountID uuid.UUID `json:"accountId"`
	Name      string    `json:"name"`
	Price     int64     `json:"price"`
	Stock     int       `json:"stock"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ProductInput is the DTO for creating or updating a product.
type ProductInput struct {
	Name  string `json:"name"`
	Price int64  `json:"price"`
	Stock int    `json:"stock"`
}
