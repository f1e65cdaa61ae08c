package product

import "github.com/NicBab/x-tech-app-server/internal/shared/nullable"

type CreateProductRequest struct {
	Name          string          `json:"name" binding:"required"`
	Manufacturer  *string         `json:"mfr"`
	SKU           *string         `json:"sku"`
	Price         nullable.Number `json:"price"`
	Rating        *int            `json:"rating"`
	StockQuantity int             `json:"stockQuantity"`
}

type ListFilter struct {
	Search string
}

type ProductResponse struct {
	ProductID     string  `json:"productId"`
	Name          string  `json:"name"`
	Manufacturer  *string `json:"mfr,omitempty"`
	SKU           *string `json:"sku,omitempty"`
	Price         float64 `json:"price"`
	Rating        *int    `json:"rating,omitempty"`
	StockQuantity int     `json:"stockQuantity"`
}
