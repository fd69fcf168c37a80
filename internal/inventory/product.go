// Package inventory provides the product model, the product store and the
// business operations of the Stocklight service.
package inventory

import (
	"time"
)

// DefaultCategory is assigned when a product has no category and
// automatic classification is unavailable.
const DefaultCategory = "Uncategorized"

// Product is a persisted inventory record.
type Product struct {
	ID                int64     `json:"id"`
	Name              string    `json:"name"`
	Description       string    `json:"description"`
	Category          string    `json:"category"`
	Price             float64   `json:"price"`
	Quantity          int64     `json:"quantity"`
	InStock           bool      `json:"in_stock"`
	Embedding         []float32 `json:"embedding"`
	CreatedAt         time.Time `json:"created_at"`
	ArabicName        string    `json:"arabic_name"`
	ArabicDescription string    `json:"arabic_description"`
}

// CategoryCount is one row of the products-per-category report.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int64  `json:"count"`
}

// CategoryValue is one row of the inventory-value-per-category report.
type CategoryValue struct {
	Category string  `json:"category"`
	Sum      float64 `json:"sum"`
}

// SimilarProduct is one row of a similarity-search result, ordered by
// ascending cosine distance to the query vector.
type SimilarProduct struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Distance float64 `json:"-"`
}
