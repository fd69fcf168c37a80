package inventory

import (
	"errors"
)

// ErrProductNotFound is returned when a requested product ID does not exist.
// Batch lookups return it when any of the requested IDs is missing.
var ErrProductNotFound = errors.New("product not found")

// ErrMissingEmbedding is returned when a similarity search is requested for
// a product that has no stored embedding.
var ErrMissingEmbedding = errors.New("product has no embedding")

// ProductStore defines the interface for storing and querying products.
type ProductStore interface {
	// Initialize initializes the store with configuration options.
	Initialize(dbPath string) error

	// Close closes the store and releases any resources.
	Close() error

	// Insert stores a new product and assigns its ID.
	Insert(p *Product) error

	// Get returns the product with the given ID, or ErrProductNotFound.
	Get(id int64) (*Product, error)

	// GetBatch returns the products for the given IDs. The IDs are
	// de-duplicated first; if any of them is missing the whole lookup
	// fails with ErrProductNotFound.
	GetBatch(ids []int64) ([]*Product, error)

	// List returns all products ordered by ID.
	List() ([]*Product, error)

	// Update persists all fields of the given product.
	Update(p *Product) error

	// Delete removes the product with the given ID.
	Delete(id int64) error

	// UpdateCategory sets the category of a single product.
	UpdateCategory(id int64, category string) error

	// UpdateDescription sets the description of a single product.
	UpdateDescription(id int64, description string) error

	// UpdateTranslation sets the Arabic name and description of a product.
	UpdateTranslation(id int64, arabicName, arabicDescription string) error

	// UpdateEmbedding sets the stored embedding of a product.
	UpdateEmbedding(id int64, embedding []byte) error

	// TotalValue returns SUM(price*quantity), 0 for an empty table.
	TotalValue() (float64, error)

	// AveragePrice returns AVG(price), 0 for an empty table.
	AveragePrice() (float64, error)

	// MinMaxPrice returns MIN(price) and MAX(price), both 0 for an
	// empty table.
	MinMaxPrice() (min, max float64, err error)

	// CountByCategory returns product counts grouped by category.
	CountByCategory() ([]CategoryCount, error)

	// ValueByCategory returns SUM(price*quantity) grouped by category.
	ValueByCategory() ([]CategoryValue, error)

	// OutOfStock returns products with zero quantity or in_stock unset.
	OutOfStock() ([]*Product, error)

	// MostExpensive returns the top products by descending price.
	MostExpensive(limit int) ([]*Product, error)

	// SearchSimilar ranks products with embeddings by ascending cosine
	// distance to the query vector and returns at most limit rows.
	// When excludeID is non-zero that product is left out of the results.
	SearchSimilar(query []float32, limit int, excludeID int64) ([]SimilarProduct, error)
}
