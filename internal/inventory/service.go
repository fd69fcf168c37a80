package inventory

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/stocklight/stocklight/internal/enrich"
	"github.com/stocklight/stocklight/internal/errortypes"
	"github.com/stocklight/stocklight/internal/translate"
	"github.com/stocklight/stocklight/internal/vector"
)

// DefaultSimilarLimit is the number of neighbours returned by similarity
// searches when no limit is given.
const DefaultSimilarLimit = 5

// Service implements the inventory business operations on top of a
// ProductStore, with AI enrichment, translation and embeddings.
type Service struct {
	store      ProductStore
	enricher   enrich.Enricher
	translator translate.Translator
	embedder   vector.Embedder
	logger     *slog.Logger
}

// NewService creates a Service with the given collaborators. A nil logger
// falls back to slog.Default.
func NewService(store ProductStore, enricher enrich.Enricher, translator translate.Translator, embedder vector.Embedder, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		store:      store,
		enricher:   enricher,
		translator: translator,
		embedder:   embedder,
		logger:     logger,
	}
}

// CreateProduct stores a new product. When the category is empty it is
// classified from the product name; classification failures fall back to
// DefaultCategory and never block creation.
func (s *Service) CreateProduct(ctx context.Context, p *Product) error {
	if p.Category == "" {
		category, err := s.enricher.Classify(ctx, p.Name)
		if err != nil {
			s.logger.Warn("classification failed, using default category",
				"product", p.Name, "error", err)
			category = DefaultCategory
		}
		p.Category = category
	}

	p.InStock = p.Quantity > 0
	p.CreatedAt = time.Now().UTC()

	if err := s.store.Insert(p); err != nil {
		return fmt.Errorf("failed to store product: %w", err)
	}

	s.logger.Info("product created", "id", p.ID, "name", p.Name, "category", p.Category)
	return nil
}

// GetProduct returns the product with the given ID.
func (s *Service) GetProduct(ctx context.Context, id int64) (*Product, error) {
	return s.store.Get(id)
}

// ListProducts returns all products ordered by ID.
func (s *Service) ListProducts(ctx context.Context) ([]*Product, error) {
	return s.store.List()
}

// ProductPatch holds the fields of a partial product update. Nil fields are
// left unchanged.
type ProductPatch struct {
	Name        *string
	Description *string
	Category    *string
	Price       *float64
	Quantity    *int64
}

// UpdateProduct applies a partial update to the product with the given ID
// and returns the updated record. The in-stock flag is re-derived from the
// quantity.
func (s *Service) UpdateProduct(ctx context.Context, id int64, patch ProductPatch) (*Product, error) {
	p, err := s.store.Get(id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Category != nil {
		p.Category = *patch.Category
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.Quantity != nil {
		p.Quantity = *patch.Quantity
	}
	p.InStock = p.Quantity > 0

	if err := s.store.Update(p); err != nil {
		return nil, err
	}

	s.logger.Info("product updated", "id", p.ID)
	return p, nil
}

// DeleteProduct removes the product with the given ID.
func (s *Service) DeleteProduct(ctx context.Context, id int64) error {
	if err := s.store.Delete(id); err != nil {
		return err
	}
	s.logger.Info("product deleted", "id", id)
	return nil
}

// TotalValue returns the total inventory value, SUM(price*quantity).
func (s *Service) TotalValue(ctx context.Context) (float64, error) {
	return s.store.TotalValue()
}

// AveragePrice returns the average product price.
func (s *Service) AveragePrice(ctx context.Context) (float64, error) {
	return s.store.AveragePrice()
}

// MinMaxPrice returns the minimum and maximum product prices.
func (s *Service) MinMaxPrice(ctx context.Context) (min, max float64, err error) {
	return s.store.MinMaxPrice()
}

// CountByCategory returns product counts grouped by category.
func (s *Service) CountByCategory(ctx context.Context) ([]CategoryCount, error) {
	return s.store.CountByCategory()
}

// ValueByCategory returns inventory value grouped by category.
func (s *Service) ValueByCategory(ctx context.Context) ([]CategoryValue, error) {
	return s.store.ValueByCategory()
}

// OutOfStock returns products that are out of stock.
func (s *Service) OutOfStock(ctx context.Context) ([]*Product, error) {
	return s.store.OutOfStock()
}

// MostExpensive returns the top products by descending price.
func (s *Service) MostExpensive(ctx context.Context, limit int) ([]*Product, error) {
	return s.store.MostExpensive(limit)
}

// ClassifiedProduct is the result of classifying one product in a batch.
type ClassifiedProduct struct {
	ID       int64  `json:"id"`
	Category string `json:"category"`
}

// ClassifyBatch classifies the named products and persists their new
// categories. The whole batch fails when any ID is missing or any
// classification fails.
func (s *Service) ClassifyBatch(ctx context.Context, ids []int64) ([]ClassifiedProduct, error) {
	products, err := s.store.GetBatch(ids)
	if err != nil {
		return nil, err
	}

	results := make([]ClassifiedProduct, 0, len(products))
	for _, p := range products {
		category, err := s.enricher.Classify(ctx, p.Name)
		if err != nil {
			return nil, errortypes.APIError(err, "failed to classify product").
				WithField("product_id", p.ID)
		}
		if err := s.store.UpdateCategory(p.ID, category); err != nil {
			return nil, err
		}
		results = append(results, ClassifiedProduct{ID: p.ID, Category: category})
	}

	s.logger.Info("products classified", "count", len(results))
	return results, nil
}

// DescribedProduct is the result of describing one product in a batch.
type DescribedProduct struct {
	ID          int64  `json:"id"`
	Description string `json:"description"`
}

// DescribeBatch generates one-sentence descriptions for the named products
// and persists them.
func (s *Service) DescribeBatch(ctx context.Context, ids []int64) ([]DescribedProduct, error) {
	products, err := s.store.GetBatch(ids)
	if err != nil {
		return nil, err
	}

	results := make([]DescribedProduct, 0, len(products))
	for _, p := range products {
		description, err := s.enricher.Describe(ctx, p.Name)
		if err != nil {
			return nil, errortypes.APIError(err, "failed to describe product").
				WithField("product_id", p.ID)
		}
		if err := s.store.UpdateDescription(p.ID, description); err != nil {
			return nil, err
		}
		results = append(results, DescribedProduct{ID: p.ID, Description: description})
	}

	s.logger.Info("products described", "count", len(results))
	return results, nil
}

// TranslateBatch translates the name and description of the named products
// into the configured target language, persists the translations and
// returns the updated products.
func (s *Service) TranslateBatch(ctx context.Context, ids []int64) ([]*Product, error) {
	products, err := s.store.GetBatch(ids)
	if err != nil {
		return nil, err
	}

	for _, p := range products {
		name, err := s.translator.Translate(ctx, p.Name)
		if err != nil {
			return nil, errortypes.ExternalError(err, "failed to translate product").
				WithField("product_id", p.ID)
		}
		description, err := s.translator.Translate(ctx, p.Description)
		if err != nil {
			return nil, errortypes.ExternalError(err, "failed to translate product").
				WithField("product_id", p.ID)
		}

		if err := s.store.UpdateTranslation(p.ID, name, description); err != nil {
			return nil, err
		}
		p.ArabicName = name
		p.ArabicDescription = description
	}

	s.logger.Info("products translated", "count", len(products),
		"source_lang", s.translator.SourceLang(),
		"target_lang", s.translator.TargetLang())
	return products, nil
}

// EmbeddedProduct is the result of embedding one product in a batch.
type EmbeddedProduct struct {
	ID        int64     `json:"id"`
	Embedding []float32 `json:"embedding"`
}

// EmbedBatch creates embeddings from the names of the given products and
// persists them. Only the name is embedded so that stored vectors stay
// comparable with embedded query text.
func (s *Service) EmbedBatch(ctx context.Context, ids []int64) ([]EmbeddedProduct, error) {
	products, err := s.store.GetBatch(ids)
	if err != nil {
		return nil, err
	}

	results := make([]EmbeddedProduct, 0, len(products))
	for _, p := range products {
		embedding, err := s.embedder.CreateEmbedding(ctx, p.Name)
		if err != nil {
			return nil, errortypes.APIError(err, "failed to embed product").
				WithField("product_id", p.ID)
		}

		encoded, err := vector.EncodeVector(embedding)
		if err != nil {
			return nil, fmt.Errorf("failed to encode embedding for product %d: %w", p.ID, err)
		}
		if err := s.store.UpdateEmbedding(p.ID, encoded); err != nil {
			return nil, err
		}
		results = append(results, EmbeddedProduct{ID: p.ID, Embedding: embedding})
	}

	s.logger.Info("products embedded", "count", len(results))
	return results, nil
}

// SimilarByID returns the products most similar to the one with the given
// ID, excluding the product itself. The product must have a stored
// embedding. A non-positive limit falls back to DefaultSimilarLimit.
func (s *Service) SimilarByID(ctx context.Context, id int64, limit int) ([]SimilarProduct, error) {
	p, err := s.store.Get(id)
	if err != nil {
		return nil, err
	}
	if len(p.Embedding) == 0 {
		return nil, fmt.Errorf("%w: product %d", ErrMissingEmbedding, id)
	}

	if limit <= 0 {
		limit = DefaultSimilarLimit
	}
	return s.store.SearchSimilar(p.Embedding, limit, id)
}

// SimilarByText embeds the query text and returns the most similar
// products. A non-positive limit falls back to DefaultSimilarLimit.
func (s *Service) SimilarByText(ctx context.Context, query string, limit int) ([]SimilarProduct, error) {
	embedding, err := s.embedder.CreateEmbedding(ctx, query)
	if err != nil {
		return nil, errortypes.APIError(err, "failed to embed query")
	}

	if limit <= 0 {
		limit = DefaultSimilarLimit
	}
	return s.store.SearchSimilar(embedding, limit, 0)
}

// ImportReceipt parses receipt text and creates one product per line item.
// Each created product gets an AI-generated description when available and
// is classified like any other new product.
func (s *Service) ImportReceipt(ctx context.Context, receiptText string) ([]*Product, *enrich.Receipt, error) {
	receipt, err := s.enricher.ExtractReceipt(ctx, receiptText)
	if err != nil {
		return nil, nil, errortypes.APIError(err, "failed to parse receipt")
	}

	products := make([]*Product, 0, len(receipt.Items))
	for _, item := range receipt.Items {
		description, err := s.enricher.Describe(ctx, item.Name)
		if err != nil {
			s.logger.Warn("description generation failed for receipt item",
				"item", item.Name, "error", err)
			description = ""
		}

		p := &Product{
			Name:        item.Name,
			Description: description,
			Price:       item.Price,
			Quantity:    item.Quantity,
		}
		if err := s.CreateProduct(ctx, p); err != nil {
			return nil, nil, err
		}
		products = append(products, p)
	}

	s.logger.Info("receipt imported", "store", receipt.Store, "items", len(products))
	return products, receipt, nil
}
