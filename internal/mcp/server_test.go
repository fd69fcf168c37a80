package mcp

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stocklight/stocklight/internal/enrich"
	"github.com/stocklight/stocklight/internal/inventory"
	"github.com/stocklight/stocklight/internal/tools"
	"github.com/stocklight/stocklight/internal/translate"
	"github.com/stocklight/stocklight/internal/vector"
)

// staticEnricher returns a fixed category for every product.
type staticEnricher struct {
	category string
}

func (e *staticEnricher) Initialize() error { return nil }

func (e *staticEnricher) Classify(ctx context.Context, productName string) (string, error) {
	return e.category, nil
}

func (e *staticEnricher) Describe(ctx context.Context, productName string) (string, error) {
	return "A " + productName + ".", nil
}

func (e *staticEnricher) ExtractReceipt(ctx context.Context, receiptText string) (*enrich.Receipt, error) {
	return nil, nil
}

func newTestToolServer(t *testing.T) (*InventoryToolServer, *inventory.Service) {
	t.Helper()

	store := inventory.NewSQLiteProductStore()
	if err := store.Initialize(filepath.Join(t.TempDir(), "products.db")); err != nil {
		t.Fatalf("store.Initialize() error: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	service := inventory.NewService(store, &staticEnricher{category: "Electronics"},
		translate.NewMockTranslator(), vector.NewMockEmbedder(8), nil)

	srv := NewInventoryToolServer(service)
	if err := srv.Initialize(); err != nil {
		t.Fatalf("Initialize() error: %v", err)
	}
	return srv, service
}

func TestAddProduct(t *testing.T) {
	srv, _ := newTestToolServer(t)

	response, err := srv.handleAddProduct(nil, tools.AddProductRequest{
		Name:        "iPhone 13",
		Description: "A smartphone",
		Price:       799.99,
		Quantity:    3,
	})
	if err != nil {
		t.Fatalf("Handler returned error: %v", err)
	}

	if response.Status != "success" {
		t.Fatalf("status = %q, error = %q", response.Status, response.Error)
	}
	if response.Product == nil || response.Product.ID == 0 {
		t.Fatalf("product = %+v", response.Product)
	}
	if response.Product.Category != "Electronics" {
		t.Errorf("category = %q, want auto-classified %q", response.Product.Category, "Electronics")
	}
	if !response.Product.InStock {
		t.Error("in_stock = false, want true")
	}
}

func TestAddProductValidation(t *testing.T) {
	srv, service := newTestToolServer(t)

	tests := []struct {
		name string
		req  tools.AddProductRequest
	}{
		{
			name: "empty request",
			req:  tools.AddProductRequest{},
		},
		{
			name: "name too short",
			req:  tools.AddProductRequest{Name: "X", Description: "d", Price: 10, Quantity: 1},
		},
		{
			name: "name too long",
			req:  tools.AddProductRequest{Name: strings.Repeat("x", 101), Description: "d", Price: 10, Quantity: 1},
		},
		{
			name: "missing description",
			req:  tools.AddProductRequest{Name: "Mouse", Price: 10, Quantity: 1},
		},
		{
			name: "price below minimum",
			req:  tools.AddProductRequest{Name: "Mouse", Description: "d", Price: 0, Quantity: 1},
		},
		{
			name: "negative quantity",
			req:  tools.AddProductRequest{Name: "Mouse", Description: "d", Price: 10, Quantity: -1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			response, err := srv.handleAddProduct(nil, tt.req)
			if err != nil {
				t.Fatalf("Handler returned error: %v", err)
			}
			if response.Status != "error" || response.Error == "" {
				t.Errorf("response = %+v, want validation error", response)
			}
		})
	}

	// No invalid request may have persisted a row.
	products, err := service.ListProducts(context.Background())
	if err != nil {
		t.Fatalf("ListProducts() error: %v", err)
	}
	if len(products) != 0 {
		t.Errorf("store has %d products after rejected requests, want 0", len(products))
	}
}

func TestGetProduct(t *testing.T) {
	srv, service := newTestToolServer(t)

	p := &inventory.Product{Name: "Keyboard", Description: "d", Price: 49.99, Quantity: 5}
	if err := service.CreateProduct(context.Background(), p); err != nil {
		t.Fatalf("CreateProduct() error: %v", err)
	}

	response, err := srv.handleGetProduct(nil, tools.GetProductRequest{ID: p.ID})
	if err != nil {
		t.Fatalf("Handler returned error: %v", err)
	}

	if response.Status != "success" || response.Product == nil {
		t.Fatalf("response = %+v", response)
	}
	if response.Product.Name != "Keyboard" {
		t.Errorf("name = %q", response.Product.Name)
	}
}

func TestGetProductNotFound(t *testing.T) {
	srv, _ := newTestToolServer(t)

	response, err := srv.handleGetProduct(nil, tools.GetProductRequest{ID: 999})
	if err != nil {
		t.Fatalf("Handler returned error: %v", err)
	}

	if response.Status != "error" || response.Error == "" {
		t.Errorf("response = %+v, want error status", response)
	}
}

func TestSearchProducts(t *testing.T) {
	srv, service := newTestToolServer(t)

	p := &inventory.Product{Name: "Laptop", Description: "d", Price: 1000, Quantity: 1}
	if err := service.CreateProduct(context.Background(), p); err != nil {
		t.Fatalf("CreateProduct() error: %v", err)
	}
	if _, err := service.EmbedBatch(context.Background(), []int64{p.ID}); err != nil {
		t.Fatalf("EmbedBatch() error: %v", err)
	}

	response, err := srv.handleSearchProducts(nil, tools.SearchProductsRequest{Query: "portable computer"})
	if err != nil {
		t.Fatalf("Handler returned error: %v", err)
	}

	if response.Status != "success" {
		t.Fatalf("status = %q, error = %q", response.Status, response.Error)
	}
	if len(response.Results) != 1 || response.Results[0].ID != p.ID {
		t.Errorf("results = %+v", response.Results)
	}
}

func TestSearchProductsEmptyQuery(t *testing.T) {
	srv, _ := newTestToolServer(t)

	response, err := srv.handleSearchProducts(nil, tools.SearchProductsRequest{})
	if err != nil {
		t.Fatalf("Handler returned error: %v", err)
	}

	if response.Status != "error" {
		t.Errorf("status = %q, want error for empty query", response.Status)
	}
}

func TestInventoryReport(t *testing.T) {
	srv, service := newTestToolServer(t)

	products := []*inventory.Product{
		{Name: "Laptop", Description: "d", Price: 1000, Quantity: 2},
		{Name: "Mouse", Description: "d", Price: 20, Quantity: 0},
	}
	for _, p := range products {
		if err := service.CreateProduct(context.Background(), p); err != nil {
			t.Fatalf("CreateProduct() error: %v", err)
		}
	}

	response, err := srv.handleInventoryReport(nil, tools.InventoryReportRequest{})
	if err != nil {
		t.Fatalf("Handler returned error: %v", err)
	}

	if response.Status != "success" {
		t.Fatalf("status = %q, error = %q", response.Status, response.Error)
	}
	if response.TotalValue != 2000 {
		t.Errorf("total_value = %v, want 2000", response.TotalValue)
	}
	if response.MinPrice != 20 || response.MaxPrice != 1000 {
		t.Errorf("min/max = %v/%v", response.MinPrice, response.MaxPrice)
	}
	if response.OutOfStockCount != 1 {
		t.Errorf("out_of_stock_count = %d, want 1", response.OutOfStockCount)
	}
	if len(response.ProductsPerCategory) != 1 || response.ProductsPerCategory[0].Count != 2 {
		t.Errorf("products_per_category = %+v", response.ProductsPerCategory)
	}
}
