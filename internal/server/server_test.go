package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stocklight/stocklight/internal/enrich"
	"github.com/stocklight/stocklight/internal/inventory"
	"github.com/stocklight/stocklight/internal/translate"
	"github.com/stocklight/stocklight/internal/vector"
)

// scriptedEnricher is a scriptable Enricher for server tests.
type scriptedEnricher struct {
	category    string
	classifyErr error
	description string
	describeErr error
	receipt     *enrich.Receipt
	receiptErr  error
}

func (e *scriptedEnricher) Initialize() error { return nil }

func (e *scriptedEnricher) Classify(ctx context.Context, productName string) (string, error) {
	if e.classifyErr != nil {
		return "", e.classifyErr
	}
	return e.category, nil
}

func (e *scriptedEnricher) Describe(ctx context.Context, productName string) (string, error) {
	if e.describeErr != nil {
		return "", e.describeErr
	}
	return e.description, nil
}

func (e *scriptedEnricher) ExtractReceipt(ctx context.Context, receiptText string) (*enrich.Receipt, error) {
	if e.receiptErr != nil {
		return nil, e.receiptErr
	}
	return e.receipt, nil
}

// newTestServer builds a server over a temp-dir store and returns it with
// an httptest frontend.
func newTestServer(t *testing.T, enricher enrich.Enricher) *httptest.Server {
	t.Helper()

	store := inventory.NewSQLiteProductStore()
	if err := store.Initialize(filepath.Join(t.TempDir(), "products.db")); err != nil {
		t.Fatalf("store.Initialize() error: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	if enricher == nil {
		enricher = &scriptedEnricher{category: "Electronics", description: "A test product."}
	}

	service := inventory.NewService(store, enricher, translate.NewMockTranslator(), vector.NewMockEmbedder(8), nil)
	srv := NewServer("127.0.0.1:0", service, nil, nil, nil)

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

// doJSON sends a JSON request and decodes the JSON response into out.
func doJSON(t *testing.T, method, url string, body interface{}, out interface{}) int {
	t.Helper()

	var reqBody bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&reqBody).Encode(body); err != nil {
			t.Fatalf("failed to encode request body: %v", err)
		}
	}

	req, err := http.NewRequest(method, url, &reqBody)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
	}
	return resp.StatusCode
}

func createProduct(t *testing.T, ts *httptest.Server, name string, price float64, quantity int64) inventory.Product {
	t.Helper()

	var created inventory.Product
	status := doJSON(t, http.MethodPost, ts.URL+"/products", map[string]interface{}{
		"name":        name,
		"description": "A " + name,
		"price":       price,
		"quantity":    quantity,
	}, &created)
	if status != http.StatusCreated {
		t.Fatalf("create returned status %d, want 201", status)
	}
	return created
}

func TestCreateProduct(t *testing.T) {
	ts := newTestServer(t, nil)

	created := createProduct(t, ts, "iPhone 13", 799.99, 3)

	if created.ID == 0 {
		t.Error("created product has no ID")
	}
	if created.Category != "Electronics" {
		t.Errorf("category = %q, want auto-classified %q", created.Category, "Electronics")
	}
	if !created.InStock {
		t.Error("in_stock = false, want true")
	}
}

func TestCreateProductValidation(t *testing.T) {
	ts := newTestServer(t, nil)

	tests := []struct {
		name    string
		payload map[string]interface{}
		field   string
	}{
		{
			name:    "missing name",
			payload: map[string]interface{}{"description": "d", "price": 10, "quantity": 1},
			field:   "name",
		},
		{
			name:    "short name",
			payload: map[string]interface{}{"name": "x", "description": "d", "price": 10, "quantity": 1},
			field:   "name",
		},
		{
			name:    "missing description",
			payload: map[string]interface{}{"name": "Widget", "price": 10, "quantity": 1},
			field:   "description",
		},
		{
			name:    "price below one",
			payload: map[string]interface{}{"name": "Widget", "description": "d", "price": 0.5, "quantity": 1},
			field:   "price",
		},
		{
			name:    "negative quantity",
			payload: map[string]interface{}{"name": "Widget", "description": "d", "price": 10, "quantity": -1},
			field:   "quantity",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var resp struct {
				Errors map[string]string `json:"errors"`
			}
			status := doJSON(t, http.MethodPost, ts.URL+"/products", test.payload, &resp)

			if status != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", status)
			}
			if _, ok := resp.Errors[test.field]; !ok {
				t.Errorf("errors = %v, want message for field %q", resp.Errors, test.field)
			}
		})
	}
}

func TestCreateProductClassificationFallback(t *testing.T) {
	ts := newTestServer(t, &scriptedEnricher{classifyErr: fmt.Errorf("provider down")})

	created := createProduct(t, ts, "Mystery Item", 10, 1)
	if created.Category != "Uncategorized" {
		t.Errorf("category = %q, want %q", created.Category, "Uncategorized")
	}
}

func TestGetProductNotFound(t *testing.T) {
	ts := newTestServer(t, nil)

	var resp map[string]string
	status := doJSON(t, http.MethodGet, ts.URL+"/products/42", nil, &resp)

	if status != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", status)
	}
	if resp["message"] != "Product not found" {
		t.Errorf("body = %v", resp)
	}
}

func TestListProducts(t *testing.T) {
	ts := newTestServer(t, nil)

	createProduct(t, ts, "Keyboard", 49.99, 5)
	createProduct(t, ts, "Monitor", 199.99, 2)

	var products []inventory.Product
	status := doJSON(t, http.MethodGet, ts.URL+"/products", nil, &products)

	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}
	if len(products) != 2 {
		t.Fatalf("got %d products, want 2", len(products))
	}
}

func TestUpdateProductPartial(t *testing.T) {
	ts := newTestServer(t, nil)

	created := createProduct(t, ts, "Monitor", 199.99, 2)

	var updated inventory.Product
	url := fmt.Sprintf("%s/products/%d", ts.URL, created.ID)
	status := doJSON(t, http.MethodPut, url, map[string]interface{}{"quantity": 0}, &updated)

	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}
	if updated.Quantity != 0 || updated.InStock {
		t.Errorf("updated = %+v, want quantity 0 and in_stock false", updated)
	}
	if updated.Name != "Monitor" {
		t.Errorf("name = %q, partial update must not clear it", updated.Name)
	}
}

func TestUpdateProductValidatesProvidedFields(t *testing.T) {
	ts := newTestServer(t, nil)

	created := createProduct(t, ts, "Monitor", 199.99, 2)

	var resp struct {
		Errors map[string]string `json:"errors"`
	}
	url := fmt.Sprintf("%s/products/%d", ts.URL, created.ID)
	status := doJSON(t, http.MethodPut, url, map[string]interface{}{"price": 0.1}, &resp)

	if status != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", status)
	}
	if _, ok := resp.Errors["price"]; !ok {
		t.Errorf("errors = %v, want message for price", resp.Errors)
	}
}

func TestDeleteProductReturnsProduct(t *testing.T) {
	ts := newTestServer(t, nil)

	created := createProduct(t, ts, "Cable", 9.99, 20)

	var deleted inventory.Product
	url := fmt.Sprintf("%s/products/%d", ts.URL, created.ID)
	status := doJSON(t, http.MethodDelete, url, nil, &deleted)

	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}
	if deleted.ID != created.ID || deleted.Name != "Cable" {
		t.Errorf("deleted = %+v", deleted)
	}

	if status := doJSON(t, http.MethodGet, url, nil, nil); status != http.StatusNotFound {
		t.Errorf("get after delete status = %d, want 404", status)
	}
}

func TestAggregateReports(t *testing.T) {
	ts := newTestServer(t, nil)

	createProduct(t, ts, "Laptop", 1000, 2)
	createProduct(t, ts, "Mouse", 20, 10)
	createProduct(t, ts, "Broken Mouse", 15, 0)

	var total float64
	if status := doJSON(t, http.MethodGet, ts.URL+"/products/total_value", nil, &total); status != http.StatusOK {
		t.Fatalf("total_value status = %d", status)
	}
	if total != 2200 {
		t.Errorf("total_value = %v, want 2200", total)
	}

	var minMax map[string]float64
	if status := doJSON(t, http.MethodGet, ts.URL+"/products/min_max_price", nil, &minMax); status != http.StatusOK {
		t.Fatalf("min_max_price status = %d", status)
	}
	if minMax["min_price"] != 15 || minMax["max_price"] != 1000 {
		t.Errorf("min_max_price = %v", minMax)
	}

	var counts []inventory.CategoryCount
	if status := doJSON(t, http.MethodGet, ts.URL+"/products/total_products_per_category", nil, &counts); status != http.StatusOK {
		t.Fatalf("total_products_per_category status = %d", status)
	}
	if len(counts) != 1 || counts[0].Category != "Electronics" || counts[0].Count != 3 {
		t.Errorf("counts = %+v", counts)
	}

	var outOfStock []inventory.Product
	if status := doJSON(t, http.MethodGet, ts.URL+"/products/out_of_stock", nil, &outOfStock); status != http.StatusOK {
		t.Fatalf("out_of_stock status = %d", status)
	}
	if len(outOfStock) != 1 || outOfStock[0].Name != "Broken Mouse" {
		t.Errorf("out_of_stock = %+v", outOfStock)
	}

	var expensive []inventory.Product
	if status := doJSON(t, http.MethodGet, ts.URL+"/products/most_expensive", nil, &expensive); status != http.StatusOK {
		t.Fatalf("most_expensive status = %d", status)
	}
	if len(expensive) != 3 || expensive[0].Name != "Laptop" {
		t.Errorf("most_expensive = %+v", expensive)
	}
}

func TestAggregatesEmptyTable(t *testing.T) {
	ts := newTestServer(t, nil)

	var avg float64
	if status := doJSON(t, http.MethodGet, ts.URL+"/products/avg_product_price", nil, &avg); status != http.StatusOK {
		t.Fatalf("avg_product_price status = %d", status)
	}
	if avg != 0 {
		t.Errorf("avg_product_price = %v, want 0", avg)
	}
}

func TestClassifyBatch(t *testing.T) {
	ts := newTestServer(t, &scriptedEnricher{category: "Gadgets"})

	first := createProduct(t, ts, "Widget", 10, 1)
	second := createProduct(t, ts, "Gizmo", 20, 1)

	var resp struct {
		UpdatedProducts []inventory.ClassifiedProduct `json:"updated_products"`
	}
	status := doJSON(t, http.MethodPut, ts.URL+"/products/classify_batch",
		map[string]interface{}{"product_ids": []int64{first.ID, second.ID}}, &resp)

	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}
	if len(resp.UpdatedProducts) != 2 {
		t.Fatalf("updated_products = %+v", resp.UpdatedProducts)
	}
	for _, p := range resp.UpdatedProducts {
		if p.Category != "Gadgets" {
			t.Errorf("product %d category = %q", p.ID, p.Category)
		}
	}
}

func TestClassifyBatchMissingID(t *testing.T) {
	ts := newTestServer(t, nil)

	first := createProduct(t, ts, "Widget", 10, 1)

	var resp map[string]string
	status := doJSON(t, http.MethodPut, ts.URL+"/products/classify_batch",
		map[string]interface{}{"product_ids": []int64{first.ID, 999}}, &resp)

	if status != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", status)
	}
	if resp["error"] != "Some product IDs not found" {
		t.Errorf("body = %v", resp)
	}
}

func TestTranslateBatch(t *testing.T) {
	ts := newTestServer(t, nil)

	created := createProduct(t, ts, "Laptop", 1000, 1)

	var resp struct {
		UpdatedProducts []inventory.Product `json:"updated_products"`
	}
	status := doJSON(t, http.MethodPut, ts.URL+"/products/translate",
		map[string]interface{}{"product_ids": []int64{created.ID}}, &resp)

	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}
	if len(resp.UpdatedProducts) != 1 || resp.UpdatedProducts[0].ArabicName != "[ar] Laptop" {
		t.Errorf("updated_products = %+v", resp.UpdatedProducts)
	}
}

func TestEmbedAndSimilarity(t *testing.T) {
	ts := newTestServer(t, nil)

	first := createProduct(t, ts, "Laptop", 1000, 1)
	second := createProduct(t, ts, "Laptop Sleeve", 30, 1)

	var embedResp struct {
		UpdatedProducts []inventory.EmbeddedProduct `json:"updated_products"`
	}
	status := doJSON(t, http.MethodPut, ts.URL+"/products/embedding",
		map[string]interface{}{"product_ids": []int64{first.ID, second.ID}}, &embedResp)

	if status != http.StatusOK {
		t.Fatalf("embedding status = %d, want 200", status)
	}
	if len(embedResp.UpdatedProducts) != 2 || len(embedResp.UpdatedProducts[0].Embedding) != 8 {
		t.Fatalf("updated_products = %+v", embedResp.UpdatedProducts)
	}

	var simResp similarityResponse
	url := fmt.Sprintf("%s/products/similarity_by_id/%d", ts.URL, first.ID)
	if status := doJSON(t, http.MethodGet, url, nil, &simResp); status != http.StatusOK {
		t.Fatalf("similarity_by_id status = %d, want 200", status)
	}
	if len(simResp.SimilarProducts) != 1 || simResp.SimilarProducts[0].ID != second.ID {
		t.Errorf("similar_products = %+v", simResp.SimilarProducts)
	}

	var nameResp similarityResponse
	nameURL := ts.URL + "/products/similarity_by_name?name=portable+computer&limit=1"
	if status := doJSON(t, http.MethodGet, nameURL, nil, &nameResp); status != http.StatusOK {
		t.Fatalf("similarity_by_name status = %d, want 200", status)
	}
	if len(nameResp.SimilarProducts) != 1 {
		t.Errorf("similar_products = %+v", nameResp.SimilarProducts)
	}
}

func TestSimilarityByIDNoEmbedding(t *testing.T) {
	ts := newTestServer(t, nil)

	created := createProduct(t, ts, "Widget", 10, 1)

	var resp map[string]string
	url := fmt.Sprintf("%s/products/similarity_by_id/%d", ts.URL, created.ID)
	status := doJSON(t, http.MethodGet, url, nil, &resp)

	if status != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", status)
	}
	if resp["message"] != "Product has no embedding" {
		t.Errorf("body = %v", resp)
	}
}

func TestSimilarityByNameMissingName(t *testing.T) {
	ts := newTestServer(t, nil)

	status := doJSON(t, http.MethodGet, ts.URL+"/products/similarity_by_name", nil, nil)
	if status != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", status)
	}
}

func TestDescribeBatchUpstreamFailure(t *testing.T) {
	ts := newTestServer(t, &scriptedEnricher{category: "Electronics", describeErr: fmt.Errorf("provider down")})

	created := createProduct(t, ts, "Widget", 10, 1)

	status := doJSON(t, http.MethodPut, ts.URL+"/products/describe",
		map[string]interface{}{"product_ids": []int64{created.ID}}, nil)

	if status != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", status)
	}
}

func TestReceiptImport(t *testing.T) {
	enricher := &scriptedEnricher{
		category:    "Groceries",
		description: "A grocery item.",
		receipt: &enrich.Receipt{
			Items: []enrich.ReceiptItem{
				{Name: "Oat Milk", Quantity: 2, Price: 2.5},
			},
			Store:       "Corner Market",
			Date:        "2026-08-20",
			TotalAmount: 5.0,
		},
	}
	ts := newTestServer(t, enricher)

	var resp receiptResponse
	status := doJSON(t, http.MethodPost, ts.URL+"/products/receipt",
		map[string]string{"text": "OAT MILK x2 5.00"}, &resp)

	if status != http.StatusCreated {
		t.Fatalf("status = %d, want 201", status)
	}
	if resp.Store != "Corner Market" || len(resp.CreatedProducts) != 1 {
		t.Fatalf("response = %+v", resp)
	}
	if resp.CreatedProducts[0].Name != "Oat Milk" || resp.CreatedProducts[0].Category != "Groceries" {
		t.Errorf("created product = %+v", resp.CreatedProducts[0])
	}
}

func TestReceiptMissingText(t *testing.T) {
	ts := newTestServer(t, nil)

	status := doJSON(t, http.MethodPost, ts.URL+"/products/receipt", map[string]string{}, nil)
	if status != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", status)
	}
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t, nil)

	var resp healthResponse
	status := doJSON(t, http.MethodGet, ts.URL+"/health", nil, &resp)

	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}
	if resp.Status != "ok" {
		t.Errorf("status = %q, want %q", resp.Status, "ok")
	}
}
