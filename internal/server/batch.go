package server

import (
	"errors"
	"net/http"

	"github.com/stocklight/stocklight/internal/inventory"
)

// batchRequest is the JSON body of the batch AI operations.
type batchRequest struct {
	ProductIDs []int64 `json:"product_ids"`
}

// decodeBatch decodes and validates a batch request body.
func decodeBatch(w http.ResponseWriter, r *http.Request) ([]int64, bool) {
	var req batchRequest
	if !decodeBody(w, r, &req) {
		return nil, false
	}
	if len(req.ProductIDs) == 0 {
		writeValidationErrors(w, map[string]string{"product_ids": msgRequired})
		return nil, false
	}
	return req.ProductIDs, true
}

// handleBatchError maps batch failures: any missing ID rejects the whole
// batch with the batch-specific 404 body.
func handleBatchError(w http.ResponseWriter, err error) {
	if errors.Is(err, inventory.ErrProductNotFound) {
		writeBatchNotFound(w)
		return
	}
	handleError(w, err)
}

// handleClassifyBatch handles PUT /products/classify_batch.
func (s *Server) handleClassifyBatch(w http.ResponseWriter, r *http.Request) {
	ids, ok := decodeBatch(w, r)
	if !ok {
		return
	}

	results, err := s.service.ClassifyBatch(r.Context(), ids)
	if err != nil {
		handleBatchError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"updated_products": results})
}

// handleTranslateBatch handles PUT /products/translate.
func (s *Server) handleTranslateBatch(w http.ResponseWriter, r *http.Request) {
	ids, ok := decodeBatch(w, r)
	if !ok {
		return
	}

	products, err := s.service.TranslateBatch(r.Context(), ids)
	if err != nil {
		handleBatchError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"updated_products": products})
}

// handleEmbedBatch handles PUT /products/embedding.
func (s *Server) handleEmbedBatch(w http.ResponseWriter, r *http.Request) {
	ids, ok := decodeBatch(w, r)
	if !ok {
		return
	}

	results, err := s.service.EmbedBatch(r.Context(), ids)
	if err != nil {
		handleBatchError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"updated_products": results})
}

// handleDescribeBatch handles PUT /products/describe.
func (s *Server) handleDescribeBatch(w http.ResponseWriter, r *http.Request) {
	ids, ok := decodeBatch(w, r)
	if !ok {
		return
	}

	results, err := s.service.DescribeBatch(r.Context(), ids)
	if err != nil {
		handleBatchError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"updated_products": results})
}

// receiptRequest is the JSON body of POST /products/receipt.
type receiptRequest struct {
	Text string `json:"text"`
}

// receiptResponse is the JSON response of POST /products/receipt.
type receiptResponse struct {
	CreatedProducts []*inventory.Product `json:"created_products"`
	Store           string               `json:"store"`
	Date            string               `json:"date"`
	TotalAmount     float64              `json:"total_amount"`
}

// handleReceipt handles POST /products/receipt: parse receipt text and
// create one product per line item.
func (s *Server) handleReceipt(w http.ResponseWriter, r *http.Request) {
	var req receiptRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Text == "" {
		writeValidationErrors(w, map[string]string{"text": msgRequired})
		return
	}

	products, receipt, err := s.service.ImportReceipt(r.Context(), req.Text)
	if err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, receiptResponse{
		CreatedProducts: products,
		Store:           receipt.Store,
		Date:            receipt.Date,
		TotalAmount:     receipt.TotalAmount,
	})
}
