package server

import (
	"encoding/json"
	"net/http"
	"strconv"
)

// pathID parses the {id} path segment. A non-numeric ID is reported as a
// missing product, matching the route-level behavior of integer converters.
func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// decodeBody decodes the request body into v.
func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeValidationErrors(w, map[string]string{"_body": "Invalid JSON body."})
		return false
	}
	return true
}

// handleCreateProduct handles POST /products.
func (s *Server) handleCreateProduct(w http.ResponseWriter, r *http.Request) {
	var payload productPayload
	if !decodeBody(w, r, &payload) {
		return
	}
	if fieldErrors := payload.validate(false); fieldErrors != nil {
		writeValidationErrors(w, fieldErrors)
		return
	}

	product := payload.toProduct()
	if err := s.service.CreateProduct(r.Context(), product); err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, product)
}

// handleListProducts handles GET /products.
func (s *Server) handleListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := s.service.ListProducts(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

// handleGetProduct handles GET /products/{id}.
func (s *Server) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeNotFound(w, "Product not found")
		return
	}

	product, err := s.service.GetProduct(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

// handleUpdateProduct handles PUT /products/{id}. Only the provided fields
// are validated and applied.
func (s *Server) handleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeNotFound(w, "Product not found")
		return
	}

	var payload productPayload
	if !decodeBody(w, r, &payload) {
		return
	}
	if fieldErrors := payload.validate(true); fieldErrors != nil {
		writeValidationErrors(w, fieldErrors)
		return
	}

	product, err := s.service.UpdateProduct(r.Context(), id, payload.toPatch())
	if err != nil {
		handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

// handleDeleteProduct handles DELETE /products/{id} and returns the
// deleted product.
func (s *Server) handleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeNotFound(w, "Product not found")
		return
	}

	product, err := s.service.GetProduct(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}
	if err := s.service.DeleteProduct(r.Context(), id); err != nil {
		handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, product)
}
