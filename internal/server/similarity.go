package server

import (
	"net/http"
	"strconv"

	"github.com/stocklight/stocklight/internal/inventory"
)

// similarProductView is one row of a similarity response.
type similarProductView struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// similarityResponse wraps ranked similarity results.
type similarityResponse struct {
	SimilarProducts []similarProductView `json:"similar_products"`
}

// queryLimit parses the optional limit query parameter, 0 when absent.
func queryLimit(r *http.Request) int {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return 0
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		return 0
	}
	return limit
}

func toSimilarityResponse(results []inventory.SimilarProduct) similarityResponse {
	views := make([]similarProductView, 0, len(results))
	for _, result := range results {
		views = append(views, similarProductView{ID: result.ID, Name: result.Name})
	}
	return similarityResponse{SimilarProducts: views}
}

// handleSimilarityByID handles GET /products/similarity_by_id/{id}.
func (s *Server) handleSimilarityByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeNotFound(w, "Product not found")
		return
	}

	results, err := s.service.SimilarByID(r.Context(), id, queryLimit(r))
	if err != nil {
		handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toSimilarityResponse(results))
}

// handleSimilarityByName handles GET /products/similarity_by_name.
func (s *Server) handleSimilarityByName(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		writeValidationErrors(w, map[string]string{"name": msgRequired})
		return
	}

	results, err := s.service.SimilarByText(r.Context(), name, queryLimit(r))
	if err != nil {
		handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toSimilarityResponse(results))
}
