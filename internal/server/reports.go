package server

import (
	"net/http"
)

// mostExpensiveLimit is the number of products returned by the
// most-expensive report.
const mostExpensiveLimit = 5

// handleTotalValue handles GET /products/total_value.
func (s *Server) handleTotalValue(w http.ResponseWriter, r *http.Request) {
	total, err := s.service.TotalValue(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, total)
}

// handleAveragePrice handles GET /products/avg_product_price.
func (s *Server) handleAveragePrice(w http.ResponseWriter, r *http.Request) {
	avg, err := s.service.AveragePrice(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, avg)
}

// handleMinMaxPrice handles GET /products/min_max_price.
func (s *Server) handleMinMaxPrice(w http.ResponseWriter, r *http.Request) {
	min, max, err := s.service.MinMaxPrice(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]float64{
		"min_price": min,
		"max_price": max,
	})
}

// handleCountPerCategory handles GET /products/total_products_per_category.
func (s *Server) handleCountPerCategory(w http.ResponseWriter, r *http.Request) {
	counts, err := s.service.CountByCategory(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, counts)
}

// handleValuePerCategory handles GET /products/value_per_category.
func (s *Server) handleValuePerCategory(w http.ResponseWriter, r *http.Request) {
	values, err := s.service.ValueByCategory(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, values)
}

// handleOutOfStock handles GET /products/out_of_stock.
func (s *Server) handleOutOfStock(w http.ResponseWriter, r *http.Request) {
	products, err := s.service.OutOfStock(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

// handleMostExpensive handles GET /products/most_expensive.
func (s *Server) handleMostExpensive(w http.ResponseWriter, r *http.Request) {
	products, err := s.service.MostExpensive(r.Context(), mostExpensiveLimit)
	if err != nil {
		handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, products)
}
