package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stocklight/stocklight/internal/errortypes"
	"github.com/stocklight/stocklight/internal/inventory"
)

func TestHandleErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{
			name:       "product not found",
			err:        inventory.ErrProductNotFound,
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "wrapped product not found",
			err:        fmt.Errorf("lookup: %w", inventory.ErrProductNotFound),
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "missing embedding",
			err:        inventory.ErrMissingEmbedding,
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "validation error",
			err:        errortypes.ValidationError(errors.New("bad input"), "invalid request"),
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "typed not-found error",
			err:        errortypes.NotFoundError(errors.New("no such row"), "lookup failed"),
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "database error",
			err:        errortypes.DatabaseError(errors.New("disk I/O error"), "query failed"),
			wantStatus: http.StatusInternalServerError,
		},
		{
			name:       "network error",
			err:        errortypes.NetworkError(errors.New("connection refused"), "provider unreachable"),
			wantStatus: http.StatusBadGateway,
		},
		{
			name:       "api error",
			err:        errortypes.APIError(errors.New("status 500"), "provider call failed"),
			wantStatus: http.StatusBadGateway,
		},
		{
			name:       "external error",
			err:        errortypes.ExternalError(errors.New("status 403"), "translation failed"),
			wantStatus: http.StatusBadGateway,
		},
		{
			name:       "plain error",
			err:        errors.New("something broke"),
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			handleError(recorder, test.err)

			if recorder.Code != test.wantStatus {
				t.Errorf("status = %d, want %d", recorder.Code, test.wantStatus)
			}
			if ct := recorder.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("Content-Type = %q, want application/json", ct)
			}
		})
	}
}

func TestNotFoundBody(t *testing.T) {
	recorder := httptest.NewRecorder()
	handleError(recorder, inventory.ErrProductNotFound)

	var body map[string]string
	if err := json.Unmarshal(recorder.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body["message"] != "Product not found" {
		t.Errorf("body = %v", body)
	}
}

func TestErrorEnvelope(t *testing.T) {
	recorder := httptest.NewRecorder()
	handleError(recorder, errortypes.APIError(errors.New("status 500"), "provider call failed"))

	var resp ErrorResponse
	if err := json.Unmarshal(recorder.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if resp.Status != "error" || resp.Code != StatusCodeUpstreamError {
		t.Errorf("envelope = %+v", resp)
	}
	if resp.Details["error"] == "" {
		t.Error("envelope missing error details")
	}
}
