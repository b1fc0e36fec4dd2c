package httputil

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	dErrors "verity/pkg/domain-errors"
)

func TestWriteError(t *testing.T) {
	t.Run("internal error omits description", func(t *testing.T) {
		w := httptest.NewRecorder()
		WriteError(w, dErrors.New(dErrors.CodeInternal, "db failed"))

		if w.Code != http.StatusInternalServerError {
			t.Fatalf("expected status %d, got %d", http.StatusInternalServerError, w.Code)
		}

		var body map[string]string
		if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if body["error"] != "internal_error" {
			t.Fatalf("expected error code internal_error, got %q", body["error"])
		}
		if _, ok := body["error_description"]; ok {
			t.Fatalf("expected error_description to be omitted for internal errors")
		}
	})

	t.Run("not found includes description", func(t *testing.T) {
		w := httptest.NewRecorder()
		WriteError(w, dErrors.New(dErrors.CodeNotFound, "escalation not found"))

		if w.Code != http.StatusNotFound {
			t.Fatalf("expected status %d, got %d", http.StatusNotFound, w.Code)
		}

		var body map[string]string
		if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if body["error_description"] != "escalation not found" {
			t.Fatalf("expected error_description to be returned, got %q", body["error_description"])
		}
	})
}

type statusRequest struct {
	Status string `json:"status"`
}

func (r *statusRequest) Validate() error {
	r.Status = strings.TrimSpace(r.Status)
	if r.Status == "" {
		return dErrors.New(dErrors.CodeValidation, "status is required")
	}
	return nil
}

func TestDecodeAndPrepare(t *testing.T) {
	ctx := context.Background()

	t.Run("valid body is decoded and normalized", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"status":"  RESOLVED "}`))
		w := httptest.NewRecorder()

		req, ok := DecodeAndPrepare[statusRequest](w, r, nil, ctx, "req-1")
		if !ok {
			t.Fatalf("expected decode to succeed, got status %d", w.Code)
		}
		if req.Status != "RESOLVED" {
			t.Fatalf("expected trimmed status, got %q", req.Status)
		}
	})

	t.Run("unknown fields are rejected", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"status":"x","extra":1}`))
		w := httptest.NewRecorder()

		_, ok := DecodeAndPrepare[statusRequest](w, r, nil, ctx, "req-2")
		if ok || w.Code != http.StatusBadRequest {
			t.Fatalf("expected bad request, got ok=%v status=%d", ok, w.Code)
		}
	})

	t.Run("validation failure writes error", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"status":" "}`))
		w := httptest.NewRecorder()

		_, ok := DecodeAndPrepare[statusRequest](w, r, nil, ctx, "req-3")
		if ok || w.Code != http.StatusBadRequest {
			t.Fatalf("expected validation failure, got ok=%v status=%d", ok, w.Code)
		}
	})
}
