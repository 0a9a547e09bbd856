package httputil

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	gwerrors "github.com/relaedzc/simple-fireblocks-service/internal/errors"
)

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteJSON(rec, http.StatusCreated, map[string]string{"id": "0"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("content type = %q", ct)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != `{"id":"0"}` {
		t.Fatalf("body = %s", got)
	}
}

func TestWriteErrorMapsTaxonomy(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, gwerrors.Validation("limit must be between 1 and 500"))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != `{"detail":"limit must be between 1 and 500"}` {
		t.Fatalf("body = %s", got)
	}
}

func TestWriteErrorHidesUnknownCauses(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, gwerrors.Unknown(http.ErrBodyNotAllowed))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "http:") {
		t.Fatalf("raw cause leaked: %s", rec.Body.String())
	}
}

func TestDecodeJSON(t *testing.T) {
	var v struct {
		Name string `json:"name"`
	}
	rec := httptest.NewRecorder()
	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"name":"ok"}`))
	if !DecodeJSON(rec, r, &v) {
		t.Fatalf("DecodeJSON failed: %s", rec.Body.String())
	}
	if v.Name != "ok" {
		t.Fatalf("decoded = %+v", v)
	}
}

func TestDecodeJSONRejectsMalformedBody(t *testing.T) {
	var v map[string]any
	rec := httptest.NewRecorder()
	r := httptest.NewRequest("POST", "/", strings.NewReader(`{broken`))
	if DecodeJSON(rec, r, &v) {
		t.Fatalf("expected decode failure")
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != `{"detail":"invalid JSON body"}` {
		t.Fatalf("body = %s", got)
	}
}
