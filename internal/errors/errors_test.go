package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestStatusCodes(t *testing.T) {
	tests := []struct {
		err  *AppError
		want int
	}{
		{Load(fmt.Errorf("dial tcp"), "fetch failed"), http.StatusBadGateway},
		{NoData("empty"), http.StatusNotFound},
		{DataQuality("bad row"), http.StatusUnprocessableEntity},
		{Superseded(), http.StatusConflict},
		{BadRequest("x"), http.StatusBadRequest},
		{Internal("x"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.err.Code), func(t *testing.T) {
			if tt.err.StatusCode != tt.want {
				t.Errorf("status = %d, want %d", tt.err.StatusCode, tt.want)
			}
		})
	}
}

func TestCodeMatching(t *testing.T) {
	cause := fmt.Errorf("connection refused")
	wrapped := fmt.Errorf("render: %w", Load(cause, "could not fetch dataset"))

	if !HasCode(wrapped, CodeLoad) {
		t.Errorf("CodeOf(wrapped) = %s, want %s", CodeOf(wrapped), CodeLoad)
	}
	if !stderrors.Is(wrapped, Load(nil, "")) {
		t.Error("errors.Is should match by code")
	}
	if stderrors.Is(wrapped, NoData("")) {
		t.Error("errors.Is should not match a different code")
	}
	if !stderrors.Is(wrapped, cause) {
		t.Error("cause should stay reachable through Unwrap")
	}
	if CodeOf(fmt.Errorf("plain")) != CodeInternal {
		t.Error("plain errors should map to INTERNAL_ERROR")
	}
	if HasCode(nil, CodeInternal) {
		t.Error("nil error has no code")
	}
}

func TestWriteError(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	w := httptest.NewRecorder()

	WriteError(w, logger, NoData("dataset is empty"), "req-1")

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNotFound)
	}

	var resp struct {
		Success bool `json:"success"`
		Error   struct {
			Code      string `json:"code"`
			RequestID string `json:"request_id"`
		} `json:"error"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Success {
		t.Error("success should be false")
	}
	if resp.Error.Code != string(CodeNoData) || resp.Error.RequestID != "req-1" {
		t.Errorf("unexpected error body: %+v", resp.Error)
	}
}

func TestWriteErrorWrapsUnknown(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	w := httptest.NewRecorder()

	WriteError(w, logger, fmt.Errorf("boom"), "")

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want %d", w.Code, http.StatusInternalServerError)
	}
}
