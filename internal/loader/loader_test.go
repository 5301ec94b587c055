package loader

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"sales-dashboard/internal/errors"
	"sales-dashboard/internal/models"
)

const sampleDataset = `[
  {"producto": "A", "mes": "Enero", "ventas": "10", "ingresos": "100"},
  {"producto": "B", "mes": "Enero", "ventas": 20, "ingresos": 50.5},
  {"producto": "A", "mes": "Febrero", "ventas": " 5 ", "ingresos": ""}
]`

func TestDecode_Coercion(t *testing.T) {
	result, err := decode([]byte(sampleDataset), "", time.Now())
	if err != nil {
		t.Fatalf("decode() error = %v", err)
	}

	want := []models.SalesRecord{
		{Month: "Enero", Product: "A", UnitsSold: 10, Revenue: 100},
		{Month: "Enero", Product: "B", UnitsSold: 20, Revenue: 50.5},
		{Month: "Febrero", Product: "A", UnitsSold: 5, Revenue: 0},
	}
	if diff := cmp.Diff(want, result.Records); diff != "" {
		t.Errorf("records mismatch (-want +got):\n%s", diff)
	}
	if len(result.Issues) != 0 {
		t.Errorf("unexpected issues: %v", result.Issues)
	}
}

func TestDecode_RejectsBadRows(t *testing.T) {
	payload := `[
	  {"producto": "A", "mes": "Enero", "ventas": "10", "ingresos": "100"},
	  {"producto": "A", "mes": "Enero", "ventas": "diez", "ingresos": "100"},
	  {"producto": "A", "mes": "January", "ventas": "1", "ingresos": "1"},
	  {"producto": "", "mes": "Enero", "ventas": "1", "ingresos": "1"},
	  {"producto": "A", "mes": "Enero", "ventas": "1"},
	  {"producto": "A", "mes": "Enero", "ventas": null, "ingresos": "1"},
	  {"producto": "A", "mes": "Enero", "ventas": true, "ingresos": "1"}
	]`

	result, err := decode([]byte(payload), "", time.Now())
	if err != nil {
		t.Fatalf("decode() error = %v", err)
	}

	if len(result.Records) != 1 {
		t.Errorf("records = %d, want 1", len(result.Records))
	}

	gotFields := make([]string, 0, len(result.Issues))
	for _, issue := range result.Issues {
		gotFields = append(gotFields, issue.Field)
	}
	wantFields := []string{"ventas", "mes", "producto", "ingresos", "ventas", "ventas"}
	if diff := cmp.Diff(wantFields, gotFields); diff != "" {
		t.Errorf("issue fields mismatch (-want +got):\n%s", diff)
	}
	if result.Issues[0].Row != 1 {
		t.Errorf("first issue row = %d, want 1", result.Issues[0].Row)
	}
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name     string
		payload  string
		wantCode errors.ErrorCode
	}{
		{"empty body", "", errors.CodeLoad},
		{"malformed json", `[{"producto":`, errors.CodeLoad},
		{"object instead of array", `{"producto": "A"}`, errors.CodeLoad},
		{"null", `null`, errors.CodeNoData},
		{"empty array", `[]`, errors.CodeNoData},
		{"all rows rejected", `[{"producto": "A", "mes": "X", "ventas": 1, "ingresos": 1}]`, errors.CodeNoData},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := decode([]byte(tt.payload), "", time.Now())
			if !errors.HasCode(err, tt.wantCode) {
				t.Errorf("error = %v, want code %s", err, tt.wantCode)
			}
		})
	}
}

func TestHTTPLoader_CacheBuster(t *testing.T) {
	var gotQuery, gotCache, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query().Get("_")
		gotCache = r.Header.Get("Cache-Control")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(sampleDataset))
	}))
	defer srv.Close()

	l := NewHTTP(srv.URL+"/", "/data/productos.json", srv.Client())
	l.now = func() time.Time { return time.UnixMilli(1700000000123) }

	result, err := l.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if gotPath != "/data/productos.json" {
		t.Errorf("path = %q", gotPath)
	}
	if gotQuery != "1700000000123" {
		t.Errorf("cache buster = %q, want 1700000000123", gotQuery)
	}
	if gotCache != "no-cache" {
		t.Errorf("Cache-Control = %q, want no-cache", gotCache)
	}
	if len(result.Records) != 3 {
		t.Errorf("records = %d, want 3", len(result.Records))
	}
	if result.Source != srv.URL+"/data/productos.json" {
		t.Errorf("source = %q", result.Source)
	}
}

func TestHTTPLoader_Failures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := NewHTTP(srv.URL, "/data/productos.json", srv.Client()).Load(context.Background())
	if !errors.HasCode(err, errors.CodeLoad) {
		t.Errorf("5xx should be a load error, got %v", err)
	}

	srv.Close()
	_, err = NewHTTP(srv.URL, "/data/productos.json", nil).Load(context.Background())
	if !errors.HasCode(err, errors.CodeLoad) {
		t.Errorf("closed server should be a load error, got %v", err)
	}
}

func TestFileLoader(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "productos.json")
	if err := os.WriteFile(path, []byte(sampleDataset), 0o644); err != nil {
		t.Fatal(err)
	}

	l := NewFile(path)
	result, err := l.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(result.Records) != 3 {
		t.Errorf("records = %d, want 3", len(result.Records))
	}

	// Every call rereads the file.
	if err := os.WriteFile(path, []byte(`[]`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := l.Load(context.Background()); !errors.HasCode(err, errors.CodeNoData) {
		t.Errorf("rewritten empty file should yield NO_DATA, got %v", err)
	}

	if _, err := NewFile(filepath.Join(dir, "missing.json")).Load(context.Background()); !errors.HasCode(err, errors.CodeLoad) {
		t.Errorf("missing file should yield LOAD_ERROR, got %v", err)
	}
}
