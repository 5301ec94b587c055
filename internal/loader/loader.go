// Package loader fetches the monthly product sales dataset and coerces its
// loosely typed fields into SalesRecords.
package loader

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"sales-dashboard/internal/errors"
	"sales-dashboard/internal/models"
	"sales-dashboard/internal/months"
)

const maxBodyBytes = 16 << 20

// Loader produces a fresh copy of the dataset on every call.
type Loader interface {
	Load(ctx context.Context) (*Result, error)
	Source() string
}

type Result struct {
	Records []models.SalesRecord
	Issues  []Issue
	Source  string
	Fetched time.Time
}

// Issue describes a row that was rejected during coercion. Row is the
// zero-based position in the source array.
type Issue struct {
	Row    int    `json:"row"`
	Field  string `json:"field"`
	Value  string `json:"value"`
	Reason string `json:"reason"`
}

func (i Issue) String() string {
	return fmt.Sprintf("row %d: %s=%q %s", i.Row, i.Field, i.Value, i.Reason)
}

// HTTPLoader fetches the dataset with a cache-busting query parameter.
type HTTPLoader struct {
	baseURL string
	path    string
	client  *http.Client
	now     func() time.Time
}

func NewHTTP(baseURL, path string, client *http.Client) *HTTPLoader {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &HTTPLoader{
		baseURL: strings.TrimRight(baseURL, "/"),
		path:    path,
		client:  client,
		now:     time.Now,
	}
}

func (l *HTTPLoader) Source() string {
	return l.baseURL + l.path
}

// URL returns the request URL for a fetch issued now.
func (l *HTTPLoader) URL() string {
	return l.Source() + "?_=" + strconv.FormatInt(l.now().UnixMilli(), 10)
}

func (l *HTTPLoader) Load(ctx context.Context) (*Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.URL(), nil)
	if err != nil {
		return nil, errors.Load(err, "build dataset request")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, errors.Load(err, "fetch dataset")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errors.Load(fmt.Errorf("unexpected status %d", resp.StatusCode), "fetch dataset")
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, errors.Load(err, "read dataset body")
	}

	return decode(body, l.Source(), l.now())
}

// FileLoader reads the dataset from disk on every call.
type FileLoader struct {
	path string
	now  func() time.Time
}

func NewFile(path string) *FileLoader {
	return &FileLoader{path: path, now: time.Now}
}

func (l *FileLoader) Source() string {
	return l.path
}

func (l *FileLoader) Load(ctx context.Context) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Load(err, "read dataset file")
	}
	body, err := os.ReadFile(l.path)
	if err != nil {
		return nil, errors.Load(err, "read dataset file")
	}
	return decode(body, l.path, l.now())
}

type rawRecord struct {
	Product field `json:"producto"`
	Month   field `json:"mes"`
	Units   field `json:"ventas"`
	Revenue field `json:"ingresos"`
}

func decode(body []byte, source string, fetched time.Time) (*Result, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, errors.Load(fmt.Errorf("empty body"), "decode dataset")
	}

	var rows []rawRecord
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, errors.Load(err, "decode dataset")
	}
	if len(rows) == 0 {
		return nil, errors.NoData("dataset is empty")
	}

	result := &Result{
		Records: make([]models.SalesRecord, 0, len(rows)),
		Source:  source,
		Fetched: fetched,
	}
	for i, row := range rows {
		rec, issue, ok := coerce(i, row)
		if !ok {
			result.Issues = append(result.Issues, issue)
			continue
		}
		result.Records = append(result.Records, rec)
	}

	if len(result.Records) == 0 {
		return nil, errors.NoData(fmt.Sprintf("all %d rows were rejected", len(rows)))
	}
	return result, nil
}

func coerce(row int, raw rawRecord) (models.SalesRecord, Issue, bool) {
	product := strings.TrimSpace(raw.Product.text)
	if !raw.Product.present || raw.Product.null || product == "" {
		return models.SalesRecord{}, Issue{Row: row, Field: "producto", Value: raw.Product.text, Reason: "is empty"}, false
	}

	month := strings.TrimSpace(raw.Month.text)
	if !months.Valid(month) {
		return models.SalesRecord{}, Issue{Row: row, Field: "mes", Value: raw.Month.text, Reason: "is not a canonical month"}, false
	}

	units, ok := raw.Units.number()
	if !ok {
		return models.SalesRecord{}, Issue{Row: row, Field: "ventas", Value: raw.Units.text, Reason: "is not a number"}, false
	}

	revenue, ok := raw.Revenue.number()
	if !ok {
		return models.SalesRecord{}, Issue{Row: row, Field: "ingresos", Value: raw.Revenue.text, Reason: "is not a number"}, false
	}

	return models.SalesRecord{
		Month:     month,
		Product:   product,
		UnitsSold: units,
		Revenue:   revenue,
	}, Issue{}, true
}

// field keeps the JSON value of a loosely typed column as text so that
// numbers may arrive either as JSON numbers or as strings.
type field struct {
	text    string
	present bool
	quoted  bool
	null    bool
}

func (f *field) UnmarshalJSON(b []byte) error {
	f.present = true
	switch {
	case string(b) == "null":
		f.null = true
	case len(b) > 0 && b[0] == '"':
		f.quoted = true
		return json.Unmarshal(b, &f.text)
	default:
		f.text = string(b)
	}
	return nil
}

// number follows JavaScript Number() for strings: whitespace is trimmed and
// an empty string is zero. Missing, null, boolean and non-finite values are
// not numbers.
func (f field) number() (float64, bool) {
	if !f.present || f.null {
		return 0, false
	}
	s := strings.TrimSpace(f.text)
	if s == "" {
		return 0, f.quoted
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
