package analytics

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/pratoquente/pratoquente-backend/internal/aggregate"
	"github.com/pratoquente/pratoquente-backend/internal/dataset"
)

func explorerRows(now time.Time) dataset.Rows {
	createdAt := now.Add(-24 * time.Hour)
	return dataset.Rows{
		testLine(uuid.New(), "X-Burger", "iFood", 50, 50, createdAt),
		testLine(uuid.New(), "X-Burger", "iFood", 30, 30, createdAt),
		testLine(uuid.New(), "Fries", "Balcao", 10, 10, createdAt),
	}
}

func TestExplorerAggregatesFlat(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	timeNowUTC = func() time.Time { return now }
	defer func() { timeNowUTC = func() time.Time { return time.Now().UTC() } }()

	stub := &testSalesService{rows: explorerRows(now)}
	handler := Explorer(stub, testLogger(), nil)

	body := `{"dimension":"product","metric":"revenue"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/analytics/explorer?preset=7d", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", resp.Code, resp.Body.String())
	}

	var envelope struct {
		Data aggregate.Result `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(envelope.Data.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %+v", envelope.Data.Entries)
	}
	if envelope.Data.Entries[0].Label != "X-Burger" || envelope.Data.Entries[0].Value != 80 {
		t.Fatalf("unexpected top entry: %+v", envelope.Data.Entries[0])
	}
	if envelope.Data.Pivot != nil {
		t.Fatal("flat request should not produce a pivot")
	}
}

func TestExplorerRejectsMatchingSegment(t *testing.T) {
	stub := &testSalesService{}
	handler := Explorer(stub, testLogger(), nil)

	body := `{"dimension":"product","segment":"product","metric":"revenue"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/analytics/explorer", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for matching segment, got %d", resp.Code)
	}
	if stub.called() {
		t.Fatal("service should not be invoked on invalid aggregation")
	}

	var envelope struct {
		Error struct {
			Details map[string]string `json:"details"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if _, ok := envelope.Error.Details["dimension"]; !ok {
		t.Fatalf("expected dimension detail, got %+v", envelope.Error.Details)
	}
	if _, ok := envelope.Error.Details["segment"]; !ok {
		t.Fatalf("expected segment detail, got %+v", envelope.Error.Details)
	}
}

func TestExplorerRejectsUnknownBodyField(t *testing.T) {
	stub := &testSalesService{}
	handler := Explorer(stub, testLogger(), nil)

	body := `{"dimension":"product","metric":"revenue","bogus":true}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/analytics/explorer", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown field, got %d", resp.Code)
	}
}

func TestExplorerExportWritesCSV(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	timeNowUTC = func() time.Time { return now }
	defer func() { timeNowUTC = func() time.Time { return time.Now().UTC() } }()

	stub := &testSalesService{rows: explorerRows(now)}
	handler := ExplorerExport(stub, testLogger(), nil)

	req := httptest.NewRequest(http.MethodGet,
		"/api/v1/analytics/explorer/export?dimension=product&metric=revenue&preset=7d", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", resp.Code, resp.Body.String())
	}
	if got := resp.Header().Get("Content-Type"); !strings.HasPrefix(got, "text/csv") {
		t.Fatalf("unexpected content type %q", got)
	}
	if got := resp.Header().Get("Content-Disposition"); !strings.Contains(got, "explorer.csv") {
		t.Fatalf("unexpected disposition %q", got)
	}

	lines := strings.Split(strings.TrimSpace(resp.Body.String()), "\n")
	if lines[0] != "label,value" {
		t.Fatalf("unexpected header %q", lines[0])
	}
	if len(lines) != 3 {
		t.Fatalf("expected header plus 2 rows, got %v", lines)
	}
}
