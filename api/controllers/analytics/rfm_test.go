package analytics

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/pratoquente/pratoquente-backend/internal/dataset"
	"github.com/pratoquente/pratoquente-backend/internal/rfm"
)

func rfmRows(now time.Time, customerID uuid.UUID) dataset.Rows {
	rows := dataset.Rows{}
	for _, daysAgo := range []int{60, 50, 40} {
		line := testLine(uuid.New(), "X-Burger", "iFood", 50, 50,
			now.Add(-time.Duration(daysAgo)*24*time.Hour))
		line.CustomerID = &customerID
		rows = append(rows, line)
	}
	return rows
}

func TestRFMAppliesDefaultThresholds(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	timeNowUTC = func() time.Time { return now }
	defer func() { timeNowUTC = func() time.Time { return time.Now().UTC() } }()

	// Every order predates the default 30d window. A lapsed customer is
	// exactly who the report is for, so scoring must read the full
	// history, not the windowed rows.
	customerID := uuid.New()
	stub := &testSalesService{
		history: rfmRows(now, customerID),
		names:   map[uuid.UUID]string{customerID: "Ana Souza"},
	}
	handler := RFM(stub, testLogger(), nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/analytics/rfm", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", resp.Code, resp.Body.String())
	}
	if stub.called() {
		t.Fatal("scoring must not read the windowed row set")
	}
	if stub.historyCalls == 0 {
		t.Fatal("expected the full history to be loaded")
	}

	var envelope struct {
		Data []rfm.Customer `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(envelope.Data) != 1 {
		t.Fatalf("expected one customer, got %+v", envelope.Data)
	}
	got := envelope.Data[0]
	if got.Name != "Ana Souza" || got.Frequency != 3 {
		t.Fatalf("unexpected customer: %+v", got)
	}
	if got.RecencyDays != 40 {
		t.Fatalf("expected recency 40, got %d", got.RecencyDays)
	}
	if got.Monetary != 150 {
		t.Fatalf("expected monetary 150, got %v", got.Monetary)
	}
}

func TestRFMHonorsExplicitThresholds(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	timeNowUTC = func() time.Time { return now }
	defer func() { timeNowUTC = func() time.Time { return time.Now().UTC() } }()

	customerID := uuid.New()
	stub := &testSalesService{
		rows:  rfmRows(now, customerID),
		names: map[uuid.UUID]string{customerID: "Ana Souza"},
	}
	handler := RFM(stub, testLogger(), nil)

	req := httptest.NewRequest(http.MethodGet,
		"/api/v1/analytics/rfm?preset=90d&min_frequency=4", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.Code)
	}

	var envelope struct {
		Data []rfm.Customer `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(envelope.Data) != 0 {
		t.Fatalf("expected no customers above frequency 4, got %+v", envelope.Data)
	}
}

func TestRFMRejectsOutOfRangeThreshold(t *testing.T) {
	stub := &testSalesService{}
	handler := RFM(stub, testLogger(), nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/analytics/rfm?min_recency=-1", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for negative recency, got %d", resp.Code)
	}
	if stub.called() {
		t.Fatal("service should not be invoked on invalid threshold")
	}
}

func TestRFMExportWritesCSV(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	timeNowUTC = func() time.Time { return now }
	defer func() { timeNowUTC = func() time.Time { return time.Now().UTC() } }()

	customerID := uuid.New()
	stub := &testSalesService{
		rows:  rfmRows(now, customerID),
		names: map[uuid.UUID]string{customerID: "Ana Souza"},
	}
	handler := RFMExport(stub, testLogger(), nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/analytics/rfm/export?preset=90d", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", resp.Code, resp.Body.String())
	}
	if got := resp.Header().Get("Content-Disposition"); !strings.Contains(got, "rfm.csv") {
		t.Fatalf("unexpected disposition %q", got)
	}

	lines := strings.Split(strings.TrimSpace(resp.Body.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header plus one customer, got %v", lines)
	}
	if !strings.Contains(lines[1], "Ana Souza") {
		t.Fatalf("expected customer row, got %q", lines[1])
	}
}
