package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestNewWritesJSONWithServiceField(t *testing.T) {
	var buf bytes.Buffer
	logg := New(Options{ServiceName: "api", Output: &buf})

	logg.Info(context.Background(), "hello")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected json log line: %v", err)
	}
	if entry["service"] != "api" {
		t.Fatalf("expected service=api, got %v", entry["service"])
	}
	if entry["message"] != "hello" {
		t.Fatalf("expected message=hello, got %v", entry["message"])
	}
}

func TestContextFieldsPropagate(t *testing.T) {
	var buf bytes.Buffer
	logg := New(Options{ServiceName: "api", Output: &buf})

	ctx := logg.WithRequestID(context.Background(), "req-123")
	ctx = logg.WithReport(ctx, "overview")
	logg.Info(ctx, "report.start")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected json log line: %v", err)
	}
	if entry["request_id"] != "req-123" {
		t.Fatalf("expected request_id, got %v", entry["request_id"])
	}
	if entry["report"] != "overview" {
		t.Fatalf("expected report field, got %v", entry["report"])
	}
}

func TestWithRangeFormatsTimestamps(t *testing.T) {
	var buf bytes.Buffer
	logg := New(Options{ServiceName: "api", Output: &buf})

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	ctx := logg.WithRange(context.Background(), start, end)
	logg.Info(ctx, "range")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected json log line: %v", err)
	}
	if entry["range_start"] != "2024-01-01T00:00:00Z" {
		t.Fatalf("unexpected range_start %v", entry["range_start"])
	}
}

func TestParseLevel(t *testing.T) {
	if ParseLevel("debug") != zerolog.DebugLevel {
		t.Fatal("expected debug level")
	}
	if ParseLevel("") != zerolog.InfoLevel {
		t.Fatal("expected info fallback for empty value")
	}
	if ParseLevel("nonsense") != zerolog.InfoLevel {
		t.Fatal("expected info fallback for unknown value")
	}
}
