package logger

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestStringFields(t *testing.T) {
	fields := StringFields(
		StringField{Key: "  document  ", Value: "  jane_doe  "},
		StringField{Key: "ignored", Value: "   "},
		StringField{Key: "   ", Value: "empty key"},
	)

	if len(fields) != 1 {
		t.Fatalf("expected 1 field, got %d", len(fields))
	}

	if fields[0].Key != "document" || fields[0].String != "jane_doe" {
		t.Fatalf("unexpected document field: %+v", fields[0])
	}

	empty := StringFields()
	if len(empty) != 0 {
		t.Fatalf("expected empty fields, got %d", len(empty))
	}
}

func TestWithFields(t *testing.T) {
	core, observed := observer.New(zapcore.InfoLevel)
	logger := zap.New(core)

	enriched := WithFields(logger, zap.String("foo", "bar"))
	enriched.Info("test log")

	entries := observed.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}

	ctx := entries[0].ContextMap()
	if ctx["foo"] != "bar" {
		t.Fatalf("expected field to be bar, got %q", ctx["foo"])
	}

	enriched = WithFields(nil, zap.String("baz", "qux"))
	if enriched == nil {
		t.Fatalf("expected fallback logger when nil provided")
	}

	enriched.Info("another log")
}

func TestDocumentFields(t *testing.T) {
	fields := DocumentFields(" jane_doe ", "resumes/./jane_doe.pdf")
	if len(fields) != 2 {
		t.Fatalf("expected 2 fields, got %d", len(fields))
	}

	if fields[0].Key != FieldDocument || fields[0].String != "jane_doe" {
		t.Fatalf("unexpected document field: %+v", fields[0])
	}

	if fields[1].Key != FieldPath || fields[1].String != "resumes/jane_doe.pdf" {
		t.Fatalf("unexpected path field: %+v", fields[1])
	}

	if empty := DocumentFields("", ""); len(empty) != 0 {
		t.Fatalf("expected empty fields, got %d", len(empty))
	}
}

func TestWithDocument(t *testing.T) {
	core, observed := observer.New(zapcore.InfoLevel)

	WithDocument(zap.New(core), "jane_doe", "resumes/jane_doe.pdf").Info("analyzed")

	entries := observed.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}

	ctx := entries[0].ContextMap()
	if ctx[FieldDocument] != "jane_doe" {
		t.Fatalf("expected document field to be jane_doe, got %q", ctx[FieldDocument])
	}
	if ctx[FieldPath] != "resumes/jane_doe.pdf" {
		t.Fatalf("expected path field, got %q", ctx[FieldPath])
	}

	WithDocument(nil, "x", "").Info("no panic")
}

func TestTruncateForLog(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		limit  int
		expect string
	}{
		{
			name:   "returns empty when limit non-positive",
			input:  "hello world",
			limit:  0,
			expect: "",
		},
		{
			name:   "shorter than limit",
			input:  "hello",
			limit:  10,
			expect: "hello",
		},
		{
			name:   "truncates and adds ellipsis",
			input:  "hello world",
			limit:  5,
			expect: "hello...",
		},
		{
			name:   "collapses whitespace of extracted text",
			input:  "  jane doe\n\nemail:\tjane@example.com ",
			limit:  100,
			expect: "jane doe email: jane@example.com",
		},
		{
			name:   "counts runes",
			input:  "résumé text",
			limit:  6,
			expect: "résumé...",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := TruncateForLog(tt.input, tt.limit); got != tt.expect {
				t.Fatalf("expected %q, got %q", tt.expect, got)
			}
		})
	}
}

func TestNew(t *testing.T) {
	for _, json := range []bool{false, true} {
		l, err := New(json, true)
		if err != nil {
			t.Fatalf("json=%v: %v", json, err)
		}
		if !l.Core().Enabled(zapcore.DebugLevel) {
			t.Fatalf("json=%v: expected debug level enabled", json)
		}
	}
}
