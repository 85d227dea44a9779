package parse

import (
	"strings"
	"testing"

	"github.com/joseph-ayodele/expense-scanner/internal/entity"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	vendors, err := LoadVendorTable()
	if err != nil {
		t.Fatalf("load vendor table: %v", err)
	}
	return NewEngine(vendors, nil)
}

func TestMoneyInLine(t *testing.T) {
	tests := []struct {
		line  string
		want  float64
		found bool
	}{
		{"Total 15.50", 15.50, true},
		{"Total: $15.50", 15.50, true},
		{"Balance £1,234.56", 1234.56, true},
		{"amounts 5.00 and 12.00", 12.00, true},
		{"Page 1 of 3 total 5.00", 0, false},
		{"Payment Received $50.00", 0, false},
		{"Thank you for your payment 35.00", 0, false},
		{"tax 0.99", 0, false},
		{"ref 123456.78", 0, false},
		{"no numbers here", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, found := moneyInLine(tt.line)
			if found != tt.found || got != tt.want {
				t.Errorf("moneyInLine(%q): got (%v, %v), want (%v, %v)", tt.line, got, found, tt.want, tt.found)
			}
		})
	}
}

func TestExtractAmountKeyword(t *testing.T) {
	e := newTestEngine(t)

	text := strings.Join([]string{
		"CORNER STORE",
		"Item A 5.00",
		"Item B 9.25",
		"Total 15.50",
		"Cash 20.00",
	}, "\n")

	got := e.extractAmount(text, strings.Split(text, "\n"), false)
	if got == nil {
		t.Fatal("expected an amount, got nil")
	}
	if got.Value != 15.50 {
		t.Errorf("amount: got %v, want 15.50", got.Value)
	}
	if got.Source != entity.SourceKeyword {
		t.Errorf("source: got %v, want %v", got.Source, entity.SourceKeyword)
	}
}

func TestExtractAmountRadius(t *testing.T) {
	e := newTestEngine(t)

	// Value on the line after the keyword.
	text := "Amount Due\n$42.17"
	got := e.extractAmount(text, strings.Split(text, "\n"), false)
	if got == nil || got.Value != 42.17 {
		t.Fatalf("next-line radius: got %+v, want 42.17", got)
	}

	// Value up to three lines before the keyword.
	text = "$99.99\nservice period\nfor details see below\nTotal Due"
	got = e.extractAmount(text, strings.Split(text, "\n"), false)
	if got == nil || got.Value != 99.99 {
		t.Fatalf("prior-line radius: got %+v, want 99.99", got)
	}
}

func TestExtractAmountStatementKeywords(t *testing.T) {
	e := newTestEngine(t)

	text := strings.Join([]string{
		"Previous Balance $180.00",
		"New Balance $245.10",
		"Minimum Payment Due $35.00",
	}, "\n")

	got := e.extractAmount(text, strings.Split(text, "\n"), true)
	if got == nil {
		t.Fatal("expected an amount, got nil")
	}
	if got.Value != 245.10 {
		t.Errorf("statement amount: got %v, want 245.10 (new balance outranks minimum payment)", got.Value)
	}
}

func TestExtractAmountGlobalFallback(t *testing.T) {
	e := newTestEngine(t)

	text := "charges this period 12.34 and 56.78"
	got := e.extractAmount(text, strings.Split(text, "\n"), false)
	if got == nil {
		t.Fatal("expected an amount, got nil")
	}
	if got.Value != 56.78 {
		t.Errorf("fallback amount: got %v, want 56.78", got.Value)
	}
	if got.Source != entity.SourceGlobalScan {
		t.Errorf("source: got %v, want %v", got.Source, entity.SourceGlobalScan)
	}
}

func TestExtractAmountCeiling(t *testing.T) {
	e := newTestEngine(t)

	text := "ref 123456.78\ncharge 45.00"
	got := e.extractAmount(text, strings.Split(text, "\n"), false)
	if got == nil || got.Value != 45.00 {
		t.Fatalf("got %+v, want 45.00 (six-figure token is a reference, not money)", got)
	}
}

func TestExtractAmountNone(t *testing.T) {
	e := newTestEngine(t)

	text := "nothing monetary in this document"
	if got := e.extractAmount(text, strings.Split(text, "\n"), false); got != nil {
		t.Errorf("got %+v, want nil", got)
	}
}
