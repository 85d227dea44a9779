package parse

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/joseph-ayodele/expense-scanner/internal/entity"
)

func TestExtractMerchantKnownVendor(t *testing.T) {
	e := newTestEngine(t)

	text := "Thank you for shopping at WALMART\nSave money. Live better."
	got := e.extractMerchant(text, strings.Split(text, "\n"))
	if got == nil {
		t.Fatal("expected a merchant, got nil")
	}
	if got.Value != "Walmart" {
		t.Errorf("merchant: got %q, want %q", got.Value, "Walmart")
	}
	if got.Source != entity.SourceKnownVendor {
		t.Errorf("source: got %v, want %v", got.Source, entity.SourceKnownVendor)
	}
}

func TestExtractMerchantVendorPriority(t *testing.T) {
	e := newTestEngine(t)

	// Utility bills quote retailer names in marketing copy; the earlier
	// table entry must win.
	text := "WASTE MANAGEMENT\npay online or at any Home Depot location"
	got := e.extractMerchant(text, strings.Split(text, "\n"))
	if got == nil || got.Value != "Waste Management" {
		t.Fatalf("got %+v, want Waste Management", got)
	}
}

func TestExtractMerchantCompanySuffix(t *testing.T) {
	e := newTestEngine(t)

	text := "08/19/2024\nAcme Plumbing LLC\n123 Main St"
	got := e.extractMerchant(text, strings.Split(text, "\n"))
	if got == nil {
		t.Fatal("expected a merchant, got nil")
	}
	if got.Value != "Acme Plumbing LLC" {
		t.Errorf("merchant: got %q, want %q", got.Value, "Acme Plumbing LLC")
	}
	if got.Source != entity.SourceKeyword {
		t.Errorf("source: got %v, want %v", got.Source, entity.SourceKeyword)
	}
}

func TestExtractMerchantFirstLine(t *testing.T) {
	e := newTestEngine(t)

	text := "12345\nPage 1\n08/19/2024 ref 100\nInvoice summary\nJoe's Diner\nthanks"
	got := e.extractMerchant(text, strings.Split(text, "\n"))
	if got == nil {
		t.Fatal("expected a merchant, got nil")
	}
	if got.Value != "Joe's Diner" {
		t.Errorf("merchant: got %q, want %q", got.Value, "Joe's Diner")
	}
	if got.Source != entity.SourceFirstLine {
		t.Errorf("source: got %v, want %v", got.Source, entity.SourceFirstLine)
	}
}

func TestExtractMerchantTruncates(t *testing.T) {
	e := newTestEngine(t)

	long := strings.Repeat("Plumbing ", 8) + "Heating" // > 50 chars, no suffix
	got := e.extractMerchant(long, []string{long})
	if got == nil {
		t.Fatal("expected a merchant, got nil")
	}
	if len(got.Value) > maxMerchantLen {
		t.Errorf("merchant length %d exceeds %d", len(got.Value), maxMerchantLen)
	}
}

func TestExtractMerchantTruncateRuneBoundary(t *testing.T) {
	e := newTestEngine(t)

	// Byte 50 lands inside the two-byte "é"; the cut must back up to the
	// rune start instead of emitting invalid UTF-8.
	long := strings.Repeat("a", maxMerchantLen-1) + "é Cafe"
	got := e.extractMerchant(long, []string{long})
	if got == nil {
		t.Fatal("expected a merchant, got nil")
	}
	if !utf8.ValidString(got.Value) {
		t.Errorf("merchant %q is not valid UTF-8", got.Value)
	}
	if want := strings.Repeat("a", maxMerchantLen-1); got.Value != want {
		t.Errorf("merchant: got %q, want %q", got.Value, want)
	}
}

func TestExtractMerchantNone(t *testing.T) {
	e := newTestEngine(t)

	text := "12345\nPage 2"
	if got := e.extractMerchant(text, strings.Split(text, "\n")); got != nil {
		t.Errorf("got %+v, want nil", got)
	}
}
