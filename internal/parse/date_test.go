package parse

import (
	"strings"
	"testing"
	"time"

	"github.com/joseph-ayodele/expense-scanner/internal/entity"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestParseDateString(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
		ok   bool
	}{
		{"2024-08-19", day(2024, 8, 19), true},
		{"2024/8/19", day(2024, 8, 19), true},
		{"08/19/2024", day(2024, 8, 19), true},
		{"19/08/2024", day(2024, 8, 19), true}, // day-first tolerated when month slot > 12
		{"8/19/24", day(2024, 8, 19), true},
		{"2024 - 08 - 19", day(2024, 8, 19), true},
		{"Aug 19, 2024", day(2024, 8, 19), true},
		{"Aug 19th, 2024", day(2024, 8, 19), true},
		{"August 19 2024", day(2024, 8, 19), true},
		{"19 August, 2024", day(2024, 8, 19), true},
		{"13/13/2024", time.Time{}, false},
		{"not a date", time.Time{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := parseDateString(tt.in)
			if ok != tt.ok {
				t.Fatalf("ok: got %v, want %v", ok, tt.ok)
			}
			if ok && !got.Equal(tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDateInText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want time.Time
		ok   bool
	}{
		{"plain", "Due Date: 08/19/2024", day(2024, 8, 19), true},
		{"scattered spaces", "Due Date: 0 8/1 9/202 4", day(2024, 8, 19), true},
		{"digit salvage", "Date: 08 1 19 1 2024", day(2024, 8, 19), true},
		{"no date", "nothing here", time.Time{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := dateInText(tt.in)
			if ok != tt.ok {
				t.Fatalf("ok: got %v, want %v", ok, tt.ok)
			}
			if ok && !got.Equal(tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDateKeywordMatch(t *testing.T) {
	if !dateKeywordMatch("Due Date: 01/17/2024", "due date") {
		t.Error("plain keyword should match")
	}
	if !dateKeywordMatch("DueDate 01/17/2024", "due date") {
		t.Error("squashed keyword should match")
	}
	if dateKeywordMatch("subtotal 5.00", "due date") {
		t.Error("unrelated line should not match")
	}
}

func TestExtractDateKeyword(t *testing.T) {
	e := newTestEngine(t)

	text := "ACME UTILITIES\nDue Date: 08/19/2024\nAmount Due $45.00"
	got := e.extractDate(text, strings.Split(text, "\n"))
	if got == nil {
		t.Fatal("expected a date, got nil")
	}
	if !got.Value.Equal(day(2024, 8, 19)) {
		t.Errorf("date: got %v, want 2024-08-19", got.Value)
	}
	if got.Source != entity.SourceKeyword {
		t.Errorf("source: got %v, want %v", got.Source, entity.SourceKeyword)
	}
}

func TestExtractDateGlobalFallback(t *testing.T) {
	e := newTestEngine(t)

	text := "visited on 03/14/2024\nthanks for coming"
	got := e.extractDate(text, strings.Split(text, "\n"))
	if got == nil {
		t.Fatal("expected a date, got nil")
	}
	if !got.Value.Equal(day(2024, 3, 14)) {
		t.Errorf("date: got %v, want 2024-03-14", got.Value)
	}
	if got.Source != entity.SourceGlobalScan {
		t.Errorf("source: got %v, want %v", got.Source, entity.SourceGlobalScan)
	}
}

func TestCorrectDueDateShift(t *testing.T) {
	e := newTestEngine(t)

	// Due parsed a month early; shifting forward lands 2 days after the
	// bill date, well inside the window.
	lines := []string{
		"Bill Date: 07/15/2024",
		"account summary",
	}
	got := e.correctDueDate(day(2024, 6, 17), lines)
	if !got.Equal(day(2024, 7, 17)) {
		t.Errorf("got %v, want 2024-07-17", got)
	}
}

func TestCorrectDueDateFallsBackToBillDate(t *testing.T) {
	e := newTestEngine(t)

	// Shifting one month forward still lands before the bill date, so
	// the bill date is the better guess.
	lines := []string{
		"Bill Date: 11/20/2023",
	}
	got := e.correctDueDate(day(2023, 10, 2), lines)
	if !got.Equal(day(2023, 11, 20)) {
		t.Errorf("got %v, want the bill date 2023-11-20", got)
	}
}

func TestCorrectDueDateNoBillDate(t *testing.T) {
	e := newTestEngine(t)

	due := day(2024, 6, 17)
	if got := e.correctDueDate(due, []string{"no dates here"}); !got.Equal(due) {
		t.Errorf("got %v, want the due date unchanged", got)
	}
}
