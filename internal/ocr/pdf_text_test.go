package ocr

import (
	"testing"

	"github.com/ledongthuc/pdf"
)

func frag(s string, x, y, w float64) pdf.Text {
	return pdf.Text{S: s, X: x, Y: y, W: w}
}

func TestJoinFragmentsReadingOrder(t *testing.T) {
	// Fragments arrive in content-stream order, not reading order.
	frags := []pdf.Text{
		frag("15.50", 200, 700, 30),
		frag("ACME", 10, 750, 40),
		frag("Total", 10, 700, 28),
		frag("UTILITIES", 60, 750, 60),
	}
	got := joinFragments(frags)
	want := "ACME UTILITIES\nTotal 15.50"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestJoinFragmentsKernedRunsJoin(t *testing.T) {
	// Adjacent glyph runs with no real gap must concatenate without a
	// space: "Due" + "Date" stays "DueDate", the downstream keyword
	// matcher handles the squashed form.
	frags := []pdf.Text{
		frag("Due", 10, 700, 20),
		frag("Date", 30.5, 700, 25),
	}
	if got := joinFragments(frags); got != "DueDate" {
		t.Errorf("got %q, want %q", got, "DueDate")
	}
}

func TestJoinFragmentsSmallJitterSameLine(t *testing.T) {
	// Vertical jitter within the threshold stays on one line.
	frags := []pdf.Text{
		frag("Amount", 10, 700, 45),
		frag("Due", 60, 703, 20),
	}
	if got := joinFragments(frags); got != "Amount Due" {
		t.Errorf("got %q, want %q", got, "Amount Due")
	}
}

func TestJoinFragmentsEmpty(t *testing.T) {
	if got := joinFragments(nil); got != "" {
		t.Errorf("got %q, want empty", got)
	}
}
