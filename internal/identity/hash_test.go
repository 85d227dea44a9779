package identity

import (
	"testing"
	"time"
)

func TestHashBytes(t *testing.T) {
	a := HashBytes([]byte("receipt content"))
	b := HashBytes([]byte("receipt content"))
	c := HashBytes([]byte("different content"))

	if a != b {
		t.Error("same bytes must produce the same digest")
	}
	if a == c {
		t.Error("different bytes must produce different digests")
	}
	if len(a) != 64 {
		t.Errorf("digest length: got %d, want 64 hex chars", len(a))
	}
	if IsFallbackHash(a) {
		t.Error("content digest must not look like a fallback digest")
	}
}

func TestFallbackHash(t *testing.T) {
	mod := time.Date(2024, 8, 19, 12, 0, 0, 0, time.UTC)

	a := FallbackHash("receipt.pdf", 1024, mod, "PDF")
	b := FallbackHash("receipt.pdf", 1024, mod, "PDF")
	c := FallbackHash("receipt.pdf", 1025, mod, "PDF")

	if a != b {
		t.Error("same metadata must produce the same digest")
	}
	if a == c {
		t.Error("different metadata must produce different digests")
	}
	if !IsFallbackHash(a) {
		t.Errorf("digest %q should carry the fallback prefix", a)
	}
}
