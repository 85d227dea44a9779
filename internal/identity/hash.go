// Package identity deduplicates documents and resolves merchant
// identity against the user's transaction history.
package identity

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash/fnv"
	"strings"
	"time"
)

// FallbackPrefix distinguishes metadata-derived digests from real
// content hashes, so callers never confuse the two when comparing.
const FallbackPrefix = "fallback-"

// HashBytes returns the SHA-256 hex digest of a document's payload.
// Two byte-identical documents always produce the same digest, which
// is what makes duplicate detection idempotent across submissions.
func HashBytes(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// FallbackHash derives a weaker deterministic digest from document
// metadata, for the degraded path where payload bytes cannot be read.
// Duplicate detection gets less precise but stays enabled.
func FallbackHash(name string, size int64, modified time.Time, format string) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(fmt.Sprintf("%s-%d-%d-%s", name, size, modified.UnixMilli(), format)))
	return FallbackPrefix + fmt.Sprintf("%x", h.Sum32())
}

// IsFallbackHash reports whether a stored digest came from the
// metadata fallback rather than the content hash.
func IsFallbackHash(digest string) bool {
	return strings.HasPrefix(digest, FallbackPrefix)
}
