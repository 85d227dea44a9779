package entity

// Source tags where a field guess came from, so later pipeline stages
// can resolve overrides by priority instead of clobbering blindly.
type Source string

const (
	SourceFilename    Source = "filename"
	SourceKnownVendor Source = "known-vendor"
	SourceKeyword     Source = "keyword"
	SourceGlobalScan  Source = "global-fallback"
	SourceFirstLine   Source = "first-line"
	SourceHistory     Source = "history"
)

// Guess pairs a candidate value with its provenance. Guesses only live
// for the duration of a single scan; they are never persisted.
type Guess[T any] struct {
	Value  T
	Source Source
}
