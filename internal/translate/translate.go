// Package translate provides machine translation of product text into a
// target language.
package translate

import "context"

// Default language pair. Translated product fields are stored alongside the
// originals, so the pair is fixed per deployment.
const (
	DefaultSourceLang = "en"
	DefaultTargetLang = "ar"
)

// Translator defines the interface for translating text.
type Translator interface {
	// Translate returns the text translated from the source language to
	// the target language. Empty input returns empty output without an
	// API call.
	Translate(ctx context.Context, text string) (string, error)

	// SourceLang returns the source language code.
	SourceLang() string

	// TargetLang returns the target language code.
	TargetLang() string
}
