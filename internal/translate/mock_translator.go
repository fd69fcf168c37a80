package translate

import "context"

// MockTranslator is a test implementation of the Translator interface that
// wraps the input in a deterministic marker instead of calling an API.
type MockTranslator struct {
	Source string
	Target string

	// Err, when set, is returned from every Translate call.
	Err error

	// Calls records the texts passed to Translate.
	Calls []string
}

// NewMockTranslator creates a MockTranslator for the default language pair.
func NewMockTranslator() *MockTranslator {
	return &MockTranslator{
		Source: DefaultSourceLang,
		Target: DefaultTargetLang,
	}
}

// Translate returns the input wrapped in a language marker.
func (t *MockTranslator) Translate(ctx context.Context, text string) (string, error) {
	if text == "" {
		return "", nil
	}
	t.Calls = append(t.Calls, text)
	if t.Err != nil {
		return "", t.Err
	}
	return "[" + t.Target + "] " + text, nil
}

// SourceLang returns the source language code.
func (t *MockTranslator) SourceLang() string {
	return t.Source
}

// TargetLang returns the target language code.
func (t *MockTranslator) TargetLang() string {
	return t.Target
}
