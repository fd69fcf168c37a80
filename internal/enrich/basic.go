package enrich

import (
	"context"
	"fmt"
	"strings"
)

// DefaultCategory is returned when no keyword rule matches.
const DefaultCategory = "Uncategorized"

// keywordRule maps a product-name keyword to a category. Rules are checked
// in order; the first match wins.
type keywordRule struct {
	keyword  string
	category string
}

// BasicEnricher is a simple offline implementation of the Enricher
// interface. Classification is keyword-based; description generation and
// receipt extraction require an AI provider and are not supported.
type BasicEnricher struct {
	rules []keywordRule
}

// NewBasicEnricher creates a new BasicEnricher instance.
func NewBasicEnricher() *BasicEnricher {
	return &BasicEnricher{
		rules: []keywordRule{
			{"phone", "Electronics"},
			{"laptop", "Electronics"},
			{"macbook", "Electronics"},
			{"tablet", "Electronics"},
			{"headphone", "Electronics"},
			{"earbud", "Electronics"},
			{"monitor", "Electronics"},
			{"keyboard", "Electronics"},
			{"cable", "Accessories"},
			{"charger", "Accessories"},
			{"adapter", "Accessories"},
			{"shirt", "Clothing"},
			{"jacket", "Clothing"},
			{"shoe", "Clothing"},
			{"desk", "Furniture"},
			{"chair", "Furniture"},
			{"table", "Furniture"},
			{"milk", "Groceries"},
			{"bread", "Groceries"},
			{"coffee", "Groceries"},
			{"detergent", "Household"},
			{"soap", "Household"},
			{"shampoo", "Household"},
			{"book", "Books"},
			{"controller", "Gaming"},
			{"console", "Gaming"},
		},
	}
}

// Initialize sets up the enricher with any required configuration.
func (e *BasicEnricher) Initialize() error {
	return nil // No initialization needed for the basic enricher
}

// Classify matches the product name against the keyword rules and returns
// the first matching category, or DefaultCategory when nothing matches.
func (e *BasicEnricher) Classify(ctx context.Context, productName string) (string, error) {
	name := strings.ToLower(productName)
	for _, rule := range e.rules {
		if strings.Contains(name, rule.keyword) {
			return rule.category, nil
		}
	}
	return DefaultCategory, nil
}

// Describe is not supported by the basic enricher.
func (e *BasicEnricher) Describe(ctx context.Context, productName string) (string, error) {
	return "", fmt.Errorf("description generation requires an AI provider")
}

// ExtractReceipt is not supported by the basic enricher.
func (e *BasicEnricher) ExtractReceipt(ctx context.Context, receiptText string) (*Receipt, error) {
	return nil, fmt.Errorf("receipt extraction requires an AI provider")
}
