package enrich

import (
	"context"
	"testing"
)

func TestBasicEnricherClassify(t *testing.T) {
	enricher := NewBasicEnricher()
	if err := enricher.Initialize(); err != nil {
		t.Fatalf("Initialize() error: %v", err)
	}

	tests := []struct {
		name        string
		productName string
		want        string
	}{
		{name: "electronics", productName: "iPhone 13", want: "Electronics"},
		{name: "case insensitive", productName: "MACBOOK PRO", want: "Electronics"},
		{name: "accessories", productName: "USB-C Cable 2m", want: "Accessories"},
		{name: "groceries", productName: "Oat Milk 1L", want: "Groceries"},
		{name: "no match", productName: "Mystery Item", want: DefaultCategory},
		{name: "empty name", productName: "", want: DefaultCategory},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := enricher.Classify(context.Background(), test.productName)
			if err != nil {
				t.Fatalf("Classify(%q) error: %v", test.productName, err)
			}
			if got != test.want {
				t.Errorf("Classify(%q) = %q, want %q", test.productName, got, test.want)
			}
		})
	}
}

func TestBasicEnricherUnsupported(t *testing.T) {
	enricher := NewBasicEnricher()

	if _, err := enricher.Describe(context.Background(), "iPhone 13"); err == nil {
		t.Error("Describe() expected error, got nil")
	}
	if _, err := enricher.ExtractReceipt(context.Background(), "MILK 2.50"); err == nil {
		t.Error("ExtractReceipt() expected error, got nil")
	}
}
