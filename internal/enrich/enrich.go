// Package enrich provides AI-backed enrichment of product records:
// category classification, description generation and receipt extraction.
package enrich

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// Prompt templates sent to the LLM providers.
const (
	classifyPromptTemplate = "Classify this product in a category: '%s'. Provide only the category name."

	describePromptTemplate = "Describe this product: '%s'. Use only one sentence."

	receiptPromptPrefix = "You are a receipt parser. Extract all product line items from this receipt " +
		"and return a structured JSON object with the following keys:\n\n" +
		"`items`: a list of purchased products (name, quantity, price),\n" +
		"`store`: the name of the store (if available),\n" +
		"`date`: the date of the receipt,\n" +
		"`total_amount`: the total amount paid.\n\n" +
		"Respond ONLY with JSON. Do not include any explanation or commentary.\n\nReceipt:\n"
)

// Enricher defines the interface for AI-backed product enrichment.
type Enricher interface {
	// Classify returns a category name for the given product name.
	Classify(ctx context.Context, productName string) (string, error)

	// Describe returns a one-sentence description of the given product name.
	Describe(ctx context.Context, productName string) (string, error)

	// ExtractReceipt parses receipt text into structured line items.
	ExtractReceipt(ctx context.Context, receiptText string) (*Receipt, error)

	// Initialize sets up the enricher with any required configuration.
	Initialize() error
}

// Receipt is the structured result of parsing a receipt.
type Receipt struct {
	Items       []ReceiptItem `json:"items"`
	Store       string        `json:"store"`
	Date        string        `json:"date"`
	TotalAmount float64       `json:"total_amount"`
}

// ReceiptItem is a single purchased product on a receipt.
type ReceiptItem struct {
	Name     string  `json:"name"`
	Quantity int64   `json:"quantity"`
	Price    float64 `json:"price"`
}

// parseReceiptJSON decodes the model response into a Receipt. Models often
// wrap JSON in markdown fences, so those are stripped first.
func parseReceiptJSON(response string) (*Receipt, error) {
	text := strings.TrimSpace(response)
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimPrefix(text, "```")
		text = strings.TrimSuffix(strings.TrimSpace(text), "```")
		text = strings.TrimSpace(text)
	}

	var receipt Receipt
	if err := json.Unmarshal([]byte(text), &receipt); err != nil {
		return nil, fmt.Errorf("failed to parse receipt response: %w", err)
	}

	if len(receipt.Items) == 0 {
		return nil, fmt.Errorf("receipt response contained no items")
	}

	return &receipt, nil
}
