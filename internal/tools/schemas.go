// Package tools defines the MCP tool names and data structures
// for the Stocklight service.
package tools

const (
	// ToolAddProduct is the name of the add_product MCP tool
	ToolAddProduct = "add_product"

	// ToolGetProduct is the name of the get_product MCP tool
	ToolGetProduct = "get_product"

	// ToolSearchProducts is the name of the search_products MCP tool
	ToolSearchProducts = "search_products"

	// ToolInventoryReport is the name of the inventory_report MCP tool
	ToolInventoryReport = "inventory_report"

	// DefaultSearchLimit is the default number of results to return
	// when no limit is specified in a search_products request
	DefaultSearchLimit = 5
)

// ProductView is the product representation returned by the MCP tools.
type ProductView struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	Quantity    int64   `json:"quantity"`
	InStock     bool    `json:"in_stock"`
}

// AddProductRequest defines the input schema for add_product tool
type AddProductRequest struct {
	// Name is the product name
	Name string `json:"name"`

	// Description is the product description
	Description string `json:"description"`

	// Category is the product category; when empty, the product is
	// classified automatically
	Category string `json:"category,omitempty"`

	// Price is the unit price
	Price float64 `json:"price"`

	// Quantity is the stocked quantity
	Quantity int64 `json:"quantity"`
}

// AddProductResponse defines the output schema for add_product tool
type AddProductResponse struct {
	// Status indicates the result of the operation ("success" or "error")
	Status string `json:"status"`

	// Product is the created product
	Product *ProductView `json:"product,omitempty"`

	// Error contains an error message if Status is "error"
	Error string `json:"error,omitempty"`
}

// GetProductRequest defines the input schema for get_product tool
type GetProductRequest struct {
	// ID is the product identifier
	ID int64 `json:"id"`
}

// GetProductResponse defines the output schema for get_product tool
type GetProductResponse struct {
	// Status indicates the result of the operation ("success" or "error")
	Status string `json:"status"`

	// Product is the requested product
	Product *ProductView `json:"product,omitempty"`

	// Error contains an error message if Status is "error"
	Error string `json:"error,omitempty"`
}

// SearchProductsRequest defines the input schema for search_products tool
type SearchProductsRequest struct {
	// Query is the free-text query to search for similar products
	Query string `json:"query"`

	// Limit is the maximum number of results to return
	// If not specified, DefaultSearchLimit will be used
	Limit int `json:"limit,omitempty"`
}

// SearchProductsResult is one ranked match of a search_products call.
type SearchProductsResult struct {
	// ID is the product identifier
	ID int64 `json:"id"`

	// Name is the product name
	Name string `json:"name"`
}

// SearchProductsResponse defines the output schema for search_products tool
type SearchProductsResponse struct {
	// Status indicates the result of the operation ("success" or "error")
	Status string `json:"status"`

	// Results contains the matching products ordered by similarity
	Results []SearchProductsResult `json:"results"`

	// Error contains an error message if Status is "error"
	Error string `json:"error,omitempty"`
}

// InventoryReportRequest defines the input schema for inventory_report tool
type InventoryReportRequest struct{}

// CategoryCountView is one per-category row of an inventory report.
type CategoryCountView struct {
	Category string `json:"category"`
	Count    int64  `json:"count"`
}

// InventoryReportResponse defines the output schema for inventory_report tool
type InventoryReportResponse struct {
	// Status indicates the result of the operation ("success" or "error")
	Status string `json:"status"`

	// TotalValue is SUM(price*quantity) over all products
	TotalValue float64 `json:"total_value"`

	// AveragePrice is the average product price
	AveragePrice float64 `json:"average_price"`

	// MinPrice is the lowest product price
	MinPrice float64 `json:"min_price"`

	// MaxPrice is the highest product price
	MaxPrice float64 `json:"max_price"`

	// ProductsPerCategory contains product counts grouped by category
	ProductsPerCategory []CategoryCountView `json:"products_per_category"`

	// OutOfStockCount is the number of out-of-stock products
	OutOfStockCount int `json:"out_of_stock_count"`

	// Error contains an error message if Status is "error"
	Error string `json:"error,omitempty"`
}
