// Package mcp exposes the inventory operations as MCP tools over stdio.
package mcp

import (
	"context"
	"errors"
	"log/slog"

	"github.com/localrivet/gomcp/server"

	"github.com/stocklight/stocklight/internal/errortypes"
	"github.com/stocklight/stocklight/internal/inventory"
	"github.com/stocklight/stocklight/internal/tools"
)

// InventoryToolServer exposes inventory tools over MCP.
type InventoryToolServer struct {
	service   *inventory.Service
	mcpServer server.Server
}

// NewInventoryToolServer creates a new InventoryToolServer instance.
func NewInventoryToolServer(service *inventory.Service) *InventoryToolServer {
	return &InventoryToolServer{
		service: service,
	}
}

// Initialize registers the inventory tools on a new MCP server.
func (s *InventoryToolServer) Initialize() error {
	slog.Info("Initializing MCP Inventory Tool Server")

	if s.service == nil {
		return errortypes.ConfigError(errors.New("missing dependencies"), "server initialization failed")
	}

	srv := server.NewServer("stocklight")

	srv = srv.Tool(tools.ToolAddProduct, "Add a product to the inventory",
		s.handleAddProduct)

	srv = srv.Tool(tools.ToolGetProduct, "Get a product by its ID",
		s.handleGetProduct)

	srv = srv.Tool(tools.ToolSearchProducts, "Search products by semantic similarity to a query",
		s.handleSearchProducts)

	srv = srv.Tool(tools.ToolInventoryReport, "Summarize inventory value, prices and stock levels",
		s.handleInventoryReport)

	s.mcpServer = srv
	slog.Info("MCP Inventory Tool Server initialized successfully", "tool_count", 4)
	return nil
}

// Start starts the MCP server on stdio.
func (s *InventoryToolServer) Start() error {
	if s.mcpServer == nil {
		return errortypes.ConfigError(errors.New("server not initialized"), "cannot start server")
	}

	slog.Info("Starting MCP Inventory Tool Server")

	stdioServer := s.mcpServer.AsStdio()
	return stdioServer.Run()
}

// Stop gracefully shuts down the MCP server.
func (s *InventoryToolServer) Stop() error {
	slog.Info("Stopping MCP Inventory Tool Server")
	// The server exits when stdin is closed
	return nil
}

// validateAddProduct enforces the same field rules as the HTTP API: name
// between 2 and 100 characters, description required, price at least 1,
// quantity non-negative.
func validateAddProduct(req tools.AddProductRequest) error {
	if len(req.Name) < 2 || len(req.Name) > 100 {
		return errors.New("name length must be between 2 and 100")
	}
	if req.Description == "" {
		return errors.New("description is required")
	}
	if req.Price < 1 {
		return errors.New("price must be greater or equal to 1")
	}
	if req.Quantity < 0 {
		return errors.New("quantity must be greater or equal to 0")
	}
	return nil
}

func toProductView(p *inventory.Product) *tools.ProductView {
	return &tools.ProductView{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Category:    p.Category,
		Price:       p.Price,
		Quantity:    p.Quantity,
		InStock:     p.InStock,
	}
}

// handleAddProduct handles the add_product MCP tool call.
func (s *InventoryToolServer) handleAddProduct(ctx *server.Context, req tools.AddProductRequest) (tools.AddProductResponse, error) {
	slog.Info("Processing add_product request", "name", req.Name)

	response := tools.AddProductResponse{
		Status: "success",
	}

	if err := validateAddProduct(req); err != nil {
		err := errortypes.ValidationError(err, "invalid add_product request")
		errortypes.LogError(nil, err)
		response.Status = "error"
		response.Error = err.Error()
		return response, nil
	}

	product := &inventory.Product{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Price:       req.Price,
		Quantity:    req.Quantity,
	}

	if err := s.service.CreateProduct(context.Background(), product); err != nil {
		err = errortypes.DatabaseError(err, "failed to create product").
			WithField("name", req.Name)
		errortypes.LogError(nil, err)

		response.Status = "error"
		response.Error = err.Error()
		return response, nil
	}

	response.Product = toProductView(product)
	slog.Info("Successfully added product", "id", product.ID)

	return response, nil
}

// handleGetProduct handles the get_product MCP tool call.
func (s *InventoryToolServer) handleGetProduct(ctx *server.Context, req tools.GetProductRequest) (tools.GetProductResponse, error) {
	slog.Info("Processing get_product request", "id", req.ID)

	response := tools.GetProductResponse{
		Status: "success",
	}

	product, err := s.service.GetProduct(context.Background(), req.ID)
	if err != nil {
		if !errors.Is(err, inventory.ErrProductNotFound) {
			err = errortypes.DatabaseError(err, "failed to load product").
				WithField("product_id", req.ID)
			errortypes.LogError(nil, err)
		}

		response.Status = "error"
		response.Error = err.Error()
		return response, nil
	}

	response.Product = toProductView(product)
	return response, nil
}

// handleSearchProducts handles the search_products MCP tool call.
func (s *InventoryToolServer) handleSearchProducts(ctx *server.Context, req tools.SearchProductsRequest) (tools.SearchProductsResponse, error) {
	slog.Info("Processing search_products request", "query", req.Query, "limit", req.Limit)

	response := tools.SearchProductsResponse{
		Status: "success",
	}

	if req.Query == "" {
		err := errortypes.ValidationError(errors.New("query cannot be empty"), "invalid search_products request")
		errortypes.LogError(nil, err)
		response.Status = "error"
		response.Error = err.Error()
		return response, nil
	}

	limit := req.Limit
	if limit <= 0 {
		limit = tools.DefaultSearchLimit
	}

	results, err := s.service.SimilarByText(context.Background(), req.Query, limit)
	if err != nil {
		err = errortypes.APIError(err, "failed to search products").
			WithField("query", req.Query)
		errortypes.LogError(nil, err)

		response.Status = "error"
		response.Error = err.Error()
		return response, nil
	}

	for _, result := range results {
		response.Results = append(response.Results, tools.SearchProductsResult{
			ID:   result.ID,
			Name: result.Name,
		})
	}

	slog.Info("Successfully searched products", "count", len(response.Results))
	return response, nil
}

// handleInventoryReport handles the inventory_report MCP tool call.
func (s *InventoryToolServer) handleInventoryReport(ctx *server.Context, req tools.InventoryReportRequest) (tools.InventoryReportResponse, error) {
	slog.Info("Processing inventory_report request")

	response := tools.InventoryReportResponse{
		Status: "success",
	}

	fail := func(err error) (tools.InventoryReportResponse, error) {
		err = errortypes.DatabaseError(err, "failed to build inventory report")
		errortypes.LogError(nil, err)
		response.Status = "error"
		response.Error = err.Error()
		return response, nil
	}

	bg := context.Background()

	total, err := s.service.TotalValue(bg)
	if err != nil {
		return fail(err)
	}
	response.TotalValue = total

	avg, err := s.service.AveragePrice(bg)
	if err != nil {
		return fail(err)
	}
	response.AveragePrice = avg

	min, max, err := s.service.MinMaxPrice(bg)
	if err != nil {
		return fail(err)
	}
	response.MinPrice = min
	response.MaxPrice = max

	counts, err := s.service.CountByCategory(bg)
	if err != nil {
		return fail(err)
	}
	for _, count := range counts {
		response.ProductsPerCategory = append(response.ProductsPerCategory, tools.CategoryCountView{
			Category: count.Category,
			Count:    count.Count,
		})
	}

	outOfStock, err := s.service.OutOfStock(bg)
	if err != nil {
		return fail(err)
	}
	response.OutOfStockCount = len(outOfStock)

	slog.Info("Successfully built inventory report")
	return response, nil
}
