package inventory

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"crawshaw.io/sqlite"

	"github.com/stocklight/stocklight/internal/vector"
)

// SQLiteProductStore is an implementation of ProductStore that uses SQLite.
// Embeddings are stored as length-prefixed little-endian BLOBs and ranked
// in Go; similarity queries never leave the process.
type SQLiteProductStore struct {
	conn   *sqlite.Conn
	dbPath string

	// The connection is not safe for concurrent use.
	mu sync.Mutex
}

// NewSQLiteProductStore creates a new SQLiteProductStore instance.
func NewSQLiteProductStore() *SQLiteProductStore {
	return &SQLiteProductStore{}
}

// Initialize initializes the store with the given database path.
func (s *SQLiteProductStore) Initialize(dbPath string) error {
	s.dbPath = dbPath

	conn, err := sqlite.OpenConn(dbPath, sqlite.SQLITE_OPEN_CREATE|sqlite.SQLITE_OPEN_READWRITE)
	if err != nil {
		return fmt.Errorf("failed to open SQLite database: %w", err)
	}
	s.conn = conn

	err = s.createTable()
	if err != nil {
		s.conn.Close()
		return fmt.Errorf("failed to create table: %w", err)
	}

	return nil
}

// createTable creates the products table if it doesn't exist.
func (s *SQLiteProductStore) createTable() error {
	createTableSQL := `
	CREATE TABLE IF NOT EXISTS products (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		description TEXT NOT NULL,
		category TEXT,
		price REAL NOT NULL,
		quantity INTEGER NOT NULL,
		in_stock INTEGER NOT NULL DEFAULT 1,
		embedding BLOB,
		created_at INTEGER NOT NULL,
		arabic_name TEXT,
		arabic_description TEXT
	);`

	stmt, err := s.conn.Prepare(createTableSQL)
	if err != nil {
		return fmt.Errorf("failed to prepare create table statement: %w", err)
	}
	defer stmt.Reset()

	_, err = stmt.Step()
	if err != nil {
		return fmt.Errorf("failed to execute create table statement: %w", err)
	}

	return nil
}

// Close closes the store and releases any resources.
func (s *SQLiteProductStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.conn != nil {
		return s.conn.Close()
	}
	return nil
}

// Insert stores a new product and assigns its ID.
func (s *SQLiteProductStore) Insert(p *Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	insertSQL := `
	INSERT INTO products (name, description, category, price, quantity, in_stock, embedding, created_at, arabic_name, arabic_description)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?);`

	stmt, err := s.conn.Prepare(insertSQL)
	if err != nil {
		return fmt.Errorf("failed to prepare insert statement: %w", err)
	}
	defer stmt.Reset()

	// Parameter indices in sqlite are 1-based
	stmt.BindText(1, p.Name)
	stmt.BindText(2, p.Description)
	bindNullableText(stmt, 3, p.Category)
	stmt.BindFloat(4, p.Price)
	stmt.BindInt64(5, p.Quantity)
	stmt.BindBool(6, p.InStock)
	if p.Embedding != nil {
		blob, err := vector.EncodeVector(p.Embedding)
		if err != nil {
			return fmt.Errorf("failed to encode embedding: %w", err)
		}
		stmt.BindBytes(7, blob)
	} else {
		stmt.BindNull(7)
	}
	stmt.BindInt64(8, p.CreatedAt.Unix())
	bindNullableText(stmt, 9, p.ArabicName)
	bindNullableText(stmt, 10, p.ArabicDescription)

	_, err = stmt.Step()
	if err != nil {
		return fmt.Errorf("failed to insert product: %w", err)
	}

	p.ID = s.conn.LastInsertRowID()
	return nil
}

const productColumns = `id, name, description, category, price, quantity, in_stock, embedding, created_at, arabic_name, arabic_description`

// Get returns the product with the given ID, or ErrProductNotFound.
func (s *SQLiteProductStore) Get(id int64) (*Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	selectSQL := `SELECT ` + productColumns + ` FROM products WHERE id = ?;`

	stmt, err := s.conn.Prepare(selectSQL)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare select statement: %w", err)
	}
	defer stmt.Reset()

	stmt.BindInt64(1, id)

	hasRow, err := stmt.Step()
	if err != nil {
		return nil, fmt.Errorf("failed to execute select statement: %w", err)
	}
	if !hasRow {
		return nil, ErrProductNotFound
	}

	return scanProduct(stmt)
}

// GetBatch returns the products for the given IDs. The IDs are de-duplicated
// first; if any of them is missing the whole lookup fails with
// ErrProductNotFound.
func (s *SQLiteProductStore) GetBatch(ids []int64) ([]*Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	unique := make([]int64, 0, len(ids))
	seen := make(map[int64]bool, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			unique = append(unique, id)
		}
	}
	if len(unique) == 0 {
		return nil, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(unique)), ",")
	selectSQL := `SELECT ` + productColumns + ` FROM products WHERE id IN (` + placeholders + `) ORDER BY id;`

	stmt, err := s.conn.Prepare(selectSQL)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare batch select statement: %w", err)
	}
	defer stmt.Reset()

	for i, id := range unique {
		stmt.BindInt64(i+1, id)
	}

	products, err := collectProducts(stmt)
	if err != nil {
		return nil, err
	}

	if len(products) != len(unique) {
		found := make(map[int64]bool, len(products))
		for _, p := range products {
			found[p.ID] = true
		}
		var missing []int64
		for _, id := range unique {
			if !found[id] {
				missing = append(missing, id)
			}
		}
		return nil, fmt.Errorf("%w: missing ids %v", ErrProductNotFound, missing)
	}

	return products, nil
}

// List returns all products ordered by ID.
func (s *SQLiteProductStore) List() ([]*Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	selectSQL := `SELECT ` + productColumns + ` FROM products ORDER BY id;`

	stmt, err := s.conn.Prepare(selectSQL)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare select statement: %w", err)
	}
	defer stmt.Reset()

	return collectProducts(stmt)
}

// Update persists all fields of the given product.
func (s *SQLiteProductStore) Update(p *Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	updateSQL := `
	UPDATE products
	SET name = ?, description = ?, category = ?, price = ?, quantity = ?, in_stock = ?, embedding = ?, arabic_name = ?, arabic_description = ?
	WHERE id = ?;`

	stmt, err := s.conn.Prepare(updateSQL)
	if err != nil {
		return fmt.Errorf("failed to prepare update statement: %w", err)
	}
	defer stmt.Reset()

	stmt.BindText(1, p.Name)
	stmt.BindText(2, p.Description)
	bindNullableText(stmt, 3, p.Category)
	stmt.BindFloat(4, p.Price)
	stmt.BindInt64(5, p.Quantity)
	stmt.BindBool(6, p.InStock)
	if p.Embedding != nil {
		blob, err := vector.EncodeVector(p.Embedding)
		if err != nil {
			return fmt.Errorf("failed to encode embedding: %w", err)
		}
		stmt.BindBytes(7, blob)
	} else {
		stmt.BindNull(7)
	}
	bindNullableText(stmt, 8, p.ArabicName)
	bindNullableText(stmt, 9, p.ArabicDescription)
	stmt.BindInt64(10, p.ID)

	_, err = stmt.Step()
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}

	if s.conn.Changes() == 0 {
		return ErrProductNotFound
	}
	return nil
}

// Delete removes the product with the given ID.
func (s *SQLiteProductStore) Delete(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	deleteSQL := `DELETE FROM products WHERE id = ?;`

	stmt, err := s.conn.Prepare(deleteSQL)
	if err != nil {
		return fmt.Errorf("failed to prepare delete statement: %w", err)
	}
	defer stmt.Reset()

	stmt.BindInt64(1, id)

	_, err = stmt.Step()
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	if s.conn.Changes() == 0 {
		return ErrProductNotFound
	}
	return nil
}

// UpdateCategory sets the category of a single product.
func (s *SQLiteProductStore) UpdateCategory(id int64, category string) error {
	return s.updateColumnText(id, "category", category)
}

// UpdateDescription sets the description of a single product.
func (s *SQLiteProductStore) UpdateDescription(id int64, description string) error {
	return s.updateColumnText(id, "description", description)
}

// UpdateTranslation sets the Arabic name and description of a product.
func (s *SQLiteProductStore) UpdateTranslation(id int64, arabicName, arabicDescription string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	updateSQL := `UPDATE products SET arabic_name = ?, arabic_description = ? WHERE id = ?;`

	stmt, err := s.conn.Prepare(updateSQL)
	if err != nil {
		return fmt.Errorf("failed to prepare translation update statement: %w", err)
	}
	defer stmt.Reset()

	stmt.BindText(1, arabicName)
	stmt.BindText(2, arabicDescription)
	stmt.BindInt64(3, id)

	_, err = stmt.Step()
	if err != nil {
		return fmt.Errorf("failed to update translation: %w", err)
	}

	if s.conn.Changes() == 0 {
		return ErrProductNotFound
	}
	return nil
}

// UpdateEmbedding sets the stored embedding of a product.
func (s *SQLiteProductStore) UpdateEmbedding(id int64, embedding []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	updateSQL := `UPDATE products SET embedding = ? WHERE id = ?;`

	stmt, err := s.conn.Prepare(updateSQL)
	if err != nil {
		return fmt.Errorf("failed to prepare embedding update statement: %w", err)
	}
	defer stmt.Reset()

	stmt.BindBytes(1, embedding)
	stmt.BindInt64(2, id)

	_, err = stmt.Step()
	if err != nil {
		return fmt.Errorf("failed to update embedding: %w", err)
	}

	if s.conn.Changes() == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (s *SQLiteProductStore) updateColumnText(id int64, column, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	updateSQL := `UPDATE products SET ` + column + ` = ? WHERE id = ?;`

	stmt, err := s.conn.Prepare(updateSQL)
	if err != nil {
		return fmt.Errorf("failed to prepare %s update statement: %w", column, err)
	}
	defer stmt.Reset()

	stmt.BindText(1, value)
	stmt.BindInt64(2, id)

	_, err = stmt.Step()
	if err != nil {
		return fmt.Errorf("failed to update %s: %w", column, err)
	}

	if s.conn.Changes() == 0 {
		return ErrProductNotFound
	}
	return nil
}

// TotalValue returns SUM(price*quantity), 0 for an empty table.
func (s *SQLiteProductStore) TotalValue() (float64, error) {
	return s.scalarFloat(`SELECT COALESCE(SUM(price * quantity), 0) FROM products;`)
}

// AveragePrice returns AVG(price), 0 for an empty table.
func (s *SQLiteProductStore) AveragePrice() (float64, error) {
	return s.scalarFloat(`SELECT COALESCE(AVG(price), 0) FROM products;`)
}

// MinMaxPrice returns MIN(price) and MAX(price), both 0 for an empty table.
func (s *SQLiteProductStore) MinMaxPrice() (min, max float64, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	selectSQL := `SELECT COALESCE(MIN(price), 0), COALESCE(MAX(price), 0) FROM products;`

	stmt, err := s.conn.Prepare(selectSQL)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to prepare min/max statement: %w", err)
	}
	defer stmt.Reset()

	hasRow, err := stmt.Step()
	if err != nil {
		return 0, 0, fmt.Errorf("failed to execute min/max statement: %w", err)
	}
	if !hasRow {
		return 0, 0, nil
	}

	return stmt.ColumnFloat(0), stmt.ColumnFloat(1), nil
}

func (s *SQLiteProductStore) scalarFloat(query string) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stmt, err := s.conn.Prepare(query)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare aggregate statement: %w", err)
	}
	defer stmt.Reset()

	hasRow, err := stmt.Step()
	if err != nil {
		return 0, fmt.Errorf("failed to execute aggregate statement: %w", err)
	}
	if !hasRow {
		return 0, nil
	}

	return stmt.ColumnFloat(0), nil
}

// CountByCategory returns product counts grouped by category.
func (s *SQLiteProductStore) CountByCategory() ([]CategoryCount, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	selectSQL := `SELECT COALESCE(category, ''), COUNT(id) FROM products GROUP BY category ORDER BY category;`

	stmt, err := s.conn.Prepare(selectSQL)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare category count statement: %w", err)
	}
	defer stmt.Reset()

	results := []CategoryCount{}
	for {
		hasRow, err := stmt.Step()
		if err != nil {
			return nil, fmt.Errorf("failed to execute category count statement: %w", err)
		}
		if !hasRow {
			break
		}
		results = append(results, CategoryCount{
			Category: stmt.ColumnText(0),
			Count:    stmt.ColumnInt64(1),
		})
	}

	return results, nil
}

// ValueByCategory returns SUM(price*quantity) grouped by category.
func (s *SQLiteProductStore) ValueByCategory() ([]CategoryValue, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	selectSQL := `SELECT COALESCE(category, ''), SUM(price * quantity) FROM products GROUP BY category ORDER BY category;`

	stmt, err := s.conn.Prepare(selectSQL)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare category value statement: %w", err)
	}
	defer stmt.Reset()

	results := []CategoryValue{}
	for {
		hasRow, err := stmt.Step()
		if err != nil {
			return nil, fmt.Errorf("failed to execute category value statement: %w", err)
		}
		if !hasRow {
			break
		}
		results = append(results, CategoryValue{
			Category: stmt.ColumnText(0),
			Sum:      stmt.ColumnFloat(1),
		})
	}

	return results, nil
}

// OutOfStock returns products with zero quantity or in_stock unset.
func (s *SQLiteProductStore) OutOfStock() ([]*Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	selectSQL := `SELECT ` + productColumns + ` FROM products WHERE quantity = 0 OR in_stock = 0 ORDER BY id;`

	stmt, err := s.conn.Prepare(selectSQL)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare out-of-stock statement: %w", err)
	}
	defer stmt.Reset()

	return collectProducts(stmt)
}

// MostExpensive returns the top products by descending price.
func (s *SQLiteProductStore) MostExpensive(limit int) ([]*Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	selectSQL := `SELECT ` + productColumns + ` FROM products ORDER BY price DESC LIMIT ?;`

	stmt, err := s.conn.Prepare(selectSQL)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare most-expensive statement: %w", err)
	}
	defer stmt.Reset()

	stmt.BindInt64(1, int64(limit))

	return collectProducts(stmt)
}

// SearchSimilar ranks products with embeddings by ascending cosine distance
// to the query vector. Rows whose stored vector has a different dimension
// than the query are skipped.
func (s *SQLiteProductStore) SearchSimilar(query []float32, limit int, excludeID int64) ([]SimilarProduct, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	selectSQL := `SELECT id, name, embedding FROM products WHERE embedding IS NOT NULL AND id != ?;`

	stmt, err := s.conn.Prepare(selectSQL)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare similarity statement: %w", err)
	}
	defer stmt.Reset()

	stmt.BindInt64(1, excludeID)

	var results []SimilarProduct
	for {
		hasRow, err := stmt.Step()
		if err != nil {
			return nil, fmt.Errorf("failed to execute similarity statement: %w", err)
		}
		if !hasRow {
			break
		}

		id := stmt.ColumnInt64(0)
		name := stmt.ColumnText(1)

		embeddingBytes := make([]byte, stmt.ColumnLen(2))
		stmt.ColumnBytes(2, embeddingBytes)

		stored, err := vector.DecodeVector(embeddingBytes)
		if err != nil {
			return nil, fmt.Errorf("failed to decode embedding for product %d: %w", id, err)
		}

		if len(stored) != len(query) {
			continue
		}

		distance, err := vector.CosineDistance(query, stored)
		if err != nil {
			return nil, fmt.Errorf("failed to calculate distance for product %d: %w", id, err)
		}

		results = append(results, SimilarProduct{ID: id, Name: name, Distance: distance})
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Distance < results[j].Distance
	})

	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}

	return results, nil
}

// scanProduct reads one product from the current statement row.
// Column order must match productColumns.
func scanProduct(stmt *sqlite.Stmt) (*Product, error) {
	p := &Product{
		ID:                stmt.ColumnInt64(0),
		Name:              stmt.ColumnText(1),
		Description:       stmt.ColumnText(2),
		Category:          stmt.ColumnText(3),
		Price:             stmt.ColumnFloat(4),
		Quantity:          stmt.ColumnInt64(5),
		InStock:           stmt.ColumnInt64(6) != 0,
		CreatedAt:         time.Unix(stmt.ColumnInt64(8), 0).UTC(),
		ArabicName:        stmt.ColumnText(9),
		ArabicDescription: stmt.ColumnText(10),
	}

	if n := stmt.ColumnLen(7); n > 0 {
		embeddingBytes := make([]byte, n)
		stmt.ColumnBytes(7, embeddingBytes)

		embedding, err := vector.DecodeVector(embeddingBytes)
		if err != nil {
			return nil, fmt.Errorf("failed to decode embedding for product %d: %w", p.ID, err)
		}
		p.Embedding = embedding
	}

	return p, nil
}

// collectProducts steps through all remaining rows of the statement.
func collectProducts(stmt *sqlite.Stmt) ([]*Product, error) {
	products := []*Product{}
	for {
		hasRow, err := stmt.Step()
		if err != nil {
			return nil, fmt.Errorf("failed to execute select statement: %w", err)
		}
		if !hasRow {
			break
		}

		p, err := scanProduct(stmt)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, nil
}

func bindNullableText(stmt *sqlite.Stmt, param int, value string) {
	if value == "" {
		stmt.BindNull(param)
		return
	}
	stmt.BindText(param, value)
}
