package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/niharikakanakala/products-api/internal/domain"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// ProductRepository is a PostgreSQL implementation of domain.ProductRepository
// backed by a pgx connection pool.
type ProductRepository struct {
	pool   *pgxpool.Pool
	tracer trace.Tracer
	logger *slog.Logger
}

// NewProductRepository creates a new PostgreSQL product repository
func NewProductRepository(pool *pgxpool.Pool, tracer trace.Tracer, logger *slog.Logger) *ProductRepository {
	return &ProductRepository{
		pool:   pool,
		tracer: tracer,
		logger: logger,
	}
}

// NewPool opens a pgx connection pool and verifies connectivity.
func NewPool(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return pool, nil
}

// sortColumn maps the closed criterion set onto column names. ORDER BY is
// built only from this mapping, never from caller input.
func sortColumn(by domain.SortCriterion) string {
	switch by {
	case domain.SortByCategory:
		return "category"
	case domain.SortByPrice:
		return "price"
	default:
		return "name"
	}
}

func scanProducts(rows pgx.Rows) ([]domain.Product, error) {
	defer rows.Close()

	products := make([]domain.Product, 0)
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Category, &p.Price); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// Create stores a new product. When the product carries no ID the database
// sequence assigns one.
func (r *ProductRepository) Create(ctx context.Context, product *domain.Product) error {
	ctx, span := r.tracer.Start(ctx, "ProductRepository.Create")
	defer span.End()

	var err error
	if product.ID == 0 {
		err = r.pool.QueryRow(ctx,
			`INSERT INTO products (name, category, price) VALUES ($1, $2, $3) RETURNING id`,
			product.Name, product.Category, product.Price,
		).Scan(&product.ID)
	} else {
		_, err = r.pool.Exec(ctx,
			`INSERT INTO products (id, name, category, price) VALUES ($1, $2, $3, $4)`,
			product.ID, product.Name, product.Category, product.Price,
		)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to insert product")
		return fmt.Errorf("failed to insert product: %w", err)
	}

	span.SetAttributes(attribute.Int64("product.id", product.ID))
	r.logger.InfoContext(ctx, "Product created in repository",
		slog.Int64("product_id", product.ID),
	)
	span.SetStatus(codes.Ok, "Product created successfully")
	return nil
}

// FindAll retrieves all products
func (r *ProductRepository) FindAll(ctx context.Context) ([]domain.Product, error) {
	ctx, span := r.tracer.Start(ctx, "ProductRepository.FindAll")
	defer span.End()

	rows, err := r.pool.Query(ctx,
		`SELECT id, name, category, price FROM products ORDER BY id`)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to query products")
		return nil, fmt.Errorf("failed to query products: %w", err)
	}

	products, err := scanProducts(rows)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to read products")
		return nil, err
	}

	span.SetAttributes(attribute.Int("product.count", len(products)))
	span.SetStatus(codes.Ok, "Products retrieved successfully")
	return products, nil
}

// FindByID retrieves a product by ID
func (r *ProductRepository) FindByID(ctx context.Context, id int64) (*domain.Product, error) {
	ctx, span := r.tracer.Start(ctx, "ProductRepository.FindByID")
	defer span.End()

	span.SetAttributes(attribute.Int64("product.id", id))

	var p domain.Product
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, category, price FROM products WHERE id = $1`, id,
	).Scan(&p.ID, &p.Name, &p.Category, &p.Price)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			span.RecordError(domain.ErrProductNotFound)
			span.SetStatus(codes.Error, "Product not found")
			return nil, domain.ErrProductNotFound
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to query product")
		return nil, fmt.Errorf("failed to query product: %w", err)
	}

	span.SetStatus(codes.Ok, "Product found")
	return &p, nil
}

// FindByName retrieves products whose name contains the given text,
// case-insensitively.
func (r *ProductRepository) FindByName(ctx context.Context, name string) ([]domain.Product, error) {
	ctx, span := r.tracer.Start(ctx, "ProductRepository.FindByName")
	defer span.End()

	rows, err := r.pool.Query(ctx,
		`SELECT id, name, category, price FROM products WHERE name ILIKE '%' || $1 || '%' ORDER BY id`,
		name)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to search products")
		return nil, fmt.Errorf("failed to search products: %w", err)
	}

	products, err := scanProducts(rows)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to read products")
		return nil, err
	}

	span.SetAttributes(attribute.Int("product.count", len(products)))
	span.SetStatus(codes.Ok, "Products searched successfully")
	return products, nil
}

// FindByCategory retrieves products in the given category.
func (r *ProductRepository) FindByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	ctx, span := r.tracer.Start(ctx, "ProductRepository.FindByCategory")
	defer span.End()

	rows, err := r.pool.Query(ctx,
		`SELECT id, name, category, price FROM products WHERE category ILIKE $1 ORDER BY id`,
		category)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to query products by category")
		return nil, fmt.Errorf("failed to query products by category: %w", err)
	}

	products, err := scanProducts(rows)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to read products")
		return nil, err
	}

	span.SetAttributes(attribute.Int("product.count", len(products)))
	span.SetStatus(codes.Ok, "Products retrieved successfully")
	return products, nil
}

// FindAllSorted retrieves all products ordered by the given criterion.
func (r *ProductRepository) FindAllSorted(ctx context.Context, by domain.SortCriterion, order domain.SortOrder) ([]domain.Product, error) {
	ctx, span := r.tracer.Start(ctx, "ProductRepository.FindAllSorted")
	defer span.End()

	span.SetAttributes(
		attribute.String("sort.criterion", string(by)),
		attribute.String("sort.order", string(order)),
	)

	direction := "ASC"
	if order.Descending() {
		direction = "DESC"
	}
	query := fmt.Sprintf(
		`SELECT id, name, category, price FROM products ORDER BY %s %s, id`,
		sortColumn(by), direction)

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to query sorted products")
		return nil, fmt.Errorf("failed to query sorted products: %w", err)
	}

	products, err := scanProducts(rows)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to read products")
		return nil, err
	}

	span.SetStatus(codes.Ok, "Products sorted successfully")
	return products, nil
}

// Count returns the number of stored products.
func (r *ProductRepository) Count(ctx context.Context) (int64, error) {
	ctx, span := r.tracer.Start(ctx, "ProductRepository.Count")
	defer span.End()

	var count int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM products`).Scan(&count); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to count products")
		return 0, fmt.Errorf("failed to count products: %w", err)
	}

	span.SetAttributes(attribute.Int64("product.count", count))
	span.SetStatus(codes.Ok, "Products counted successfully")
	return count, nil
}

// Update replaces a stored product. The product must already exist.
func (r *ProductRepository) Update(ctx context.Context, product *domain.Product) error {
	ctx, span := r.tracer.Start(ctx, "ProductRepository.Update")
	defer span.End()

	span.SetAttributes(attribute.Int64("product.id", product.ID))

	tag, err := r.pool.Exec(ctx,
		`UPDATE products SET name = $2, category = $3, price = $4 WHERE id = $1`,
		product.ID, product.Name, product.Category, product.Price)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to update product")
		return fmt.Errorf("failed to update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		span.RecordError(domain.ErrProductNotFound)
		span.SetStatus(codes.Error, "Product not found")
		return domain.ErrProductNotFound
	}

	r.logger.InfoContext(ctx, "Product updated in repository",
		slog.Int64("product_id", product.ID),
	)
	span.SetStatus(codes.Ok, "Product updated successfully")
	return nil
}

// Delete removes a product by ID.
func (r *ProductRepository) Delete(ctx context.Context, id int64) error {
	ctx, span := r.tracer.Start(ctx, "ProductRepository.Delete")
	defer span.End()

	span.SetAttributes(attribute.Int64("product.id", id))

	tag, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to delete product")
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		span.RecordError(domain.ErrProductNotFound)
		span.SetStatus(codes.Error, "Product not found")
		return domain.ErrProductNotFound
	}

	r.logger.InfoContext(ctx, "Product deleted from repository",
		slog.Int64("product_id", id),
	)
	span.SetStatus(codes.Ok, "Product deleted successfully")
	return nil
}

// DeleteAll removes every stored product and resets the ID sequence.
func (r *ProductRepository) DeleteAll(ctx context.Context) error {
	ctx, span := r.tracer.Start(ctx, "ProductRepository.DeleteAll")
	defer span.End()

	if _, err := r.pool.Exec(ctx, `TRUNCATE products RESTART IDENTITY`); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to delete all products")
		return fmt.Errorf("failed to delete all products: %w", err)
	}

	r.logger.InfoContext(ctx, "All products deleted from repository")
	span.SetStatus(codes.Ok, "Products deleted successfully")
	return nil
}
