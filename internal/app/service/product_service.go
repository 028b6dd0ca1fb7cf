package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/niharikakanakala/products-api/internal/domain"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// ProductService implements the product collaborator consumed by the HTTP
// layer. Every operation performs exactly one repository call and reports
// absence as domain.ErrProductNotFound rather than a fault.
type ProductService struct {
	repo              domain.ProductRepository
	tracer            trace.Tracer
	logger            *slog.Logger
	productsCreated   metric.Int64Counter
	productOperations metric.Int64Counter
}

// NewProductService creates a new product service
func NewProductService(
	repo domain.ProductRepository,
	tracer trace.Tracer,
	meter metric.Meter,
	logger *slog.Logger,
) *ProductService {
	productsCreated, _ := meter.Int64Counter(
		"products.created.total",
		metric.WithDescription("Total number of products created"),
	)

	productOperations, _ := meter.Int64Counter(
		"products.operations",
		metric.WithDescription("Total number of product operations"),
	)

	return &ProductService{
		repo:              repo,
		tracer:            tracer,
		logger:            logger,
		productsCreated:   productsCreated,
		productOperations: productOperations,
	}
}

// recordOp counts one operation outcome on the products.operations metric.
func (s *ProductService) recordOp(ctx context.Context, operation, result string) {
	s.productOperations.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("operation", operation),
			attribute.String("result", result),
		),
	)
}

// finishSpan closes out a span according to the operation outcome.
func finishSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return
	}
	span.SetStatus(codes.Ok, "")
}

// AddProduct stores a new product. The repository assigns an ID when the
// submitted product carries none.
func (s *ProductService) AddProduct(ctx context.Context, product *domain.Product) error {
	ctx, span := s.tracer.Start(ctx, "ProductService.AddProduct")
	defer span.End()

	span.SetAttributes(
		attribute.String("product.name", product.Name),
		attribute.Float64("product.price", product.Price),
	)

	if err := product.Validate(); err != nil {
		finishSpan(span, err)
		s.logger.WarnContext(ctx, "Rejected invalid product",
			slog.String("error", err.Error()),
		)
		s.recordOp(ctx, "create", "invalid")
		return err
	}

	err := s.repo.Create(ctx, product)
	finishSpan(span, err)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to store product",
			slog.String("error", err.Error()),
		)
		s.recordOp(ctx, "create", "failure")
		return err
	}

	span.SetAttributes(attribute.Int64("product.id", product.ID))
	s.productsCreated.Add(ctx, 1)
	s.recordOp(ctx, "create", "success")

	s.logger.InfoContext(ctx, "Product created",
		slog.Int64("product_id", product.ID),
		slog.String("name", product.Name),
	)
	return nil
}

// GetAllProducts retrieves every stored product.
func (s *ProductService) GetAllProducts(ctx context.Context) ([]domain.Product, error) {
	ctx, span := s.tracer.Start(ctx, "ProductService.GetAllProducts")
	defer span.End()

	products, err := s.repo.FindAll(ctx)
	finishSpan(span, err)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to list products",
			slog.String("error", err.Error()),
		)
		s.recordOp(ctx, "list", "failure")
		return nil, err
	}

	span.SetAttributes(attribute.Int("product.count", len(products)))
	s.recordOp(ctx, "list", "success")
	return products, nil
}

// GetProductByID retrieves a product by ID. Absence surfaces as
// domain.ErrProductNotFound.
func (s *ProductService) GetProductByID(ctx context.Context, id int64) (*domain.Product, error) {
	ctx, span := s.tracer.Start(ctx, "ProductService.GetProductByID")
	defer span.End()

	span.SetAttributes(attribute.Int64("product.id", id))

	product, err := s.repo.FindByID(ctx, id)
	finishSpan(span, err)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			s.logger.WarnContext(ctx, "Product not found",
				slog.Int64("product_id", id),
			)
			s.recordOp(ctx, "read", "not_found")
		} else {
			s.logger.ErrorContext(ctx, "Failed to get product",
				slog.Int64("product_id", id),
				slog.String("error", err.Error()),
			)
			s.recordOp(ctx, "read", "failure")
		}
		return nil, err
	}

	s.recordOp(ctx, "read", "success")
	return product, nil
}

// GetProductsByName retrieves products whose name matches the given text.
// An empty result is a legitimate outcome, not an error.
func (s *ProductService) GetProductsByName(ctx context.Context, name string) ([]domain.Product, error) {
	ctx, span := s.tracer.Start(ctx, "ProductService.GetProductsByName")
	defer span.End()

	span.SetAttributes(attribute.String("product.name", name))

	products, err := s.repo.FindByName(ctx, name)
	finishSpan(span, err)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to search products",
			slog.String("name", name),
			slog.String("error", err.Error()),
		)
		s.recordOp(ctx, "search", "failure")
		return nil, err
	}

	span.SetAttributes(attribute.Int("product.count", len(products)))
	s.recordOp(ctx, "search", "success")
	return products, nil
}

// GetTotalProductCount returns the number of stored products.
func (s *ProductService) GetTotalProductCount(ctx context.Context) (int64, error) {
	ctx, span := s.tracer.Start(ctx, "ProductService.GetTotalProductCount")
	defer span.End()

	count, err := s.repo.Count(ctx)
	finishSpan(span, err)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to count products",
			slog.String("error", err.Error()),
		)
		s.recordOp(ctx, "count", "failure")
		return 0, err
	}

	span.SetAttributes(attribute.Int64("product.count", count))
	s.recordOp(ctx, "count", "success")
	return count, nil
}

// UpdateProduct persists changes to an existing product.
func (s *ProductService) UpdateProduct(ctx context.Context, product *domain.Product) error {
	ctx, span := s.tracer.Start(ctx, "ProductService.UpdateProduct")
	defer span.End()

	span.SetAttributes(attribute.Int64("product.id", product.ID))

	err := s.repo.Update(ctx, product)
	finishSpan(span, err)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to update product",
			slog.Int64("product_id", product.ID),
			slog.String("error", err.Error()),
		)
		s.recordOp(ctx, "update", "failure")
		return err
	}

	s.recordOp(ctx, "update", "success")
	s.logger.InfoContext(ctx, "Product updated",
		slog.Int64("product_id", product.ID),
	)
	return nil
}

// SortProductsByName returns all products ordered by name.
func (s *ProductService) SortProductsByName(ctx context.Context, order domain.SortOrder) ([]domain.Product, error) {
	return s.sortProducts(ctx, domain.SortByName, order)
}

// SortProductsByCategory returns all products ordered by category.
func (s *ProductService) SortProductsByCategory(ctx context.Context, order domain.SortOrder) ([]domain.Product, error) {
	return s.sortProducts(ctx, domain.SortByCategory, order)
}

// SortProductsByPrice returns all products ordered by price.
func (s *ProductService) SortProductsByPrice(ctx context.Context, order domain.SortOrder) ([]domain.Product, error) {
	return s.sortProducts(ctx, domain.SortByPrice, order)
}

func (s *ProductService) sortProducts(ctx context.Context, by domain.SortCriterion, order domain.SortOrder) ([]domain.Product, error) {
	ctx, span := s.tracer.Start(ctx, "ProductService.SortProducts")
	defer span.End()

	span.SetAttributes(
		attribute.String("sort.criterion", string(by)),
		attribute.String("sort.order", string(order)),
	)

	products, err := s.repo.FindAllSorted(ctx, by, order)
	finishSpan(span, err)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to sort products",
			slog.String("criterion", string(by)),
			slog.String("error", err.Error()),
		)
		s.recordOp(ctx, "sort", "failure")
		return nil, err
	}

	s.recordOp(ctx, "sort", "success")
	return products, nil
}

// GetProductsByCategory retrieves products in the given category.
func (s *ProductService) GetProductsByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	ctx, span := s.tracer.Start(ctx, "ProductService.GetProductsByCategory")
	defer span.End()

	span.SetAttributes(attribute.String("product.category", category))

	products, err := s.repo.FindByCategory(ctx, category)
	finishSpan(span, err)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to get products by category",
			slog.String("category", category),
			slog.String("error", err.Error()),
		)
		s.recordOp(ctx, "category", "failure")
		return nil, err
	}

	span.SetAttributes(attribute.Int("product.count", len(products)))
	s.recordOp(ctx, "category", "success")
	return products, nil
}

// DeleteProduct removes a product by ID. Absence surfaces as
// domain.ErrProductNotFound.
func (s *ProductService) DeleteProduct(ctx context.Context, id int64) error {
	ctx, span := s.tracer.Start(ctx, "ProductService.DeleteProduct")
	defer span.End()

	span.SetAttributes(attribute.Int64("product.id", id))

	err := s.repo.Delete(ctx, id)
	finishSpan(span, err)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			s.recordOp(ctx, "delete", "not_found")
		} else {
			s.logger.ErrorContext(ctx, "Failed to delete product",
				slog.Int64("product_id", id),
				slog.String("error", err.Error()),
			)
			s.recordOp(ctx, "delete", "failure")
		}
		return err
	}

	s.recordOp(ctx, "delete", "success")
	s.logger.InfoContext(ctx, "Product deleted",
		slog.Int64("product_id", id),
	)
	return nil
}

// DeleteAllProducts removes the entire collection.
func (s *ProductService) DeleteAllProducts(ctx context.Context) error {
	ctx, span := s.tracer.Start(ctx, "ProductService.DeleteAllProducts")
	defer span.End()

	err := s.repo.DeleteAll(ctx)
	finishSpan(span, err)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to delete all products",
			slog.String("error", err.Error()),
		)
		s.recordOp(ctx, "delete_all", "failure")
		return err
	}

	s.recordOp(ctx, "delete_all", "success")
	s.logger.InfoContext(ctx, "All products deleted")
	return nil
}
