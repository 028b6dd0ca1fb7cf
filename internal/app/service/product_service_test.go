package service

import (
	"context"
	"errors"
	"testing"

	"github.com/niharikakanakala/products-api/internal/domain"
	"github.com/niharikakanakala/products-api/internal/infrastructure/config"
	"github.com/niharikakanakala/products-api/internal/infrastructure/repository/memory"
	"github.com/niharikakanakala/products-api/internal/infrastructure/telemetry"
)

func newTestService(t *testing.T) *ProductService {
	t.Helper()
	telem := telemetry.NewNoOpTelemetry(&config.OTLPConfig{ServiceName: "products-api-test"})
	tracer := telem.TracerProvider.Tracer("test")
	meter := telem.MeterProvider.Meter("test")
	repo := memory.NewProductRepository(tracer, telem.Logger)
	return NewProductService(repo, tracer, meter, telem.Logger)
}

func TestAddAndGetProduct(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	p := &domain.Product{Name: "Chicken Waffle", Category: "Waffle", Price: 12.99}
	if err := svc.AddProduct(ctx, p); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if p.ID == 0 {
		t.Fatal("expected an assigned ID")
	}

	got, err := svc.GetProductByID(ctx, p.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.Name != "Chicken Waffle" || got.Price != 12.99 {
		t.Errorf("unexpected product: %+v", got)
	}
}

func TestAddProduct_RejectsInvalid(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	cases := []struct {
		name    string
		product domain.Product
		want    error
	}{
		{"empty name", domain.Product{Category: "Waffle", Price: 12.99}, domain.ErrInvalidProductName},
		{"zero price", domain.Product{Name: "Chicken Waffle", Category: "Waffle"}, domain.ErrInvalidProductPrice},
		{"negative price", domain.Product{Name: "Chicken Waffle", Category: "Waffle", Price: -5}, domain.ErrInvalidProductPrice},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := tc.product
			if err := svc.AddProduct(ctx, &p); !errors.Is(err, tc.want) {
				t.Errorf("expected %v, got %v", tc.want, err)
			}
		})
	}

	// Nothing invalid may reach storage.
	count, err := svc.GetTotalProductCount(ctx)
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 0 {
		t.Errorf("expected empty collection after rejected adds, got %d", count)
	}
}

func TestGetProductByID_NotFoundIsSentinel(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.GetProductByID(context.Background(), 999)
	if !errors.Is(err, domain.ErrProductNotFound) {
		t.Errorf("expected ErrProductNotFound, got %v", err)
	}
}

func TestCountTracksCollection(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	for _, p := range []*domain.Product{
		{Name: "Chicken Waffle", Category: "Waffle", Price: 12.99},
		{Name: "Greek Salad", Category: "Salad", Price: 9.49},
	} {
		if err := svc.AddProduct(ctx, p); err != nil {
			t.Fatalf("add failed: %v", err)
		}
	}

	count, err := svc.GetTotalProductCount(ctx)
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 2 {
		t.Errorf("expected count 2, got %d", count)
	}

	if err := svc.DeleteAllProducts(ctx); err != nil {
		t.Fatalf("delete all failed: %v", err)
	}
	count, err = svc.GetTotalProductCount(ctx)
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 0 {
		t.Errorf("expected count 0 after delete all, got %d", count)
	}
}

func TestSortProducts(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	for _, p := range []*domain.Product{
		{Name: "Margherita Pizza", Category: "Pizza", Price: 14.99},
		{Name: "Caesar Salad", Category: "Salad", Price: 8.99},
	} {
		if err := svc.AddProduct(ctx, p); err != nil {
			t.Fatalf("add failed: %v", err)
		}
	}

	byName, err := svc.SortProductsByName(ctx, "asc")
	if err != nil {
		t.Fatalf("sort by name failed: %v", err)
	}
	if byName[0].Name != "Caesar Salad" {
		t.Errorf("unexpected name order: %+v", byName)
	}

	byPrice, err := svc.SortProductsByPrice(ctx, "desc")
	if err != nil {
		t.Fatalf("sort by price failed: %v", err)
	}
	if byPrice[0].Price != 14.99 {
		t.Errorf("unexpected price order: %+v", byPrice)
	}

	byCategory, err := svc.SortProductsByCategory(ctx, "desc")
	if err != nil {
		t.Fatalf("sort by category failed: %v", err)
	}
	if byCategory[0].Category != "Salad" {
		t.Errorf("unexpected category order: %+v", byCategory)
	}
}

func TestDeleteProduct_NotFoundIsSentinel(t *testing.T) {
	svc := newTestService(t)

	err := svc.DeleteProduct(context.Background(), 999)
	if !errors.Is(err, domain.ErrProductNotFound) {
		t.Errorf("expected ErrProductNotFound, got %v", err)
	}
}
