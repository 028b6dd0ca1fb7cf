package memory

import (
	"context"
	"testing"

	"github.com/niharikakanakala/products-api/internal/domain"
	"github.com/niharikakanakala/products-api/internal/infrastructure/config"
	"github.com/niharikakanakala/products-api/internal/infrastructure/telemetry"
)

func newTestRepository(t *testing.T) *ProductRepository {
	t.Helper()
	telem := telemetry.NewNoOpTelemetry(&config.OTLPConfig{ServiceName: "products-api-test"})
	return NewProductRepository(telem.TracerProvider.Tracer("test"), telem.Logger)
}

func seed(t *testing.T, repo *ProductRepository) {
	t.Helper()
	products := []domain.Product{
		{Name: "Belgian Waffle", Category: "Waffle", Price: 10.99},
		{Name: "Greek Salad", Category: "Salad", Price: 9.49},
		{Name: "Pepperoni Pizza", Category: "Pizza", Price: 16.99},
	}
	for i := range products {
		if err := repo.Create(context.Background(), &products[i]); err != nil {
			t.Fatalf("failed to seed: %v", err)
		}
	}
}

func TestCreateAssignsSequentialIDs(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	first := &domain.Product{Name: "Belgian Waffle", Price: 10.99}
	second := &domain.Product{Name: "Greek Salad", Price: 9.49}
	if err := repo.Create(ctx, first); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := repo.Create(ctx, second); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if first.ID != 1 || second.ID != 2 {
		t.Errorf("expected IDs 1 and 2, got %d and %d", first.ID, second.ID)
	}
}

func TestCreateHonorsSuppliedID(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	p := &domain.Product{ID: 42, Name: "Belgian Waffle", Price: 10.99}
	if err := repo.Create(ctx, p); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	got, err := repo.FindByID(ctx, 42)
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if got.Name != "Belgian Waffle" {
		t.Errorf("unexpected product: %+v", got)
	}

	// The sequence must not collide with the supplied ID.
	next := &domain.Product{Name: "Greek Salad", Price: 9.49}
	if err := repo.Create(ctx, next); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if next.ID != 43 {
		t.Errorf("expected next ID 43, got %d", next.ID)
	}
}

func TestFindByID_NotFound(t *testing.T) {
	repo := newTestRepository(t)

	_, err := repo.FindByID(context.Background(), 999)
	if err != domain.ErrProductNotFound {
		t.Errorf("expected ErrProductNotFound, got %v", err)
	}
}

func TestFindByName_CaseInsensitiveSubstring(t *testing.T) {
	repo := newTestRepository(t)
	seed(t, repo)

	matches, err := repo.FindByName(context.Background(), "waffle")
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(matches) != 1 || matches[0].Name != "Belgian Waffle" {
		t.Errorf("unexpected matches: %+v", matches)
	}

	none, err := repo.FindByName(context.Background(), "sushi")
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("expected no matches, got %+v", none)
	}
}

func TestFindByCategory(t *testing.T) {
	repo := newTestRepository(t)
	seed(t, repo)

	matches, err := repo.FindByCategory(context.Background(), "pizza")
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if len(matches) != 1 || matches[0].Name != "Pepperoni Pizza" {
		t.Errorf("unexpected matches: %+v", matches)
	}
}

func TestFindAllSorted(t *testing.T) {
	repo := newTestRepository(t)
	seed(t, repo)
	ctx := context.Background()

	byPrice, err := repo.FindAllSorted(ctx, domain.SortByPrice, "asc")
	if err != nil {
		t.Fatalf("sort failed: %v", err)
	}
	if byPrice[0].Price != 9.49 || byPrice[2].Price != 16.99 {
		t.Errorf("unexpected ascending price order: %+v", byPrice)
	}

	byPriceDesc, err := repo.FindAllSorted(ctx, domain.SortByPrice, "desc")
	if err != nil {
		t.Fatalf("sort failed: %v", err)
	}
	if byPriceDesc[0].Price != 16.99 {
		t.Errorf("unexpected descending price order: %+v", byPriceDesc)
	}

	byCategory, err := repo.FindAllSorted(ctx, domain.SortByCategory, "")
	if err != nil {
		t.Fatalf("sort failed: %v", err)
	}
	if byCategory[0].Category != "Pizza" || byCategory[2].Category != "Waffle" {
		t.Errorf("unexpected category order: %+v", byCategory)
	}
}

func TestUpdate(t *testing.T) {
	repo := newTestRepository(t)
	seed(t, repo)
	ctx := context.Background()

	updated := &domain.Product{ID: 1, Name: "Updated Product", Category: "Updated Category", Price: 21}
	if err := repo.Update(ctx, updated); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	got, err := repo.FindByID(ctx, 1)
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if got.Name != "Updated Product" || got.Price != 21 {
		t.Errorf("update not applied: %+v", got)
	}

	missing := &domain.Product{ID: 999, Name: "x"}
	if err := repo.Update(ctx, missing); err != domain.ErrProductNotFound {
		t.Errorf("expected ErrProductNotFound, got %v", err)
	}
}

func TestDeleteAndDeleteAll(t *testing.T) {
	repo := newTestRepository(t)
	seed(t, repo)
	ctx := context.Background()

	if err := repo.Delete(ctx, 1); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := repo.FindByID(ctx, 1); err != domain.ErrProductNotFound {
		t.Errorf("expected ErrProductNotFound after delete, got %v", err)
	}
	if err := repo.Delete(ctx, 1); err != domain.ErrProductNotFound {
		t.Errorf("expected ErrProductNotFound on second delete, got %v", err)
	}

	if err := repo.DeleteAll(ctx); err != nil {
		t.Fatalf("delete all failed: %v", err)
	}
	count, err := repo.Count(ctx)
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 0 {
		t.Errorf("expected 0 products after delete all, got %d", count)
	}

	// The ID sequence restarts after a wipe.
	p := &domain.Product{Name: "Belgian Waffle", Price: 10.99}
	if err := repo.Create(ctx, p); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if p.ID != 1 {
		t.Errorf("expected ID sequence to restart at 1, got %d", p.ID)
	}
}
