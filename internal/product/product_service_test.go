package product_test

import (
	"context"
	"testing"

	"github.com/NicBab/x-tech-app-server/internal/product"
	producterrors "github.com/NicBab/x-tech-app-server/internal/product/errors"
	"github.com/NicBab/x-tech-app-server/internal/shared/nullable"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeProductRepository struct {
	createFn   func(ctx context.Context, p *product.Product) error
	findAllFn  func(ctx context.Context, filter product.ListFilter) ([]product.Product, error)
	findByIDFn func(ctx context.Context, id string) (*product.Product, error)
	deleteFn   func(ctx context.Context, id string) error
}

func (f *fakeProductRepository) Create(ctx context.Context, p *product.Product) error {
	if f.createFn != nil {
		return f.createFn(ctx, p)
	}
	return nil
}

func (f *fakeProductRepository) FindAll(ctx context.Context, filter product.ListFilter) ([]product.Product, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx, filter)
	}
	return nil, nil
}

func (f *fakeProductRepository) FindByID(ctx context.Context, id string) (*product.Product, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeProductRepository) Delete(ctx context.Context, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

func TestProductService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		repo := &fakeProductRepository{}
		var stored *product.Product
		repo.createFn = func(ctx context.Context, p *product.Product) error {
			stored = p
			return nil
		}
		svc := product.NewService(repo, nil)

		sku := "CBL-750"
		resp, err := svc.Create(ctx, product.CreateProductRequest{
			Name:          "750 MCM Cable",
			SKU:           &sku,
			Price:         nullable.Number{Valid: true, Value: 1250.50},
			StockQuantity: 40,
		})

		assert.NoError(t, err)
		assert.Equal(t, "750 MCM Cable", stored.Name)
		assert.Equal(t, 1250.50, resp.Price)
		assert.Equal(t, 40, resp.StockQuantity)
	})

	t.Run("duplicate sku", func(t *testing.T) {
		repo := &fakeProductRepository{
			createFn: func(ctx context.Context, p *product.Product) error {
				return &pgconn.PgError{Code: "23505"}
			},
		}
		svc := product.NewService(repo, nil)

		_, err := svc.Create(ctx, product.CreateProductRequest{Name: "Cable"})

		assert.ErrorIs(t, err, producterrors.ErrDuplicateSKU)
	})

	t.Run("name required", func(t *testing.T) {
		svc := product.NewService(&fakeProductRepository{}, nil)

		_, err := svc.Create(ctx, product.CreateProductRequest{})

		assert.ErrorIs(t, err, producterrors.ErrNameRequired)
	})
}

func TestProductService_List(t *testing.T) {
	ctx := context.Background()

	t.Run("search bypasses the cache", func(t *testing.T) {
		var seen product.ListFilter
		repo := &fakeProductRepository{
			findAllFn: func(ctx context.Context, filter product.ListFilter) ([]product.Product, error) {
				seen = filter
				return []product.Product{{ProductID: uuid.New(), Name: "Conduit"}}, nil
			},
		}
		svc := product.NewService(repo, nil)

		resp, err := svc.List(ctx, product.ListFilter{Search: "conduit"})

		assert.NoError(t, err)
		assert.Equal(t, "conduit", seen.Search)
		assert.Len(t, resp, 1)
	})
}

func TestProductService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("invalid id", func(t *testing.T) {
		svc := product.NewService(&fakeProductRepository{}, nil)

		err := svc.Delete(ctx, "not-a-uuid")

		assert.ErrorIs(t, err, producterrors.ErrInvalidProductID)
	})

	t.Run("not found", func(t *testing.T) {
		svc := product.NewService(&fakeProductRepository{}, nil)

		err := svc.Delete(ctx, uuid.New().String())

		assert.ErrorIs(t, err, producterrors.ErrProductNotFound)
	})

	t.Run("success", func(t *testing.T) {
		existing := &product.Product{ProductID: uuid.New(), Name: "Cable"}
		deleted := false
		repo := &fakeProductRepository{
			findByIDFn: func(ctx context.Context, id string) (*product.Product, error) {
				return existing, nil
			},
			deleteFn: func(ctx context.Context, id string) error {
				deleted = true
				return nil
			},
		}
		svc := product.NewService(repo, nil)

		err := svc.Delete(ctx, existing.ProductID.String())

		assert.NoError(t, err)
		assert.True(t, deleted)
	})
}
