package product

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -source=product_repo.go -destination=mock/product_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, p *Product) error
	FindAll(ctx context.Context, filter ListFilter) ([]Product, error)
	FindByID(ctx context.Context, id string) (*Product, error)
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, p *Product) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *repository) FindAll(ctx context.Context, filter ListFilter) ([]Product, error) {
	db := r.db.WithContext(ctx)

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		db = db.Where("name ILIKE ? OR sku ILIKE ? OR mfr ILIKE ?", pattern, pattern, pattern)
	}

	var products []Product
	err := db.Order("name ASC").Find(&products).Error
	return products, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Product, error) {
	var p Product
	err := r.db.WithContext(ctx).First(&p, "product_id = ?", id).Error
	return &p, err
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&Product{}, "product_id = ?", id).Error
}
