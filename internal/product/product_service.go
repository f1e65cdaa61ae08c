package product

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	producterrors "github.com/NicBab/x-tech-app-server/internal/product/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const (
	catalogCacheKey = "products:catalog"
	catalogCacheTTL = 5 * time.Minute
)

//go:generate mockgen -source=product_service.go -destination=mock/product_service_mock.go -package=mock
type Service interface {
	List(ctx context.Context, filter ListFilter) ([]ProductResponse, error)
	GetByID(ctx context.Context, id string) (ProductResponse, error)
	Create(ctx context.Context, req CreateProductRequest) (ProductResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo   Repository
	cache  *redis.Client
	group  singleflight.Group
	logger *zap.Logger
}

func NewService(repo Repository, cache *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("product.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("product.service")
	}
	return &service{repo: repo, cache: cache, logger: l}
}

// List serves the unfiltered catalog from redis when possible; searches
// always hit the database.
func (s *service) List(ctx context.Context, filter ListFilter) ([]ProductResponse, error) {
	if filter.Search != "" || s.cache == nil {
		return s.listFromDB(ctx, filter)
	}

	if cached, err := s.cache.Get(ctx, catalogCacheKey).Bytes(); err == nil {
		var resp []ProductResponse
		if err := json.Unmarshal(cached, &resp); err == nil {
			return resp, nil
		}
	}

	// Collapse a cache-miss stampede into one database query.
	v, err, _ := s.group.Do(catalogCacheKey, func() (interface{}, error) {
		resp, err := s.listFromDB(ctx, filter)
		if err != nil {
			return nil, err
		}

		if data, err := json.Marshal(resp); err == nil {
			if err := s.cache.Set(ctx, catalogCacheKey, data, catalogCacheTTL).Err(); err != nil {
				s.logger.Warn("product catalog cache store failed", zap.Error(err))
			}
		}
		return resp, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]ProductResponse), nil
}

func (s *service) listFromDB(ctx context.Context, filter ListFilter) ([]ProductResponse, error) {
	products, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		s.logger.Error("list products failed", zap.Error(err))
		return nil, err
	}

	resp := make([]ProductResponse, len(products))
	for i, p := range products {
		resp[i] = mapToResponse(p)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, id string) (ProductResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return ProductResponse{}, producterrors.ErrInvalidProductID
	}

	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ProductResponse{}, producterrors.ErrProductNotFound
		}
		return ProductResponse{}, err
	}
	return mapToResponse(*p), nil
}

func (s *service) Create(ctx context.Context, req CreateProductRequest) (ProductResponse, error) {
	if req.Name == "" {
		return ProductResponse{}, producterrors.ErrNameRequired
	}

	price := 0.0
	if req.Price.Valid {
		price = req.Price.Value
	}

	p := &Product{
		ProductID:     uuid.New(),
		Name:          req.Name,
		Manufacturer:  req.Manufacturer,
		SKU:           req.SKU,
		Price:         price,
		Rating:        req.Rating,
		StockQuantity: req.StockQuantity,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ProductResponse{}, producterrors.ErrDuplicateSKU
		}
		s.logger.Error("create product failed", zap.Error(err))
		return ProductResponse{}, err
	}

	s.invalidateCatalog(ctx)
	s.logger.Info("product created", zap.String("product_id", p.ProductID.String()))

	return mapToResponse(*p), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return producterrors.ErrInvalidProductID
	}

	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return producterrors.ErrProductNotFound
		}
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("delete product failed", zap.String("product_id", id), zap.Error(err))
		return err
	}

	s.invalidateCatalog(ctx)
	s.logger.Info("product deleted", zap.String("product_id", id))
	return nil
}

func (s *service) invalidateCatalog(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, catalogCacheKey).Err(); err != nil {
		s.logger.Warn("product catalog cache invalidation failed", zap.Error(err))
	}
}

func mapToResponse(p Product) ProductResponse {
	return ProductResponse{
		ProductID:     p.ProductID.String(),
		Name:          p.Name,
		Manufacturer:  p.Manufacturer,
		SKU:           p.SKU,
		Price:         p.Price,
		Rating:        p.Rating,
		StockQuantity: p.StockQuantity,
	}
}
