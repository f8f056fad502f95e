package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mshelar/shop-service/internal/domain"
	"github.com/mshelar/shop-service/internal/dto"
	"github.com/mshelar/shop-service/internal/repository"
	"github.com/mshelar/shop-service/pkg/database"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	featuredCacheKey   = "featured_products"
	recommendedResults = 3
)

// productService implements ProductService. Featured products are served
// from a Redis side cache that is refilled on miss and rewritten whenever
// the featured flag of any product flips.
type productService struct {
	productRepo repository.ProductRepository
	redis       *database.Redis
	images      ImageStore
	logger      *zap.Logger
}

// NewProductService creates a new product service. images may be nil when
// no storage provider is configured; products are then created with the
// submitted image value as-is.
func NewProductService(
	productRepo repository.ProductRepository,
	redis *database.Redis,
	images ImageStore,
	logger *zap.Logger,
) ProductService {
	return &productService{
		productRepo: productRepo,
		redis:       redis,
		images:      images,
		logger:      logger,
	}
}

// List returns the whole catalog
func (s *productService) List(ctx context.Context) ([]*domain.Product, error) {
	return s.productRepo.List(ctx)
}

// ListByCategory returns products in one category
func (s *productService) ListByCategory(ctx context.Context, category string) ([]*domain.Product, error) {
	return s.productRepo.ListByCategory(ctx, category)
}

// Featured returns featured products, preferring the Redis cache
func (s *productService) Featured(ctx context.Context) ([]*domain.Product, error) {
	cached, err := s.redis.Client.Get(ctx, featuredCacheKey).Result()
	if err == nil {
		var products []*domain.Product
		if err := json.Unmarshal([]byte(cached), &products); err == nil {
			return products, nil
		}
		// Corrupt cache entry: fall through to the catalog.
	} else if !errors.Is(err, redis.Nil) {
		s.logger.Warn("featured cache unavailable", zap.Error(err))
	}

	products, err := s.productRepo.ListFeatured(ctx)
	if err != nil {
		return nil, err
	}

	s.fillFeaturedCache(ctx, products)
	return products, nil
}

// Recommended returns a small random product sample
func (s *productService) Recommended(ctx context.Context) ([]*domain.Product, error) {
	return s.productRepo.Random(ctx, recommendedResults)
}

// Create adds a product to the catalog, uploading its image to the storage
// provider when one is configured.
func (s *productService) Create(ctx context.Context, req *dto.CreateProductRequest) (*domain.Product, error) {
	image := req.Image
	if image != "" && s.images != nil {
		url, err := s.images.Upload(ctx, image)
		if err != nil {
			return nil, fmt.Errorf("failed to upload product image: %w", err)
		}
		image = url
	}

	product := &domain.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Image:       image,
		Category:    req.Category,
		IsFeatured:  req.IsFeatured,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	if product.IsFeatured {
		s.refreshFeaturedCache(ctx)
	}

	return product, nil
}

// ToggleFeatured flips the featured flag and rewrites the cache
func (s *productService) ToggleFeatured(ctx context.Context, id string) (*domain.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	product.IsFeatured = !product.IsFeatured
	if err := s.productRepo.SetFeatured(ctx, id, product.IsFeatured); err != nil {
		return nil, err
	}

	s.refreshFeaturedCache(ctx)
	return product, nil
}

// Delete removes a product and its stored image
func (s *productService) Delete(ctx context.Context, id string) error {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrProductNotFound
		}
		return err
	}

	if product.Image != "" && s.images != nil {
		// Best effort: a dangling image must not block catalog cleanup.
		if err := s.images.Destroy(ctx, product.Image); err != nil {
			s.logger.Warn("failed to destroy product image",
				zap.String("product_id", id),
				zap.Error(err),
			)
		}
	}

	if err := s.productRepo.Delete(ctx, id); err != nil {
		return err
	}

	if product.IsFeatured {
		s.refreshFeaturedCache(ctx)
	}

	return nil
}

func (s *productService) refreshFeaturedCache(ctx context.Context) {
	products, err := s.productRepo.ListFeatured(ctx)
	if err != nil {
		s.logger.Warn("failed to reload featured products", zap.Error(err))
		return
	}
	s.fillFeaturedCache(ctx, products)
}

func (s *productService) fillFeaturedCache(ctx context.Context, products []*domain.Product) {
	payload, err := json.Marshal(products)
	if err != nil {
		s.logger.Warn("failed to marshal featured products", zap.Error(err))
		return
	}

	if err := s.redis.Client.Set(ctx, featuredCacheKey, payload, 0).Err(); err != nil {
		s.logger.Warn("failed to write featured cache", zap.Error(err))
	}
}
