package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"storefront-service/internal/cache"
	"storefront-service/internal/domain"
	"storefront-service/internal/repository"

	"gorm.io/gorm"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrContentNotFound = errors.New("not found")
	ErrSlugTaken       = errors.New("slug already in use")
)

// CatalogService covers products plus the content entities the admin
// maintains. Reads for the storefront go through the two-tier cache;
// every confirmed mutation invalidates the entity's cache prefix before
// returning, so a read issued after the response can never see the
// pre-write state.
type CatalogService struct {
	products   repository.ProductRepository
	categories repository.ContentRepository[domain.Category]
	banners    repository.ContentRepository[domain.Banner]
	blogs      repository.ContentRepository[domain.Blog]
	gallery    repository.ContentRepository[domain.GalleryItem]

	cache       *cache.TwoTier
	productTTL  time.Duration
	categoryTTL time.Duration
}

func NewCatalogService(
	products repository.ProductRepository,
	categories repository.ContentRepository[domain.Category],
	banners repository.ContentRepository[domain.Banner],
	blogs repository.ContentRepository[domain.Blog],
	gallery repository.ContentRepository[domain.GalleryItem],
) *CatalogService {
	return &CatalogService{
		products:    products,
		categories:  categories,
		banners:     banners,
		blogs:       blogs,
		gallery:     gallery,
		productTTL:  5 * time.Minute,
		categoryTTL: 10 * time.Minute,
	}
}

func (s *CatalogService) SetCache(c *cache.TwoTier, productTTL, categoryTTL time.Duration) {
	s.cache = c
	if productTTL > 0 {
		s.productTTL = productTTL
	}
	if categoryTTL > 0 {
		s.categoryTTL = categoryTTL
	}
}

func productsCacheKey(f repository.ProductFilter) string {
	return fmt.Sprintf("products:%s:%t:%t:%t:%t:%d",
		f.Category, f.Featured, f.TopRated, f.TopSale, f.ActiveOnly, f.Limit)
}

func (s *CatalogService) ListProducts(ctx context.Context, filter repository.ProductFilter) ([]domain.Product, error) {
	if s.cache == nil {
		return s.products.FindAll(filter)
	}
	b, err := s.cache.Get(ctx, productsCacheKey(filter), s.productTTL, func(ctx context.Context) ([]byte, error) {
		products, err := s.products.FindAll(filter)
		if err != nil {
			return nil, err
		}
		return json.Marshal(products)
	})
	if err != nil {
		return nil, err
	}
	var products []domain.Product
	if err := json.Unmarshal(b, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (s *CatalogService) GetProductBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	p, err := s.products.FindBySlug(slug)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrProductNotFound
	}
	return p, nil
}

func (s *CatalogService) GetProductById(ctx context.Context, id uint64) (*domain.Product, error) {
	p, err := s.products.FindByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrProductNotFound
	}
	return p, nil
}

func (s *CatalogService) CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if product.Slug == "" {
		product.Slug = domain.Slugify(product.Name)
	}
	if err := s.products.Save(product); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrSlugTaken
		}
		return nil, err
	}
	s.invalidate(ctx, "products")
	return product, nil
}

func (s *CatalogService) UpdateProduct(ctx context.Context, id uint64, fields map[string]any) (*domain.Product, error) {
	if name, ok := fields["name"].(string); ok {
		if _, hasSlug := fields["slug"]; !hasSlug {
			fields["slug"] = domain.Slugify(name)
		}
	}
	coerceListFields(fields, "images", "tags")
	p, err := s.products.Update(id, fields)
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrSlugTaken
		}
		return nil, err
	}
	if p == nil {
		return nil, ErrProductNotFound
	}
	s.invalidate(ctx, "products")
	return p, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id uint64) error {
	p, err := s.products.FindByID(id)
	if err != nil {
		return err
	}
	if p == nil {
		return ErrProductNotFound
	}
	if err := s.products.Delete(id); err != nil {
		return err
	}
	s.invalidate(ctx, "products")
	return nil
}

func (s *CatalogService) ListCategories(ctx context.Context, activeOnly bool) ([]domain.Category, error) {
	return listContent(ctx, s, s.categories, "categories", s.categoryTTL, activeOnly)
}

func (s *CatalogService) CreateCategory(ctx context.Context, c *domain.Category) (*domain.Category, error) {
	if c.Slug == "" {
		c.Slug = domain.Slugify(c.Name)
	}
	return createContent(ctx, s, s.categories, "categories", c)
}

func (s *CatalogService) UpdateCategory(ctx context.Context, id uint64, fields map[string]any) (*domain.Category, error) {
	return updateContent(ctx, s, s.categories, "categories", id, fields)
}

func (s *CatalogService) DeleteCategory(ctx context.Context, id uint64) error {
	return deleteContent(ctx, s, s.categories, "categories", id)
}

func (s *CatalogService) ListBanners(ctx context.Context, activeOnly bool) ([]domain.Banner, error) {
	return listContent(ctx, s, s.banners, "banners", s.categoryTTL, activeOnly)
}

func (s *CatalogService) CreateBanner(ctx context.Context, b *domain.Banner) (*domain.Banner, error) {
	return createContent(ctx, s, s.banners, "banners", b)
}

func (s *CatalogService) UpdateBanner(ctx context.Context, id uint64, fields map[string]any) (*domain.Banner, error) {
	return updateContent(ctx, s, s.banners, "banners", id, fields)
}

func (s *CatalogService) DeleteBanner(ctx context.Context, id uint64) error {
	return deleteContent(ctx, s, s.banners, "banners", id)
}

func (s *CatalogService) ListBlogs(ctx context.Context, activeOnly bool) ([]domain.Blog, error) {
	return listContent(ctx, s, s.blogs, "blogs", s.categoryTTL, activeOnly)
}

func (s *CatalogService) CreateBlog(ctx context.Context, b *domain.Blog) (*domain.Blog, error) {
	if b.Slug == "" {
		b.Slug = domain.Slugify(b.Title)
	}
	if b.PublishedAt.IsZero() {
		b.PublishedAt = time.Now()
	}
	return createContent(ctx, s, s.blogs, "blogs", b)
}

func (s *CatalogService) UpdateBlog(ctx context.Context, id uint64, fields map[string]any) (*domain.Blog, error) {
	coerceListFields(fields, "tags")
	return updateContent(ctx, s, s.blogs, "blogs", id, fields)
}

func (s *CatalogService) DeleteBlog(ctx context.Context, id uint64) error {
	return deleteContent(ctx, s, s.blogs, "blogs", id)
}

func (s *CatalogService) ListGallery(ctx context.Context, activeOnly bool) ([]domain.GalleryItem, error) {
	return listContent(ctx, s, s.gallery, "gallery", s.categoryTTL, activeOnly)
}

func (s *CatalogService) CreateGalleryItem(ctx context.Context, g *domain.GalleryItem) (*domain.GalleryItem, error) {
	return createContent(ctx, s, s.gallery, "gallery", g)
}

func (s *CatalogService) UpdateGalleryItem(ctx context.Context, id uint64, fields map[string]any) (*domain.GalleryItem, error) {
	return updateContent(ctx, s, s.gallery, "gallery", id, fields)
}

func (s *CatalogService) DeleteGalleryItem(ctx context.Context, id uint64) error {
	return deleteContent(ctx, s, s.gallery, "gallery", id)
}

// coerceListFields rewrites decoded JSON arrays into StringList so a
// partial update can write the text-encoded list columns.
func coerceListFields(fields map[string]any, keys ...string) {
	for _, key := range keys {
		raw, ok := fields[key].([]any)
		if !ok {
			continue
		}
		list := make(domain.StringList, 0, len(raw))
		for _, v := range raw {
			if s, ok := v.(string); ok {
				list = append(list, s)
			}
		}
		fields[key] = list
	}
}

func (s *CatalogService) invalidate(ctx context.Context, prefix string) {
	if s.cache != nil {
		s.cache.Invalidate(ctx, prefix)
	}
}

func listContent[T any](ctx context.Context, s *CatalogService, repo repository.ContentRepository[T], prefix string, ttl time.Duration, activeOnly bool) ([]T, error) {
	if s.cache == nil {
		return repo.FindAll(activeOnly)
	}
	key := prefix + ":" + strconv.FormatBool(activeOnly)
	b, err := s.cache.Get(ctx, key, ttl, func(ctx context.Context) ([]byte, error) {
		items, err := repo.FindAll(activeOnly)
		if err != nil {
			return nil, err
		}
		return json.Marshal(items)
	})
	if err != nil {
		return nil, err
	}
	var items []T
	if err := json.Unmarshal(b, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func createContent[T any](ctx context.Context, s *CatalogService, repo repository.ContentRepository[T], prefix string, entity *T) (*T, error) {
	if err := repo.Save(entity); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrSlugTaken
		}
		return nil, err
	}
	s.invalidate(ctx, prefix)
	return entity, nil
}

func updateContent[T any](ctx context.Context, s *CatalogService, repo repository.ContentRepository[T], prefix string, id uint64, fields map[string]any) (*T, error) {
	e, err := repo.Update(id, fields)
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrSlugTaken
		}
		return nil, err
	}
	if e == nil {
		return nil, ErrContentNotFound
	}
	s.invalidate(ctx, prefix)
	return e, nil
}

func deleteContent[T any](ctx context.Context, s *CatalogService, repo repository.ContentRepository[T], prefix string, id uint64) error {
	e, err := repo.FindByID(id)
	if err != nil {
		return err
	}
	if e == nil {
		return ErrContentNotFound
	}
	if err := repo.Delete(id); err != nil {
		return err
	}
	s.invalidate(ctx, prefix)
	return nil
}
