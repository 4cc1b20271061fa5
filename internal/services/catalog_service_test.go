package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"storefront-service/internal/cache"
	"storefront-service/internal/domain"
	"storefront-service/internal/mocks"
	"storefront-service/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

type memoryRemote struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemoryRemote() *memoryRemote {
	return &memoryRemote{data: make(map[string][]byte)}
}

func (f *memoryRemote) Get(ctx context.Context, key string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.data[key]
	if !ok {
		return nil, nil
	}
	return b, nil
}

func (f *memoryRemote) Set(ctx context.Context, key string, value []byte, retention time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[key] = value
	return nil
}

func (f *memoryRemote) Del(ctx context.Context, keys ...string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, k := range keys {
		delete(f.data, k)
	}
	return nil
}

func (f *memoryRemote) KeysByPrefix(ctx context.Context, prefix string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for k := range f.data {
		if len(k) >= len(prefix) && k[:len(prefix)] == prefix {
			out = append(out, k)
		}
	}
	return out, nil
}

func newTestCatalog(products repository.ProductRepository) (*CatalogService, *mocks.MockContentRepository[domain.Category]) {
	categories := new(mocks.MockContentRepository[domain.Category])
	svc := NewCatalogService(
		products,
		categories,
		new(mocks.MockContentRepository[domain.Banner]),
		new(mocks.MockContentRepository[domain.Blog]),
		new(mocks.MockContentRepository[domain.GalleryItem]),
	)
	return svc, categories
}

// The core cache contract: a product created after a cached listing must
// be visible on the very next read.
func TestCatalogService_CreateProductInvalidatesListCache(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(mocks.MockProductRepository)
	svc, _ := newTestCatalog(mockRepo)
	svc.SetCache(cache.NewTwoTier(newMemoryRemote()), 5*time.Minute, 10*time.Minute)

	filter := repository.ProductFilter{ActiveOnly: true}
	mockRepo.On("FindAll", filter).Return([]domain.Product{}, nil).Once()

	first, err := svc.ListProducts(ctx, filter)
	assert.NoError(t, err)
	assert.Empty(t, first)

	// second read within the TTL is served from cache
	cached, err := svc.ListProducts(ctx, filter)
	assert.NoError(t, err)
	assert.Empty(t, cached)

	mockRepo.On("Save", mock.AnythingOfType("*domain.Product")).Return(nil).Run(func(args mock.Arguments) {
		args.Get(0).(*domain.Product).ID = 10
	})
	created, err := svc.CreateProduct(ctx, &domain.Product{Name: "New Widget", Description: "d", Price: 99, Category: "tools"})
	assert.NoError(t, err)

	mockRepo.On("FindAll", filter).Return([]domain.Product{*created}, nil).Once()

	after, err := svc.ListProducts(ctx, filter)
	assert.NoError(t, err)
	assert.Len(t, after, 1)
	assert.Equal(t, "New Widget", after[0].Name)

	mockRepo.AssertExpectations(t)
}

func TestCatalogService_CreateProduct_SlugDerivedFromName(t *testing.T) {
	mockRepo := new(mocks.MockProductRepository)
	svc, _ := newTestCatalog(mockRepo)

	mockRepo.On("Save", mock.AnythingOfType("*domain.Product")).Return(nil)

	p, err := svc.CreateProduct(context.Background(), &domain.Product{
		Name: "Heavy Duty Drill (2kW)", Description: "d", Price: 100, Category: "tools",
	})
	assert.NoError(t, err)
	assert.Equal(t, "heavy-duty-drill-2kw", p.Slug)
}

func TestCatalogService_CreateProduct_DuplicateSlug(t *testing.T) {
	mockRepo := new(mocks.MockProductRepository)
	svc, _ := newTestCatalog(mockRepo)

	mockRepo.On("Save", mock.AnythingOfType("*domain.Product")).Return(gorm.ErrDuplicatedKey)

	_, err := svc.CreateProduct(context.Background(), &domain.Product{
		Name: "Widget", Description: "d", Price: 100, Category: "tools",
	})
	assert.ErrorIs(t, err, ErrSlugTaken)
}

func TestCatalogService_GetProductBySlug_NotFound(t *testing.T) {
	mockRepo := new(mocks.MockProductRepository)
	svc, _ := newTestCatalog(mockRepo)

	mockRepo.On("FindBySlug", "missing").Return(nil, nil)

	_, err := svc.GetProductBySlug(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestCatalogService_UpdateProduct_RegeneratesSlugFromName(t *testing.T) {
	mockRepo := new(mocks.MockProductRepository)
	svc, _ := newTestCatalog(mockRepo)

	expected := map[string]any{"name": "Renamed Widget", "slug": "renamed-widget"}
	mockRepo.On("Update", uint64(1), expected).Return(&domain.Product{ID: 1, Name: "Renamed Widget", Slug: "renamed-widget"}, nil)

	p, err := svc.UpdateProduct(context.Background(), 1, map[string]any{"name": "Renamed Widget"})
	assert.NoError(t, err)
	assert.Equal(t, "renamed-widget", p.Slug)
	mockRepo.AssertExpectations(t)
}

func TestCatalogService_DeleteProduct_NotFound(t *testing.T) {
	mockRepo := new(mocks.MockProductRepository)
	svc, _ := newTestCatalog(mockRepo)

	mockRepo.On("FindByID", uint64(5)).Return(nil, nil)

	err := svc.DeleteProduct(context.Background(), 5)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestCatalogService_CategoryMutationInvalidatesCategoryCache(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(mocks.MockProductRepository)
	svc, categories := newTestCatalog(mockRepo)
	svc.SetCache(cache.NewTwoTier(newMemoryRemote()), 5*time.Minute, 10*time.Minute)

	categories.On("FindAll", true).Return([]domain.Category{}, nil).Once()
	_, err := svc.ListCategories(ctx, true)
	assert.NoError(t, err)

	categories.On("Save", mock.AnythingOfType("*domain.Category")).Return(nil)
	created, err := svc.CreateCategory(ctx, &domain.Category{Name: "Power Tools"})
	assert.NoError(t, err)
	assert.Equal(t, "power-tools", created.Slug)

	categories.On("FindAll", true).Return([]domain.Category{*created}, nil).Once()
	after, err := svc.ListCategories(ctx, true)
	assert.NoError(t, err)
	assert.Len(t, after, 1)

	categories.AssertExpectations(t)
}

func TestCatalogService_UpdateBanner_NotFound(t *testing.T) {
	mockRepo := new(mocks.MockProductRepository)
	svc, _ := newTestCatalog(mockRepo)

	banners := new(mocks.MockContentRepository[domain.Banner])
	svc.banners = banners
	banners.On("Update", uint64(3), mock.Anything).Return(nil, nil)

	_, err := svc.UpdateBanner(context.Background(), 3, map[string]any{"title": "x"})
	assert.ErrorIs(t, err, ErrContentNotFound)
}
