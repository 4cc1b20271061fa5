package repository

import (
	"storefront-service/internal/domain"
)

// ProductFilter narrows storefront and admin product listings.
type ProductFilter struct {
	Category   string
	Featured   bool
	TopRated   bool
	TopSale    bool
	ActiveOnly bool
	Limit      int
}

type ProductRepository interface {
	Save(product *domain.Product) error
	FindAll(filter ProductFilter) ([]domain.Product, error)
	FindByID(id uint64) (*domain.Product, error)
	FindBySlug(slug string) (*domain.Product, error)
	Update(id uint64, fields map[string]any) (*domain.Product, error)
	Delete(id uint64) error
}

type OrderRepository interface {
	Save(order *domain.Order) error
	FindAll() ([]domain.Order, error)
	FindByID(id uint64) (*domain.Order, error)
	FindByOrderNumber(orderNumber string) (*domain.Order, error)
	UpdateStatus(id uint64, status domain.OrderStatus) (*domain.Order, error)
}

type LeadRepository interface {
	Save(lead *domain.Lead) error
	FindAll() ([]domain.Lead, error)
	FindByID(id uint64) (*domain.Lead, error)
	UpdateStatus(id uint64, status domain.LeadStatus) (*domain.Lead, error)
	Delete(id uint64) error
}

// ContentRepository covers the simple attribute-bag entities
// (Category, Banner, Blog, GalleryItem).
type ContentRepository[T any] interface {
	Save(entity *T) error
	FindAll(activeOnly bool) ([]T, error)
	FindByID(id uint64) (*T, error)
	Update(id uint64, fields map[string]any) (*T, error)
	Delete(id uint64) error
}
