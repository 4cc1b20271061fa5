package mysql

import (
	"errors"

	"storefront-service/internal/domain"
	"storefront-service/internal/repository"

	"gorm.io/gorm"
)

type productRepo struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) repository.ProductRepository {
	return &productRepo{db: db}
}

func (r *productRepo) Save(product *domain.Product) error {
	return r.db.Create(product).Error
}

func (r *productRepo) FindAll(filter repository.ProductFilter) ([]domain.Product, error) {
	q := r.db.Order("created_at DESC")
	if filter.ActiveOnly {
		q = q.Where("is_active = ?", true)
	}
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.Featured {
		q = q.Where("is_featured = ?", true)
	}
	if filter.TopRated {
		q = q.Where("is_top_rated = ?", true)
	}
	if filter.TopSale {
		q = q.Where("is_top_sale = ?", true)
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}

	var out []domain.Product
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *productRepo) FindByID(id uint64) (*domain.Product, error) {
	var p domain.Product
	if err := r.db.First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *productRepo) FindBySlug(slug string) (*domain.Product, error) {
	var p domain.Product
	if err := r.db.Where("slug = ?", slug).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *productRepo) Update(id uint64, fields map[string]any) (*domain.Product, error) {
	result := r.db.Model(&domain.Product{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		if p, _ := r.FindByID(id); p == nil {
			return nil, nil
		}
	}
	return r.FindByID(id)
}

func (r *productRepo) Delete(id uint64) error {
	return r.db.Delete(&domain.Product{}, id).Error
}
