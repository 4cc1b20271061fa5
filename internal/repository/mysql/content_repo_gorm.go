package mysql

import (
	"errors"

	"storefront-service/internal/repository"

	"gorm.io/gorm"
)

// contentRepo is the shared gorm implementation for the attribute-bag
// entities (Category, Banner, Blog, GalleryItem). They all carry an
// is_active flag and need nothing beyond plain CRUD.
type contentRepo[T any] struct {
	db      *gorm.DB
	orderBy string
}

func NewContentRepository[T any](db *gorm.DB, orderBy string) repository.ContentRepository[T] {
	if orderBy == "" {
		orderBy = "created_at DESC"
	}
	return &contentRepo[T]{db: db, orderBy: orderBy}
}

func (r *contentRepo[T]) Save(entity *T) error {
	return r.db.Create(entity).Error
}

func (r *contentRepo[T]) FindAll(activeOnly bool) ([]T, error) {
	q := r.db.Order(r.orderBy)
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	var out []T
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *contentRepo[T]) FindByID(id uint64) (*T, error) {
	var e T
	if err := r.db.First(&e, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}

func (r *contentRepo[T]) Update(id uint64, fields map[string]any) (*T, error) {
	var e T
	result := r.db.Model(&e).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		if found, _ := r.FindByID(id); found == nil {
			return nil, nil
		}
	}
	return r.FindByID(id)
}

func (r *contentRepo[T]) Delete(id uint64) error {
	var e T
	return r.db.Where("id = ?", id).Delete(&e).Error
}
