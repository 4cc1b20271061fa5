package mysql

import (
	"errors"

	"storefront-service/internal/domain"
	"storefront-service/internal/repository"

	"gorm.io/gorm"
)

type leadRepo struct {
	db *gorm.DB
}

func NewLeadRepository(db *gorm.DB) repository.LeadRepository {
	return &leadRepo{db: db}
}

func (r *leadRepo) Save(lead *domain.Lead) error {
	return r.db.Create(lead).Error
}

func (r *leadRepo) FindAll() ([]domain.Lead, error) {
	var out []domain.Lead
	if err := r.db.Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *leadRepo) FindByID(id uint64) (*domain.Lead, error) {
	var l domain.Lead
	if err := r.db.First(&l, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &l, nil
}

func (r *leadRepo) UpdateStatus(id uint64, status domain.LeadStatus) (*domain.Lead, error) {
	result := r.db.Model(&domain.Lead{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return nil, result.Error
	}
	// zero rows can also mean the row already held this status; only a
	// failed lookup is not-found
	if result.RowsAffected == 0 {
		if l, _ := r.FindByID(id); l == nil {
			return nil, nil
		}
	}
	return r.FindByID(id)
}

func (r *leadRepo) Delete(id uint64) error {
	return r.db.Delete(&domain.Lead{}, id).Error
}
