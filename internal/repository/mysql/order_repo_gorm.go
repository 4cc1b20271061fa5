package mysql

import (
	"errors"
	"log"
	"strings"

	"storefront-service/internal/domain"
	"storefront-service/internal/repository"

	"gorm.io/gorm"
)

type orderRepo struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) repository.OrderRepository {
	return &orderRepo{db: db}
}

func (r *orderRepo) Save(order *domain.Order) error {
	result := r.db.Create(order)
	if result.Error != nil {
		log.Printf("order save error: %v", result.Error)
		return result.Error
	}
	if order.ID == 0 {
		return errors.New("failed to assign order ID")
	}
	return nil
}

func (r *orderRepo) FindAll() ([]domain.Order, error) {
	var out []domain.Order
	if err := r.db.Preload("Items").Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *orderRepo) FindByID(id uint64) (*domain.Order, error) {
	var o domain.Order
	if err := r.db.Preload("Items").First(&o, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &o, nil
}

// FindByOrderNumber matches the customer-facing order number, ignoring case.
func (r *orderRepo) FindByOrderNumber(orderNumber string) (*domain.Order, error) {
	var o domain.Order
	err := r.db.Preload("Items").
		Where("LOWER(order_number) = ?", strings.ToLower(strings.TrimSpace(orderNumber))).
		First(&o).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &o, nil
}

func (r *orderRepo) UpdateStatus(id uint64, status domain.OrderStatus) (*domain.Order, error) {
	result := r.db.Model(&domain.Order{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return nil, result.Error
	}
	// zero rows can also mean the row already held this status; only a
	// failed lookup is not-found
	if result.RowsAffected == 0 {
		if o, _ := r.FindByID(id); o == nil {
			return nil, nil
		}
	}
	return r.FindByID(id)
}
