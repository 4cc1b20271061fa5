// Package cart holds a customer's line items between visits. Mutations
// write through to an injected snapshot store so a reload never loses the
// cart.
package cart

import (
	"context"

	"storefront-service/internal/domain"
)

// SnapshotStore persists cart snapshots keyed by cart id. A missing
// snapshot is (nil, nil).
type SnapshotStore interface {
	Load(ctx context.Context, cartID string) ([]domain.CartItem, error)
	Save(ctx context.Context, cartID string, items []domain.CartItem) error
	Delete(ctx context.Context, cartID string) error
}

type Store struct {
	snapshots SnapshotStore
}

func NewStore(snapshots SnapshotStore) *Store {
	return &Store{snapshots: snapshots}
}

// Items returns the current line items, oldest first.
func (s *Store) Items(ctx context.Context, cartID string) ([]domain.CartItem, error) {
	return s.snapshots.Load(ctx, cartID)
}

// AddItem appends a line for the product, or increments the quantity of
// an existing line by one. One line per product id.
func (s *Store) AddItem(ctx context.Context, cartID string, product *domain.Product) ([]domain.CartItem, error) {
	items, err := s.snapshots.Load(ctx, cartID)
	if err != nil {
		return nil, err
	}
	found := false
	for i := range items {
		if items[i].ProductID == product.ID {
			items[i].Quantity++
			found = true
			break
		}
	}
	if !found {
		items = append(items, domain.CartItem{
			ProductID: product.ID,
			Name:      product.Name,
			Price:     product.Price,
			Image:     product.PrimaryImage(),
			Quantity:  1,
		})
	}
	if err := s.snapshots.Save(ctx, cartID, items); err != nil {
		return nil, err
	}
	return items, nil
}

// UpdateQuantity sets a line's quantity. Zero or below removes the line.
func (s *Store) UpdateQuantity(ctx context.Context, cartID string, productID uint64, quantity int) ([]domain.CartItem, error) {
	items, err := s.snapshots.Load(ctx, cartID)
	if err != nil {
		return nil, err
	}
	if quantity <= 0 {
		items = removeLine(items, productID)
	} else {
		for i := range items {
			if items[i].ProductID == productID {
				items[i].Quantity = quantity
				break
			}
		}
	}
	if err := s.snapshots.Save(ctx, cartID, items); err != nil {
		return nil, err
	}
	return items, nil
}

// RemoveItem drops the line unconditionally; absent lines are a no-op.
func (s *Store) RemoveItem(ctx context.Context, cartID string, productID uint64) ([]domain.CartItem, error) {
	items, err := s.snapshots.Load(ctx, cartID)
	if err != nil {
		return nil, err
	}
	items = removeLine(items, productID)
	if err := s.snapshots.Save(ctx, cartID, items); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) Clear(ctx context.Context, cartID string) error {
	return s.snapshots.Delete(ctx, cartID)
}

// TotalItems sums quantities across all lines.
func TotalItems(items []domain.CartItem) int {
	total := 0
	for _, it := range items {
		total += it.Quantity
	}
	return total
}

// TotalPrice sums price*quantity using the prices captured at add time.
func TotalPrice(items []domain.CartItem) float64 {
	total := 0.0
	for _, it := range items {
		total += it.Price * float64(it.Quantity)
	}
	return total
}

func removeLine(items []domain.CartItem, productID uint64) []domain.CartItem {
	out := items[:0]
	for _, it := range items {
		if it.ProductID != productID {
			out = append(out, it)
		}
	}
	return out
}
