package services

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"storefront-service/internal/cache"
	"storefront-service/internal/domain"
	rabbit "storefront-service/internal/infra/rabbitmq"
	"storefront-service/internal/repository"

	"gorm.io/gorm"
)

var (
	ErrOrderNotFound    = errors.New("order not found")
	ErrInvalidStatus    = errors.New("invalid order status")
	ErrInvalidOrder     = errors.New("invalid order")
	ErrOrderNumberTaken = errors.New("order number already taken")
)

const ordersCacheKey = "orders:all"

type OrderService struct {
	repo      repository.OrderRepository
	publisher rabbit.PublisherInterface

	cache    *cache.TwoTier
	cacheTTL time.Duration
}

func NewOrderService(r repository.OrderRepository, pub rabbit.PublisherInterface) *OrderService {
	return &OrderService{
		repo:      r,
		publisher: pub,
		cacheTTL:  2 * time.Minute,
	}
}

func (u *OrderService) SetCache(c *cache.TwoTier, ttl time.Duration) {
	u.cache = c
	if ttl > 0 {
		u.cacheTTL = ttl
	}
}

// CreateOrderInput is a checkout submission. Line prices are the values
// the customer saw; the stored total is computed from them, not from the
// live catalog.
type CreateOrderInput struct {
	Items         []domain.OrderItem
	Customer      domain.Customer
	PaymentMethod domain.PaymentMethod
	Notes         string
}

func (in *CreateOrderInput) validate() error {
	if len(in.Items) == 0 {
		return errors.New("order must contain at least one item")
	}
	for i, it := range in.Items {
		if it.Name == "" {
			return fmt.Errorf("item %d: name is required", i)
		}
		if it.Price <= 0 {
			return fmt.Errorf("item %d: price must be positive", i)
		}
		if it.Quantity < 1 {
			return fmt.Errorf("item %d: quantity must be at least 1", i)
		}
	}
	required := map[string]string{
		"name":    in.Customer.Name,
		"email":   in.Customer.Email,
		"phone":   in.Customer.Phone,
		"address": in.Customer.Address,
		"city":    in.Customer.City,
		"state":   in.Customer.State,
		"zipCode": in.Customer.ZipCode,
	}
	for field, v := range required {
		if strings.TrimSpace(v) == "" {
			return fmt.Errorf("customer %s is required", field)
		}
	}
	return nil
}

// CreateOrder persists a checkout as a uniquely numbered order. The
// unique index on order_number is the authoritative guard; generation is
// retried once if the candidate collides.
func (u *OrderService) CreateOrder(ctx context.Context, in CreateOrderInput) (*domain.Order, error) {
	if err := in.validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidOrder, err)
	}

	total := 0.0
	for _, it := range in.Items {
		total += it.Price * float64(it.Quantity)
	}

	method := in.PaymentMethod
	if method == "" {
		method = domain.PaymentCOD
	}

	order := &domain.Order{
		OrderNumber:   GenerateOrderNumber(),
		Items:         in.Items,
		Customer:      in.Customer,
		TotalAmount:   total,
		Status:        domain.StatusPending,
		PaymentMethod: method,
		Notes:         in.Notes,
	}

	err := u.repo.Save(order)
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		order.OrderNumber = GenerateOrderNumber()
		err = u.repo.Save(order)
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrOrderNumberTaken
		}
	}
	if err != nil {
		return nil, err
	}

	u.invalidate(ctx)
	go u.publishOrderCreated(context.Background(), order)

	return order, nil
}

func (u *OrderService) publishOrderCreated(ctx context.Context, order *domain.Order) {
	evt := domain.OrderCreatedEvent{
		OrderID:     order.ID,
		OrderNumber: order.OrderNumber,
		TotalAmount: order.TotalAmount,
		Email:       order.Customer.Email,
		CreatedAt:   order.CreatedAt,
	}
	if err := u.publisher.Publish(ctx, "order.created", evt); err != nil {
		log.Printf("Failed to publish order.created for %s: %v", order.OrderNumber, err)
	}
}

func (u *OrderService) GetOrderById(id uint64) (*domain.Order, error) {
	o, err := u.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, ErrOrderNotFound
	}
	return o, nil
}

// ListOrders serves the admin order table through the two-tier cache.
func (u *OrderService) ListOrders(ctx context.Context) ([]domain.Order, error) {
	if u.cache == nil {
		return u.repo.FindAll()
	}
	b, err := u.cache.Get(ctx, ordersCacheKey, u.cacheTTL, u.loadOrders)
	if err != nil {
		return nil, err
	}
	var orders []domain.Order
	if err := json.Unmarshal(b, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (u *OrderService) loadOrders(ctx context.Context) ([]byte, error) {
	orders, err := u.repo.FindAll()
	if err != nil {
		return nil, err
	}
	return json.Marshal(orders)
}

// UpdateOrderStatus accepts any of the five statuses in any sequence.
// Admin override wins over workflow, so there is no transition graph.
func (u *OrderService) UpdateOrderStatus(ctx context.Context, id uint64, status domain.OrderStatus) (*domain.Order, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}
	o, err := u.repo.UpdateStatus(id, status)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, ErrOrderNotFound
	}
	u.invalidate(ctx)
	return o, nil
}

// TrackOrder finds an order by its customer-facing number, ignoring
// case. No match is (nil, nil), not an error.
func (u *OrderService) TrackOrder(ctx context.Context, orderNumber string) (*domain.Order, error) {
	return u.repo.FindByOrderNumber(strings.ToLower(strings.TrimSpace(orderNumber)))
}

// StartOrderPolling refreshes the orders cache on a fixed period until
// the context is cancelled. Orders change underneath the admin table, so
// they are not left to on-demand staleness alone.
func (u *OrderService) StartOrderPolling(ctx context.Context, period time.Duration) {
	if u.cache == nil {
		return
	}
	go func() {
		ticker := time.NewTicker(period)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := u.cache.Refresh(ctx, ordersCacheKey, u.loadOrders); err != nil {
					log.Printf("order cache poll: %v", err)
				}
			}
		}
	}()
}

func (u *OrderService) invalidate(ctx context.Context) {
	if u.cache != nil {
		u.cache.Invalidate(ctx, "orders")
	}
}

// GenerateOrderNumber produces a human-readable candidate: a prefix, the
// millisecond timestamp in base 36, and six random base-36 characters.
// Uniqueness is ultimately enforced by the database index.
func GenerateOrderNumber() string {
	const alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	suffix := make([]byte, 6)
	buf := make([]byte, 6)
	if _, err := rand.Read(buf); err != nil {
		// fall back to the clock; the unique index still guards
		for i := range buf {
			buf[i] = byte(time.Now().UnixNano() >> (i * 8))
		}
	}
	for i, b := range buf {
		suffix[i] = alphabet[int(b)%len(alphabet)]
	}
	ts := strings.ToUpper(strconv.FormatInt(time.Now().UnixMilli(), 36))
	return "ORD-" + ts + "-" + string(suffix)
}
