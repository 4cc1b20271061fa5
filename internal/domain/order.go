package domain

import "time"

type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusProcessing OrderStatus = "processing"
	StatusShipped    OrderStatus = "shipped"
	StatusDelivered  OrderStatus = "delivered"
	StatusCancelled  OrderStatus = "cancelled"
)

// OrderStatuses is the full vocabulary. Any status may follow any other:
// admin override supersedes workflow, there is no transition graph.
var OrderStatuses = []OrderStatus{
	StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled,
}

func (s OrderStatus) Valid() bool {
	for _, v := range OrderStatuses {
		if s == v {
			return true
		}
	}
	return false
}

type PaymentMethod string

const (
	PaymentCOD    PaymentMethod = "cod"
	PaymentOnline PaymentMethod = "online"
)

// OrderItem is a value copy of the product at purchase time. It is never
// updated when the catalog entry changes.
type OrderItem struct {
	ID        uint64  `json:"-" gorm:"primaryKey;autoIncrement"`
	OrderID   uint64  `json:"-" gorm:"not null;index"`
	ProductID uint64  `json:"productId"`
	Name      string  `json:"name" gorm:"not null"`
	Price     float64 `json:"price" gorm:"not null"`
	Quantity  int     `json:"quantity" gorm:"not null"`
	Image     string  `json:"image"`
}

type Customer struct {
	Name    string `json:"name" gorm:"not null"`
	Email   string `json:"email" gorm:"not null"`
	Phone   string `json:"phone" gorm:"not null"`
	Address string `json:"address" gorm:"not null"`
	City    string `json:"city" gorm:"not null"`
	State   string `json:"state" gorm:"not null"`
	ZipCode string `json:"zipCode" gorm:"not null"`
}

type Order struct {
	ID            uint64        `json:"id" gorm:"primaryKey;autoIncrement"`
	OrderNumber   string        `json:"orderNumber" gorm:"uniqueIndex;size:64;not null"`
	Items         []OrderItem   `json:"items" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Customer      Customer      `json:"customer" gorm:"embedded;embeddedPrefix:customer_"`
	TotalAmount   float64       `json:"totalAmount" gorm:"not null"`
	Status        OrderStatus   `json:"status" gorm:"type:enum('pending','processing','shipped','delivered','cancelled');default:'pending'"`
	PaymentMethod PaymentMethod `json:"paymentMethod" gorm:"type:enum('cod','online');default:'cod'"`
	Notes         string        `json:"notes,omitempty"`
	CreatedAt     time.Time     `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt     time.Time     `json:"updatedAt" gorm:"autoUpdateTime"`
}

// ProgressSteps is the customer-facing tracking sequence. Cancelled sits
// outside it and renders as a terminal branch with no completed steps.
var ProgressSteps = []OrderStatus{
	StatusPending, StatusProcessing, StatusShipped, StatusDelivered,
}

type ProgressStep struct {
	Status    OrderStatus `json:"status"`
	Completed bool        `json:"completed"`
}

// Progress derives the 4-step tracking view for a status.
func Progress(status OrderStatus) []ProgressStep {
	current := -1
	for i, s := range ProgressSteps {
		if s == status {
			current = i
		}
	}
	steps := make([]ProgressStep, len(ProgressSteps))
	for i, s := range ProgressSteps {
		steps[i] = ProgressStep{Status: s, Completed: current >= 0 && i <= current}
	}
	return steps
}
