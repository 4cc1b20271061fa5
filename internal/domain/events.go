package domain

import "time"

type OrderCreatedEvent struct {
	OrderID     uint64    `json:"orderId"`
	OrderNumber string    `json:"orderNumber"`
	TotalAmount float64   `json:"totalAmount"`
	Email       string    `json:"email"`
	CreatedAt   time.Time `json:"createdAt"`
}

// LeadCreatedEvent carries the template fields for the outbound
// notification email.
type LeadCreatedEvent struct {
	LeadID    uint64    `json:"leadId"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Message   string    `json:"message"`
	Source    string    `json:"source"`
	CreatedAt time.Time `json:"createdAt"`
}
