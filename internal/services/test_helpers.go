package services

import (
	"storefront-service/internal/domain"
)

func makeTestCustomer() domain.Customer {
	return domain.Customer{
		Name:    "Test Customer",
		Email:   "customer@example.com",
		Phone:   "9876543210",
		Address: "12 Test Lane",
		City:    "Pune",
		State:   "Maharashtra",
		ZipCode: "411001",
	}
}

func makeTestItems() []domain.OrderItem {
	return []domain.OrderItem{
		{ProductID: 1, Name: "Widget", Price: 100, Quantity: 2, Image: "widget.jpg"},
	}
}

func makeTestOrder(id uint64, status domain.OrderStatus) *domain.Order {
	return &domain.Order{
		ID:            id,
		OrderNumber:   "ORD-TEST-0001",
		Items:         makeTestItems(),
		Customer:      makeTestCustomer(),
		TotalAmount:   200,
		Status:        status,
		PaymentMethod: domain.PaymentCOD,
	}
}
