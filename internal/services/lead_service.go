package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"storefront-service/internal/domain"
	rabbit "storefront-service/internal/infra/rabbitmq"
	"storefront-service/internal/repository"
)

var (
	ErrLeadNotFound      = errors.New("lead not found")
	ErrInvalidLead       = errors.New("invalid lead")
	ErrInvalidLeadStatus = errors.New("invalid lead status")
)

type LeadService struct {
	repo      repository.LeadRepository
	publisher rabbit.PublisherInterface
}

func NewLeadService(r repository.LeadRepository, pub rabbit.PublisherInterface) *LeadService {
	return &LeadService{repo: r, publisher: pub}
}

type CreateLeadInput struct {
	Name    string
	Email   string
	Phone   string
	Message string
	Source  string
}

// CreateLead persists the inquiry and then dispatches the notification
// event. The notification is best-effort: a publish failure is logged
// and never reaches the caller.
func (s *LeadService) CreateLead(ctx context.Context, in CreateLeadInput) (*domain.Lead, error) {
	for field, v := range map[string]string{"name": in.Name, "email": in.Email, "phone": in.Phone} {
		if strings.TrimSpace(v) == "" {
			return nil, fmt.Errorf("%w: %s is required", ErrInvalidLead, field)
		}
	}

	source := in.Source
	if source == "" {
		source = domain.DefaultLeadSource
	}

	lead := &domain.Lead{
		Name:    in.Name,
		Email:   in.Email,
		Phone:   in.Phone,
		Message: in.Message,
		Source:  source,
		Status:  domain.LeadNew,
	}

	if err := s.repo.Save(lead); err != nil {
		return nil, err
	}

	go s.publishLeadCreated(context.Background(), lead)

	return lead, nil
}

func (s *LeadService) publishLeadCreated(ctx context.Context, lead *domain.Lead) {
	evt := domain.LeadCreatedEvent{
		LeadID:    lead.ID,
		Name:      lead.Name,
		Email:     lead.Email,
		Phone:     lead.Phone,
		Message:   lead.Message,
		Source:    lead.Source,
		CreatedAt: lead.CreatedAt,
	}
	if err := s.publisher.Publish(ctx, "lead.created", evt); err != nil {
		log.Printf("Failed to publish lead.created for lead %d: %v", lead.ID, err)
	}
}

func (s *LeadService) ListLeads(ctx context.Context) ([]domain.Lead, error) {
	return s.repo.FindAll()
}

// UpdateLeadStatus follows the same unconstrained-transition policy as
// orders.
func (s *LeadService) UpdateLeadStatus(ctx context.Context, id uint64, status domain.LeadStatus) (*domain.Lead, error) {
	if !status.Valid() {
		return nil, ErrInvalidLeadStatus
	}
	l, err := s.repo.UpdateStatus(id, status)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, ErrLeadNotFound
	}
	return l, nil
}

func (s *LeadService) DeleteLead(ctx context.Context, id uint64) error {
	l, err := s.repo.FindByID(id)
	if err != nil {
		return err
	}
	if l == nil {
		return ErrLeadNotFound
	}
	return s.repo.Delete(id)
}
