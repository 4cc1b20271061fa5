package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"storefront-service/internal/domain"
	"storefront-service/internal/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestLeadService_CreateLead(t *testing.T) {
	tests := []struct {
		name          string
		input         CreateLeadInput
		setupMocks    func(*mocks.MockLeadRepository, *mocks.MockPublisher)
		expectedError string
		checkLead     func(*testing.T, *domain.Lead)
	}{
		{
			name:  "successful lead with default source",
			input: CreateLeadInput{Name: "Asha", Email: "asha@example.com", Phone: "9000000001"},
			setupMocks: func(mockRepo *mocks.MockLeadRepository, mockPub *mocks.MockPublisher) {
				mockRepo.On("Save", mock.AnythingOfType("*domain.Lead")).Return(nil).Run(func(args mock.Arguments) {
					args.Get(0).(*domain.Lead).ID = 1
				})
				mockPub.On("Publish", mock.Anything, "lead.created", mock.Anything).Return(nil).Maybe()
			},
			checkLead: func(t *testing.T, l *domain.Lead) {
				assert.Equal(t, domain.LeadNew, l.Status)
				assert.Equal(t, domain.DefaultLeadSource, l.Source)
			},
		},
		{
			name: "explicit source preserved",
			input: CreateLeadInput{
				Name: "Ravi", Email: "ravi@example.com", Phone: "9000000002",
				Message: "need a quote", Source: "custom-quote",
			},
			setupMocks: func(mockRepo *mocks.MockLeadRepository, mockPub *mocks.MockPublisher) {
				mockRepo.On("Save", mock.AnythingOfType("*domain.Lead")).Return(nil)
				mockPub.On("Publish", mock.Anything, "lead.created", mock.Anything).Return(nil).Maybe()
			},
			checkLead: func(t *testing.T, l *domain.Lead) {
				assert.Equal(t, "custom-quote", l.Source)
				assert.Equal(t, "need a quote", l.Message)
			},
		},
		{
			name:          "missing phone rejected",
			input:         CreateLeadInput{Name: "NoPhone", Email: "x@y.z"},
			setupMocks:    func(*mocks.MockLeadRepository, *mocks.MockPublisher) {},
			expectedError: "phone is required",
		},
		{
			name:  "repository error surfaces",
			input: CreateLeadInput{Name: "Err", Email: "e@e.e", Phone: "9"},
			setupMocks: func(mockRepo *mocks.MockLeadRepository, mockPub *mocks.MockPublisher) {
				mockRepo.On("Save", mock.AnythingOfType("*domain.Lead")).Return(errors.New("database error"))
			},
			expectedError: "database error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(mocks.MockLeadRepository)
			mockPub := new(mocks.MockPublisher)
			tt.setupMocks(mockRepo, mockPub)

			service := NewLeadService(mockRepo, mockPub)
			result, err := service.CreateLead(context.Background(), tt.input)

			if tt.expectedError != "" {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedError)
				assert.Nil(t, result)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, result)
				tt.checkLead(t, result)
			}

			time.Sleep(100 * time.Millisecond)
			mockRepo.AssertExpectations(t)
			mockPub.AssertExpectations(t)
		})
	}
}

// The notification is best-effort: creation succeeds even when the
// publisher blows up.
func TestLeadService_CreateLead_NotificationFailureSwallowed(t *testing.T) {
	mockRepo := new(mocks.MockLeadRepository)
	mockPub := new(mocks.MockPublisher)

	mockRepo.On("Save", mock.AnythingOfType("*domain.Lead")).Return(nil).Run(func(args mock.Arguments) {
		args.Get(0).(*domain.Lead).ID = 7
	})
	mockPub.On("Publish", mock.Anything, "lead.created", mock.Anything).Return(errors.New("smtp relay down")).Maybe()

	service := NewLeadService(mockRepo, mockPub)
	lead, err := service.CreateLead(context.Background(), CreateLeadInput{
		Name: "Asha", Email: "asha@example.com", Phone: "9000000001",
	})

	assert.NoError(t, err)
	assert.NotNil(t, lead)
	assert.Equal(t, domain.LeadNew, lead.Status)
	time.Sleep(100 * time.Millisecond)
	mockRepo.AssertExpectations(t)
}

func TestLeadService_CreateLead_ValidationErrorIsTyped(t *testing.T) {
	service := NewLeadService(new(mocks.MockLeadRepository), new(mocks.MockPublisher))
	_, err := service.CreateLead(context.Background(), CreateLeadInput{Name: "No Contact"})
	assert.ErrorIs(t, err, ErrInvalidLead)
}

func TestLeadService_UpdateLeadStatus_AllTransitionsAccepted(t *testing.T) {
	for _, to := range domain.LeadStatuses {
		t.Run(string(to), func(t *testing.T) {
			mockRepo := new(mocks.MockLeadRepository)
			mockRepo.On("UpdateStatus", uint64(1), to).Return(&domain.Lead{ID: 1, Status: to}, nil)

			service := NewLeadService(mockRepo, new(mocks.MockPublisher))
			result, err := service.UpdateLeadStatus(context.Background(), 1, to)

			assert.NoError(t, err)
			assert.Equal(t, to, result.Status)
		})
	}
}

func TestLeadService_UpdateLeadStatus_Invalid(t *testing.T) {
	service := NewLeadService(new(mocks.MockLeadRepository), new(mocks.MockPublisher))
	_, err := service.UpdateLeadStatus(context.Background(), 1, "spam")
	assert.ErrorIs(t, err, ErrInvalidLeadStatus)
}

func TestLeadService_DeleteLead_NotFound(t *testing.T) {
	mockRepo := new(mocks.MockLeadRepository)
	mockRepo.On("FindByID", uint64(42)).Return(nil, nil)

	service := NewLeadService(mockRepo, new(mocks.MockPublisher))
	err := service.DeleteLead(context.Background(), 42)
	assert.ErrorIs(t, err, ErrLeadNotFound)
}
