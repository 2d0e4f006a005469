package service

import (
	"context"

	"github.com/aidar/circles/internal/domain"
	"github.com/aidar/circles/internal/repository"
)

// RegistrationObserver is notified about registration changes
type RegistrationObserver interface {
	Registered(circleID string)
	Unregistered(circleID string)
}

// RegistrationService handles circle sign-ups
type RegistrationService struct {
	regRepo  repository.RegistrationRepository
	observer RegistrationObserver
}

// NewRegistrationService creates a new RegistrationService. observer may be nil.
func NewRegistrationService(regRepo repository.RegistrationRepository, observer RegistrationObserver) *RegistrationService {
	return &RegistrationService{
		regRepo:  regRepo,
		observer: observer,
	}
}

// Register signs the user up for the circle
func (s *RegistrationService) Register(ctx context.Context, circleID, userID string) error {
	if err := s.regRepo.Register(ctx, circleID, userID); err != nil {
		return err
	}

	if s.observer != nil {
		s.observer.Registered(circleID)
	}
	return nil
}

// Unregister removes the user's sign-up; removing a missing sign-up succeeds
func (s *RegistrationService) Unregister(ctx context.Context, circleID, userID string) error {
	if err := s.regRepo.Unregister(ctx, circleID, userID); err != nil {
		return err
	}

	if s.observer != nil {
		s.observer.Unregistered(circleID)
	}
	return nil
}

// ListUsers returns the users registered for a circle
func (s *RegistrationService) ListUsers(ctx context.Context, circleID string) ([]domain.RegisteredUser, error) {
	return s.regRepo.ListUsers(ctx, circleID)
}

// ListCircles returns the circles the user registered for
func (s *RegistrationService) ListCircles(ctx context.Context, userID string) ([]*domain.Circle, error) {
	return s.regRepo.ListCircles(ctx, userID)
}
