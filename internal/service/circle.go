package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/aidar/circles/internal/domain"
	"github.com/aidar/circles/internal/repository"
)

// CreateCircleInput holds the fields a host supplies for a new circle
type CreateCircleInput struct {
	HostID            string
	Title             string
	Description       string
	ParticipantsLimit int
	StartDate         time.Time
}

// CircleService handles business logic for circles
type CircleService struct {
	circleRepo repository.CircleRepository
}

// NewCircleService creates a new CircleService
func NewCircleService(circleRepo repository.CircleRepository) *CircleService {
	return &CircleService{circleRepo: circleRepo}
}

// GetCircle returns a circle with its host's username
func (s *CircleService) GetCircle(ctx context.Context, circleID string) (*domain.Circle, error) {
	return s.circleRepo.GetByID(ctx, circleID)
}

// ListAll returns every circle ordered by start date
func (s *CircleService) ListAll(ctx context.Context) ([]*domain.Circle, error) {
	return s.circleRepo.List(ctx)
}

// ListByHost returns the circles hosted by hostID
func (s *CircleService) ListByHost(ctx context.Context, hostID string) ([]*domain.Circle, error) {
	return s.circleRepo.ListByHost(ctx, hostID)
}

// ListFollowing returns circles hosted by users the caller follows
func (s *CircleService) ListFollowing(ctx context.Context, userID string) ([]*domain.Circle, error) {
	return s.circleRepo.ListFollowing(ctx, userID)
}

// Create schedules a new circle. Only the logged in user may be the host.
func (s *CircleService) Create(ctx context.Context, callerID string, in CreateCircleInput) (*domain.Circle, error) {
	if in.HostID != callerID {
		return nil, domain.ErrForbidden
	}

	limit := in.ParticipantsLimit
	if limit <= 0 {
		limit = domain.DefaultParticipantsLimit
	}

	circle := &domain.Circle{
		ID:                uuid.NewString(),
		HostID:            in.HostID,
		Title:             strings.TrimSpace(in.Title),
		Description:       in.Description,
		ParticipantsLimit: limit,
		StartDate:         in.StartDate,
	}

	if err := s.circleRepo.Create(ctx, circle); err != nil {
		return nil, err
	}

	return circle, nil
}

// Edit applies a partial update; only the host may edit
func (s *CircleService) Edit(ctx context.Context, callerID, circleID string, update domain.CircleUpdate) (*domain.Circle, error) {
	circle, err := s.circleRepo.GetByID(ctx, circleID)
	if err != nil {
		return nil, err
	}

	if !circle.IsHost(callerID) {
		return nil, domain.ErrForbidden
	}

	update.Apply(circle)

	if err := s.circleRepo.Update(ctx, circle); err != nil {
		return nil, err
	}

	return circle, nil
}

// Delete removes a circle; allowed for the host or an admin
func (s *CircleService) Delete(ctx context.Context, callerID string, callerRole domain.Role, circleID string) error {
	circle, err := s.circleRepo.GetByID(ctx, circleID)
	if err != nil {
		return err
	}

	if !circle.IsHost(callerID) && callerRole != domain.RoleAdmin {
		return domain.ErrForbidden
	}

	return s.circleRepo.Delete(ctx, circleID)
}
