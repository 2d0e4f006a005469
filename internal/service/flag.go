package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/aidar/circles/internal/domain"
	"github.com/aidar/circles/internal/repository"
)

// FlagService handles user reports on circles and their moderation
type FlagService struct {
	flagRepo repository.FlagRepository
}

// NewFlagService creates a new FlagService
func NewFlagService(flagRepo repository.FlagRepository) *FlagService {
	return &FlagService{flagRepo: flagRepo}
}

// Add reports a circle on behalf of the user
func (s *FlagService) Add(ctx context.Context, circleID, userID string) (*domain.Flag, error) {
	flag := &domain.Flag{
		ID:         uuid.NewString(),
		CircleID:   circleID,
		FlagUserID: userID,
	}
	if err := s.flagRepo.Add(ctx, flag); err != nil {
		return nil, err
	}
	return flag, nil
}

// ListByCircle returns all reports for a circle
func (s *FlagService) ListByCircle(ctx context.Context, circleID string) ([]domain.Flag, error) {
	return s.flagRepo.ListByCircle(ctx, circleID)
}

// Withdraw removes the user's own report
func (s *FlagService) Withdraw(ctx context.Context, circleID, userID string) error {
	return s.flagRepo.RemoveByUser(ctx, circleID, userID)
}

// ListFlagged returns flagged circles, most reported first; admin only
func (s *FlagService) ListFlagged(ctx context.Context, callerRole domain.Role) ([]*domain.FlaggedCircle, error) {
	if callerRole != domain.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	return s.flagRepo.ListFlagged(ctx)
}

// Clear drops every report on a circle; admin only
func (s *FlagService) Clear(ctx context.Context, callerRole domain.Role, circleID string) error {
	if callerRole != domain.RoleAdmin {
		return domain.ErrForbidden
	}
	return s.flagRepo.ClearCircle(ctx, circleID)
}
