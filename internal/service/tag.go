package service

import (
	"context"
	"strings"

	"github.com/aidar/circles/internal/domain"
	"github.com/aidar/circles/internal/repository"
)

// TagService handles circle tags
type TagService struct {
	tagRepo    repository.TagRepository
	circleRepo repository.CircleRepository
}

// NewTagService creates a new TagService
func NewTagService(tagRepo repository.TagRepository, circleRepo repository.CircleRepository) *TagService {
	return &TagService{
		tagRepo:    tagRepo,
		circleRepo: circleRepo,
	}
}

// ListByCircle returns a circle's tags in insertion order
func (s *TagService) ListByCircle(ctx context.Context, circleID string) ([]domain.Tag, error) {
	return s.tagRepo.ListByCircle(ctx, circleID)
}

// ListAll returns the tag catalogue
func (s *TagService) ListAll(ctx context.Context) ([]domain.Tag, error) {
	return s.tagRepo.ListAll(ctx)
}

// Add attaches a tag to a circle; host only
func (s *TagService) Add(ctx context.Context, callerID, circleID string, tag domain.Tag) error {
	if err := s.requireHost(ctx, callerID, circleID); err != nil {
		return err
	}
	return s.tagRepo.Add(ctx, circleID, normalizeTag(tag))
}

// Remove detaches a tag from a circle; host only
func (s *TagService) Remove(ctx context.Context, callerID, circleID string, tag domain.Tag) error {
	if err := s.requireHost(ctx, callerID, circleID); err != nil {
		return err
	}
	return s.tagRepo.Remove(ctx, circleID, normalizeTag(tag))
}

func (s *TagService) requireHost(ctx context.Context, callerID, circleID string) error {
	circle, err := s.circleRepo.GetByID(ctx, circleID)
	if err != nil {
		return err
	}
	if !circle.IsHost(callerID) {
		return domain.ErrForbidden
	}
	return nil
}

func normalizeTag(tag domain.Tag) domain.Tag {
	return strings.ToLower(strings.TrimSpace(tag))
}
