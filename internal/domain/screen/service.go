package screen

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/screentime/screentime-api/internal/pkg/validator"
)

// Service handles screen business logic
type Service struct {
	repo Repository
}

// NewService creates screen service
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns all screens ordered by name
func (s *Service) List(ctx context.Context) ([]*Screen, error) {
	screens, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list screens: %w", err)
	}
	return screens, nil
}

// GetByID returns a screen or ErrScreenNotFound
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*Screen, error) {
	screen, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get screen: %w", err)
	}
	if screen == nil {
		return nil, ErrScreenNotFound
	}
	return screen, nil
}

// Create adds a new screen
func (s *Service) Create(ctx context.Context, req *ScreenRequest) (*Screen, error) {
	if err := validator.Check(req); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	screen := &Screen{
		ID:        uuid.New(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	req.apply(screen)

	if err := s.repo.Create(ctx, screen); err != nil {
		if errors.Is(err, ErrScreenNameTaken) {
			return nil, ErrScreenNameTaken
		}
		return nil, fmt.Errorf("create screen: %w", err)
	}
	return screen, nil
}

// Update replaces a screen's fields and returns the old and new versions
func (s *Service) Update(ctx context.Context, id uuid.UUID, req *ScreenRequest) (*Screen, *Screen, error) {
	if err := validator.Check(req); err != nil {
		return nil, nil, err
	}

	old, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	updated := *old
	req.apply(&updated)
	updated.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, &updated); err != nil {
		switch {
		case errors.Is(err, ErrScreenNameTaken):
			return nil, nil, ErrScreenNameTaken
		case errors.Is(err, ErrScreenNotFound):
			return nil, nil, ErrScreenNotFound
		default:
			return nil, nil, fmt.Errorf("update screen: %w", err)
		}
	}
	return old, &updated, nil
}

// Delete removes a screen that has no bookings and returns it
func (s *Service) Delete(ctx context.Context, id uuid.UUID) (*Screen, error) {
	screen, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, ErrScreenHasBookings):
			return nil, ErrScreenHasBookings
		case errors.Is(err, ErrScreenNotFound):
			return nil, ErrScreenNotFound
		default:
			return nil, fmt.Errorf("delete screen: %w", err)
		}
	}
	return screen, nil
}

// EnsureDefaults provisions the given screens, leaving existing ones untouched
func (s *Service) EnsureDefaults(ctx context.Context, defaults []ScreenRequest) ([]*Screen, error) {
	out := make([]*Screen, 0, len(defaults))
	for i := range defaults {
		req := defaults[i]
		if err := validator.Check(&req); err != nil {
			return nil, fmt.Errorf("default screen %q: %w", req.Name, err)
		}

		now := time.Now().UTC()
		screen := &Screen{ID: uuid.New(), CreatedAt: now, UpdatedAt: now}
		req.apply(screen)

		stored, err := s.repo.EnsureByName(ctx, screen)
		if err != nil {
			return nil, fmt.Errorf("ensure screen %q: %w", req.Name, err)
		}
		out = append(out, stored)
	}
	return out, nil
}
