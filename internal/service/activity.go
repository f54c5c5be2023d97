package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/perfpulse/perfpulse-go/internal/model"
	"github.com/perfpulse/perfpulse-go/internal/repository"
)

var ErrActivityNotFound = errors.New("activity not found")

// ActivityService handles governance activity listings.
type ActivityService struct {
	activities repository.ActivityRepository
}

// NewActivityService creates a new ActivityService.
func NewActivityService(activities repository.ActivityRepository) *ActivityService {
	return &ActivityService{activities: activities}
}

// List returns a page of activities, optionally filtered by a title or
// description substring.
func (s *ActivityService) List(ctx context.Context, page, perPage int, search string) (model.ActivityPage, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 10
	}
	activities, total, err := s.activities.List(ctx, page, perPage, search)
	if err != nil {
		return model.ActivityPage{}, err
	}
	return model.ActivityPage{Activities: activities, Total: total, Page: page, PerPage: perPage}, nil
}

// Recent returns the five most recent activities.
func (s *ActivityService) Recent(ctx context.Context) ([]model.Activity, error) {
	return s.activities.Recent(ctx, 5)
}

// Get retrieves an activity by ID.
func (s *ActivityService) Get(ctx context.Context, id string) (*model.Activity, error) {
	activity, err := s.activities.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrActivityNotFound) {
			return nil, ErrActivityNotFound
		}
		return nil, err
	}
	return activity, nil
}

// Create records a new activity.
func (s *ActivityService) Create(ctx context.Context, req model.CreateActivityRequest) (*model.Activity, error) {
	if req.Title == "" {
		return nil, ErrMissingFields
	}
	activity := &model.Activity{
		ID:          uuid.NewString(),
		Title:       req.Title,
		Description: req.Description,
		UserID:      req.UserID,
		Points:      req.Points,
		Status:      "ongoing",
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.activities.Create(ctx, activity); err != nil {
		return nil, err
	}
	return activity, nil
}
