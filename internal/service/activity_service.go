package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"taskdesk/internal/models"
	"taskdesk/internal/repository"
)

type ActivityService struct {
	repo repository.ActivityRepo
}

func NewActivityService(repo repository.ActivityRepo) *ActivityService {
	return &ActivityService{repo: repo}
}

// normalizeToUTC returns t in UTC, preserving zero time values.
func normalizeToUTC(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC()
}

// normalizeAndValidateFilter prepares query parameters and validates them.
func normalizeAndValidateFilter(f ActivityFilter) (repository.ActivityQuery, error) {
	q := repository.ActivityQuery{
		From:   normalizeToUTC(f.From),
		To:     normalizeToUTC(f.To),
		Action: strings.ToUpper(strings.TrimSpace(f.Action)),
		Kind:   strings.ToLower(strings.TrimSpace(f.Kind)),
	}

	if !q.From.IsZero() && !q.To.IsZero() && q.From.After(q.To) {
		return repository.ActivityQuery{}, invalid("from", "must be <= to")
	}
	switch q.Action {
	case "", models.ActionCreate, models.ActionUpdate, models.ActionDelete:
	default:
		return repository.ActivityQuery{}, invalid("action", fmt.Sprintf("%q is not one of CREATE, UPDATE, DELETE", f.Action))
	}
	if q.Kind != "" {
		if err := validateKind(q.Kind); err != nil {
			return repository.ActivityQuery{}, err
		}
	}
	return q, nil
}

// List returns callerID's own activity matching f.
func (s *ActivityService) List(ctx context.Context, callerID int, f ActivityFilter) ([]models.Activity, error) {
	q, err := normalizeAndValidateFilter(f)
	if err != nil {
		return nil, err
	}
	return s.repo.List(ctx, callerID, q)
}
