package service

import (
	"context"
	"time"

	"taskdesk/internal/logger"
	"taskdesk/internal/models"
	"taskdesk/internal/repository"
)

// RecordService enforces ownership on every read and mutation of owned records.
type RecordService struct {
	repo     repository.RecordRepo
	activity repository.ActivityRepo
	log      *logger.Logger
	now      func() time.Time
}

func NewRecordService(repo repository.RecordRepo, activity repository.ActivityRepo, log *logger.Logger) *RecordService {
	return &RecordService{repo: repo, activity: activity, log: log, now: time.Now}
}

// List returns only records owned by callerID.
func (s *RecordService) List(ctx context.Context, callerID int, kind string) ([]models.Record, error) {
	if err := validateKind(kind); err != nil {
		return nil, err
	}
	return s.repo.List(ctx, callerID, kind)
}

// Get returns a single record if callerID owns it.
func (s *RecordService) Get(ctx context.Context, callerID int, kind string, id int) (models.Record, error) {
	if err := validateKind(kind); err != nil {
		return models.Record{}, err
	}
	rec, err := s.owned(ctx, callerID, kind, id)
	if err != nil {
		return models.Record{}, err
	}
	return *rec, nil
}

// Create stores a new record owned by callerID. Ownership never comes from client input.
func (s *RecordService) Create(ctx context.Context, callerID int, kind string, f models.RecordFields) (models.Record, error) {
	if err := validateKind(kind); err != nil {
		return models.Record{}, err
	}
	if err := validateTitle(f.Title); err != nil {
		return models.Record{}, err
	}

	rec, err := s.repo.Create(ctx, models.Record{
		OwnerID:     callerID,
		Kind:        kind,
		Title:       f.Title,
		Description: f.Description,
		Date:        f.Date,
		Time:        f.Time,
	})
	if err != nil {
		return models.Record{}, err
	}
	s.record(ctx, callerID, kind, rec.ID, models.ActionCreate)
	return rec, nil
}

// Update applies patch to a record callerID owns.
// ErrNotFound if no such record exists, ErrForbidden if someone else owns it.
func (s *RecordService) Update(ctx context.Context, callerID int, kind string, id int, patch models.RecordPatch) (models.Record, error) {
	if err := validateKind(kind); err != nil {
		return models.Record{}, err
	}
	rec, err := s.owned(ctx, callerID, kind, id)
	if err != nil {
		return models.Record{}, err
	}
	if patch.Title != nil {
		if err := validateTitle(*patch.Title); err != nil {
			return models.Record{}, err
		}
	}
	if patch.IsEmpty() {
		return *rec, nil
	}

	patch.Apply(rec)
	rec.UpdatedAt = s.now().UTC()

	ok, err := s.repo.Update(ctx, *rec)
	if err != nil {
		return models.Record{}, err
	}
	if !ok {
		// deleted between the ownership check and the write
		return models.Record{}, ErrNotFound
	}
	s.record(ctx, callerID, kind, id, models.ActionUpdate)
	return *rec, nil
}

// Delete permanently removes a record callerID owns.
func (s *RecordService) Delete(ctx context.Context, callerID int, kind string, id int) error {
	if err := validateKind(kind); err != nil {
		return err
	}
	if _, err := s.owned(ctx, callerID, kind, id); err != nil {
		return err
	}
	ok, err := s.repo.Delete(ctx, callerID, kind, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	s.record(ctx, callerID, kind, id, models.ActionDelete)
	return nil
}

// owned loads a record and performs the ownership check.
func (s *RecordService) owned(ctx context.Context, callerID int, kind string, id int) (*models.Record, error) {
	rec, err := s.repo.Get(ctx, kind, id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, ErrNotFound
	}
	if rec.OwnerID != callerID {
		return nil, ErrForbidden
	}
	return rec, nil
}

// record appends to the activity log. Failures are logged and never fail the mutation.
func (s *RecordService) record(ctx context.Context, userID int, kind string, recordID int, action string) {
	if s.activity == nil {
		return
	}
	err := s.activity.Append(ctx, models.Activity{
		OccurredAt: s.now().UTC(),
		UserID:     userID,
		Kind:       kind,
		RecordID:   recordID,
		Action:     action,
	})
	if err != nil && s.log != nil {
		s.log.Warnw("activity_append_failed", "err", err, "user_id", userID, "kind", kind, "record_id", recordID, "action", action)
	}
}
