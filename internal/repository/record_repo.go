package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"taskdesk/internal/models"
)

type RecordRepository struct {
	db      *sql.DB
	dialect Dialect
	timeout time.Duration
}

func NewRecordRepository(db *sql.DB, dialect Dialect, timeout time.Duration) *RecordRepository {
	return &RecordRepository{db: db, dialect: dialect, timeout: timeout}
}

var _ RecordRepo = (*RecordRepository)(nil)

const (
	recordColumns = `id, owner_id, kind, title, description, due_date, due_time, created_at, updated_at`

	listRecordsSQL = `SELECT ` + recordColumns + ` FROM records WHERE owner_id = ? AND kind = ? ORDER BY id`
	getRecordSQL   = `SELECT ` + recordColumns + ` FROM records WHERE id = ? AND kind = ?`

	insertRecordSQL = `
		INSERT INTO records (owner_id, kind, title, description, due_date, due_time, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id`

	updateRecordSQL = `
		UPDATE records SET title = ?, description = ?, due_date = ?, due_time = ?, updated_at = ?
		WHERE id = ? AND owner_id = ? AND kind = ?`

	deleteRecordSQL = `DELETE FROM records WHERE id = ? AND owner_id = ? AND kind = ?`
)

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(s rowScanner) (models.Record, error) {
	var rec models.Record
	if err := s.Scan(
		&rec.ID,
		&rec.OwnerID,
		&rec.Kind,
		&rec.Title,
		&rec.Description,
		&rec.Date,
		&rec.Time,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	); err != nil {
		return models.Record{}, err
	}
	rec.CreatedAt = rec.CreatedAt.UTC()
	rec.UpdatedAt = rec.UpdatedAt.UTC()
	return rec, nil
}

// List returns the owner's records of one kind, oldest first.
func (r *RecordRepository) List(ctx context.Context, ownerID int, kind string) ([]models.Record, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, r.dialect.Rebind(listRecordsSQL), ownerID, kind)
	if err != nil {
		return nil, fmt.Errorf("list %s records of user %d: %w", kind, ownerID, err)
	}
	defer func() { _ = rows.Close() }()

	out := make([]models.Record, 0)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan %s record: %w", kind, err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s records: %w", kind, err)
	}
	return out, nil
}

// Get fetches a record by kind and id regardless of owner. Returns (nil, nil) if not found.
func (r *RecordRepository) Get(ctx context.Context, kind string, id int) (*models.Record, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	rec, err := scanRecord(r.db.QueryRowContext(ctx, r.dialect.Rebind(getRecordSQL), id, kind))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select %s %d: %w", kind, id, err)
	}
	return &rec, nil
}

// Create inserts rec and returns it with ID and timestamps filled in.
func (r *RecordRepository) Create(ctx context.Context, rec models.Record) (models.Record, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	now := time.Now().UTC()
	rec.CreatedAt = now
	rec.UpdatedAt = now

	err := r.db.QueryRowContext(ctx, r.dialect.Rebind(insertRecordSQL),
		rec.OwnerID,
		rec.Kind,
		rec.Title,
		rec.Description,
		rec.Date,
		rec.Time,
		rec.CreatedAt,
		rec.UpdatedAt,
	).Scan(&rec.ID)
	if err != nil {
		return models.Record{}, fmt.Errorf("insert %s for user %d: %w", rec.Kind, rec.OwnerID, err)
	}
	return rec, nil
}

// Update writes the mutable fields of rec. It reports false when no row
// matched id, owner and kind (the record is gone or belongs to someone else).
func (r *RecordRepository) Update(ctx context.Context, rec models.Record) (bool, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	if rec.UpdatedAt.IsZero() {
		rec.UpdatedAt = time.Now().UTC()
	}
	res, err := r.db.ExecContext(ctx, r.dialect.Rebind(updateRecordSQL),
		rec.Title,
		rec.Description,
		rec.Date,
		rec.Time,
		rec.UpdatedAt.UTC(),
		rec.ID,
		rec.OwnerID,
		rec.Kind,
	)
	if err != nil {
		return false, fmt.Errorf("update %s %d: %w", rec.Kind, rec.ID, err)
	}
	return affectedOne(res, "update", rec.Kind, rec.ID)
}

// Delete removes the record if it matches id, owner and kind.
func (r *RecordRepository) Delete(ctx context.Context, ownerID int, kind string, id int) (bool, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, r.dialect.Rebind(deleteRecordSQL), id, ownerID, kind)
	if err != nil {
		return false, fmt.Errorf("delete %s %d: %w", kind, id, err)
	}
	return affectedOne(res, "delete", kind, id)
}

func affectedOne(res sql.Result, op, kind string, id int) (bool, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected for %s %s %d: %w", op, kind, id, err)
	}
	return n > 0, nil
}
