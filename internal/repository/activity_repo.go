package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"taskdesk/internal/models"

	"github.com/google/uuid"
)

type ActivitySQL struct {
	db      *sql.DB
	dialect Dialect
	timeout time.Duration
}

func NewActivityRepository(db *sql.DB, dialect Dialect, timeout time.Duration) *ActivitySQL {
	return &ActivitySQL{db: db, dialect: dialect, timeout: timeout}
}

var _ ActivityRepo = (*ActivitySQL)(nil)

const (
	insertActivitySQL = `
		INSERT INTO activity (id, occurred_at, user_id, kind, record_id, action)
		VALUES (?, ?, ?, ?, ?, ?)`

	selectActivitySQL = `SELECT id, occurred_at, user_id, kind, record_id, action FROM activity`
)

// Append inserts a new entry. If ID or OccurredAt are empty, they’re set.
func (r *ActivitySQL) Append(ctx context.Context, a models.Activity) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.OccurredAt.IsZero() {
		a.OccurredAt = time.Now().UTC()
	} else {
		a.OccurredAt = a.OccurredAt.UTC()
	}

	_, err := r.db.ExecContext(ctx, r.dialect.Rebind(insertActivitySQL),
		a.ID,
		a.OccurredAt,
		a.UserID,
		a.Kind,
		a.RecordID,
		strings.ToUpper(strings.TrimSpace(a.Action)),
	)
	if err != nil {
		return fmt.Errorf("insert activity for user %d: %w", a.UserID, err)
	}
	return nil
}

// List returns the user's entries filtered by [from, to] (inclusive), action and kind, ordered ASC.
func (r *ActivitySQL) List(ctx context.Context, userID int, f ActivityQuery) ([]models.Activity, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	conds := []string{"user_id = ?"}
	args := []any{userID}

	if !f.From.IsZero() {
		conds = append(conds, "occurred_at >= ?")
		args = append(args, f.From.UTC())
	}
	if !f.To.IsZero() {
		conds = append(conds, "occurred_at <= ?")
		args = append(args, f.To.UTC())
	}
	if action := strings.ToUpper(strings.TrimSpace(f.Action)); action != "" {
		conds = append(conds, "action = ?")
		args = append(args, action)
	}
	if kind := strings.ToLower(strings.TrimSpace(f.Kind)); kind != "" {
		conds = append(conds, "kind = ?")
		args = append(args, kind)
	}

	q := selectActivitySQL + " WHERE " + strings.Join(conds, " AND ") + " ORDER BY occurred_at ASC"

	rows, err := r.db.QueryContext(ctx, r.dialect.Rebind(q), args...)
	if err != nil {
		return nil, fmt.Errorf("list activity of user %d: %w", userID, err)
	}
	defer func() { _ = rows.Close() }()

	out := make([]models.Activity, 0)
	for rows.Next() {
		var a models.Activity
		if err := rows.Scan(&a.ID, &a.OccurredAt, &a.UserID, &a.Kind, &a.RecordID, &a.Action); err != nil {
			return nil, fmt.Errorf("scan activity: %w", err)
		}
		a.OccurredAt = a.OccurredAt.UTC()
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate activity: %w", err)
	}
	return out, nil
}
