package repository

import (
	"context"
	"database/sql"
	"time"

	"taskdesk/internal/models"
)

type Authorization interface {
	Create(ctx context.Context, username, hash string) (int, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

// RecordRepo stores owned records. Mutations are scoped by owner, kind and
// id together, so a row owned by someone else is never touched.
type RecordRepo interface {
	List(ctx context.Context, ownerID int, kind string) ([]models.Record, error)
	Get(ctx context.Context, kind string, id int) (*models.Record, error)
	Create(ctx context.Context, r models.Record) (models.Record, error)
	Update(ctx context.Context, r models.Record) (bool, error)
	Delete(ctx context.Context, ownerID int, kind string, id int) (bool, error)
}

type ActivityRepo interface {
	Append(ctx context.Context, a models.Activity) error
	List(ctx context.Context, userID int, f ActivityQuery) ([]models.Activity, error)
}

// ActivityQuery filters activity entries. Zero values mean "no bound".
type ActivityQuery struct {
	From   time.Time
	To     time.Time
	Action string
	Kind   string
}

type Repository struct {
	Auth     Authorization
	Records  RecordRepo
	Activity ActivityRepo
}

// NewRepository wires SQL-backed repositories. timeout bounds every store call.
func NewRepository(db *sql.DB, dialect Dialect, timeout time.Duration) *Repository {
	return &Repository{
		Auth:     NewUserRepository(db, dialect, timeout),
		Records:  NewRecordRepository(db, dialect, timeout),
		Activity: NewActivityRepository(db, dialect, timeout),
	}
}
