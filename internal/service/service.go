package service

import (
	"context"
	"time"

	"taskdesk/internal/logger"
	"taskdesk/internal/models"
	"taskdesk/internal/repository"
)

type Authorization interface {
	SignUp(ctx context.Context, username, password string) (int, error)
	GenerateToken(ctx context.Context, username, password string) (string, error)
	ParseToken(accessToken string) (int, error)
}

// Records exposes caller-scoped CRUD over owned records of a given kind.
type Records interface {
	List(ctx context.Context, callerID int, kind string) ([]models.Record, error)
	Get(ctx context.Context, callerID int, kind string, id int) (models.Record, error)
	Create(ctx context.Context, callerID int, kind string, f models.RecordFields) (models.Record, error)
	Update(ctx context.Context, callerID int, kind string, id int, p models.RecordPatch) (models.Record, error)
	Delete(ctx context.Context, callerID int, kind string, id int) error
}

// Activity exposes the caller's mutation history.
type Activity interface {
	List(ctx context.Context, callerID int, f ActivityFilter) ([]models.Activity, error)
}

// ActivityFilter supports history filtering by time range, action and kind.
type ActivityFilter struct {
	From   time.Time // inclusive; zero means no lower bound
	To     time.Time // inclusive; zero means no upper bound
	Action string    // "", "CREATE", "UPDATE", "DELETE"
	Kind   string    // "", "task", "ticket"
}

// Service aggregates all sub-services.
type Service struct {
	Authorization
	Records  Records
	Activity Activity
}

// Deps carries the collaborators that are not repositories.
type Deps struct {
	Hasher PasswordHasher
	Tokens *TokenManager
	Log    *logger.Logger
}

// NewService wires repository layer into concrete services.
func NewService(repos *repository.Repository, deps Deps) *Service {
	return &Service{
		Authorization: NewAuthService(repos.Auth, deps.Hasher, deps.Tokens),
		Records:       NewRecordService(repos.Records, repos.Activity, deps.Log),
		Activity:      NewActivityService(repos.Activity),
	}
}
