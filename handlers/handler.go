package handlers

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/padraicbc/racecal/models"
)

// RaceSource serves the current race list.
type RaceSource interface {
	Races(ctx context.Context) ([]models.Race, error)
	Refresh(ctx context.Context) ([]models.Race, error)
	FetchedAt() time.Time
}

// Store persists operators and race snapshots.
type Store interface {
	UserByUsername(ctx context.Context, username string) (*models.User, error)
	SaveSnapshot(ctx context.Context, source, exportURL string, races []models.Race) (*models.Import, error)
}

// Handler holds shared dependencies used by all route handlers.
type Handler struct {
	races    RaceSource
	store    Store
	JWTKey   []byte
	SheetURL string
	loc      *time.Location
	log      *zap.Logger
	now      func() time.Time
}

// Deps groups what New needs.
type Deps struct {
	Races    RaceSource
	Store    Store
	JWTKey   []byte
	SheetURL string
	Location *time.Location
	Logger   *zap.Logger
}

// New creates a Handler from its dependencies.
func New(d Deps) *Handler {
	loc := d.Location
	if loc == nil {
		loc = time.Local
	}
	logger := d.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		races:    d.Races,
		store:    d.Store,
		JWTKey:   d.JWTKey,
		SheetURL: d.SheetURL,
		loc:      loc,
		log:      logger,
		now:      time.Now,
	}
}
