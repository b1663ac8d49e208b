// exposes a Store interface that is passed to API calls w/ param requirements
package db

import (
	"context"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/Nixie-Tech-LLC/solat/internal/model"
	"github.com/Nixie-Tech-LLC/solat/internal/prayer"
)

// ErrNotFound is returned when a looked-up row does not exist.
var ErrNotFound = errors.New("not found")

type Store interface {
	// display functions
	GetDisplay(ctx context.Context, id string) (*model.Display, error)
	ListActiveDisplays(ctx context.Context) ([]model.Display, error)

	// masjid functions
	GetMasjid(ctx context.Context, id string) (*model.Masjid, error)
	IsMasjidAdmin(ctx context.Context, userID, masjidID string) (bool, error)

	// prayer time overrides
	GetManualSchedule(ctx context.Context, masjidID, date string) (*model.ManualPrayerTimes, error)
	UpsertManualSchedule(ctx context.Context, m model.ManualPrayerTimes) (*model.ManualPrayerTimes, error)
	DeleteManualSchedule(ctx context.Context, masjidID, date string) error
	GetAdjustments(ctx context.Context, masjidID string) (prayer.Adjustments, error)
	SaveAdjustments(ctx context.Context, masjidID string, adj prayer.Adjustments, updatedBy string) error
}

type pgStore struct {
	db *sqlx.DB
}

// compile-time check that pgStore implements Store
var _ Store = (*pgStore)(nil)

func NewStore(db *sqlx.DB) Store {
	return &pgStore{db: db}
}
