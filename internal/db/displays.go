package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Nixie-Tech-LLC/solat/internal/model"
)

const displayColumns = `id, masjid_id, display_name, device_id, location_description, paired,
	is_active, prayer_time_position, last_seen_at, created_at, updated_at`

func (s *pgStore) GetDisplay(ctx context.Context, id string) (*model.Display, error) {
	var d model.Display
	err := s.db.GetContext(ctx, &d, `
		SELECT `+displayColumns+`
		FROM tv_displays
		WHERE id = $1
		`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get display %s: %w", id, err)
	}
	return &d, nil
}

// ListActiveDisplays returns paired, active displays that have a device to push to.
func (s *pgStore) ListActiveDisplays(ctx context.Context) ([]model.Display, error) {
	var displays []model.Display
	err := s.db.SelectContext(ctx, &displays, `
		SELECT `+displayColumns+`
		FROM tv_displays
		WHERE is_active AND paired AND device_id IS NOT NULL
		ORDER BY id
		`)
	if err != nil {
		return nil, fmt.Errorf("list active displays: %w", err)
	}
	return displays, nil
}
