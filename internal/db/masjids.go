package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Nixie-Tech-LLC/solat/internal/model"
)

func (s *pgStore) GetMasjid(ctx context.Context, id string) (*model.Masjid, error) {
	var m model.Masjid
	err := s.db.GetContext(ctx, &m, `
		SELECT id, name, state, city, jakim_zone_code, created_at, updated_at
		FROM masjids
		WHERE id = $1
		`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get masjid %s: %w", id, err)
	}
	return &m, nil
}

func (s *pgStore) IsMasjidAdmin(ctx context.Context, userID, masjidID string) (bool, error) {
	var ok bool
	err := s.db.GetContext(ctx, &ok, `
		SELECT EXISTS (
			SELECT 1 FROM masjid_admins
			WHERE user_id = $1 AND masjid_id = $2
		)`, userID, masjidID)
	if err != nil {
		return false, fmt.Errorf("check masjid admin: %w", err)
	}
	return ok, nil
}
