package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Nixie-Tech-LLC/solat/internal/model"
	"github.com/Nixie-Tech-LLC/solat/internal/prayer"
)

const manualColumns = `masjid_id, to_char(prayer_date, 'YYYY-MM-DD') AS prayer_date,
	fajr_time, sunrise_time, dhuhr_time, asr_time, maghrib_time, isha_time,
	updated_by, created_at, updated_at`

func (s *pgStore) GetManualSchedule(ctx context.Context, masjidID, date string) (*model.ManualPrayerTimes, error) {
	var m model.ManualPrayerTimes
	err := s.db.GetContext(ctx, &m, `
		SELECT `+manualColumns+`
		FROM manual_prayer_times
		WHERE masjid_id = $1 AND prayer_date = $2
		`, masjidID, date)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get manual prayer times: %w", err)
	}
	return &m, nil
}

func (s *pgStore) UpsertManualSchedule(ctx context.Context, in model.ManualPrayerTimes) (*model.ManualPrayerTimes, error) {
	var out model.ManualPrayerTimes
	err := s.db.GetContext(ctx, &out, `
		INSERT INTO manual_prayer_times
			(masjid_id, prayer_date, fajr_time, sunrise_time, dhuhr_time, asr_time, maghrib_time, isha_time,
			 updated_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now(), now())
		ON CONFLICT (masjid_id, prayer_date) DO UPDATE SET
			fajr_time = EXCLUDED.fajr_time,
			sunrise_time = EXCLUDED.sunrise_time,
			dhuhr_time = EXCLUDED.dhuhr_time,
			asr_time = EXCLUDED.asr_time,
			maghrib_time = EXCLUDED.maghrib_time,
			isha_time = EXCLUDED.isha_time,
			updated_by = EXCLUDED.updated_by,
			updated_at = now()
		RETURNING `+manualColumns,
		in.MasjidID, in.PrayerDate, in.Fajr, in.Sunrise, in.Dhuhr, in.Asr, in.Maghrib, in.Isha, in.UpdatedBy)
	if err != nil {
		return nil, fmt.Errorf("upsert manual prayer times: %w", err)
	}
	return &out, nil
}

func (s *pgStore) DeleteManualSchedule(ctx context.Context, masjidID, date string) error {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM manual_prayer_times
		WHERE masjid_id = $1 AND prayer_date = $2
		`, masjidID, date)
	if err != nil {
		return fmt.Errorf("delete manual prayer times: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete manual prayer times: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// GetAdjustments returns the masjid's offsets, or zero offsets if none are saved.
func (s *pgStore) GetAdjustments(ctx context.Context, masjidID string) (prayer.Adjustments, error) {
	var adj prayer.Adjustments
	err := s.db.GetContext(ctx, &adj, `
		SELECT fajr, sunrise, dhuhr, asr, maghrib, isha
		FROM prayer_adjustments
		WHERE masjid_id = $1
		`, masjidID)
	if errors.Is(err, sql.ErrNoRows) {
		return prayer.Adjustments{}, nil
	}
	if err != nil {
		return prayer.Adjustments{}, fmt.Errorf("get prayer adjustments: %w", err)
	}
	return adj, nil
}

func (s *pgStore) SaveAdjustments(ctx context.Context, masjidID string, adj prayer.Adjustments, updatedBy string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO prayer_adjustments (masjid_id, fajr, sunrise, dhuhr, asr, maghrib, isha, updated_by, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now())
		ON CONFLICT (masjid_id) DO UPDATE SET
			fajr = EXCLUDED.fajr,
			sunrise = EXCLUDED.sunrise,
			dhuhr = EXCLUDED.dhuhr,
			asr = EXCLUDED.asr,
			maghrib = EXCLUDED.maghrib,
			isha = EXCLUDED.isha,
			updated_by = EXCLUDED.updated_by,
			updated_at = now()
		`, masjidID, adj.Fajr, adj.Sunrise, adj.Dhuhr, adj.Asr, adj.Maghrib, adj.Isha, updatedBy)
	if err != nil {
		return fmt.Errorf("save prayer adjustments: %w", err)
	}
	return nil
}
