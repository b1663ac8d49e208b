// Package display turns a TV display id into the prayer schedule it should
// show: it resolves the display's masjid and zone, honours manual overrides and
// applies the masjid's minute adjustments.
package display

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/Nixie-Tech-LLC/solat/internal/db"
	"github.com/Nixie-Tech-LLC/solat/internal/jakim"
	"github.com/Nixie-Tech-LLC/solat/internal/model"
	"github.com/Nixie-Tech-LLC/solat/internal/prayer"
	"github.com/Nixie-Tech-LLC/solat/internal/zone"
)

// ErrDisplayNotFound covers unknown, inactive and orphaned displays.
var ErrDisplayNotFound = errors.New("display not found or inactive")

// Kuala Lumpur, used until masjids carry coordinates.
const (
	defaultLatitude  = 3.1390
	defaultLongitude = 101.6869
)

const rangeConcurrency = 4

// Store is the part of db.Store the display service reads.
type Store interface {
	GetDisplay(ctx context.Context, id string) (*model.Display, error)
	GetMasjid(ctx context.Context, id string) (*model.Masjid, error)
	GetManualSchedule(ctx context.Context, masjidID, date string) (*model.ManualPrayerTimes, error)
	GetAdjustments(ctx context.Context, masjidID string) (prayer.Adjustments, error)
}

// Prayers is implemented by *prayer.Service.
type Prayers interface {
	Fetch(ctx context.Context, masjidID string, date time.Time, z zone.Code) (prayer.Schedule, error)
}

// Meta describes how a display should render its schedule.
type Meta struct {
	DisplayID              string             `json:"display_id"`
	MasjidID               string             `json:"masjid_id"`
	ZoneCode               zone.Code          `json:"zone_code"`
	LocationName           string             `json:"location_name"`
	Latitude               float64            `json:"latitude"`
	Longitude              float64            `json:"longitude"`
	Position               string             `json:"position"`
	ShowSeconds            bool               `json:"show_seconds"`
	HighlightCurrentPrayer bool               `json:"highlight_current_prayer"`
	NextPrayerCountdown    bool               `json:"next_prayer_countdown"`
	Adjustments            prayer.Adjustments `json:"adjustments"`
}

type View struct {
	Schedule prayer.Schedule
	Meta     Meta
	DeviceID string
}

type RangeView struct {
	Schedules []prayer.Schedule
	Meta      Meta
}

type Service struct {
	store   Store
	prayers Prayers
	clock   prayer.Clock
}

func NewService(store Store, prayers Prayers, clock prayer.Clock) *Service {
	if clock == nil {
		clock = prayer.SystemClock{}
	}
	return &Service{store: store, prayers: prayers, clock: clock}
}

// Today is the current Malaysian civil date.
func (s *Service) Today() time.Time {
	return jakim.Today(s.clock.Now())
}

// PrayerTimes returns the schedule display displayID should show on date.
func (s *Service) PrayerTimes(ctx context.Context, displayID string, date time.Time) (*View, error) {
	t, err := s.resolve(ctx, displayID)
	if err != nil {
		return nil, err
	}

	sched, err := s.scheduleFor(ctx, t, date)
	if err != nil {
		return nil, err
	}

	view := &View{Schedule: sched, Meta: t.meta()}
	if t.display.DeviceID != nil {
		view.DeviceID = *t.display.DeviceID
	}
	return view, nil
}

// PrayerTimesRange returns one schedule per day in [start, end]. Each day is
// resolved like PrayerTimes, so an override still serves while JAKIM is down.
func (s *Service) PrayerTimesRange(ctx context.Context, displayID string, start, end time.Time) (*RangeView, error) {
	t, err := s.resolve(ctx, displayID)
	if err != nil {
		return nil, err
	}

	dates := prayer.DateRange(start, end)
	out := make([]prayer.Schedule, len(dates))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(rangeConcurrency)
	for i, d := range dates {
		i, d := i, d
		g.Go(func() error {
			sched, err := s.scheduleFor(gctx, t, d)
			if err != nil {
				return err
			}
			out[i] = sched
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &RangeView{Schedules: out, Meta: t.meta()}, nil
}

type target struct {
	display     *model.Display
	masjid      *model.Masjid
	zone        zone.Code
	adjustments prayer.Adjustments
}

func (t target) meta() Meta {
	return Meta{
		DisplayID:              t.display.ID,
		MasjidID:               t.masjid.ID,
		ZoneCode:               t.zone,
		LocationName:           t.masjid.LocationName(),
		Latitude:               defaultLatitude,
		Longitude:              defaultLongitude,
		Position:               t.display.PrayerTimePosition,
		HighlightCurrentPrayer: true,
		NextPrayerCountdown:    true,
		Adjustments:            t.adjustments,
	}
}

func (s *Service) resolve(ctx context.Context, displayID string) (target, error) {
	d, err := s.store.GetDisplay(ctx, displayID)
	if errors.Is(err, db.ErrNotFound) {
		return target{}, ErrDisplayNotFound
	}
	if err != nil {
		return target{}, fmt.Errorf("load display: %w", err)
	}
	if !d.IsActive {
		return target{}, ErrDisplayNotFound
	}

	m, err := s.store.GetMasjid(ctx, d.MasjidID)
	if errors.Is(err, db.ErrNotFound) {
		return target{}, ErrDisplayNotFound
	}
	if err != nil {
		return target{}, fmt.Errorf("load masjid: %w", err)
	}

	adj, err := s.store.GetAdjustments(ctx, m.ID)
	if err != nil {
		log.Warn().Err(err).Str("masjid_id", m.ID).Msg("ignoring prayer adjustments")
		adj = prayer.Adjustments{}
	}

	return target{display: d, masjid: m, zone: ZoneFor(m), adjustments: adj}, nil
}

// ZoneFor picks the masjid's configured JAKIM zone, or resolves one from its address.
func ZoneFor(m *model.Masjid) zone.Code {
	if m.JakimZoneCode != nil && *m.JakimZoneCode != "" {
		z, err := zone.Parse(*m.JakimZoneCode)
		if err == nil {
			return z
		}
		log.Warn().Err(err).Str("masjid_id", m.ID).Msg("invalid jakim zone, resolving from address")
	}
	var state, city string
	if m.State != nil {
		state = *m.State
	}
	if m.City != nil {
		city = *m.City
	}
	return zone.Resolve(state, city)
}

func (s *Service) scheduleFor(ctx context.Context, t target, date time.Time) (prayer.Schedule, error) {
	day := date.Format(jakim.DateLayout)
	if manual, ok := s.manual(ctx, t, day); ok {
		return manual, nil
	}

	sched, err := s.prayers.Fetch(ctx, t.masjid.ID, date, t.zone)
	if err != nil {
		return prayer.Schedule{}, err
	}
	return s.adjust(t, sched), nil
}

// manual returns the admin override for day, if one exists.
func (s *Service) manual(ctx context.Context, t target, day string) (prayer.Schedule, bool) {
	m, err := s.store.GetManualSchedule(ctx, t.masjid.ID, day)
	if errors.Is(err, db.ErrNotFound) {
		return prayer.Schedule{}, false
	}
	if err != nil {
		log.Warn().Err(err).Str("masjid_id", t.masjid.ID).Str("date", day).Msg("manual prayer times lookup failed")
		return prayer.Schedule{}, false
	}
	return FromManual(m, t.zone), true
}

// FromManual converts a stored override into a schedule tagged manual.
func FromManual(m *model.ManualPrayerTimes, z zone.Code) prayer.Schedule {
	return prayer.Schedule{
		MasjidID:  m.MasjidID,
		Date:      m.PrayerDate,
		Zone:      z,
		Fajr:      m.Fajr,
		Sunrise:   m.Sunrise,
		Dhuhr:     m.Dhuhr,
		Asr:       m.Asr,
		Maghrib:   m.Maghrib,
		Isha:      m.Isha,
		Source:    prayer.SourceManual,
		FetchedAt: m.UpdatedAt.UTC(),
	}.WithMasjid(m.MasjidID)
}

func (s *Service) adjust(t target, sched prayer.Schedule) prayer.Schedule {
	adjusted, err := sched.Adjust(t.adjustments)
	if err != nil {
		log.Warn().Err(err).Str("masjid_id", t.masjid.ID).Str("date", sched.Date).Msg("skipping prayer adjustments")
		return sched
	}
	return adjusted
}
