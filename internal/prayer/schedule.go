// Package prayer serves daily prayer schedules for masjids, backed by the JAKIM
// fetcher with an in-memory cache and stale fallback.
package prayer

import (
	"fmt"
	"time"

	"github.com/Nixie-Tech-LLC/solat/internal/jakim"
	"github.com/Nixie-Tech-LLC/solat/internal/zone"
)

// Source tells a consumer where a schedule came from.
type Source string

const (
	SourceFresh         Source = "fresh"
	SourceManual        Source = "manual"
	SourceStaleFallback Source = "stale_fallback"
)

// Name identifies one of the six daily times.
type Name string

const (
	Fajr    Name = "fajr"
	Sunrise Name = "sunrise"
	Dhuhr   Name = "dhuhr"
	Asr     Name = "asr"
	Maghrib Name = "maghrib"
	Isha    Name = "isha"
)

// Names lists the six times in chronological order.
var Names = []Name{Fajr, Sunrise, Dhuhr, Asr, Maghrib, Isha}

// Schedule is one day of prayer times for a masjid. It is a value: helpers
// return modified copies.
type Schedule struct {
	ID        string    `json:"id"`
	MasjidID  string    `json:"masjid_id"`
	Date      string    `json:"prayer_date"`
	Zone      zone.Code `json:"zone"`
	Fajr      string    `json:"fajr_time"`
	Sunrise   string    `json:"sunrise_time"`
	Dhuhr     string    `json:"dhuhr_time"`
	Asr       string    `json:"asr_time"`
	Maghrib   string    `json:"maghrib_time"`
	Isha      string    `json:"isha_time"`
	Source    Source    `json:"source"`
	FetchedAt time.Time `json:"fetched_at"`
}

func scheduleID(masjidID, date string, z zone.Code) string {
	return fmt.Sprintf("%s-%s-%s", masjidID, date, z)
}

// FromDay converts a fetched day into a fresh schedule.
func FromDay(masjidID string, d jakim.DayTimes, fetchedAt time.Time) Schedule {
	date := d.Date.Format(jakim.DateLayout)
	return Schedule{
		ID:        scheduleID(masjidID, date, d.Zone),
		MasjidID:  masjidID,
		Date:      date,
		Zone:      d.Zone,
		Fajr:      jakim.Clock(d.Fajr),
		Sunrise:   jakim.Clock(d.Sunrise),
		Dhuhr:     jakim.Clock(d.Dhuhr),
		Asr:       jakim.Clock(d.Asr),
		Maghrib:   jakim.Clock(d.Maghrib),
		Isha:      jakim.Clock(d.Isha),
		Source:    SourceFresh,
		FetchedAt: fetchedAt.UTC(),
	}
}

// WithMasjid rebinds the schedule to another masjid.
func (s Schedule) WithMasjid(masjidID string) Schedule {
	s.MasjidID = masjidID
	s.ID = scheduleID(masjidID, s.Date, s.Zone)
	return s
}

// WithSource returns a copy tagged with src.
func (s Schedule) WithSource(src Source) Schedule {
	s.Source = src
	return s
}

// Time returns the HH:MM value for name.
func (s Schedule) Time(name Name) string {
	switch name {
	case Fajr:
		return s.Fajr
	case Sunrise:
		return s.Sunrise
	case Dhuhr:
		return s.Dhuhr
	case Asr:
		return s.Asr
	case Maghrib:
		return s.Maghrib
	case Isha:
		return s.Isha
	}
	return ""
}

func (s *Schedule) set(name Name, v string) {
	switch name {
	case Fajr:
		s.Fajr = v
	case Sunrise:
		s.Sunrise = v
	case Dhuhr:
		s.Dhuhr = v
	case Asr:
		s.Asr = v
	case Maghrib:
		s.Maghrib = v
	case Isha:
		s.Isha = v
	}
}

// Validate checks that every time is a valid HH:MM and that they are strictly
// increasing through the day.
func (s Schedule) Validate() error {
	prev := -1
	for _, n := range Names {
		m, err := minutesOf(s.Time(n))
		if err != nil {
			return fmt.Errorf("%s: %w", n, err)
		}
		if m <= prev {
			return fmt.Errorf("%s (%s) must be after the previous prayer", n, s.Time(n))
		}
		prev = m
	}
	return nil
}

// minutesOf parses HH:MM into minutes after midnight.
func minutesOf(hhmm string) (int, error) {
	if len(hhmm) != 5 || hhmm[2] != ':' {
		return 0, fmt.Errorf("invalid time %q, want HH:MM", hhmm)
	}
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q, want HH:MM", hhmm)
	}
	return t.Hour()*60 + t.Minute(), nil
}

func formatMinutes(m int) string {
	m = ((m % (24 * 60)) + 24*60) % (24 * 60)
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}
