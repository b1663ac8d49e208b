package jakim

import (
	"fmt"
	"time"
	_ "time/tzdata"

	"github.com/Nixie-Tech-LLC/solat/internal/zone"
)

// MonthResponse is the body returned by the waktusolat v2 solat endpoint.
type MonthResponse struct {
	Zone        string      `json:"zone"`
	Year        int         `json:"year"`
	Month       string      `json:"month"`
	MonthNumber int         `json:"month_number"`
	LastUpdated *string     `json:"last_updated"`
	Prayers     *[]DayEntry `json:"prayers"`
}

// DayEntry holds one day of the month. All prayer fields are Unix seconds.
type DayEntry struct {
	Day     int    `json:"day"`
	Hijri   string `json:"hijri"`
	Fajr    int64  `json:"fajr"`
	Syuruk  int64  `json:"syuruk"`
	Dhuhr   int64  `json:"dhuhr"`
	Asr     int64  `json:"asr"`
	Maghrib int64  `json:"maghrib"`
	Isha    int64  `json:"isha"`
}

// Month is a validated month of prayer times for one zone.
type Month struct {
	Zone    zone.Code
	Year    int
	Month   time.Month
	Entries []DayEntry
}

// DayTimes is one day of prayer times expressed in Malaysian local time.
type DayTimes struct {
	Zone    zone.Code
	Date    time.Time
	Hijri   string
	Fajr    time.Time
	Sunrise time.Time
	Dhuhr   time.Time
	Asr     time.Time
	Maghrib time.Time
	Isha    time.Time
}

var location = loadLocation()

func loadLocation() *time.Location {
	loc, err := time.LoadLocation("Asia/Kuala_Lumpur")
	if err != nil {
		// Malaysia has no daylight saving.
		return time.FixedZone("MYT", 8*60*60)
	}
	return loc
}

// Location is the time zone every JAKIM timestamp is rendered in.
func Location() *time.Location { return location }

// Today returns the Malaysian civil date at now, as midnight in Location.
func Today(now time.Time) time.Time {
	y, m, d := now.In(location).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, location)
}

// Day extracts the entry for date's day-of-month.
func (m *Month) Day(date time.Time) (DayTimes, error) {
	y, mo, d := date.Date()
	if m.Year != 0 && (m.Year != y || m.Month != mo) {
		return DayTimes{}, &NotFoundError{Zone: m.Zone, Date: date.Format(DateLayout)}
	}
	for _, e := range m.Entries {
		if e.Day != d {
			continue
		}
		return DayTimes{
			Zone:    m.Zone,
			Date:    time.Date(y, mo, d, 0, 0, 0, 0, location),
			Hijri:   e.Hijri,
			Fajr:    unix(e.Fajr),
			Sunrise: unix(e.Syuruk),
			Dhuhr:   unix(e.Dhuhr),
			Asr:     unix(e.Asr),
			Maghrib: unix(e.Maghrib),
			Isha:    unix(e.Isha),
		}, nil
	}
	return DayTimes{}, &NotFoundError{Zone: m.Zone, Date: date.Format(DateLayout)}
}

// Days returns every day of the month that converts cleanly.
func (m *Month) Days() []DayTimes {
	out := make([]DayTimes, 0, len(m.Entries))
	for _, e := range m.Entries {
		if e.Day < 1 || e.Day > 31 {
			continue
		}
		dt, err := m.Day(time.Date(m.Year, m.Month, e.Day, 0, 0, 0, 0, location))
		if err != nil {
			continue
		}
		out = append(out, dt)
	}
	return out
}

func unix(ts int64) time.Time {
	return time.Unix(ts, 0).In(location)
}

// Clock formats t as HH:MM in Malaysian time.
func Clock(t time.Time) string {
	return t.In(location).Format("15:04")
}

// Validate checks that the six times are strictly increasing.
func (d DayTimes) Validate() error {
	seq := []struct {
		name string
		t    time.Time
	}{
		{"fajr", d.Fajr}, {"sunrise", d.Sunrise}, {"dhuhr", d.Dhuhr},
		{"asr", d.Asr}, {"maghrib", d.Maghrib}, {"isha", d.Isha},
	}
	for i := 1; i < len(seq); i++ {
		if !seq[i-1].t.Before(seq[i].t) {
			return fmt.Errorf("%s (%s) is not before %s (%s) on %s",
				seq[i-1].name, Clock(seq[i-1].t), seq[i].name, Clock(seq[i].t), d.Date.Format(DateLayout))
		}
	}
	return nil
}

// DateLayout is the civil date format used across the API.
const DateLayout = "2006-01-02"
