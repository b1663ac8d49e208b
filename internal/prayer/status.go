package prayer

import (
	"time"

	"github.com/Nixie-Tech-LLC/solat/internal/jakim"
)

// Moment is one named prayer time on a concrete day.
type Moment struct {
	Name Name      `json:"name"`
	At   time.Time `json:"at"`
}

// DayStatus describes where a display clock sits within a day's schedule.
// Current is nil before fajr and Next is nil after isha.
type DayStatus struct {
	Current *Moment `json:"current"`
	Next    *Moment `json:"next"`
}

// Moments expands the schedule into absolute times in Malaysian time.
func (s Schedule) Moments() ([]Moment, error) {
	day, err := ParseDate(s.Date)
	if err != nil {
		return nil, err
	}
	out := make([]Moment, 0, len(Names))
	for _, n := range Names {
		m, err := minutesOf(s.Time(n))
		if err != nil {
			return nil, err
		}
		out = append(out, Moment{Name: n, At: day.Add(time.Duration(m) * time.Minute)})
	}
	return out, nil
}

// Status returns the current and next prayer for now.
func Status(s Schedule, now time.Time) (DayStatus, error) {
	moments, err := s.Moments()
	if err != nil {
		return DayStatus{}, err
	}
	now = now.In(jakim.Location())

	var st DayStatus
	for i := range moments {
		m := moments[i]
		if !now.Before(m.At) {
			st.Current = &m
			continue
		}
		st.Next = &m
		break
	}
	return st, nil
}
