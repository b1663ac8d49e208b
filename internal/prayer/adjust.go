package prayer

import "fmt"

// MaxAdjustment bounds a single offset, in minutes.
const MaxAdjustment = 60

// Adjustments are per-masjid minute offsets applied on top of the zone times.
type Adjustments struct {
	Fajr    int `json:"fajr" db:"fajr"`
	Sunrise int `json:"sunrise" db:"sunrise"`
	Dhuhr   int `json:"dhuhr" db:"dhuhr"`
	Asr     int `json:"asr" db:"asr"`
	Maghrib int `json:"maghrib" db:"maghrib"`
	Isha    int `json:"isha" db:"isha"`
}

func (a Adjustments) offset(name Name) int {
	switch name {
	case Fajr:
		return a.Fajr
	case Sunrise:
		return a.Sunrise
	case Dhuhr:
		return a.Dhuhr
	case Asr:
		return a.Asr
	case Maghrib:
		return a.Maghrib
	case Isha:
		return a.Isha
	}
	return 0
}

// IsZero reports whether no offset is set.
func (a Adjustments) IsZero() bool { return a == Adjustments{} }

// Validate rejects offsets larger than MaxAdjustment in either direction.
func (a Adjustments) Validate() error {
	for _, n := range Names {
		if off := a.offset(n); off > MaxAdjustment || off < -MaxAdjustment {
			return fmt.Errorf("%s adjustment %d out of range [-%d, %d]", n, off, MaxAdjustment, MaxAdjustment)
		}
	}
	return nil
}

// Adjust returns a copy of s with every time shifted by its offset. The result
// must still be in chronological order.
func (s Schedule) Adjust(a Adjustments) (Schedule, error) {
	if a.IsZero() {
		return s, nil
	}
	out := s
	for _, n := range Names {
		m, err := minutesOf(s.Time(n))
		if err != nil {
			return Schedule{}, fmt.Errorf("adjust %s: %w", n, err)
		}
		out.set(n, formatMinutes(m+a.offset(n)))
	}
	if err := out.Validate(); err != nil {
		return Schedule{}, fmt.Errorf("adjusted schedule out of order: %w", err)
	}
	return out, nil
}
