package prayer

import (
	"fmt"
	"time"

	"github.com/Nixie-Tech-LLC/solat/internal/jakim"
)

// ParseDate parses a YYYY-MM-DD civil date as midnight in Malaysian time.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(jakim.DateLayout, s, jakim.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD", s)
	}
	return t, nil
}

// DateRange lists each civil date from start to end inclusive.
func DateRange(start, end time.Time) []time.Time {
	y, m, d := start.Date()
	cur := time.Date(y, m, d, 0, 0, 0, 0, start.Location())
	ey, em, ed := end.Date()
	last := time.Date(ey, em, ed, 0, 0, 0, 0, start.Location())

	var out []time.Time
	for !cur.After(last) {
		out = append(out, cur)
		cur = cur.AddDate(0, 0, 1)
	}
	return out
}
