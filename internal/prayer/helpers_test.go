package prayer

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Nixie-Tech-LLC/solat/internal/jakim"
	"github.com/Nixie-Tech-LLC/solat/internal/zone"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 12, 25, 8, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// fakeFetcher serves months built by monthFor and counts calls. Setting fail
// makes every subsequent call return a transport error.
type fakeFetcher struct {
	calls atomic.Int32
	fail  atomic.Bool
	delay time.Duration
	build func(z zone.Code, year int, month time.Month) *jakim.Month
}

var errUpstreamDown = errors.New("connection refused")

func (f *fakeFetcher) FetchMonth(ctx context.Context, z zone.Code, year int, month time.Month) (*jakim.Month, error) {
	f.calls.Add(1)
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	if f.fail.Load() {
		return nil, &jakim.TransportError{Zone: z, Err: errUpstreamDown}
	}
	build := f.build
	if build == nil {
		build = monthFor
	}
	return build(z, year, month), nil
}

func kl(y int, m time.Month, d, hh, mm int) int64 {
	return time.Date(y, m, d, hh, mm, 0, 0, jakim.Location()).Unix()
}

// monthFor builds a full month where day N has fajr at 05:N%60 etc.
func monthFor(z zone.Code, year int, month time.Month) *jakim.Month {
	days := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
	m := &jakim.Month{Zone: z, Year: year, Month: month}
	for d := 1; d <= days; d++ {
		m.Entries = append(m.Entries, jakim.DayEntry{
			Day:     d,
			Fajr:    kl(year, month, d, 5, 30+d%30),
			Syuruk:  kl(year, month, d, 7, 0),
			Dhuhr:   kl(year, month, d, 13, 10),
			Asr:     kl(year, month, d, 16, 35),
			Maghrib: kl(year, month, d, 19, 10),
			Isha:    kl(year, month, d, 20, 25),
		})
	}
	return m
}

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := ParseDate(s)
	require.NoError(t, err)
	return d
}
