package prayer

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/Nixie-Tech-LLC/solat/internal/jakim"
	"github.com/Nixie-Tech-LLC/solat/internal/metrics"
	"github.com/Nixie-Tech-LLC/solat/internal/zone"
)

const (
	DefaultMaxAge           = 60 * time.Minute
	DefaultRangeConcurrency = 4
)

// Fetcher retrieves a month of prayer times for a zone. *jakim.Client implements it.
type Fetcher interface {
	FetchMonth(ctx context.Context, z zone.Code, year int, month time.Month) (*jakim.Month, error)
}

// Service answers prayer-time lookups: fresh cache first, then the fetcher,
// then whatever stale copy the cache still holds.
type Service struct {
	fetcher          Fetcher
	cache            *Cache
	clock            Clock
	maxAge           time.Duration
	rangeConcurrency int
	group            singleflight.Group
}

type Option func(*Service)

// WithMaxAge sets how long a fetched day is served from cache without refetching.
func WithMaxAge(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.maxAge = d
		}
	}
}

func WithClock(c Clock) Option {
	return func(s *Service) { s.clock = c }
}

// WithCache shares an existing cache with the service.
func WithCache(c *Cache) Option {
	return func(s *Service) { s.cache = c }
}

// WithRangeConcurrency bounds how many days FetchRange resolves at once.
func WithRangeConcurrency(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.rangeConcurrency = n
		}
	}
}

func NewService(fetcher Fetcher, opts ...Option) *Service {
	s := &Service{
		fetcher:          fetcher,
		clock:            SystemClock{},
		maxAge:           DefaultMaxAge,
		rangeConcurrency: DefaultRangeConcurrency,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.cache == nil {
		s.cache = NewCache(s.clock, 0)
	}
	return s
}

// Cache exposes the service's cache.
func (s *Service) Cache() *Cache { return s.cache }

// Fetch returns the schedule for date in zone z, bound to masjidID.
// Any failure that cannot be covered by a cached copy is reported as
// *ServiceUnavailableError.
func (s *Service) Fetch(ctx context.Context, masjidID string, date time.Time, z zone.Code) (Schedule, error) {
	day := date.Format(jakim.DateLayout)
	key := Key{Zone: z, Date: day}

	if cached, ok := s.cache.Get(key, s.maxAge); ok {
		log.Debug().Str("zone", string(z)).Str("date", day).Msg("prayer times cache hit")
		metrics.ObserveCacheLookup("hit")
		return cached.WithMasjid(masjidID), nil
	}
	metrics.ObserveCacheLookup("miss")

	sched, err := s.load(ctx, z, date)
	if err == nil {
		return sched.WithMasjid(masjidID), nil
	}

	log.Error().Err(err).Str("zone", string(z)).Str("date", day).Msg("failed to fetch prayer times")

	if stale, ok := s.cache.GetStale(key); ok {
		log.Warn().Str("zone", string(z)).Str("date", day).
			Time("fetched_at", stale.FetchedAt).
			Msg("serving stale prayer times")
		metrics.ObserveCacheLookup(string(SourceStaleFallback))
		return stale.WithMasjid(masjidID).WithSource(SourceStaleFallback), nil
	}

	metrics.ObserveCacheLookup("unavailable")
	return Schedule{}, &ServiceUnavailableError{Zone: z, Date: day, Err: err}
}

// FetchRange resolves every day in [start, end] through Fetch and returns them
// in date order. An end before start yields an empty result.
func (s *Service) FetchRange(ctx context.Context, masjidID string, start, end time.Time, z zone.Code) ([]Schedule, error) {
	dates := DateRange(start, end)
	out := make([]Schedule, len(dates))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.rangeConcurrency)
	for i, d := range dates {
		i, d := i, d
		g.Go(func() error {
			sched, err := s.Fetch(gctx, masjidID, d, z)
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
	return out, nil
}

type monthResult struct {
	month   *jakim.Month
	days    map[string]Schedule
	invalid map[string]error
}

// load fetches the month containing date, caches every valid day in it and
// returns the requested one. Concurrent loads of the same zone and month share
// a single upstream call.
func (s *Service) load(ctx context.Context, z zone.Code, date time.Time) (Schedule, error) {
	year, month := date.Year(), date.Month()
	flight := fmt.Sprintf("%s|%04d-%02d", z, year, int(month))

	v, err, _ := s.group.Do(flight, func() (any, error) {
		return s.fetchMonth(ctx, z, year, month)
	})
	if err != nil {
		return Schedule{}, err
	}

	res := v.(*monthResult)
	day := date.Format(jakim.DateLayout)
	if sched, ok := res.days[day]; ok {
		return sched, nil
	}
	if err, ok := res.invalid[day]; ok {
		return Schedule{}, err
	}
	if _, err := res.month.Day(date); err != nil {
		return Schedule{}, err
	}
	return Schedule{}, &jakim.NotFoundError{Zone: z, Date: day}
}

func (s *Service) fetchMonth(ctx context.Context, z zone.Code, year int, month time.Month) (*monthResult, error) {
	m, err := s.fetcher.FetchMonth(ctx, z, year, month)
	if err != nil {
		return nil, err
	}
	mm := *m
	if mm.Year == 0 {
		mm.Year, mm.Month = year, month
	}
	if mm.Zone == "" {
		mm.Zone = z
	}

	now := s.clock.Now()
	res := &monthResult{
		month:   &mm,
		days:    make(map[string]Schedule, len(mm.Entries)),
		invalid: make(map[string]error),
	}
	for _, d := range mm.Days() {
		day := d.Date.Format(jakim.DateLayout)
		if err := d.Validate(); err != nil {
			res.invalid[day] = &jakim.TransportError{Zone: z, Err: fmt.Errorf("invalid prayer times: %w", err)}
			continue
		}
		sched := FromDay("", d, now)
		s.cache.Put(Key{Zone: z, Date: day}, sched)
		res.days[day] = sched
	}

	log.Info().Str("zone", string(z)).Int("year", year).Int("month", int(month)).
		Int("days", len(res.days)).Msg("cached prayer times")
	return res, nil
}
