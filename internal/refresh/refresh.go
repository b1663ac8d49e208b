// Package refresh periodically pushes today's prayer schedule to paired TVs,
// skipping displays whose schedule has not changed since the last push.
package refresh

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/solat/internal/display"
	"github.com/Nixie-Tech-LLC/solat/internal/metrics"
	"github.com/Nixie-Tech-LLC/solat/internal/model"
	"github.com/Nixie-Tech-LLC/solat/internal/prayer"
)

const (
	DefaultSchedule = "*/15 * * * *"
	MessageType     = "prayer_times_update"
	runTimeout      = 5 * time.Minute
)

type DisplayLister interface {
	ListActiveDisplays(ctx context.Context) ([]model.Display, error)
}

// Viewer is implemented by *display.Service.
type Viewer interface {
	PrayerTimes(ctx context.Context, displayID string, date time.Time) (*display.View, error)
	Today() time.Time
}

// DigestStore is implemented by *redis.Client.
type DigestStore interface {
	LastDigest(ctx context.Context, displayID string) (string, error)
	SetDigest(ctx context.Context, displayID, digest string) error
}

// Sender is implemented by *mqtt.Publisher.
type Sender interface {
	Publish(ctx context.Context, deviceID string, payload []byte) error
}

// Message is the command published to a TV.
type Message struct {
	Type      string          `json:"type"`
	DisplayID string          `json:"display_id"`
	Data      prayer.Schedule `json:"data"`
	Meta      display.Meta    `json:"meta"`
	SentAt    time.Time       `json:"sent_at"`
}

// Result summarises one refresh pass.
type Result struct {
	Sent      int
	Unchanged int
	Failed    int
}

type Refresher struct {
	displays DisplayLister
	viewer   Viewer
	digests  DigestStore
	sender   Sender
	clock    prayer.Clock
	cron     *cron.Cron

	runMu    sync.Mutex
	kick     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// New builds a refresher. digests may be nil, in which case every pass pushes
// to every display.
func New(displays DisplayLister, viewer Viewer, digests DigestStore, sender Sender) *Refresher {
	return &Refresher{
		displays: displays,
		viewer:   viewer,
		digests:  digests,
		sender:   sender,
		clock:    prayer.SystemClock{},
		kick:     make(chan struct{}, 1),
		done:     make(chan struct{}),
	}
}

// RunOnce pushes today's schedule to each active display. A failure for one
// display is logged and counted; only failing to list displays aborts the pass.
// Passes never overlap.
func (r *Refresher) RunOnce(ctx context.Context) (Result, error) {
	r.runMu.Lock()
	defer r.runMu.Unlock()

	var res Result

	displays, err := r.displays.ListActiveDisplays(ctx)
	if err != nil {
		return res, fmt.Errorf("list displays: %w", err)
	}

	today := r.viewer.Today()
	for _, d := range displays {
		if d.DeviceID == nil || *d.DeviceID == "" {
			continue
		}
		outcome := r.push(ctx, d, today)
		metrics.ObservePush(outcome)
		switch outcome {
		case "sent":
			res.Sent++
		case "unchanged":
			res.Unchanged++
		default:
			res.Failed++
		}
	}

	log.Info().Int("sent", res.Sent).Int("unchanged", res.Unchanged).Int("failed", res.Failed).
		Msg("prayer times refresh complete")
	return res, nil
}

func (r *Refresher) push(ctx context.Context, d model.Display, today time.Time) string {
	logger := log.With().Str("display_id", d.ID).Str("device_id", *d.DeviceID).Logger()

	view, err := r.viewer.PrayerTimes(ctx, d.ID, today)
	if err != nil {
		logger.Error().Err(err).Msg("failed to build prayer times for display")
		return "error"
	}

	digest, err := Digest(view)
	if err != nil {
		logger.Error().Err(err).Msg("failed to digest prayer times")
		return "error"
	}

	if r.digests != nil {
		last, err := r.digests.LastDigest(ctx, d.ID)
		if err != nil {
			logger.Warn().Err(err).Msg("push digest unavailable, sending anyway")
		} else if last == digest {
			return "unchanged"
		}
	}

	payload, err := json.Marshal(Message{
		Type:      MessageType,
		DisplayID: d.ID,
		Data:      view.Schedule,
		Meta:      view.Meta,
		SentAt:    r.clock.Now().UTC(),
	})
	if err != nil {
		logger.Error().Err(err).Msg("failed to encode push message")
		return "error"
	}

	if err := r.sender.Publish(ctx, *d.DeviceID, payload); err != nil {
		logger.Error().Err(err).Msg("failed to push prayer times")
		return "error"
	}

	if r.digests != nil {
		if err := r.digests.SetDigest(ctx, d.ID, digest); err != nil {
			logger.Warn().Err(err).Msg("failed to remember push digest")
		}
	}
	return "sent"
}

// Digest fingerprints what a display would render, ignoring fetch timestamps so
// that a cache refresh with identical times is not pushed again.
func Digest(v *display.View) (string, error) {
	s := v.Schedule
	s.FetchedAt = time.Time{}
	b, err := json.Marshal(struct {
		Schedule prayer.Schedule `json:"schedule"`
		Meta     display.Meta    `json:"meta"`
	}{s, v.Meta})
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:]), nil
}

// Start runs RunOnce on the given cron schedule, and whenever Trigger is
// called, until Stop is called.
func (r *Refresher) Start(spec string) error {
	if spec == "" {
		spec = DefaultSchedule
	}
	c := cron.New()
	_, err := c.AddFunc(spec, func() { r.run("cron") })
	if err != nil {
		return fmt.Errorf("invalid refresh schedule %q: %w", spec, err)
	}
	r.cron = c
	c.Start()

	r.wg.Add(1)
	go r.loop()

	log.Info().Str("schedule", spec).Msg("prayer times refresher started")
	return nil
}

// Trigger asks for a pass outside the schedule. Requests that arrive while one
// is already pending collapse into it.
func (r *Refresher) Trigger() {
	select {
	case r.kick <- struct{}{}:
	default:
	}
}

func (r *Refresher) loop() {
	defer r.wg.Done()
	for {
		select {
		case <-r.done:
			return
		case <-r.kick:
			r.run("trigger")
		}
	}
}

func (r *Refresher) run(reason string) {
	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()
	if _, err := r.RunOnce(ctx); err != nil {
		log.Error().Err(err).Str("reason", reason).Msg("prayer times refresh failed")
	}
}

// Stop halts the scheduler and waits for a running pass to finish. Pending
// triggers are dropped.
func (r *Refresher) Stop() {
	if r.cron != nil {
		<-r.cron.Stop().Done()
	}
	r.stopOnce.Do(func() { close(r.done) })
	r.wg.Wait()
}
