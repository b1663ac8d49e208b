package endpoints

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/solat/internal/display"
	"github.com/Nixie-Tech-LLC/solat/internal/http/api"
	"github.com/Nixie-Tech-LLC/solat/internal/http/api/tv/packets"
	"github.com/Nixie-Tech-LLC/solat/internal/prayer"
)

// MaxRangeDays caps a single range request.
const MaxRangeDays = 62

const (
	freshMaxAge    = 1800
	fallbackMaxAge = 300
)

// Displays is implemented by *display.Service.
type Displays interface {
	PrayerTimes(ctx context.Context, displayID string, date time.Time) (*display.View, error)
	PrayerTimesRange(ctx context.Context, displayID string, start, end time.Time) (*display.RangeView, error)
	Today() time.Time
}

type PrayerTimesController struct {
	displays Displays
	clock    prayer.Clock
}

func NewPrayerTimesController(displays Displays, clock prayer.Clock) *PrayerTimesController {
	if clock == nil {
		clock = prayer.SystemClock{}
	}
	return &PrayerTimesController{displays: displays, clock: clock}
}

func PrayerTimesModule(displays Displays, clock prayer.Clock) api.Module {
	ctl := NewPrayerTimesController(displays, clock)
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/displays/:id/prayer-times", ctl.getPrayerTimes)
		c.GET("/displays/:id/prayer-times/range", ctl.getPrayerTimesRange)
	})
}

func (p *PrayerTimesController) getPrayerTimes(ctx *gin.Context) (any, *api.APIError) {
	displayID := ctx.Param("id")
	today := p.displays.Today()

	date := today
	if raw := ctx.Query("date"); raw != "" {
		d, err := prayer.ParseDate(raw)
		if err != nil {
			return nil, api.NewError(http.StatusBadRequest, err.Error())
		}
		date = d
	}

	view, err := p.displays.PrayerTimes(ctx.Request.Context(), displayID, date)
	if err != nil {
		return nil, displayError(ctx, displayID, err)
	}

	setScheduleHeaders(ctx, view.Schedule, string(view.Meta.ZoneCode))

	response := packets.PrayerTimesResponse{
		Data:  view.Schedule,
		Meta:  view.Meta,
		Links: packets.Links{Self: ctx.Request.URL.String()},
	}
	if date.Equal(today) {
		if st, err := prayer.Status(view.Schedule, p.clock.Now()); err == nil {
			response.Status = &st
		}
	}
	return response, nil
}

func (p *PrayerTimesController) getPrayerTimesRange(ctx *gin.Context) (any, *api.APIError) {
	displayID := ctx.Param("id")

	start, err := prayer.ParseDate(ctx.Query("start"))
	if err != nil {
		return nil, api.NewError(http.StatusBadRequest, "start: "+err.Error())
	}
	end, err := prayer.ParseDate(ctx.Query("end"))
	if err != nil {
		return nil, api.NewError(http.StatusBadRequest, "end: "+err.Error())
	}
	if end.Before(start) {
		return nil, api.NewError(http.StatusBadRequest, "end must not be before start")
	}
	if days := len(prayer.DateRange(start, end)); days > MaxRangeDays {
		return nil, api.NewError(http.StatusBadRequest, "range may span at most "+strconv.Itoa(MaxRangeDays)+" days")
	}

	rv, err := p.displays.PrayerTimesRange(ctx.Request.Context(), displayID, start, end)
	if err != nil {
		return nil, displayError(ctx, displayID, err)
	}

	maxAge := freshMaxAge
	for _, s := range rv.Schedules {
		if s.Source == prayer.SourceStaleFallback {
			maxAge = fallbackMaxAge
			break
		}
	}
	ctx.Header("Cache-Control", "private, max-age="+strconv.Itoa(maxAge))
	ctx.Header("X-Zone-Code", string(rv.Meta.ZoneCode))

	return packets.PrayerTimesRangeResponse{
		Data:  rv.Schedules,
		Meta:  rv.Meta,
		Links: packets.Links{Self: ctx.Request.URL.String()},
	}, nil
}

func setScheduleHeaders(ctx *gin.Context, s prayer.Schedule, zoneCode string) {
	maxAge := freshMaxAge
	if s.Source == prayer.SourceStaleFallback {
		maxAge = fallbackMaxAge
	}
	ctx.Header("Cache-Control", "private, max-age="+strconv.Itoa(maxAge))
	ctx.Header("X-Prayer-Source", string(s.Source))
	ctx.Header("X-Last-Fetched", s.FetchedAt.UTC().Format(time.RFC3339))
	ctx.Header("X-Zone-Code", zoneCode)
}

// displayError maps display service errors onto HTTP responses.
func displayError(ctx *gin.Context, displayID string, err error) *api.APIError {
	var unavailable *prayer.ServiceUnavailableError
	switch {
	case errors.Is(err, display.ErrDisplayNotFound):
		return api.NewError(http.StatusNotFound, "Display not found or inactive")
	case errors.As(err, &unavailable):
		log.Warn().Err(err).Str("display_id", displayID).Msg("prayer times unavailable")
		ctx.Header("Retry-After", strconv.Itoa(fallbackMaxAge))
		return api.NewError(http.StatusServiceUnavailable, "prayer times are temporarily unavailable, retry later")
	default:
		log.Error().Err(err).Str("display_id", displayID).Msg("failed to fetch prayer times")
		return api.NewError(http.StatusInternalServerError, "failed to fetch prayer times")
	}
}
