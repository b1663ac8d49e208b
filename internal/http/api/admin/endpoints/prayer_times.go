package endpoints

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/solat/internal/db"
	"github.com/Nixie-Tech-LLC/solat/internal/http/api"
	"github.com/Nixie-Tech-LLC/solat/internal/http/api/admin/packets"
	"github.com/Nixie-Tech-LLC/solat/internal/jakim"
	"github.com/Nixie-Tech-LLC/solat/internal/model"
	"github.com/Nixie-Tech-LLC/solat/internal/prayer"
)

// Store is the part of db.Store the admin endpoints use.
type Store interface {
	GetMasjid(ctx context.Context, id string) (*model.Masjid, error)
	GetManualSchedule(ctx context.Context, masjidID, date string) (*model.ManualPrayerTimes, error)
	UpsertManualSchedule(ctx context.Context, m model.ManualPrayerTimes) (*model.ManualPrayerTimes, error)
	DeleteManualSchedule(ctx context.Context, masjidID, date string) error
	GetAdjustments(ctx context.Context, masjidID string) (prayer.Adjustments, error)
	SaveAdjustments(ctx context.Context, masjidID string, adj prayer.Adjustments, updatedBy string) error
}

// ChangeHook runs after a masjid's schedule changed, e.g. to push it to TVs.
type ChangeHook func(masjidID string)

type PrayerTimesController struct {
	store    Store
	onChange ChangeHook
}

func NewPrayerTimesController(store Store, onChange ChangeHook) *PrayerTimesController {
	if onChange == nil {
		onChange = func(string) {}
	}
	return &PrayerTimesController{store: store, onChange: onChange}
}

// PrayerTimesModule serves manual overrides and adjustments. It expects to be
// mounted behind JWT auth and middleware.RequireMasjidAdmin.
func PrayerTimesModule(store Store, onChange ChangeHook) api.Module {
	ctl := NewPrayerTimesController(store, onChange)
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/masjids/:id/prayer-times/:date", ctl.getManualPrayerTimes)
		c.PUT("/masjids/:id/prayer-times/:date", ctl.putManualPrayerTimes)
		c.DELETE("/masjids/:id/prayer-times/:date", ctl.deleteManualPrayerTimes)

		c.GET("/masjids/:id/prayer-adjustments", ctl.getAdjustments)
		c.PUT("/masjids/:id/prayer-adjustments", ctl.putAdjustments)
	})
}

// GET /api/admin/masjids/:id/prayer-times/:date
func (p *PrayerTimesController) getManualPrayerTimes(ctx *gin.Context, _ *model.User) (any, *api.APIError) {
	masjidID := ctx.Param("id")
	date, apiErr := dateParam(ctx)
	if apiErr != nil {
		return nil, apiErr
	}

	m, err := p.store.GetManualSchedule(ctx.Request.Context(), masjidID, date)
	if errors.Is(err, db.ErrNotFound) {
		return nil, api.NewError(http.StatusNotFound, "no manual prayer times for "+date)
	}
	if err != nil {
		log.Error().Err(err).Str("masjid_id", masjidID).Str("date", date).Msg("failed to load manual prayer times")
		return nil, api.NewError(http.StatusInternalServerError, "failed to load manual prayer times")
	}
	return manualResponse(m), nil
}

// PUT /api/admin/masjids/:id/prayer-times/:date
func (p *PrayerTimesController) putManualPrayerTimes(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	masjidID := ctx.Param("id")
	date, apiErr := dateParam(ctx)
	if apiErr != nil {
		return nil, apiErr
	}

	var request packets.PutManualPrayerTimesRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, api.NewError(http.StatusBadRequest, err.Error())
	}

	candidate := prayer.Schedule{
		Date:    date,
		Fajr:    request.Fajr,
		Sunrise: request.Sunrise,
		Dhuhr:   request.Dhuhr,
		Asr:     request.Asr,
		Maghrib: request.Maghrib,
		Isha:    request.Isha,
	}
	if err := candidate.Validate(); err != nil {
		return nil, api.NewError(http.StatusBadRequest, err.Error())
	}

	if apiErr := p.requireMasjid(ctx, masjidID); apiErr != nil {
		return nil, apiErr
	}

	updatedBy := user.ID
	saved, err := p.store.UpsertManualSchedule(ctx.Request.Context(), model.ManualPrayerTimes{
		MasjidID:   masjidID,
		PrayerDate: date,
		Fajr:       request.Fajr,
		Sunrise:    request.Sunrise,
		Dhuhr:      request.Dhuhr,
		Asr:        request.Asr,
		Maghrib:    request.Maghrib,
		Isha:       request.Isha,
		UpdatedBy:  &updatedBy,
	})
	if err != nil {
		log.Error().Err(err).Str("masjid_id", masjidID).Str("date", date).Msg("failed to save manual prayer times")
		return nil, api.NewError(http.StatusInternalServerError, "failed to save manual prayer times")
	}

	log.Info().Str("masjid_id", masjidID).Str("date", date).Str("user_id", user.ID).Msg("manual prayer times saved")
	p.onChange(masjidID)
	return manualResponse(saved), nil
}

// DELETE /api/admin/masjids/:id/prayer-times/:date
func (p *PrayerTimesController) deleteManualPrayerTimes(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	masjidID := ctx.Param("id")
	date, apiErr := dateParam(ctx)
	if apiErr != nil {
		return nil, apiErr
	}

	err := p.store.DeleteManualSchedule(ctx.Request.Context(), masjidID, date)
	if errors.Is(err, db.ErrNotFound) {
		return nil, api.NewError(http.StatusNotFound, "no manual prayer times for "+date)
	}
	if err != nil {
		log.Error().Err(err).Str("masjid_id", masjidID).Str("date", date).Msg("failed to delete manual prayer times")
		return nil, api.NewError(http.StatusInternalServerError, "failed to delete manual prayer times")
	}

	log.Info().Str("masjid_id", masjidID).Str("date", date).Str("user_id", user.ID).Msg("manual prayer times removed")
	p.onChange(masjidID)
	return nil, nil
}

// GET /api/admin/masjids/:id/prayer-adjustments
func (p *PrayerTimesController) getAdjustments(ctx *gin.Context, _ *model.User) (any, *api.APIError) {
	masjidID := ctx.Param("id")
	if apiErr := p.requireMasjid(ctx, masjidID); apiErr != nil {
		return nil, apiErr
	}

	adj, err := p.store.GetAdjustments(ctx.Request.Context(), masjidID)
	if err != nil {
		log.Error().Err(err).Str("masjid_id", masjidID).Msg("failed to load prayer adjustments")
		return nil, api.NewError(http.StatusInternalServerError, "failed to load prayer adjustments")
	}
	return packets.AdjustmentsResponse{MasjidID: masjidID, Adjustments: adj}, nil
}

// PUT /api/admin/masjids/:id/prayer-adjustments
func (p *PrayerTimesController) putAdjustments(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	masjidID := ctx.Param("id")

	var request packets.PutAdjustmentsRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, api.NewError(http.StatusBadRequest, err.Error())
	}
	adj := prayer.Adjustments(request)
	if err := adj.Validate(); err != nil {
		return nil, api.NewError(http.StatusBadRequest, err.Error())
	}

	if apiErr := p.requireMasjid(ctx, masjidID); apiErr != nil {
		return nil, apiErr
	}

	if err := p.store.SaveAdjustments(ctx.Request.Context(), masjidID, adj, user.ID); err != nil {
		log.Error().Err(err).Str("masjid_id", masjidID).Msg("failed to save prayer adjustments")
		return nil, api.NewError(http.StatusInternalServerError, "failed to save prayer adjustments")
	}

	log.Info().Str("masjid_id", masjidID).Str("user_id", user.ID).Msg("prayer adjustments saved")
	p.onChange(masjidID)
	return packets.AdjustmentsResponse{MasjidID: masjidID, Adjustments: adj}, nil
}

func (p *PrayerTimesController) requireMasjid(ctx *gin.Context, masjidID string) *api.APIError {
	_, err := p.store.GetMasjid(ctx.Request.Context(), masjidID)
	if errors.Is(err, db.ErrNotFound) {
		return api.NewError(http.StatusNotFound, "masjid not found")
	}
	if err != nil {
		log.Error().Err(err).Str("masjid_id", masjidID).Msg("failed to load masjid")
		return api.NewError(http.StatusInternalServerError, "failed to load masjid")
	}
	return nil
}

func dateParam(ctx *gin.Context) (string, *api.APIError) {
	d, err := prayer.ParseDate(ctx.Param("date"))
	if err != nil {
		return "", api.NewError(http.StatusBadRequest, err.Error())
	}
	return d.Format(jakim.DateLayout), nil
}

func manualResponse(m *model.ManualPrayerTimes) packets.ManualPrayerTimesResponse {
	return packets.ManualPrayerTimesResponse{
		MasjidID:   m.MasjidID,
		PrayerDate: m.PrayerDate,
		Fajr:       m.Fajr,
		Sunrise:    m.Sunrise,
		Dhuhr:      m.Dhuhr,
		Asr:        m.Asr,
		Maghrib:    m.Maghrib,
		Isha:       m.Isha,
		Source:     string(prayer.SourceManual),
		UpdatedBy:  m.UpdatedBy,
		UpdatedAt:  m.UpdatedAt.Format(time.RFC3339),
	}
}
