package endpoints

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Nixie-Tech-LLC/solat/internal/display"
	"github.com/Nixie-Tech-LLC/solat/internal/http/api"
	"github.com/Nixie-Tech-LLC/solat/internal/model"
	"github.com/Nixie-Tech-LLC/solat/internal/prayer"
)

// athanRows are the prayers shown on the athan board; sunrise is not called.
var athanRows = []prayer.Name{prayer.Fajr, prayer.Dhuhr, prayer.Asr, prayer.Maghrib, prayer.Isha}

type IntegrationsController struct {
	displays Displays
	clock    prayer.Clock
}

func IntegrationsModule(displays Displays, clock prayer.Clock) api.Module {
	if clock == nil {
		clock = prayer.SystemClock{}
	}
	ctl := &IntegrationsController{displays: displays, clock: clock}
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/integrations/:name", ctl.serveIntegration)
	})
}

func (i *IntegrationsController) serveIntegration(ctx *gin.Context) {
	switch ctx.Param("name") {
	case "athan":
		i.serveAthan(ctx)
	default:
		ctx.String(http.StatusNotFound, "integration not found")
	}
}

func (i *IntegrationsController) serveAthan(ctx *gin.Context) {
	displayID := ctx.Query("display_id")
	if displayID == "" {
		ctx.String(http.StatusBadRequest, "display_id is required")
		return
	}

	view, err := i.displays.PrayerTimes(ctx.Request.Context(), displayID, i.displays.Today())
	if err != nil {
		apiErr := displayError(ctx, displayID, err)
		ctx.String(apiErr.Code, apiErr.Message)
		return
	}

	data, err := athanPage(view, i.clock)
	if err != nil {
		ctx.String(http.StatusInternalServerError, "failed to render prayer times")
		return
	}
	setScheduleHeaders(ctx, view.Schedule, string(view.Meta.ZoneCode))
	ctx.HTML(http.StatusOK, "athan.html", data)
}

func athanPage(view *display.View, clock prayer.Clock) (model.AthanPageData, error) {
	s := view.Schedule
	day, err := prayer.ParseDate(s.Date)
	if err != nil {
		return model.AthanPageData{}, err
	}

	var current prayer.Name
	if st, err := prayer.Status(s, clock.Now()); err == nil && st.Current != nil {
		current = st.Current.Name
		if current == prayer.Sunrise {
			current = prayer.Fajr
		}
	}

	rows := make([]model.Prayer, 0, len(athanRows))
	for _, name := range athanRows {
		t12, period, err := twelveHour(s.Time(name))
		if err != nil {
			return model.AthanPageData{}, err
		}
		rows = append(rows, model.Prayer{
			Name:    strings.ToUpper(string(name)),
			Time:    t12,
			Period:  period,
			Current: name == current,
		})
	}

	return model.AthanPageData{
		Location: view.Meta.LocationName,
		Zone:     string(view.Meta.ZoneCode),
		Date:     strings.ToUpper(day.Format("January 2, 2006")),
		Source:   string(s.Source),
		Stale:    s.Source == prayer.SourceStaleFallback,
		Prayers:  rows,
	}, nil
}

// twelveHour converts "17:30" into ("05:30", "PM").
func twelveHour(hhmm string) (string, string, error) {
	var h, m int
	if _, err := fmt.Sscanf(hhmm, "%d:%d", &h, &m); err != nil {
		return "", "", fmt.Errorf("invalid time %q: %w", hhmm, err)
	}
	period := "AM"
	if h >= 12 {
		period = "PM"
	}
	h %= 12
	if h == 0 {
		h = 12
	}
	return fmt.Sprintf("%02d:%02d", h, m), period, nil
}
