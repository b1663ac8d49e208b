package endpoints

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nixie-Tech-LLC/solat/internal/display"
	"github.com/Nixie-Tech-LLC/solat/internal/http/api"
	"github.com/Nixie-Tech-LLC/solat/internal/http/templates"
	"github.com/Nixie-Tech-LLC/solat/internal/jakim"
	"github.com/Nixie-Tech-LLC/solat/internal/prayer"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

var (
	kl       = jakim.Location()
	noonKL   = time.Date(2024, 12, 25, 13, 30, 0, 0, kl)
	todayKL  = time.Date(2024, 12, 25, 0, 0, 0, 0, kl)
	sampleDS = prayer.Schedule{
		ID:        "m-1_2024-12-25_WLY01",
		MasjidID:  "m-1",
		Date:      "2024-12-25",
		Zone:      "WLY01",
		Fajr:      "05:58",
		Sunrise:   "07:08",
		Dhuhr:     "13:11",
		Asr:       "16:35",
		Maghrib:   "19:11",
		Isha:      "20:26",
		Source:    prayer.SourceFresh,
		FetchedAt: time.Date(2024, 12, 25, 1, 0, 0, 0, time.UTC),
	}
)

type fakeDisplays struct {
	view      *display.View
	rangeView *display.RangeView
	err       error

	gotDate  time.Time
	gotStart time.Time
	gotEnd   time.Time
}

func (f *fakeDisplays) Today() time.Time { return todayKL }

func (f *fakeDisplays) PrayerTimes(_ context.Context, _ string, date time.Time) (*display.View, error) {
	f.gotDate = date
	return f.view, f.err
}

func (f *fakeDisplays) PrayerTimesRange(_ context.Context, _ string, start, end time.Time) (*display.RangeView, error) {
	f.gotStart, f.gotEnd = start, end
	return f.rangeView, f.err
}

func viewFor(s prayer.Schedule) *display.View {
	return &display.View{
		Schedule: s,
		Meta:     display.Meta{DisplayID: "d-1", MasjidID: "m-1", ZoneCode: "WLY01", LocationName: "Kuala Lumpur, Wilayah Persekutuan"},
	}
}

func newRouter(t *testing.T, displays Displays) *gin.Engine {
	t.Helper()
	r := gin.New()
	r.SetHTMLTemplate(templates.Load())
	clock := fixedClock{now: noonKL}
	api.MountGroup(r, api.GroupConfig{Prefix: "/api/tv"}, PrayerTimesModule(displays, clock), IntegrationsModule(displays, clock))
	return r
}

func get(r *gin.Engine, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func TestGetPrayerTimesToday(t *testing.T) {
	f := &fakeDisplays{view: viewFor(sampleDS)}
	w := get(newRouter(t, f), "/api/tv/displays/d-1/prayer-times")

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.True(t, f.gotDate.Equal(todayKL))
	assert.Equal(t, "fresh", w.Header().Get("X-Prayer-Source"))
	assert.Equal(t, "2024-12-25T01:00:00Z", w.Header().Get("X-Last-Fetched"))
	assert.Equal(t, "WLY01", w.Header().Get("X-Zone-Code"))
	assert.Equal(t, "private, max-age=1800", w.Header().Get("Cache-Control"))

	var body struct {
		Data   prayer.Schedule  `json:"data"`
		Meta   display.Meta     `json:"meta"`
		Status prayer.DayStatus `json:"status"`
		Links  struct {
			Self string `json:"self"`
		} `json:"links"`
		Error *string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "05:58", body.Data.Fajr)
	assert.Equal(t, "d-1", body.Meta.DisplayID)
	assert.Nil(t, body.Error)
	assert.Equal(t, "/api/tv/displays/d-1/prayer-times", body.Links.Self)
	require.NotNil(t, body.Status.Current)
	require.NotNil(t, body.Status.Next)
	assert.Equal(t, prayer.Dhuhr, body.Status.Current.Name)
	assert.Equal(t, prayer.Asr, body.Status.Next.Name)
}

func TestGetPrayerTimesExplicitDate(t *testing.T) {
	s := sampleDS
	s.Date = "2024-12-31"
	f := &fakeDisplays{view: viewFor(s)}
	w := get(newRouter(t, f), "/api/tv/displays/d-1/prayer-times?date=2024-12-31")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "2024-12-31", f.gotDate.Format(jakim.DateLayout))
	assert.NotContains(t, w.Body.String(), `"status"`)
}

func TestGetPrayerTimesStaleFallback(t *testing.T) {
	f := &fakeDisplays{view: viewFor(sampleDS.WithSource(prayer.SourceStaleFallback))}
	w := get(newRouter(t, f), "/api/tv/displays/d-1/prayer-times")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "stale_fallback", w.Header().Get("X-Prayer-Source"))
	assert.Equal(t, "private, max-age=300", w.Header().Get("Cache-Control"))
}

func TestGetPrayerTimesErrors(t *testing.T) {
	unavailable := &prayer.ServiceUnavailableError{Zone: "WLY01", Date: "2024-12-25", Err: errors.New("upstream down")}
	cases := []struct {
		name   string
		target string
		err    error
		status int
	}{
		{"bad date", "/api/tv/displays/d-1/prayer-times?date=25-12-2024", nil, http.StatusBadRequest},
		{"unknown display", "/api/tv/displays/nope/prayer-times", display.ErrDisplayNotFound, http.StatusNotFound},
		{"unavailable", "/api/tv/displays/d-1/prayer-times", unavailable, http.StatusServiceUnavailable},
		{"internal", "/api/tv/displays/d-1/prayer-times", errors.New("db down"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := get(newRouter(t, &fakeDisplays{err: tc.err}), tc.target)
			assert.Equal(t, tc.status, w.Code)
			assert.Contains(t, w.Body.String(), `"error"`)
			if tc.status == http.StatusServiceUnavailable {
				assert.Equal(t, "300", w.Header().Get("Retry-After"))
			}
		})
	}
}

func TestGetPrayerTimesRange(t *testing.T) {
	second := sampleDS
	second.Date = "2024-12-26"
	second.Source = prayer.SourceStaleFallback
	f := &fakeDisplays{rangeView: &display.RangeView{
		Schedules: []prayer.Schedule{sampleDS, second},
		Meta:      display.Meta{DisplayID: "d-1", ZoneCode: "WLY01"},
	}}
	w := get(newRouter(t, f), "/api/tv/displays/d-1/prayer-times/range?start=2024-12-25&end=2024-12-26")

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "2024-12-25", f.gotStart.Format(jakim.DateLayout))
	assert.Equal(t, "2024-12-26", f.gotEnd.Format(jakim.DateLayout))
	assert.Equal(t, "private, max-age=300", w.Header().Get("Cache-Control"))

	var body struct {
		Data []prayer.Schedule `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Data, 2)
	assert.Equal(t, "2024-12-26", body.Data[1].Date)
}

func TestGetPrayerTimesRangeValidation(t *testing.T) {
	cases := map[string]string{
		"missing start": "/api/tv/displays/d-1/prayer-times/range?end=2024-12-26",
		"bad end":       "/api/tv/displays/d-1/prayer-times/range?start=2024-12-25&end=tomorrow",
		"reversed":      "/api/tv/displays/d-1/prayer-times/range?start=2024-12-26&end=2024-12-25",
		"too long":      "/api/tv/displays/d-1/prayer-times/range?start=2024-01-01&end=2024-03-31",
	}
	for name, target := range cases {
		t.Run(name, func(t *testing.T) {
			f := &fakeDisplays{}
			w := get(newRouter(t, f), target)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.True(t, f.gotStart.IsZero(), "service must not be called")
		})
	}
}

func TestAthanIntegration(t *testing.T) {
	f := &fakeDisplays{view: viewFor(sampleDS.WithSource(prayer.SourceStaleFallback))}
	w := get(newRouter(t, f), "/api/tv/integrations/athan?display_id=d-1")

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := w.Body.String()
	assert.Contains(t, body, "Kuala Lumpur, Wilayah Persekutuan")
	assert.Contains(t, body, "DECEMBER 25, 2024")
	assert.Contains(t, body, "05:58 AM")
	assert.Contains(t, body, "07:11 PM")
	assert.Contains(t, body, `class="stale"`)
	assert.Contains(t, body, `<tr class="current">`)
}

func TestAthanIntegrationErrors(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, get(newRouter(t, &fakeDisplays{}), "/api/tv/integrations/weather").Code)
	assert.Equal(t, http.StatusBadRequest, get(newRouter(t, &fakeDisplays{}), "/api/tv/integrations/athan").Code)

	f := &fakeDisplays{err: display.ErrDisplayNotFound}
	assert.Equal(t, http.StatusNotFound, get(newRouter(t, f), "/api/tv/integrations/athan?display_id=x").Code)
}

func TestTwelveHour(t *testing.T) {
	cases := map[string][2]string{
		"00:15": {"12:15", "AM"},
		"05:58": {"05:58", "AM"},
		"12:00": {"12:00", "PM"},
		"19:11": {"07:11", "PM"},
	}
	for in, want := range cases {
		got, period, err := twelveHour(in)
		require.NoError(t, err)
		assert.Equal(t, want[0], got, in)
		assert.Equal(t, want[1], period, in)
	}
	_, _, err := twelveHour("noon")
	assert.Error(t, err)
}
