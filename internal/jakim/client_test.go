package jakim

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// kl builds a Unix timestamp for a wall-clock time in Kuala Lumpur.
func kl(y int, m time.Month, d, hh, mm int) int64 {
	return time.Date(y, m, d, hh, mm, 0, 0, Location()).Unix()
}

func decemberBody() string {
	return fmt.Sprintf(`{
		"zone": "WLY01", "year": 2024, "month": "DEC", "month_number": 12, "last_updated": null,
		"prayers": [
			{"day": 24, "hijri": "1446-06-22", "fajr": %d, "syuruk": %d, "dhuhr": %d, "asr": %d, "maghrib": %d, "isha": %d},
			{"day": 25, "hijri": "1446-06-23", "fajr": %d, "syuruk": %d, "dhuhr": %d, "asr": %d, "maghrib": %d, "isha": %d}
		]
	}`,
		kl(2024, 12, 24, 5, 57), kl(2024, 12, 24, 7, 9), kl(2024, 12, 24, 13, 11), kl(2024, 12, 24, 16, 35), kl(2024, 12, 24, 19, 10), kl(2024, 12, 24, 20, 25),
		kl(2024, 12, 25, 5, 58), kl(2024, 12, 25, 7, 10), kl(2024, 12, 25, 13, 12), kl(2024, 12, 25, 16, 36), kl(2024, 12, 25, 19, 11), kl(2024, 12, 25, 20, 26),
	)
}

func TestFetchDay_Success(t *testing.T) {
	var gotPath, gotQuery, gotAccept string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		gotAccept = r.Header.Get("Accept")
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, decemberBody())
	}))
	defer srv.Close()

	c := NewClientWithTimeout(srv.URL, time.Second)
	day, err := c.FetchDay(context.Background(), "WLY01", time.Date(2024, 12, 25, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	assert.Equal(t, "/WLY01", gotPath)
	assert.Equal(t, "month=12&year=2024", gotQuery)
	assert.Equal(t, "application/json", gotAccept)

	assert.Equal(t, "05:58", Clock(day.Fajr))
	assert.Equal(t, "07:10", Clock(day.Sunrise))
	assert.Equal(t, "13:12", Clock(day.Dhuhr))
	assert.Equal(t, "16:36", Clock(day.Asr))
	assert.Equal(t, "19:11", Clock(day.Maghrib))
	assert.Equal(t, "20:26", Clock(day.Isha))
	assert.Equal(t, "1446-06-23", day.Hijri)
	assert.NoError(t, day.Validate())
}

func TestFetchDay_DayMissing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, decemberBody())
	}))
	defer srv.Close()

	c := NewClientWithTimeout(srv.URL, time.Second)
	_, err := c.FetchDay(context.Background(), "WLY01", time.Date(2024, 12, 26, 0, 0, 0, 0, time.UTC))

	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "2024-12-26", nf.Date)
}

func TestFetchMonth_TransportErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"server error", http.StatusInternalServerError, `oops`},
		{"not found status", http.StatusNotFound, `{"error":"zone"}`},
		{"missing prayers", http.StatusOK, `{"zone":"WLY01"}`},
		{"null prayers", http.StatusOK, `{"zone":"WLY01","prayers":null}`},
		{"prayers not an array", http.StatusOK, `{"zone":"WLY01","prayers":"soon"}`},
		{"not json", http.StatusOK, `<html></html>`},
		{"wrong month", http.StatusOK, `{"zone":"WLY01","year":2024,"month_number":11,"prayers":[]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				fmt.Fprint(w, tt.body)
			}))
			defer srv.Close()

			c := NewClientWithTimeout(srv.URL, time.Second)
			_, err := c.FetchMonth(context.Background(), "WLY01", 2024, time.December)

			var te *TransportError
			require.ErrorAs(t, err, &te)
			assert.Equal(t, "WLY01", string(te.Zone))
		})
	}
}

func TestFetchMonth_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := NewClientWithTimeout(url, time.Second)
	_, err := c.FetchMonth(context.Background(), "SGR01", 2024, time.December)

	var te *TransportError
	require.ErrorAs(t, err, &te)
	assert.Zero(t, te.StatusCode)
}

func TestFetchMonth_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	c := NewClientWithTimeout(srv.URL, 50*time.Millisecond)
	_, err := c.FetchMonth(context.Background(), "WLY01", 2024, time.December)

	var te *TransportError
	require.ErrorAs(t, err, &te)
}

func TestDayTimes_ValidateRejectsOutOfOrder(t *testing.T) {
	m := &Month{
		Zone: "WLY01", Year: 2024, Month: time.December,
		Entries: []DayEntry{{
			Day:     25,
			Fajr:    kl(2024, 12, 25, 5, 58),
			Syuruk:  kl(2024, 12, 25, 7, 10),
			Dhuhr:   kl(2024, 12, 25, 17, 0),
			Asr:     kl(2024, 12, 25, 16, 36),
			Maghrib: kl(2024, 12, 25, 19, 11),
			Isha:    kl(2024, 12, 25, 20, 26),
		}},
	}
	day, err := m.Day(time.Date(2024, 12, 25, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Error(t, day.Validate())
}

func TestMonthDay_OtherMonthIsNotFound(t *testing.T) {
	m := &Month{Zone: "WLY01", Year: 2024, Month: time.December, Entries: []DayEntry{{Day: 25}}}
	_, err := m.Day(time.Date(2025, 1, 25, 0, 0, 0, 0, time.UTC))

	var nf *NotFoundError
	assert.True(t, errors.As(err, &nf))
}

func TestToday(t *testing.T) {
	// 20:00 UTC on the 24th is already the 25th in Kuala Lumpur.
	now := time.Date(2024, 12, 24, 20, 0, 0, 0, time.UTC)
	assert.Equal(t, "2024-12-25", Today(now).Format(DateLayout))
}
