package packets

import "github.com/Nixie-Tech-LLC/solat/internal/prayer"

type ManualPrayerTimesResponse struct {
	MasjidID   string  `json:"masjid_id"`
	PrayerDate string  `json:"prayer_date"`
	Fajr       string  `json:"fajr_time"`
	Sunrise    string  `json:"sunrise_time"`
	Dhuhr      string  `json:"dhuhr_time"`
	Asr        string  `json:"asr_time"`
	Maghrib    string  `json:"maghrib_time"`
	Isha       string  `json:"isha_time"`
	Source     string  `json:"source"`
	UpdatedBy  *string `json:"updated_by"`
	UpdatedAt  string  `json:"updated_at"`
}

type AdjustmentsResponse struct {
	MasjidID    string             `json:"masjid_id"`
	Adjustments prayer.Adjustments `json:"adjustments"`
}
