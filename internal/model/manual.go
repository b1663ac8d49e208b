package model

import "time"

// ManualPrayerTimes is an admin-entered schedule that replaces the JAKIM
// times for one masjid and date.
type ManualPrayerTimes struct {
	MasjidID   string    `db:"masjid_id"    json:"masjid_id"`
	PrayerDate string    `db:"prayer_date"  json:"prayer_date"`
	Fajr       string    `db:"fajr_time"    json:"fajr_time"`
	Sunrise    string    `db:"sunrise_time" json:"sunrise_time"`
	Dhuhr      string    `db:"dhuhr_time"   json:"dhuhr_time"`
	Asr        string    `db:"asr_time"     json:"asr_time"`
	Maghrib    string    `db:"maghrib_time" json:"maghrib_time"`
	Isha       string    `db:"isha_time"    json:"isha_time"`
	UpdatedBy  *string   `db:"updated_by"   json:"updated_by"`
	CreatedAt  time.Time `db:"created_at"   json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"   json:"updated_at"`
}
