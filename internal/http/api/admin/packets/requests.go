package packets

// PutManualPrayerTimesRequest replaces the zone times for one date.
type PutManualPrayerTimesRequest struct {
	Fajr    string `json:"fajr_time"    binding:"required"`
	Sunrise string `json:"sunrise_time" binding:"required"`
	Dhuhr   string `json:"dhuhr_time"   binding:"required"`
	Asr     string `json:"asr_time"     binding:"required"`
	Maghrib string `json:"maghrib_time" binding:"required"`
	Isha    string `json:"isha_time"    binding:"required"`
}

// PutAdjustmentsRequest sets per-prayer minute offsets; omitted prayers get 0.
type PutAdjustmentsRequest struct {
	Fajr    int `json:"fajr"`
	Sunrise int `json:"sunrise"`
	Dhuhr   int `json:"dhuhr"`
	Asr     int `json:"asr"`
	Maghrib int `json:"maghrib"`
	Isha    int `json:"isha"`
}
