package model

import "time"

// Display is a TV screen installed in a masjid.
type Display struct {
	ID                 string     `db:"id"                   json:"id"`
	MasjidID           string     `db:"masjid_id"            json:"masjid_id"`
	Name               string     `db:"display_name"         json:"display_name"`
	DeviceID           *string    `db:"device_id"            json:"device_id"`
	Location           *string    `db:"location_description" json:"location_description"`
	Paired             bool       `db:"paired"               json:"paired"`
	IsActive           bool       `db:"is_active"            json:"is_active"`
	PrayerTimePosition string     `db:"prayer_time_position" json:"prayer_time_position"`
	LastSeenAt         *time.Time `db:"last_seen_at"         json:"last_seen_at"`
	CreatedAt          time.Time  `db:"created_at"           json:"created_at"`
	UpdatedAt          time.Time  `db:"updated_at"           json:"updated_at"`
}
