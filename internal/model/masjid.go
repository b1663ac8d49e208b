package model

import "time"

// Masjid is a tenant of the suite. State and City come from its address and
// feed zone resolution when no explicit JAKIM zone is set.
type Masjid struct {
	ID            string    `db:"id"              json:"id"`
	Name          string    `db:"name"            json:"name"`
	State         *string   `db:"state"           json:"state"`
	City          *string   `db:"city"            json:"city"`
	JakimZoneCode *string   `db:"jakim_zone_code" json:"jakim_zone_code"`
	CreatedAt     time.Time `db:"created_at"      json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"      json:"updated_at"`
}

// LocationName renders "City, State", dropping empty parts, or the masjid
// name when neither is known.
func (m Masjid) LocationName() string {
	var city, state string
	if m.City != nil {
		city = *m.City
	}
	if m.State != nil {
		state = *m.State
	}
	switch {
	case city != "" && state != "":
		return city + ", " + state
	case city != "":
		return city
	case state != "":
		return state
	}
	return m.Name
}
