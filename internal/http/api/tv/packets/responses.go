package packets

import (
	"github.com/Nixie-Tech-LLC/solat/internal/display"
	"github.com/Nixie-Tech-LLC/solat/internal/prayer"
)

// RESPONSES FOR /api/tv/displays/:id/prayer-times*

type Links struct {
	Self string `json:"self"`
}

type PrayerTimesResponse struct {
	Data   prayer.Schedule   `json:"data"`
	Meta   display.Meta      `json:"meta"`
	Status *prayer.DayStatus `json:"status,omitempty"`
	Links  Links             `json:"links"`
	Error  *string           `json:"error"`
}

type PrayerTimesRangeResponse struct {
	Data  []prayer.Schedule `json:"data"`
	Meta  display.Meta      `json:"meta"`
	Links Links             `json:"links"`
	Error *string           `json:"error"`
}
