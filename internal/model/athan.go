package model

// Prayer is one row on the athan board.
type Prayer struct {
	Name    string // "FAJR", "DHUHR", ...
	Time    string // "05:12"
	Period  string // "AM" or "PM"
	Current bool
}

type AthanPageData struct {
	Location string
	Zone     string
	Date     string // "DECEMBER 25, 2024"
	Source   string
	Stale    bool
	Prayers  []Prayer
}
