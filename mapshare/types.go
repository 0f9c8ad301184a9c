package mapshare

// Position is one placemark from the route feed. Values are kept in their
// source string form; downstream formatting owns all unit conversion.
type Position struct {
	ID          string
	IMEI        string
	TimeUTC     string // source format, UTC
	Time        string // local-format companion of TimeUTC
	Latitude    string
	Longitude   string
	Elevation   string
	Velocity    string // "<number> km/h"
	Course      string // degrees, possibly fractional
	ValidGPSFix string // lowercased
	Visibility  string // lowercased, optional in the feed
}
