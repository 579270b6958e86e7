package normalize

import "time"

// Point is the normalized trackpoint schema every format adapter emits.
// Optional fields stay nil when the source file lacks them; downstream
// metric derivation treats nil as "not recorded", never as zero.
type Point struct {
	Lat       float64    `json:"lat"`
	Lon       float64    `json:"lon"`
	Elevation float64    `json:"elevation_m"`
	Time      *time.Time `json:"time,omitempty"`
	HeartRate *int       `json:"heart_rate,omitempty"`
	Cadence   *int       `json:"cadence,omitempty"`
	SpeedKmh  *float64   `json:"speed_kmh,omitempty"`
}
