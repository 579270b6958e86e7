package normalize

import (
	"fmt"
	"io"
	"math"

	"github.com/tormoder/fit"
)

// FromFIT decodes a Garmin FIT activity into normalized points. Record
// messages without a position fix are dropped; the FIT invalid sentinels
// (0xFF heart rate, NaN coordinates) map to absent fields.
func FromFIT(r io.Reader) ([]Point, error) {
	decoded, err := fit.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode fit: %w", err)
	}
	activity, err := decoded.Activity()
	if err != nil {
		return nil, fmt.Errorf("fit activity expected: %w", err)
	}

	var points []Point
	for _, rec := range activity.Records {
		if rec == nil {
			continue
		}
		lat := rec.PositionLat.Degrees()
		lon := rec.PositionLong.Degrees()
		if math.IsNaN(lat) || math.IsNaN(lon) {
			continue
		}

		p := Point{Lat: lat, Lon: lon}

		if alt := rec.GetEnhancedAltitudeScaled(); !math.IsNaN(alt) {
			p.Elevation = alt
		} else if alt := rec.GetAltitudeScaled(); !math.IsNaN(alt) {
			p.Elevation = alt
		}

		if ts := rec.Timestamp; !ts.IsZero() && !fit.IsBaseTime(ts) {
			t := ts
			p.Time = &t
		}
		if rec.HeartRate != math.MaxUint8 {
			hr := int(rec.HeartRate)
			p.HeartRate = &hr
		}
		if rec.Cadence != math.MaxUint8 {
			cad := int(rec.Cadence)
			p.Cadence = &cad
		}
		if speed := rec.GetSpeedScaled(); !math.IsNaN(speed) && speed >= 0 {
			kmh := speed * 3.6
			p.SpeedKmh = &kmh
		}

		points = append(points, p)
	}
	return points, nil
}
