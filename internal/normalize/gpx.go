package normalize

import (
	"encoding/xml"
	"fmt"
	"io"
	"time"
)

type gpxPoint struct {
	Lat        float64  `xml:"lat,attr"`
	Lon        float64  `xml:"lon,attr"`
	Elevation  *float64 `xml:"ele"`
	Time       string   `xml:"time"`
	Extensions struct {
		TPX struct {
			HR      *int `xml:"hr"`
			Cadence *int `xml:"cad"`
		} `xml:"TrackPointExtension"`
	} `xml:"extensions"`
}

type gpxFile struct {
	XMLName xml.Name `xml:"gpx"`
	Tracks  []struct {
		Segments []struct {
			Points []gpxPoint `xml:"trkpt"`
		} `xml:"trkseg"`
	} `xml:"trk"`
}

// FromGPX decodes a GPX 1.1 document into normalized points. All tracks
// and segments are concatenated in document order. GPX commonly lacks
// heart rate; the gpxtpx TrackPointExtension is read when present.
func FromGPX(r io.Reader) ([]Point, error) {
	var doc gpxFile
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode gpx: %w", err)
	}

	var points []Point
	for _, trk := range doc.Tracks {
		for _, seg := range trk.Segments {
			for _, tp := range seg.Points {
				p := Point{Lat: tp.Lat, Lon: tp.Lon}
				if tp.Elevation != nil {
					p.Elevation = *tp.Elevation
				}
				if tp.Time != "" {
					if ts, err := time.Parse(time.RFC3339, tp.Time); err == nil {
						t := ts
						p.Time = &t
					}
				}
				if tp.Extensions.TPX.HR != nil {
					hr := *tp.Extensions.TPX.HR
					p.HeartRate = &hr
				}
				if tp.Extensions.TPX.Cadence != nil {
					cad := *tp.Extensions.TPX.Cadence
					p.Cadence = &cad
				}
				points = append(points, p)
			}
		}
	}
	return points, nil
}
