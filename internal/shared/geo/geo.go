package geo

import "math"

const earthRadiusM = 6371000.0

// HaversineM returns the great-circle distance in meters between two
// lat/lon pairs. Non-finite coordinates yield 0 so a bad GPS fix never
// poisons an accumulated total.
func HaversineM(lat1, lon1, lat2, lon2 float64) float64 {
	if !finite(lat1) || !finite(lon1) || !finite(lat2) || !finite(lon2) {
		return 0
	}

	phi1 := lat1 * math.Pi / 180
	phi2 := lat2 * math.Pi / 180
	dPhi := (lat2 - lat1) * math.Pi / 180
	dLambda := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusM * c
}

func HaversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	return HaversineM(lat1, lon1, lat2, lon2) / 1000
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
