package core

import (
	"math"

	"veritime.com/veritime/attendance/policy"
)

const earthRadiusMetres = 6371000

// Geolocation is a device GPS reading. Accuracy is the reported error radius
// in metres.
type Geolocation struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Accuracy  float64 `json:"accuracy"`
}

// HaversineDistance returns the great-circle distance in metres between two
// lat/long points.
func HaversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	phi1 := lat1 * math.Pi / 180
	phi2 := lat2 * math.Pi / 180
	dPhi := (lat2 - lat1) * math.Pi / 180
	dLambda := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)

	return 2 * earthRadiusMetres * math.Asin(math.Sqrt(a))
}

// CheckLocation matches a reading against the configured sites. When several
// sites contain the point, the nearest one wins. On a miss it returns a
// LocationError listing the distance to every site.
func CheckLocation(loc Geolocation, sites []policy.OfficeSite) (*policy.OfficeSite, error) {
	var matched *policy.OfficeSite
	var matchedDistance float64

	distances := make([]SiteDistance, 0, len(sites))
	for i := range sites {
		site := sites[i]
		d := HaversineDistance(loc.Latitude, loc.Longitude, site.Latitude, site.Longitude)
		distances = append(distances, SiteDistance{Site: site.Name, Distance: d})

		if d <= site.Radius && (matched == nil || d < matchedDistance) {
			matched = &sites[i]
			matchedDistance = d
		}
	}

	if matched == nil {
		return nil, &LocationError{Distances: distances}
	}
	return matched, nil
}
