package core

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"veritime.com/veritime/attendance/policy"
)

func TestHaversineDistance(t *testing.T) {
	// Brisbane CBD to Sydney CBD is roughly 733 km.
	brisLat, brisLon := -27.4698, 153.0251
	sydLat, sydLon := -33.8688, 151.2093

	d := HaversineDistance(brisLat, brisLon, sydLat, sydLon)
	assert.InDelta(t, 733000, d, 10000)

	t.Run("Symmetric", func(t *testing.T) {
		forward := HaversineDistance(brisLat, brisLon, sydLat, sydLon)
		backward := HaversineDistance(sydLat, sydLon, brisLat, brisLon)
		assert.Equal(t, forward, backward)
	})

	t.Run("Identity", func(t *testing.T) {
		assert.Equal(t, 0.0, HaversineDistance(brisLat, brisLon, brisLat, brisLon))
	})

	t.Run("Small offset", func(t *testing.T) {
		// ~111m per 0.001 degree of latitude
		d := HaversineDistance(0, 0, 0.001, 0)
		assert.InDelta(t, 111, d, 1)
	})
}

func TestCheckLocation(t *testing.T) {
	// The sites sit ~375m apart, so the 300m radii overlap between them.
	sites := []policy.OfficeSite{
		{Name: "Main Office", Latitude: -27.4698, Longitude: 153.0251, Radius: 300},
		{Name: "Warehouse", Latitude: -27.4720, Longitude: 153.0280, Radius: 300},
	}

	t.Run("Inside main office", func(t *testing.T) {
		// ~40m north of Main Office
		loc := Geolocation{Latitude: -27.46944, Longitude: 153.0251, Accuracy: 15}
		site, err := CheckLocation(loc, sites)
		assert.NoError(t, err)
		assert.Equal(t, "Main Office", site.Name)
	})

	t.Run("Nearest wins when radii overlap", func(t *testing.T) {
		// ~150m from Warehouse, ~225m from Main Office: inside both fences,
		// matched to the nearer site.
		loc := Geolocation{Latitude: -27.47112, Longitude: 153.02684, Accuracy: 10}
		d1 := HaversineDistance(loc.Latitude, loc.Longitude, sites[0].Latitude, sites[0].Longitude)
		d2 := HaversineDistance(loc.Latitude, loc.Longitude, sites[1].Latitude, sites[1].Longitude)
		assert.Less(t, d1, sites[0].Radius)
		assert.Less(t, d2, sites[1].Radius)

		site, err := CheckLocation(loc, sites)
		assert.NoError(t, err)
		assert.Equal(t, "Warehouse", site.Name)
	})

	t.Run("Outside all sites", func(t *testing.T) {
		loc := Geolocation{Latitude: -27.5200, Longitude: 153.0251, Accuracy: 10}
		_, err := CheckLocation(loc, sites)
		assert.Error(t, err)

		locErr, ok := err.(*LocationError)
		assert.True(t, ok)
		assert.Len(t, locErr.Distances, 2)
		assert.Equal(t, "Main Office", locErr.Distances[0].Site)
		assert.Greater(t, locErr.Distances[0].Distance, 1000.0)
		assert.Contains(t, locErr.Error(), "Main Office")
		assert.Contains(t, locErr.Error(), "Warehouse")
	})
}
