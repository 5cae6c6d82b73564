package model

import (
	"regexp"
	"strconv"
	"time"
)

// Listing is a study spot posted to the board.
type Listing struct {
	ID         string     `json:"id"`
	NetID      string     `json:"netid"`
	Location   string     `json:"location"`
	GoogleMaps string     `json:"googlemaps"`
	NoiseLevel NoiseLevel `json:"noise_level"`
	Seating    Seating    `json:"seating"`
	WiFi       WiFi       `json:"wifi"`
	Outlets    Outlets    `json:"outlets"`
	Reservable bool       `json:"reservable"`
	Climate    string     `json:"climate"`
	Hours      string     `json:"hours"`
	CreatedAt  time.Time  `json:"created_at"`
}

// HoursBounds returns the opening and closing clock times for the edit form.
// Both are empty when the stored hours are absent or malformed.
func (l *Listing) HoursBounds() (start, end string) {
	return SplitHours(l.Hours)
}

// Coordinates extracts the map position embedded in the listing's map link.
func (l *Listing) Coordinates() (LatLng, bool) {
	return ExtractCoordinates(l.GoogleMaps)
}

// LatLng is a geographic coordinate pair.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Share links carry the map centre as "@<lat>,<lng>" somewhere in the URL.
var centerPattern = regexp.MustCompile(`@(-?\d+\.?\d*),(-?\d+\.?\d*)`)

// ExtractCoordinates finds the "@lat,lng" centre of a map share link.
// Ranges are not checked. Links without the marker (shortened links, for
// example) yield false.
func ExtractCoordinates(link string) (LatLng, bool) {
	m := centerPattern.FindStringSubmatch(link)
	if m == nil {
		return LatLng{}, false
	}

	lat, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return LatLng{}, false
	}
	lng, err := strconv.ParseFloat(m[2], 64)
	if err != nil {
		return LatLng{}, false
	}

	return LatLng{Lat: lat, Lng: lng}, true
}
