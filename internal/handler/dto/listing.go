// Package dto provides the form and view shapes exchanged with HTML pages.
package dto

import (
	"net/url"
	"strings"

	"github.com/studyspot/studyspot/internal/model"
	"github.com/studyspot/studyspot/internal/service"
)

// Listing form field names, shared by templates and request parsing.
const (
	FieldNetID      = "netid"
	FieldLocation   = "location"
	FieldGoogleMaps = "googlemaps"
	FieldNoiseLevel = "noise_level"
	FieldSeating    = "seating"
	FieldWiFi       = "wifi"
	FieldOutlets    = "outlets"
	FieldReservable = "reservable"
	FieldClimate    = "climate"
	FieldHoursStart = "hours_start"
	FieldHoursEnd   = "hours_end"
)

// ListingForm holds the string values shown in the create and edit forms.
type ListingForm struct {
	ID         string
	NetID      string
	Location   string
	GoogleMaps string
	NoiseLevel string
	Seating    string
	WiFi       string
	Outlets    string
	Reservable string
	Climate    string
	HoursStart string
	HoursEnd   string
}

// FromListing fills a form from a stored listing.
// Hours that do not parse leave both clock dropdowns empty.
func FromListing(l *model.Listing) ListingForm {
	start, end := l.HoursBounds()
	return ListingForm{
		ID:         l.ID,
		NetID:      l.NetID,
		Location:   l.Location,
		GoogleMaps: l.GoogleMaps,
		NoiseLevel: string(l.NoiseLevel),
		Seating:    string(l.Seating),
		WiFi:       string(l.WiFi),
		Outlets:    string(l.Outlets),
		Reservable: model.FormatFlag(l.Reservable),
		Climate:    l.Climate,
		HoursStart: start,
		HoursEnd:   end,
	}
}

// FromValues reads a submitted form. Absent fields are empty.
func FromValues(values url.Values) ListingForm {
	var f ListingForm
	for name, dst := range f.fields() {
		*dst = strings.TrimSpace(values.Get(name))
	}
	return f
}

// Overlay returns f with every field present in values replaced by the
// submitted value. Fields missing from values keep f's value.
func (f ListingForm) Overlay(values url.Values) ListingForm {
	for name, dst := range f.fields() {
		if _, ok := values[name]; ok {
			*dst = strings.TrimSpace(values.Get(name))
		}
	}
	return f
}

// Service converts the form to the listing service's input.
func (f ListingForm) Service() service.ListingForm {
	return service.ListingForm{
		NetID:      f.NetID,
		Location:   f.Location,
		GoogleMaps: f.GoogleMaps,
		NoiseLevel: f.NoiseLevel,
		Seating:    f.Seating,
		WiFi:       f.WiFi,
		Outlets:    f.Outlets,
		Reservable: f.Reservable,
		Climate:    f.Climate,
		HoursStart: f.HoursStart,
		HoursEnd:   f.HoursEnd,
	}
}

func (f *ListingForm) fields() map[string]*string {
	return map[string]*string{
		FieldNetID:      &f.NetID,
		FieldLocation:   &f.Location,
		FieldGoogleMaps: &f.GoogleMaps,
		FieldNoiseLevel: &f.NoiseLevel,
		FieldSeating:    &f.Seating,
		FieldWiFi:       &f.WiFi,
		FieldOutlets:    &f.Outlets,
		FieldReservable: &f.Reservable,
		FieldClimate:    &f.Climate,
		FieldHoursStart: &f.HoursStart,
		FieldHoursEnd:   &f.HoursEnd,
	}
}

// ListingFilters echoes the home page's search parameters back into its form.
type ListingFilters struct {
	Q          string
	NoiseLevel string
	WiFi       string
	Outlets    string
	Reservable string
	HoursStart string
	HoursEnd   string
}

// FiltersFromQuery reads the home page's search parameters.
func FiltersFromQuery(values url.Values) ListingFilters {
	get := func(name string) string { return strings.TrimSpace(values.Get(name)) }
	return ListingFilters{
		Q:          get("q"),
		NoiseLevel: get(FieldNoiseLevel),
		WiFi:       get(FieldWiFi),
		Outlets:    get(FieldOutlets),
		Reservable: get(FieldReservable),
		HoursStart: get(FieldHoursStart),
		HoursEnd:   get(FieldHoursEnd),
	}
}

// Query converts the filters to the listing service's query.
func (f ListingFilters) Query() service.ListingQuery {
	return service.ListingQuery{
		Q:          f.Q,
		NoiseLevel: f.NoiseLevel,
		WiFi:       f.WiFi,
		Outlets:    f.Outlets,
		Reservable: f.Reservable,
		HoursStart: f.HoursStart,
		HoursEnd:   f.HoursEnd,
	}
}

// Active reports whether any filter was given.
func (f ListingFilters) Active() bool {
	return f != ListingFilters{}
}
