package model

import (
	"errors"
	"testing"
)

func TestExtractCoordinates(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		link   string
		want   LatLng
		wantOK bool
	}{
		{
			name:   "place link",
			link:   "https://www.google.com/maps/place/Bobst/@40.7295,-73.9972,17z",
			want:   LatLng{Lat: 40.7295, Lng: -73.9972},
			wantOK: true,
		},
		{
			name:   "integer coordinates",
			link:   "https://google.com/maps/@40,-73,10z",
			want:   LatLng{Lat: 40, Lng: -73},
			wantOK: true,
		},
		{
			name:   "out of range is not checked",
			link:   "https://google.com/maps/@123.5,200.25",
			want:   LatLng{Lat: 123.5, Lng: 200.25},
			wantOK: true,
		},
		{
			name:   "short link",
			link:   "https://goo.gl/maps/abc123",
			wantOK: false,
		},
		{
			name:   "empty",
			link:   "",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := ExtractCoordinates(tt.link)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestListing_Coordinates(t *testing.T) {
	t.Parallel()

	l := &Listing{GoogleMaps: "https://www.google.com/maps/@40.7,-73.9,18z"}
	got, ok := l.Coordinates()
	if !ok {
		t.Fatal("expected coordinates")
	}
	if got.Lat != 40.7 || got.Lng != -73.9 {
		t.Errorf("got %+v", got)
	}
}

func TestParseAmenities(t *testing.T) {
	t.Parallel()

	if v, err := ParseNoiseLevel("Quiet"); err != nil || v != NoiseQuiet {
		t.Errorf("ParseNoiseLevel(Quiet) = (%q, %v)", v, err)
	}
	if v, err := ParseNoiseLevel(""); err != nil || v != NoiseUnspecified {
		t.Errorf("ParseNoiseLevel(\"\") = (%q, %v)", v, err)
	}
	if _, err := ParseNoiseLevel("deafening"); !errors.Is(err, ErrUnknownValue) {
		t.Errorf("ParseNoiseLevel(deafening) err = %v, want ErrUnknownValue", err)
	}
	if v, err := ParseSeating("group"); err != nil || v != SeatingGroup {
		t.Errorf("ParseSeating(group) = (%q, %v)", v, err)
	}
	if _, err := ParseWiFi("maybe"); !errors.Is(err, ErrUnknownValue) {
		t.Errorf("ParseWiFi(maybe) err = %v, want ErrUnknownValue", err)
	}
	if v, err := ParseOutlets(" limited "); err != nil || v != OutletsLimited {
		t.Errorf("ParseOutlets(limited) = (%q, %v)", v, err)
	}
}

func TestAmenityFromStore(t *testing.T) {
	t.Parallel()

	if got := NoiseLevelFromStore("very loud"); got != NoiseUnspecified {
		t.Errorf("NoiseLevelFromStore(unknown) = %q, want unspecified", got)
	}
	if got := SeatingFromStore("mixed"); got != SeatingMixed {
		t.Errorf("SeatingFromStore(mixed) = %q", got)
	}
	if got := WiFiFromStore("YES"); got != WiFiYes {
		t.Errorf("WiFiFromStore(YES) = %q", got)
	}
	if got := OutletsFromStore(""); got != OutletsUnspecified {
		t.Errorf("OutletsFromStore(\"\") = %q", got)
	}
}

func TestParseFlag(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    bool
		wantErr bool
	}{
		{"yes", true, false},
		{"on", true, false},
		{"1", true, false},
		{"no", false, false},
		{"", false, false},
		{"FALSE", false, false},
		{"sometimes", false, true},
	}

	for _, tt := range tests {
		got, err := ParseFlag(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFlag(%q) err = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseFlag(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestAllAmenities_ReturnsCopies(t *testing.T) {
	t.Parallel()

	levels := AllNoiseLevels()
	levels[0] = "changed"
	if AllNoiseLevels()[0] != NoiseQuiet {
		t.Error("AllNoiseLevels should return a copy")
	}
	if len(AllSeatingTypes()) != 3 || len(AllWiFiOptions()) != 2 || len(AllOutletLevels()) != 3 {
		t.Error("unexpected variant counts")
	}
}
