package model

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrUnknownValue is returned when a raw value is outside an amenity's variant set.
var ErrUnknownValue = errors.New("unknown value")

// NoiseLevel describes how loud a study spot usually is.
type NoiseLevel string

const (
	NoiseUnspecified NoiseLevel = ""
	NoiseQuiet       NoiseLevel = "quiet"
	NoiseModerate    NoiseLevel = "moderate"
	NoiseLoud        NoiseLevel = "loud"
)

// Seating describes the kind of seating available.
type Seating string

const (
	SeatingUnspecified Seating = ""
	SeatingIndividual  Seating = "individual"
	SeatingGroup       Seating = "group"
	SeatingMixed       Seating = "mixed"
)

// WiFi describes whether wireless internet is available.
type WiFi string

const (
	WiFiUnspecified WiFi = ""
	WiFiYes         WiFi = "yes"
	WiFiNo          WiFi = "no"
)

// Outlets describes how many power outlets are available.
type Outlets string

const (
	OutletsUnspecified Outlets = ""
	OutletsPlenty      Outlets = "plenty"
	OutletsLimited     Outlets = "limited"
	OutletsNone        Outlets = "none"
)

var (
	noiseLevels  = []NoiseLevel{NoiseQuiet, NoiseModerate, NoiseLoud}
	seatingTypes = []Seating{SeatingIndividual, SeatingGroup, SeatingMixed}
	wifiOptions  = []WiFi{WiFiYes, WiFiNo}
	outletLevels = []Outlets{OutletsPlenty, OutletsLimited, OutletsNone}
)

// AllNoiseLevels returns every specified noise level in display order.
func AllNoiseLevels() []NoiseLevel { return slices.Clone(noiseLevels) }

// AllSeatingTypes returns every specified seating type in display order.
func AllSeatingTypes() []Seating { return slices.Clone(seatingTypes) }

// AllWiFiOptions returns every specified wifi option in display order.
func AllWiFiOptions() []WiFi { return slices.Clone(wifiOptions) }

// AllOutletLevels returns every specified outlet level in display order.
func AllOutletLevels() []Outlets { return slices.Clone(outletLevels) }

// ParseNoiseLevel parses form input. Empty input is NoiseUnspecified.
func ParseNoiseLevel(raw string) (NoiseLevel, error) { return parseAmenity(raw, noiseLevels) }

// ParseSeating parses form input. Empty input is SeatingUnspecified.
func ParseSeating(raw string) (Seating, error) { return parseAmenity(raw, seatingTypes) }

// ParseWiFi parses form input. Empty input is WiFiUnspecified.
func ParseWiFi(raw string) (WiFi, error) { return parseAmenity(raw, wifiOptions) }

// ParseOutlets parses form input. Empty input is OutletsUnspecified.
func ParseOutlets(raw string) (Outlets, error) { return parseAmenity(raw, outletLevels) }

// NoiseLevelFromStore converts a persisted value, mapping unknown values to unspecified.
func NoiseLevelFromStore(raw string) NoiseLevel { return amenityFromStore(raw, noiseLevels) }

// SeatingFromStore converts a persisted value, mapping unknown values to unspecified.
func SeatingFromStore(raw string) Seating { return amenityFromStore(raw, seatingTypes) }

// WiFiFromStore converts a persisted value, mapping unknown values to unspecified.
func WiFiFromStore(raw string) WiFi { return amenityFromStore(raw, wifiOptions) }

// OutletsFromStore converts a persisted value, mapping unknown values to unspecified.
func OutletsFromStore(raw string) Outlets { return amenityFromStore(raw, outletLevels) }

// ParseFlag parses a yes/no style form value. Empty input is false.
func ParseFlag(raw string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "no", "false", "off", "0":
		return false, nil
	case "yes", "true", "on", "1":
		return true, nil
	default:
		return false, fmt.Errorf("%w: %q", ErrUnknownValue, raw)
	}
}

// FormatFlag renders a flag the way forms submit it.
func FormatFlag(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func parseAmenity[T ~string](raw string, variants []T) (T, error) {
	v := T(strings.ToLower(strings.TrimSpace(raw)))
	if v == "" || slices.Contains(variants, v) {
		return v, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownValue, raw)
}

func amenityFromStore[T ~string](raw string, variants []T) T {
	v, err := parseAmenity(raw, variants)
	if err != nil {
		return ""
	}
	return v
}
