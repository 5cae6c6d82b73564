package service

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/studyspot/studyspot/internal/model"
)

// MinPasswordLength is the shortest password accepted at signup.
const MinPasswordLength = 8

// DefaultMapHosts are the map providers whose share links are accepted.
var DefaultMapHosts = []string{"google.com", "goo.gl"}

// NewEmailPattern matches addresses at exactly domain, case-insensitively.
func NewEmailPattern(domain string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)^[A-Za-z0-9._%+-]+@` + regexp.QuoteMeta(domain) + `$`)
}

// ValidateMapLink checks that raw is an absolute http(s) URL on one of hosts
// (or a subdomain of one) whose path mentions "maps".
func ValidateMapLink(raw string, hosts []string) error {
	if raw == "" {
		return ErrInvalidMapLink
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return ErrInvalidMapLink
	}

	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return ErrInvalidMapLink
	}

	host := strings.ToLower(parsed.Hostname())
	if host == "" || !hostAllowed(host, hosts) {
		return ErrInvalidMapLink
	}

	if !strings.Contains(parsed.Path, "maps") {
		return ErrInvalidMapLink
	}

	return nil
}

func hostAllowed(host string, allowed []string) bool {
	for _, a := range allowed {
		a = strings.ToLower(strings.TrimSpace(a))
		if a == "" {
			continue
		}
		if host == a || strings.HasSuffix(host, "."+a) {
			return true
		}
	}
	return false
}

// ValidateHoursRange accepts an empty value or a strict "HH:MM-HH:MM" range.
func ValidateHoursRange(hours string) error {
	if hours == "" || model.IsValidHoursRange(hours) {
		return nil
	}
	return ErrInvalidHours
}
