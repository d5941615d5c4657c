package phone

import (
	"strings"

	"github.com/ttacon/libphonenumber"
)

// Normalize returns the E.164 form of raw when it parses as a valid number for
// defaultRegion, otherwise the trimmed input unchanged.
func Normalize(raw, defaultRegion string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	num, err := libphonenumber.Parse(raw, defaultRegion)
	if err != nil || !libphonenumber.IsValidNumber(num) {
		return raw
	}
	return libphonenumber.Format(num, libphonenumber.E164)
}

// Digits strips everything but digits, for substring search over stored phones.
func Digits(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
