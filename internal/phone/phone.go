// Package phone canonicalizes loosely formatted phone numbers into the
// international "+<countrycode><national>" form expected by SMS gateways.
package phone

import "strings"

const DefaultCountryCode = "255"

// Fallback decides what to do with cleaned digits that carry neither a
// "+", a country code prefix, nor a leading trunk "0". It receives the
// bare digits and returns the canonical number.
type Fallback func(countryCode, digits string) string

// PrefixFallback unconditionally prepends the country code. This can
// produce an invalid number for garbage input; the gateway rejects those.
func PrefixFallback(countryCode, digits string) string {
	return "+" + countryCode + digits
}

// MobileHeuristic prefixes the country code only for nine-digit numbers
// that look like local mobile subscribers, and otherwise falls back to
// the unconditional prefix.
func MobileHeuristic(countryCode, digits string) string {
	if len(digits) == 9 && (digits[0] == '1' || digits[0] == '6' || digits[0] == '7') {
		return "+" + countryCode + digits
	}
	return PrefixFallback(countryCode, digits)
}

// Normalizer maps raw phone strings to canonical form. The zero value is
// not usable; use New.
type Normalizer struct {
	countryCode string
	fallback    Fallback
}

func New(countryCode string, fallback Fallback) *Normalizer {
	if countryCode == "" {
		countryCode = DefaultCountryCode
	}
	if fallback == nil {
		fallback = PrefixFallback
	}
	return &Normalizer{countryCode: countryCode, fallback: fallback}
}

// Normalize returns the best-effort canonical form of raw. It is a pure
// function: no I/O, never returns an empty string for non-empty input.
func (n *Normalizer) Normalize(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}
	cleaned := clean(raw)

	// Already canonical. No further validation of length or content.
	if strings.HasPrefix(cleaned, "+") {
		return cleaned
	}

	if strings.HasPrefix(cleaned, n.countryCode) {
		return "+" + cleaned
	}

	// Local trunk prefix: drop the 0, prepend the country code.
	if strings.HasPrefix(cleaned, "0") {
		return "+" + n.countryCode + cleaned[1:]
	}

	return n.fallback(n.countryCode, cleaned)
}

// clean strips everything except digits and a leading "+".
func clean(raw string) string {
	var b strings.Builder
	for i, r := range strings.TrimSpace(raw) {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
			continue
		}
		if r == '+' && i == 0 {
			b.WriteRune(r)
		}
	}
	return b.String()
}
