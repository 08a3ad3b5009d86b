package utils

import (
	"regexp"
	"strconv"
	"strings"
)

// Field validators used by the conversation state machine and the
// profile-update flow. One authoritative bound per field:
// age [1,119], height (30,300) cm, weight (2,600) kg, location len>=2.

var leadingNumberRe = regexp.MustCompile(`^\s*(\d+(?:\.\d+)?)`)

// ParseAge parses an age answer. Valid range is 1 to 119 inclusive.
func ParseAge(text string) (int, bool) {
	m := leadingNumberRe.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	n, err := strconv.ParseFloat(m[1], 64)
	if err != nil || n != float64(int(n)) {
		return 0, false
	}
	age := int(n)
	if age < 1 || age > 119 {
		return 0, false
	}
	return age, true
}

// ParseHeight parses a height answer in cm; bounds exclusive (30, 300).
func ParseHeight(text string) (float64, bool) {
	m := leadingNumberRe.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	h, err := strconv.ParseFloat(m[1], 64)
	if err != nil || h <= 30 || h >= 300 {
		return 0, false
	}
	return h, true
}

// ParseWeight parses a weight answer in kg; bounds exclusive (2, 600).
func ParseWeight(text string) (float64, bool) {
	m := leadingNumberRe.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	w, err := strconv.ParseFloat(m[1], 64)
	if err != nil || w <= 2 || w >= 600 {
		return 0, false
	}
	return w, true
}

// ParseLocation accepts any trimmed string of length >= 2.
func ParseLocation(text string) (string, bool) {
	loc := strings.TrimSpace(text)
	if len(loc) < 2 {
		return "", false
	}
	return loc, true
}

// MatchProfileField resolves free text naming a profile field, as used
// by the field-update flow. Substring match, first hit wins.
func MatchProfileField(text string) (string, bool) {
	t := strings.ToLower(text)
	switch {
	case strings.Contains(t, "age"):
		return "age", true
	case strings.Contains(t, "gend"), strings.Contains(t, "sex"):
		return "gender", true
	case strings.Contains(t, "height"), strings.Contains(t, "tall"):
		return "height", true
	case strings.Contains(t, "weight"), strings.Contains(t, "kg"):
		return "weight", true
	case strings.Contains(t, "location"), strings.Contains(t, "city"),
		strings.Contains(t, "place"), strings.Contains(t, "address"):
		return "location", true
	}
	return "", false
}
