package sheets

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	nonNumeric  = regexp.MustCompile(`[^\d.,]`)
	floatPrefix = regexp.MustCompile(`^(\d+\.?\d*|\.\d+)`)
	intPrefix   = regexp.MustCompile(`^[+-]?\d+`)
)

// leadingInt parses the integer prefix of s ("12 etapas" -> 12).
func leadingInt(s string) (int, bool) {
	m := intPrefix.FindString(strings.TrimSpace(s))
	if m == "" {
		return 0, false
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return 0, false
	}
	return n, true
}

// positiveInt is leadingInt restricted to values above zero.
func positiveInt(s string) (int, bool) {
	n, ok := leadingInt(s)
	return n, ok && n > 0
}

// leadingFloat parses the decimal prefix of an already cleaned string
// ("21.5.3" -> 21.5).
func leadingFloat(s string) (float64, bool) {
	m := floatPrefix.FindString(s)
	if m == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(m, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

// cleanDecimal keeps digits and separators and reads the first comma as a
// decimal point ("42,2 km" -> "42.2").
func cleanDecimal(s string) string {
	return strings.Replace(nonNumeric.ReplaceAllString(s, ""), ",", ".", 1)
}

// parseDecimal reads a distance-like cell.
func parseDecimal(s string) (float64, bool) {
	return leadingFloat(cleanDecimal(strings.TrimSpace(s)))
}

// parseDistance reads one distance value; only positive values count.
func parseDistance(s string) (float64, bool) {
	f, ok := parseDecimal(s)
	return f, ok && f > 0
}

// parseDistanceList reads an "&"-separated list of distances, keeping the
// positive values in order.
func parseDistanceList(s string) []float64 {
	var out []float64
	for _, part := range strings.Split(s, "&") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if f, ok := parseDistance(part); ok {
			out = append(out, f)
		}
	}
	return out
}

// parseElevation reads meters of climb. A single comma followed by exactly
// three digits is a thousands separator, by one or two digits a decimal
// separator; several commas are all thousands separators.
func parseElevation(s string) (float64, bool) {
	cleaned := nonNumeric.ReplaceAllString(strings.TrimSpace(s), "")

	if strings.Contains(cleaned, ",") {
		parts := strings.Split(cleaned, ",")
		if len(parts) == 2 {
			switch after := len(parts[1]); {
			case after == 3:
				cleaned = strings.Replace(cleaned, ",", "", 1)
			case after <= 2:
				cleaned = strings.Replace(cleaned, ",", ".", 1)
			}
		} else {
			cleaned = strings.ReplaceAll(cleaned, ",", "")
		}
	}

	f, ok := leadingFloat(cleaned)
	return f, ok && f > 0
}

// splitList splits s on sep, trims every part and drops empty ones.
// The result is never nil.
func splitList(s, sep string) []string {
	out := []string{}
	for _, part := range strings.Split(s, sep) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
