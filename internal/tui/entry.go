package tui

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// errEntry is returned for prompt input that is not "name amount [units]".
var errEntry = errors.New(`expected "name amount [units]"`)

// parseEntry splits prompt input into an item name, amount and units. The
// name may contain spaces: "Olive oil 1 l" is name "Olive oil", amount 1,
// units "l". When the last field is a number the units are empty. NaN and
// infinite amounts are rejected.
func parseEntry(s string) (name string, amount float64, units string, err error) {
	fields := strings.Fields(s)
	if len(fields) < 2 {
		return "", 0, "", errEntry
	}

	last := len(fields) - 1
	if v, ok := parseAmount(fields[last]); ok {
		return strings.Join(fields[:last], " "), v, "", nil
	}
	if len(fields) < 3 {
		return "", 0, "", errEntry
	}
	v, ok := parseAmount(fields[last-1])
	if !ok {
		return "", 0, "", errEntry
	}
	return strings.Join(fields[:last-1], " "), v, fields[last], nil
}

// parseAmount parses a finite decimal amount.
func parseAmount(s string) (float64, bool) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
