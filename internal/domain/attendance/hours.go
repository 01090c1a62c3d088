package attendance

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

var hhmmRegex = regexp.MustCompile(`^(\d{1,2}):([0-5][0-9])$`)

var (
	maxWorkingHours = decimal.NewFromInt(24)
	sixty           = decimal.NewFromInt(60)
)

// ParseWorkingHours decodes the hours-worked value from a request body.
// Clients send either a plain JSON number or a "HH:MM" string; the latter
// converts to decimal hours (hours + minutes/60) rounded to two places.
// Numeric strings are accepted too since HTML form clients send them.
// Every entry point that accepts working hours goes through this function
// so lenient and strict paths cannot drift apart.
func ParseWorkingHours(raw json.RawMessage) (decimal.Decimal, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return decimal.Zero, ErrInvalidHoursFormat
	}

	var num float64
	if err := json.Unmarshal(raw, &num); err == nil {
		return checkHoursRange(decimal.NewFromFloat(num).Round(2))
	}

	var str string
	if err := json.Unmarshal(raw, &str); err != nil {
		return decimal.Zero, ErrInvalidHoursFormat
	}
	str = strings.TrimSpace(str)

	if matches := hhmmRegex.FindStringSubmatch(str); matches != nil {
		hours, _ := strconv.Atoi(matches[1])
		minutes, _ := strconv.Atoi(matches[2])
		value := decimal.NewFromInt(int64(hours)).
			Add(decimal.NewFromInt(int64(minutes)).Div(sixty)).
			Round(2)
		return checkHoursRange(value)
	}

	value, err := decimal.NewFromString(str)
	if err != nil {
		return decimal.Zero, ErrInvalidHoursFormat
	}
	return checkHoursRange(value.Round(2))
}

func checkHoursRange(d decimal.Decimal) (decimal.Decimal, error) {
	if d.IsNegative() || d.GreaterThan(maxWorkingHours) {
		return decimal.Zero, ErrHoursOutOfRange
	}
	return d, nil
}
