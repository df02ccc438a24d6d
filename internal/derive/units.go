// Package derive turns raw provider payloads into the presentation values the
// dashboard renders. Everything here is a pure function of its inputs.
package derive

import (
	"math"
	"strings"

	"github.com/bobby-s-dev/weather-dashboard/internal/models"
)

func ToFahrenheit(celsius float64) float64 {
	return celsius*9/5 + 32
}

func ToCelsius(fahrenheit float64) float64 {
	return (fahrenheit - 32) * 5 / 9
}

// ToDisplayTemperature converts a Celsius value to the requested unit and
// rounds half away from zero.
func ToDisplayTemperature(celsius float64, unit models.Unit) int {
	v := celsius
	if unit == models.Fahrenheit {
		v = ToFahrenheit(celsius)
	}
	return int(math.Round(v))
}

// ParseUnit maps a user supplied unit name to a Unit, falling back to def.
func ParseUnit(s string, def models.Unit) models.Unit {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "c", "celsius", "metric":
		return models.Celsius
	case "f", "fahrenheit", "imperial":
		return models.Fahrenheit
	default:
		return def
	}
}

func displayReading(p *float64, unit models.Unit) models.Reading {
	v, ok := models.Float(p)
	if !ok {
		return models.Reading{}
	}
	return models.Some(float64(ToDisplayTemperature(v, unit)))
}
