package derive

import (
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/bobby-s-dev/weather-dashboard/internal/clock"
	"github.com/bobby-s-dev/weather-dashboard/internal/models"
)

const (
	clockLayout      = "3:04 PM"
	shortClockLayout = "03:04 PM"
	hourLabelLayout  = "3PM"
	dayLabelLayout   = "Mon, Jan 2"
)

// Detail titles, in catalogue order.
const (
	DetailSunrise       = "Sunrise"
	DetailSunset        = "Sunset"
	DetailWindDirection = "Wind Direction"
	DetailPressure      = "Pressure"
	DetailHumidity      = "Humidity"
	DetailVisibility    = "Visibility"
	DetailFeelsLike     = "Feels Like"
	DetailUVIndex       = "UV Index"
)

type detailEntry struct {
	title    string
	category string
	value    func(s *models.RawSnapshot, unit models.Unit) (string, bool)
}

var catalogue = []detailEntry{
	{DetailSunrise, "sunrise", func(s *models.RawSnapshot, _ models.Unit) (string, bool) {
		if s.Sys == nil {
			return "", false
		}
		return formatClock(s.Sys.Sunrise, s.Offset())
	}},
	{DetailSunset, "sunset", func(s *models.RawSnapshot, _ models.Unit) (string, bool) {
		if s.Sys == nil {
			return "", false
		}
		return formatClock(s.Sys.Sunset, s.Offset())
	}},
	{DetailWindDirection, "compass", func(s *models.RawSnapshot, _ models.Unit) (string, bool) {
		if s.Wind == nil {
			return "", false
		}
		deg, ok := models.Float(s.Wind.Deg)
		if !ok {
			return "", false
		}
		return fmt.Sprintf("%s (%s°)", WindDirection(deg), formatNumber(deg)), true
	}},
	{DetailPressure, "gauge", func(s *models.RawSnapshot, _ models.Unit) (string, bool) {
		if s.Main == nil {
			return "", false
		}
		v, ok := models.Float(s.Main.Pressure)
		if !ok {
			return "", false
		}
		return formatNumber(v) + " hPa", true
	}},
	{DetailHumidity, "droplet", func(s *models.RawSnapshot, _ models.Unit) (string, bool) {
		if s.Main == nil {
			return "", false
		}
		v, ok := models.Float(s.Main.Humidity)
		if !ok {
			return "", false
		}
		return formatNumber(v) + "%", true
	}},
	{DetailVisibility, "eye", func(s *models.RawSnapshot, _ models.Unit) (string, bool) {
		v, ok := models.Float(s.Visibility)
		if !ok {
			return "", false
		}
		return FormatVisibility(v), true
	}},
	{DetailFeelsLike, "thermometer", func(s *models.RawSnapshot, unit models.Unit) (string, bool) {
		if s.Main == nil {
			return "", false
		}
		v, ok := models.Float(s.Main.FeelsLike)
		if !ok {
			return "", false
		}
		return fmt.Sprintf("%d%s", ToDisplayTemperature(v, unit), unit.Symbol()), true
	}},
	// The provider payload has no UV field.
	{DetailUVIndex, "uv", func(*models.RawSnapshot, models.Unit) (string, bool) {
		return "", false
	}},
}

// BuildDetails produces the full detail catalogue. Every field is always
// present and in the same order; a field without usable source data carries
// models.Unavailable.
func BuildDetails(s *models.RawSnapshot, unit models.Unit) models.Details {
	fields := make([]models.DetailField, 0, len(catalogue))
	for _, entry := range catalogue {
		field := models.DetailField{
			Title:    entry.title,
			Value:    models.Unavailable,
			Category: entry.category,
		}
		if s != nil {
			if v, ok := entry.value(s, unit); ok {
				field.Value = v
				field.Available = true
			}
		}
		fields = append(fields, field)
	}
	return models.Details{Available: s != nil, Fields: fields}
}

// FormatVisibility renders meters as kilometers with one decimal.
func FormatVisibility(meters float64) string {
	km := decimal.NewFromFloat(meters).Div(decimal.NewFromInt(1000))
	return km.StringFixed(1) + " km"
}

func formatClock(sec *int64, offset int) (string, bool) {
	v, ok := models.Epoch(sec)
	if !ok {
		return "", false
	}
	return clock.LocalizeUnix(v, offset).Format(clockLayout), true
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
