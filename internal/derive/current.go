package derive

import (
	"fmt"
	"strings"
	"time"

	"github.com/bobby-s-dev/weather-dashboard/internal/clock"
	"github.com/bobby-s-dev/weather-dashboard/internal/models"
)

const (
	iconURLFormat = "https://openweathermap.org/img/wn/%s@2x.png"
	bandWidth     = 3 * time.Hour
)

// NoConditions is returned when there is no current snapshot at all.
var NoConditions = models.CurrentConditions{
	Available: false,
	Phase:     models.PhaseUnknown,
	Band:      models.BandUnknown,
	Sunrise:   models.Unavailable,
	Sunset:    models.Unavailable,
}

// ClassifyDayNight reports night when now is at or after sunset, or before
// sunrise. Sunset itself is night.
func ClassifyDayNight(now, sunrise, sunset clock.LocalTime) models.DayPhase {
	if !now.Before(sunset) || now.Before(sunrise) {
		return models.PhaseNight
	}
	return models.PhaseDay
}

// ClassifySkyBand splits the day into the three hours after sunrise, the three
// hours before sunset, the daytime in between, and night.
func ClassifySkyBand(now, sunrise, sunset clock.LocalTime) models.SkyBand {
	switch {
	case now.Before(sunrise) || !now.Before(sunset):
		return models.BandNight
	case now.Before(sunrise.Add(bandWidth)):
		return models.BandMorning
	case now.Before(sunset.Add(-bandWidth)):
		return models.BandDaytime
	default:
		return models.BandEvening
	}
}

// NormalizeCurrent extracts the primary display values from a snapshot. now is
// the instant held by the caller's time context.
func NormalizeCurrent(s *models.RawSnapshot, now time.Time, unit models.Unit) models.CurrentConditions {
	if s == nil {
		out := NoConditions
		out.Unit = unit
		return out
	}

	offset := s.Offset()
	out := models.CurrentConditions{
		Available: true,
		City:      s.Name,
		Unit:      unit,
		Phase:     models.PhaseUnknown,
		Band:      models.BandUnknown,
		Sunrise:   models.Unavailable,
		Sunset:    models.Unavailable,
	}

	if m := s.Main; m != nil {
		out.Temperature = displayReading(m.Temp, unit)
		out.FeelsLike = displayReading(m.FeelsLike, unit)
		out.MinTemp = displayReading(m.TempMin, unit)
		out.MaxTemp = displayReading(m.TempMax, unit)
		out.Humidity = models.ReadingOf(m.Humidity)
	}
	if s.Wind != nil {
		out.WindSpeed = models.ReadingOf(s.Wind.Speed)
	}
	if s.Clouds != nil {
		out.Cloudiness = models.ReadingOf(s.Clouds.All)
	}

	if cond, ok := s.PrimaryCondition(); ok {
		out.Description = cond.Description
		out.Category = strings.ToLower(cond.Main)
		if cond.Icon != "" {
			out.IconURL = fmt.Sprintf(iconURLFormat, cond.Icon)
		}
	}

	if dt, ok := models.Epoch(s.Dt); ok {
		out.ObservedAt = time.Unix(dt, 0).UTC()
		out.Updated = clock.ElapsedLabel(now, out.ObservedAt)
	}

	var sunrise, sunset clock.LocalTime
	var haveRise, haveSet bool
	if s.Sys != nil {
		if sec, ok := models.Epoch(s.Sys.Sunrise); ok {
			sunrise, haveRise = clock.LocalizeUnix(sec, offset), true
			out.Sunrise = sunrise.Format(shortClockLayout)
		}
		if sec, ok := models.Epoch(s.Sys.Sunset); ok {
			sunset, haveSet = clock.LocalizeUnix(sec, offset), true
			out.Sunset = sunset.Format(shortClockLayout)
		}
	}
	if haveRise && haveSet {
		localNow := clock.Localize(now, offset)
		out.Phase = ClassifyDayNight(localNow, sunrise, sunset)
		out.Band = ClassifySkyBand(localNow, sunrise, sunset)
	}

	return out
}
