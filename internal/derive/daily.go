package derive

import (
	"math"
	"time"

	"github.com/bobby-s-dev/weather-dashboard/internal/clock"
	"github.com/bobby-s-dev/weather-dashboard/internal/models"
)

// ForecastDayCount is how many days after today the forward forecast keeps.
const ForecastDayCount = 5

type dayBucket struct {
	agg    models.DailyAggregate
	seeded bool
}

// GroupDaily collapses a forecast list into one aggregate per local calendar
// date, in the order each date first appears. Points without an observation
// instant cannot be placed on a date and are skipped.
//
// Within a day min and max temperatures are reduced, while feels-like,
// humidity and wind speed keep the value of the last point seen.
func GroupDaily(f *models.RawForecast) []models.DailyAggregate {
	if f == nil || len(f.List) == 0 {
		return []models.DailyAggregate{}
	}

	offset := f.Offset()
	var sunrise, sunset time.Time
	sunsetLabel := models.Unavailable
	if f.City != nil {
		if sec, ok := models.Epoch(f.City.Sunrise); ok {
			sunrise = time.Unix(sec, 0).UTC()
		}
		if sec, ok := models.Epoch(f.City.Sunset); ok {
			sunset = time.Unix(sec, 0).UTC()
			sunsetLabel = clock.LocalizeUnix(sec, offset).Format(shortClockLayout)
		}
	}

	order := make([]string, 0, 8)
	buckets := make(map[string]*dayBucket)

	for _, p := range f.List {
		dt, ok := models.Epoch(p.Dt)
		if !ok {
			continue
		}
		local := clock.LocalizeUnix(dt, offset)
		date := local.Date()

		b, exists := buckets[date]
		if !exists {
			b = &dayBucket{agg: models.DailyAggregate{
				Date:        date,
				Label:       local.Format(dayLabelLayout),
				Instant:     local.Instant(),
				Sunrise:     sunrise,
				Sunset:      sunset,
				SunsetLabel: sunsetLabel,
			}}
			if cond, ok := p.PrimaryCondition(); ok {
				b.agg.Condition = cond
			}
			buckets[date] = b
			order = append(order, date)
		}
		b.add(p)
	}

	out := make([]models.DailyAggregate, 0, len(order))
	for _, date := range order {
		out = append(out, buckets[date].agg)
	}
	return out
}

// ForecastDays drops today's aggregate and keeps the following five days.
func ForecastDays(f *models.RawForecast) []models.DailyAggregate {
	days := GroupDaily(f)
	if len(days) <= 1 {
		return []models.DailyAggregate{}
	}
	days = days[1:]
	if len(days) > ForecastDayCount {
		days = days[:ForecastDayCount]
	}
	return days
}

func (b *dayBucket) add(p models.RawForecastPoint) {
	var m models.MainReadings
	if p.Main != nil {
		m = *p.Main
	}

	if lo, hi, ok := pointRange(m); ok {
		if !b.seeded {
			b.agg.MinTemp = models.Some(lo)
			b.agg.MaxTemp = models.Some(hi)
			b.seeded = true
		} else {
			b.agg.MinTemp.Value = math.Min(b.agg.MinTemp.Value, lo)
			b.agg.MaxTemp.Value = math.Max(b.agg.MaxTemp.Value, hi)
		}
	}

	b.agg.FeelsLike = models.ReadingOf(m.FeelsLike)
	b.agg.Humidity = models.ReadingOf(m.Humidity)
	if p.Wind != nil {
		b.agg.WindSpeed = models.ReadingOf(p.Wind.Speed)
	} else {
		b.agg.WindSpeed = models.Reading{}
	}
}

// pointRange returns the low and high temperature a point contributes,
// falling back to the plain temperature when a bound is missing.
func pointRange(m models.MainReadings) (lo, hi float64, ok bool) {
	temp, hasTemp := models.Float(m.Temp)
	lo, hasLo := models.Float(m.TempMin)
	hi, hasHi := models.Float(m.TempMax)

	if !hasLo {
		lo, hasLo = temp, hasTemp
	}
	if !hasHi {
		hi, hasHi = temp, hasTemp
	}
	switch {
	case hasLo && hasHi:
		return math.Min(lo, hi), math.Max(lo, hi), true
	case hasLo:
		return lo, lo, true
	case hasHi:
		return hi, hi, true
	default:
		return 0, 0, false
	}
}
