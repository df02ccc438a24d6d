package derive

import (
	"strings"

	"github.com/bobby-s-dev/weather-dashboard/internal/clock"
	"github.com/bobby-s-dev/weather-dashboard/internal/models"
)

// HourlyPointCount is the length of the charted short-interval series.
const HourlyPointCount = 12

// BuildHourly maps the first twelve forecast entries, in input order, to chart
// points. Temperatures are shown in unit and rounded.
func BuildHourly(f *models.RawForecast, unit models.Unit) models.HourlySeries {
	if f == nil || len(f.List) == 0 {
		return models.HourlySeries{Points: []models.HourlyPoint{}, NoData: true}
	}

	list := f.List
	if len(list) > HourlyPointCount {
		list = list[:HourlyPointCount]
	}
	offset := f.Offset()

	points := make([]models.HourlyPoint, 0, len(list))
	for _, p := range list {
		hp := models.HourlyPoint{Label: models.Unavailable}
		if dt, ok := models.Epoch(p.Dt); ok {
			local := clock.LocalizeUnix(dt, offset)
			hp.Time = local.Instant()
			hp.Label = local.Format(hourLabelLayout)
		}
		if m := p.Main; m != nil {
			hp.Temp = displayReading(m.Temp, unit)
			hp.FeelsLike = displayReading(m.FeelsLike, unit)
			hp.Humidity = models.ReadingOf(m.Humidity)
		}
		if p.Wind != nil {
			hp.WindSpeed = models.ReadingOf(p.Wind.Speed)
		}
		if cond, ok := p.PrimaryCondition(); ok {
			hp.Category = strings.ToLower(cond.Main)
		}
		hp.Icon = ConditionIcon(hp.Category)
		points = append(points, hp)
	}

	return models.HourlySeries{Points: points}
}

// ConditionIcon picks the decorative icon for a lower-cased condition category.
func ConditionIcon(category string) string {
	switch category {
	case "clear":
		return "sun"
	case "rain":
		return "cloud-rain"
	case "clouds":
		return "cloud"
	default:
		return "wind"
	}
}
