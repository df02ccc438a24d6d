package services

import (
	"time"

	"github.com/google/uuid"

	"github.com/bobby-s-dev/weather-dashboard/internal/derive"
	"github.com/bobby-s-dev/weather-dashboard/internal/models"
)

// Derive runs every builder over one payload. All sections of the result see
// the same now and the same raw input.
func Derive(p *Payload, now time.Time, unit models.Unit) *models.Dashboard {
	var (
		current  *models.RawSnapshot
		forecast *models.RawForecast
		city     string
	)
	if p != nil {
		current, forecast, city = p.Current, p.Forecast, p.City
	}

	dash := &models.Dashboard{
		PassID:      uuid.NewString(),
		City:        city,
		Unit:        unit,
		GeneratedAt: now.UTC(),
		Current:     derive.NormalizeCurrent(current, now, unit),
		Forecast:    derive.ForecastDays(forecast),
		Hourly:      derive.BuildHourly(forecast, unit),
		Details:     derive.BuildDetails(current, unit),
	}
	if dash.Current.City != "" {
		dash.City = dash.Current.City
	}
	return dash
}
