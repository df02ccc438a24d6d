package derive

import (
	"time"

	"github.com/bobby-s-dev/weather-dashboard/internal/models"
)

func f64(v float64) *float64 { return &v }

func i64(v int64) *int64 { return &v }

func intp(v int) *int { return &v }

func unix(t time.Time) *int64 { return i64(t.Unix()) }

func point(at time.Time, tmin, tmax float64) models.RawForecastPoint {
	return models.RawForecastPoint{
		Dt: unix(at),
		Main: &models.MainReadings{
			Temp:      f64((tmin + tmax) / 2),
			FeelsLike: f64(tmax - 1),
			TempMin:   f64(tmin),
			TempMax:   f64(tmax),
			Humidity:  f64(60),
		},
		Wind:    &models.Wind{Speed: f64(3.5), Deg: f64(90)},
		Weather: []models.Condition{{ID: 800, Main: "Clear", Description: "clear sky", Icon: "01d"}},
	}
}

func fullSnapshot() *models.RawSnapshot {
	return &models.RawSnapshot{
		Name: "Prague",
		Weather: []models.Condition{
			{ID: 500, Main: "Rain", Description: "light rain", Icon: "10d"},
			{ID: 701, Main: "Mist", Description: "mist", Icon: "50d"},
		},
		Main: &models.MainReadings{
			Temp:      f64(21.5),
			FeelsLike: f64(20.4),
			TempMin:   f64(18.2),
			TempMax:   f64(23.9),
			Humidity:  f64(65),
			Pressure:  f64(1013),
		},
		Wind:       &models.Wind{Speed: f64(4.1), Deg: f64(45)},
		Clouds:     &models.Clouds{All: f64(75)},
		Visibility: f64(10000),
		Sys: &models.Sys{
			// 2024-05-01 04:00 and 18:30 UTC
			Sunrise: i64(1714536000),
			Sunset:  i64(1714588200),
		},
		Dt:       i64(1714564800), // 2024-05-01 12:00 UTC
		Timezone: intp(7200),
	}
}
