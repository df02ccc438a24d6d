package derive

import (
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v6"

	"github.com/bobby-s-dev/weather-dashboard/internal/clock"
	"github.com/bobby-s-dev/weather-dashboard/internal/models"
)

func TestGroupDailyThreeDayScenario(t *testing.T) {
	start := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	var list []models.RawForecastPoint
	for i := 0; i < 15; i++ {
		at := start.Add(time.Duration(i*4) * time.Hour)
		var p models.RawForecastPoint
		switch at.Hour() {
		case 0:
			p = point(at, 10, 20)
		case 8:
			p = point(at, 5, 25)
		default:
			p = point(at, 12, 18)
		}
		list = append(list, p)
	}

	days := GroupDaily(&models.RawForecast{List: list})
	if len(days) != 3 {
		t.Fatalf("expected 3 days, got %d", len(days))
	}
	wantDates := []string{"2024-05-01", "2024-05-02", "2024-05-03"}
	for i, d := range days {
		if d.Date != wantDates[i] {
			t.Errorf("day %d date = %s, want %s", i, d.Date, wantDates[i])
		}
		if d.MinTemp != models.Some(5) || d.MaxTemp != models.Some(25) {
			t.Errorf("day %s min/max = %+v/%+v, want 5/25", d.Date, d.MinTemp, d.MaxTemp)
		}
	}
}

func TestGroupDailyUsesLocalDate(t *testing.T) {
	offset := 3 * 3600
	f := &models.RawForecast{
		List: []models.RawForecastPoint{
			point(time.Date(2024, 5, 1, 18, 0, 0, 0, time.UTC), 10, 12), // 21:00 local, May 1
			point(time.Date(2024, 5, 1, 21, 0, 0, 0, time.UTC), 8, 9),   // 00:00 local, May 2
		},
		City: &models.ForecastCity{Timezone: &offset},
	}

	days := GroupDaily(f)
	if len(days) != 2 {
		t.Fatalf("expected the points to fall on two local dates, got %d", len(days))
	}
	if days[1].Date != "2024-05-02" {
		t.Fatalf("second date = %s", days[1].Date)
	}
	if days[1].Label != "Thu, May 2" {
		t.Fatalf("label = %s", days[1].Label)
	}
}

func TestGroupDailyLastWriteWins(t *testing.T) {
	at := time.Date(2024, 5, 1, 6, 0, 0, 0, time.UTC)
	first := point(at, 10, 20)
	first.Main.FeelsLike = f64(30)
	first.Main.Humidity = f64(40)
	first.Weather = []models.Condition{{Main: "Clouds", Description: "few clouds", Icon: "02d"}}

	second := point(at.Add(3*time.Hour), 11, 19)
	second.Main.FeelsLike = f64(2)
	second.Main.Humidity = f64(90)
	second.Wind = &models.Wind{Speed: f64(7)}

	days := GroupDaily(&models.RawForecast{List: []models.RawForecastPoint{first, second}})
	if len(days) != 1 {
		t.Fatalf("expected one day, got %d", len(days))
	}
	d := days[0]
	if d.FeelsLike != models.Some(2) {
		t.Errorf("feels like = %+v, want the last point's value", d.FeelsLike)
	}
	if d.Humidity != models.Some(90) || d.WindSpeed != models.Some(7) {
		t.Errorf("humidity/wind = %+v/%+v", d.Humidity, d.WindSpeed)
	}
	if d.Condition.Description != "few clouds" {
		t.Errorf("condition = %+v, want the first point's", d.Condition)
	}
	if !d.Instant.Equal(at) {
		t.Errorf("instant = %v, want first point", d.Instant)
	}
}

func TestGroupDailyInheritsCitySunTimes(t *testing.T) {
	offset := 0
	f := &models.RawForecast{
		List: []models.RawForecastPoint{
			point(time.Date(2024, 5, 1, 6, 0, 0, 0, time.UTC), 1, 2),
			point(time.Date(2024, 5, 2, 6, 0, 0, 0, time.UTC), 1, 2),
		},
		City: &models.ForecastCity{
			Sunrise:  i64(1714536000),
			Sunset:   i64(1714588200),
			Timezone: &offset,
		},
	}
	for _, d := range GroupDaily(f) {
		if d.Sunset.Unix() != 1714588200 || d.Sunrise.Unix() != 1714536000 {
			t.Errorf("day %s sun times = %v/%v", d.Date, d.Sunrise, d.Sunset)
		}
		if d.SunsetLabel != "06:30 PM" {
			t.Errorf("sunset label = %s", d.SunsetLabel)
		}
	}
}

func TestGroupDailyMissingTemperatures(t *testing.T) {
	at := time.Date(2024, 5, 1, 6, 0, 0, 0, time.UTC)
	bare := models.RawForecastPoint{Dt: unix(at)}
	tempOnly := models.RawForecastPoint{Dt: unix(at.Add(time.Hour)), Main: &models.MainReadings{Temp: f64(14)}}

	days := GroupDaily(&models.RawForecast{List: []models.RawForecastPoint{bare}})
	if len(days) != 1 || days[0].MinTemp.Valid || days[0].MaxTemp.Valid {
		t.Fatalf("a day without temperatures must have unavailable min/max: %+v", days)
	}

	days = GroupDaily(&models.RawForecast{List: []models.RawForecastPoint{bare, tempOnly}})
	if days[0].MinTemp != models.Some(14) || days[0].MaxTemp != models.Some(14) {
		t.Fatalf("expected fallback to temp, got %+v/%+v", days[0].MinTemp, days[0].MaxTemp)
	}
}

func TestGroupDailyEmpty(t *testing.T) {
	for name, f := range map[string]*models.RawForecast{
		"nil":   nil,
		"empty": {},
	} {
		if got := GroupDaily(f); got == nil || len(got) != 0 {
			t.Errorf("%s: expected empty non-nil slice, got %#v", name, got)
		}
		if got := ForecastDays(f); len(got) != 0 {
			t.Errorf("%s: expected no forecast days, got %d", name, len(got))
		}
	}
}

func TestForecastDaysSkipsTodayAndKeepsFive(t *testing.T) {
	start := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	var list []models.RawForecastPoint
	for day := 0; day < 8; day++ {
		list = append(list, point(start.AddDate(0, 0, day), float64(day), float64(day+10)))
	}

	days := ForecastDays(&models.RawForecast{List: list})
	if len(days) != ForecastDayCount {
		t.Fatalf("expected %d days, got %d", ForecastDayCount, len(days))
	}
	if days[0].Date != "2024-05-02" || days[4].Date != "2024-05-06" {
		t.Fatalf("unexpected window %s..%s", days[0].Date, days[4].Date)
	}
}

func TestGroupDailyProperties(t *testing.T) {
	faker := gofakeit.New(42)
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	for run := 0; run < 200; run++ {
		offset := faker.IntRange(-12, 14) * 3600
		n := faker.IntRange(0, 40)

		list := make([]models.RawForecastPoint, 0, n)
		var wantOrder []string
		seen := make(map[string]bool)
		for i := 0; i < n; i++ {
			at := base.Add(time.Duration(faker.IntRange(0, 7*24*60)) * time.Minute)
			lo := faker.Float64Range(-30, 30)
			hi := faker.Float64Range(-30, 30)
			list = append(list, point(at, lo, hi))

			date := clock.Localize(at, offset).Date()
			if !seen[date] {
				seen[date] = true
				wantOrder = append(wantOrder, date)
			}
		}

		days := GroupDaily(&models.RawForecast{List: list, City: &models.ForecastCity{Timezone: &offset}})
		if len(days) != len(wantOrder) {
			t.Fatalf("run %d: %d aggregates for %d distinct dates", run, len(days), len(wantOrder))
		}
		for i, d := range days {
			if d.Date != wantOrder[i] {
				t.Fatalf("run %d: aggregate %d is %s, want first-seen %s", run, i, d.Date, wantOrder[i])
			}
			if d.MinTemp.Value > d.MaxTemp.Value {
				t.Fatalf("run %d: %s min %v > max %v", run, d.Date, d.MinTemp.Value, d.MaxTemp.Value)
			}
		}
	}
}
