package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/bobby-s-dev/weather-dashboard/internal/models"
)

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

type fakeClient struct {
	mu            sync.Mutex
	current       *models.RawSnapshot
	forecast      *models.RawForecast
	currentErr    error
	forecastErr   error
	currentCalls  int
	forecastCalls int
}

func (f *fakeClient) GetCurrent(_ context.Context, city string) (*models.RawSnapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.currentCalls++
	return f.current, f.currentErr
}

func (f *fakeClient) GetForecast(_ context.Context, city string) (*models.RawForecast, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.forecastCalls++
	return f.forecast, f.forecastErr
}

func f64(v float64) *float64 { return &v }
func i64(v int64) *int64     { return &v }
func intp(v int) *int        { return &v }

var observed = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func snapshot() *models.RawSnapshot {
	return &models.RawSnapshot{
		Name:     "Prague",
		Weather:  []models.Condition{{Main: "Clear", Description: "clear sky", Icon: "01d"}},
		Main:     &models.MainReadings{Temp: f64(20.4), FeelsLike: f64(19.6), Humidity: f64(55), Pressure: f64(1013)},
		Wind:     &models.Wind{Speed: f64(3.2), Deg: f64(45)},
		Sys:      &models.Sys{Sunrise: i64(observed.Add(-8 * time.Hour).Unix()), Sunset: i64(observed.Add(6 * time.Hour).Unix())},
		Dt:       i64(observed.Unix()),
		Timezone: intp(7200),
	}
}

func forecast() *models.RawForecast {
	var list []models.RawForecastPoint
	start := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 40; i++ {
		at := start.Add(time.Duration(i) * 3 * time.Hour)
		list = append(list, models.RawForecastPoint{
			Dt:      i64(at.Unix()),
			Main:    &models.MainReadings{Temp: f64(10 + float64(i%8))},
			Weather: []models.Condition{{Main: "Clouds"}},
		})
	}
	return &models.RawForecast{List: list, City: &models.ForecastCity{Name: "Prague", Timezone: intp(0)}}
}

func newTestDashboard(client WeatherClient) *Dashboard {
	cache := NewPayloadCache(time.Minute, 10, zap.NewNop())
	cache.now = func() time.Time { return observed }
	return NewDashboard(client, cache, fixedClock{observed.Add(3 * time.Minute)}, zap.NewNop())
}

func TestBuildDerivesEverySection(t *testing.T) {
	client := &fakeClient{current: snapshot(), forecast: forecast()}
	d := newTestDashboard(client)
	defer d.cache.Stop()

	dash, err := d.Build(context.Background(), "Prague", models.Celsius)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if dash.PassID == "" {
		t.Fatal("expected a pass id")
	}
	if dash.City != "Prague" || dash.Unit != models.Celsius {
		t.Fatalf("unexpected header %+v", dash)
	}
	if !dash.Current.Available || dash.Current.Temperature.Value != 20 {
		t.Fatalf("unexpected current %+v", dash.Current)
	}
	if dash.Current.Updated != "3 minutes ago" {
		t.Fatalf("updated = %q", dash.Current.Updated)
	}
	if len(dash.Forecast) != 4 {
		t.Fatalf("expected 4 forecast days after today, got %d", len(dash.Forecast))
	}
	if len(dash.Hourly.Points) != 12 || dash.Hourly.NoData {
		t.Fatalf("unexpected hourly series: %d points", len(dash.Hourly.Points))
	}
	if len(dash.Details.Fields) != 8 || !dash.Details.Available {
		t.Fatalf("unexpected details %+v", dash.Details)
	}
}

func TestBuildUsesCachedPayload(t *testing.T) {
	client := &fakeClient{current: snapshot(), forecast: forecast()}
	d := newTestDashboard(client)
	defer d.cache.Stop()

	first, err := d.Build(context.Background(), "Prague", models.Celsius)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := d.Build(context.Background(), " prague ", models.Fahrenheit)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if client.currentCalls != 1 || client.forecastCalls != 1 {
		t.Fatalf("expected one fetch, got current=%d forecast=%d", client.currentCalls, client.forecastCalls)
	}
	if first.PassID == second.PassID {
		t.Fatal("each pass must carry its own id")
	}
	if second.Current.Temperature.Value != 69 {
		t.Fatalf("fahrenheit temperature = %v", second.Current.Temperature.Value)
	}
}

func TestBuildWithoutForecast(t *testing.T) {
	client := &fakeClient{current: snapshot(), forecastErr: errors.New("boom")}
	d := newTestDashboard(client)
	defer d.cache.Stop()

	dash, err := d.Build(context.Background(), "Prague", models.Celsius)
	if err != nil {
		t.Fatalf("partial data must still derive, got %v", err)
	}
	if !dash.Hourly.NoData || len(dash.Forecast) != 0 {
		t.Fatalf("expected empty forecast sections, got %+v", dash.Hourly)
	}
	if !dash.Current.Available {
		t.Fatal("current conditions should be available")
	}
}

func TestBuildWithoutCurrent(t *testing.T) {
	client := &fakeClient{currentErr: errors.New("boom"), forecast: forecast()}
	d := newTestDashboard(client)
	defer d.cache.Stop()

	dash, err := d.Build(context.Background(), "Prague", models.Celsius)
	if err != nil {
		t.Fatalf("partial data must still derive, got %v", err)
	}
	if dash.Current.Available || dash.Details.Available {
		t.Fatal("current sections should be unavailable")
	}
	for _, f := range dash.Details.Fields {
		if f.Value != models.Unavailable {
			t.Fatalf("field %s = %q, want %q", f.Title, f.Value, models.Unavailable)
		}
	}
}

func TestBuildFailsWhenProviderReturnsNothing(t *testing.T) {
	client := &fakeClient{currentErr: errors.New("down"), forecastErr: errors.New("down")}
	d := newTestDashboard(client)
	defer d.cache.Stop()

	_, err := d.Build(context.Background(), "Prague", models.Celsius)
	if !errors.Is(err, ErrNoProviderData) {
		t.Fatalf("expected ErrNoProviderData, got %v", err)
	}
	if d.GetStats()["failure_count"] != 1 {
		t.Fatalf("unexpected stats %v", d.GetStats())
	}
}

func TestFetchCitiesRecordsFailures(t *testing.T) {
	client := &fakeClient{current: snapshot(), forecast: forecast()}
	d := newTestDashboard(client)
	defer d.cache.Stop()

	err := d.FetchCities(context.Background(), []string{"Prague", ""})
	if !errors.Is(err, ErrEmptyCity) {
		t.Fatalf("expected ErrEmptyCity in joined error, got %v", err)
	}
	if _, ok := d.cache.Get("Prague"); !ok {
		t.Fatal("Prague should be cached")
	}
	if d.GetLastFetchTime().IsZero() {
		t.Fatal("last fetch time not recorded")
	}
}

func TestRawCurrentRequiresRawClient(t *testing.T) {
	d := newTestDashboard(&fakeClient{})
	defer d.cache.Stop()

	if _, err := d.RawCurrent(context.Background(), ""); !errors.Is(err, ErrEmptyCity) {
		t.Fatalf("expected ErrEmptyCity, got %v", err)
	}
	if _, err := d.RawCurrent(context.Background(), "Prague"); err == nil {
		t.Fatal("expected an error from a client without raw access")
	}
}

func TestDeriveNilPayload(t *testing.T) {
	dash := Derive(nil, observed, models.Celsius)
	if dash.Current.Available || !dash.Hourly.NoData || len(dash.Forecast) != 0 {
		t.Fatalf("unexpected dashboard %+v", dash)
	}
	if len(dash.Details.Fields) != 8 {
		t.Fatalf("details must keep every field, got %d", len(dash.Details.Fields))
	}
}
