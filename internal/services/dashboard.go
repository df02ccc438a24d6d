package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/bobby-s-dev/weather-dashboard/internal/clock"
	"github.com/bobby-s-dev/weather-dashboard/internal/models"
)

var (
	// ErrNoProviderData is returned when neither payload could be fetched.
	ErrNoProviderData = errors.New("no weather data available from provider")
	ErrEmptyCity      = errors.New("city is required")
)

type WeatherClient interface {
	GetCurrent(ctx context.Context, city string) (*models.RawSnapshot, error)
	GetForecast(ctx context.Context, city string) (*models.RawForecast, error)
}

// RawClient is implemented by clients that can hand back the provider body
// untouched.
type RawClient interface {
	GetCurrentRaw(ctx context.Context, city string) ([]byte, error)
}

type Dashboard struct {
	client       WeatherClient
	cache        *PayloadCache
	clock        clock.Clock
	logger       *zap.Logger
	fetchTimeout time.Duration

	mu            sync.RWMutex
	lastFetchTime time.Time
	successCount  int
	failureCount  int
	passCount     int
}

func NewDashboard(client WeatherClient, cache *PayloadCache, clk clock.Clock, logger *zap.Logger) *Dashboard {
	if clk == nil {
		clk = clock.SystemClock{}
	}
	return &Dashboard{
		client:       client,
		cache:        cache,
		clock:        clk,
		logger:       logger,
		fetchTimeout: 30 * time.Second,
	}
}

// FetchCities refreshes the cached payloads of every city concurrently.
func (d *Dashboard) FetchCities(ctx context.Context, cities []string) error {
	d.mu.Lock()
	d.lastFetchTime = d.clock.Now()
	d.mu.Unlock()

	var wg sync.WaitGroup
	errs := make(chan error, len(cities))

	startTime := time.Now()

	for _, city := range cities {
		wg.Add(1)
		go func(city string) {
			defer wg.Done()

			if _, err := d.fetchCity(ctx, city); err != nil {
				d.logger.Error("Failed to fetch weather for city",
					zap.String("city", city),
					zap.Error(err))
				errs <- fmt.Errorf("%s: %w", city, err)
			}
		}(city)
	}

	wg.Wait()
	close(errs)

	var joined []error
	for err := range errs {
		joined = append(joined, err)
	}

	d.mu.RLock()
	success, failure := d.successCount, d.failureCount
	d.mu.RUnlock()

	d.logger.Info("Weather fetch completed",
		zap.Int("cities", len(cities)),
		zap.Duration("duration", time.Since(startTime)),
		zap.Int("success", success),
		zap.Int("failure", failure))

	return errors.Join(joined...)
}

func (d *Dashboard) fetchCity(ctx context.Context, city string) (*Payload, error) {
	if city == "" {
		return nil, ErrEmptyCity
	}

	var (
		wg                      sync.WaitGroup
		current                 *models.RawSnapshot
		forecast                *models.RawForecast
		currentErr, forecastErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		current, currentErr = d.client.GetCurrent(ctx, city)
		if currentErr != nil {
			d.logger.Warn("Failed to fetch current weather",
				zap.String("city", city),
				zap.Error(currentErr))
		}
	}()
	go func() {
		defer wg.Done()
		forecast, forecastErr = d.client.GetForecast(ctx, city)
		if forecastErr != nil {
			d.logger.Warn("Failed to fetch forecast",
				zap.String("city", city),
				zap.Error(forecastErr))
		}
	}()
	wg.Wait()

	if currentErr != nil && forecastErr != nil {
		d.mu.Lock()
		d.failureCount++
		d.mu.Unlock()
		return nil, fmt.Errorf("%w: %w", ErrNoProviderData, errors.Join(currentErr, forecastErr))
	}

	payload := &Payload{
		City:      city,
		Current:   current,
		Forecast:  forecast,
		FetchedAt: d.clock.Now(),
	}
	d.cache.Set(city, payload)

	d.mu.Lock()
	d.successCount++
	d.mu.Unlock()

	return payload, nil
}

// Payload returns the cached payload for city, fetching it on a miss.
func (d *Dashboard) Payload(ctx context.Context, city string) (*Payload, error) {
	if cached, ok := d.cache.Get(city); ok {
		d.logger.Debug("Cache hit for payload", zap.String("city", city))
		return cached, nil
	}

	d.logger.Debug("Cache miss for payload, fetching fresh data", zap.String("city", city))

	fetchCtx, cancel := context.WithTimeout(ctx, d.fetchTimeout)
	defer cancel()

	payload, err := d.fetchCity(fetchCtx, city)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch weather for %s: %w", city, err)
	}
	return payload, nil
}

// Build runs one derivation pass for city.
func (d *Dashboard) Build(ctx context.Context, city string, unit models.Unit) (*models.Dashboard, error) {
	payload, err := d.Payload(ctx, city)
	if err != nil {
		return nil, err
	}

	dash := Derive(payload, d.clock.Now(), unit)

	d.mu.Lock()
	d.passCount++
	d.mu.Unlock()

	return dash, nil
}

// RawCurrent proxies the provider current-weather body for city.
func (d *Dashboard) RawCurrent(ctx context.Context, city string) ([]byte, error) {
	if city == "" {
		return nil, ErrEmptyCity
	}
	if raw, ok := d.client.(RawClient); ok {
		return raw.GetCurrentRaw(ctx, city)
	}
	return nil, errors.New("client does not expose raw payloads")
}

// Close stops the cache janitor.
func (d *Dashboard) Close() {
	d.cache.Stop()
}

func (d *Dashboard) GetLastFetchTime() time.Time {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.lastFetchTime
}

func (d *Dashboard) GetStats() map[string]interface{} {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return map[string]interface{}{
		"last_fetch_time": d.lastFetchTime,
		"success_count":   d.successCount,
		"failure_count":   d.failureCount,
		"derivations":     d.passCount,
		"cache_stats":     d.cache.GetStats(),
	}
}
