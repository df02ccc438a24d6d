package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"

	"go.uber.org/zap"

	"github.com/bobby-s-dev/weather-dashboard/internal/models"
)

const DefaultOpenWeatherURL = "https://api.openweathermap.org/data/2.5"

var ErrMissingAPIKey = errors.New("openweather api key is not configured")

type OpenWeatherClient struct {
	*BaseClient
	apiKey  string
	baseURL string
}

func NewOpenWeatherClient(apiKey, baseURL string, config ClientConfig, logger *zap.Logger) *OpenWeatherClient {
	if baseURL == "" {
		baseURL = DefaultOpenWeatherURL
	}
	baseClient := NewBaseClient("openweather", config, logger)
	return &OpenWeatherClient{
		BaseClient: baseClient,
		apiKey:     apiKey,
		baseURL:    baseURL,
	}
}

func (c *OpenWeatherClient) Name() string {
	return "openweathermap"
}

// GetCurrentRaw returns the current-weather payload body as received.
func (c *OpenWeatherClient) GetCurrentRaw(ctx context.Context, city string) ([]byte, error) {
	if c.apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	data, err := c.GetWithRetry(ctx, c.endpoint("weather", city))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch current weather: %w", err)
	}
	return data, nil
}

func (c *OpenWeatherClient) GetCurrent(ctx context.Context, city string) (*models.RawSnapshot, error) {
	data, err := c.GetCurrentRaw(ctx, city)
	if err != nil {
		return nil, err
	}

	var snapshot models.RawSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return &snapshot, nil
}

// GetForecast returns the 5 day / 3 hour forecast.
func (c *OpenWeatherClient) GetForecast(ctx context.Context, city string) (*models.RawForecast, error) {
	if c.apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	data, err := c.GetWithRetry(ctx, c.endpoint("forecast", city))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch forecast: %w", err)
	}

	var forecast models.RawForecast
	if err := json.Unmarshal(data, &forecast); err != nil {
		return nil, fmt.Errorf("failed to parse forecast response: %w", err)
	}
	return &forecast, nil
}

func (c *OpenWeatherClient) endpoint(path, city string) string {
	query := url.Values{}
	query.Set("q", city)
	query.Set("appid", c.apiKey)
	query.Set("units", "metric")
	return fmt.Sprintf("%s/%s?%s", c.baseURL, path, query.Encode())
}

func redact(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	q := u.Query()
	if q.Has("appid") {
		q.Set("appid", "REDACTED")
		u.RawQuery = q.Encode()
	}
	return u.String()
}
