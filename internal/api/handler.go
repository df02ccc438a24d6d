package api

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/bobby-s-dev/weather-dashboard/internal/derive"
	"github.com/bobby-s-dev/weather-dashboard/internal/models"
)

var validate = validator.New()

// WeatherService is the part of the dashboard service the handlers use.
type WeatherService interface {
	Build(ctx context.Context, city string, unit models.Unit) (*models.Dashboard, error)
	RawCurrent(ctx context.Context, city string) ([]byte, error)
	GetLastFetchTime() time.Time
	GetStats() map[string]interface{}
}

type Handler struct {
	service     WeatherService
	cities      []string
	defaultUnit models.Unit
	logger      *zap.Logger
	startTime   time.Time
}

func NewHandler(service WeatherService, cities []string, defaultUnit models.Unit, logger *zap.Logger) *Handler {
	if defaultUnit == "" {
		defaultUnit = models.Celsius
	}
	return &Handler{
		service:     service,
		cities:      cities,
		defaultUnit: defaultUnit,
		logger:      logger,
		startTime:   time.Now(),
	}
}

type weatherQuery struct {
	City string `validate:"required"`
	Unit string `validate:"omitempty,oneof=celsius fahrenheit c f metric imperial"`
}

func parseWeatherQuery(c *fiber.Ctx) (weatherQuery, error) {
	q := weatherQuery{
		City: c.Query("city"),
		Unit: strings.ToLower(strings.TrimSpace(c.Query("unit"))),
	}
	if err := validate.Struct(q); err != nil {
		return q, queryError(err)
	}
	return q, nil
}

func queryError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	switch verrs[0].Field() {
	case "City":
		return errors.New("city parameter is required")
	case "Unit":
		return errors.New("unit parameter must be celsius or fahrenheit (or c, f, metric, imperial)")
	default:
		return err
	}
}

func (h *Handler) dashboard(c *fiber.Ctx) (*models.Dashboard, error) {
	q, err := parseWeatherQuery(c)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	unit := derive.ParseUnit(q.Unit, h.defaultUnit)

	h.logger.Info("Deriving weather view",
		zap.String("city", q.City),
		zap.String("unit", string(unit)),
		zap.String("path", c.Path()))

	dash, err := h.service.Build(c.UserContext(), q.City, unit)
	if err != nil {
		h.logger.Error("Failed to build weather view",
			zap.String("city", q.City),
			zap.Error(err))
		return nil, fiber.NewError(fiber.StatusBadGateway, "Failed to fetch weather data")
	}
	return dash, nil
}

// GetCurrentWeather handles GET /api/v1/weather/current
func (h *Handler) GetCurrentWeather(c *fiber.Ctx) error {
	dash, err := h.dashboard(c)
	if err != nil {
		return err
	}
	return c.JSON(dash.Current)
}

// GetForecast handles GET /api/v1/weather/forecast
func (h *Handler) GetForecast(c *fiber.Ctx) error {
	dash, err := h.dashboard(c)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"city": dash.City,
		"unit": dash.Unit,
		"days": dash.Forecast,
	})
}

// GetHourly handles GET /api/v1/weather/hourly
func (h *Handler) GetHourly(c *fiber.Ctx) error {
	dash, err := h.dashboard(c)
	if err != nil {
		return err
	}
	return c.JSON(dash.Hourly)
}

// GetDetails handles GET /api/v1/weather/details
func (h *Handler) GetDetails(c *fiber.Ctx) error {
	dash, err := h.dashboard(c)
	if err != nil {
		return err
	}
	return c.JSON(dash.Details)
}

// GetDashboard handles GET /api/v1/weather/dashboard
func (h *Handler) GetDashboard(c *fiber.Ctx) error {
	dash, err := h.dashboard(c)
	if err != nil {
		return err
	}
	return c.JSON(dash)
}

// GetRawWeather handles GET /weather and proxies the provider payload as is.
func (h *Handler) GetRawWeather(c *fiber.Ctx) error {
	city := c.Query("city")
	if city == "" {
		return fiber.NewError(fiber.StatusBadRequest, "city parameter is required")
	}

	body, err := h.service.RawCurrent(c.UserContext(), city)
	if err != nil {
		h.logger.Error("Failed to proxy weather payload",
			zap.String("city", city),
			zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch weather data",
		})
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(body)
}

// GetHealth handles GET /api/v1/health
func (h *Handler) GetHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":     "healthy",
		"timestamp":  time.Now(),
		"last_fetch": h.service.GetLastFetchTime(),
		"uptime":     time.Since(h.startTime).String(),
	})
}

// GetMetrics handles GET /api/v1/metrics
func (h *Handler) GetMetrics(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"metrics":   h.service.GetStats(),
		"timestamp": time.Now(),
	})
}

// GetCities handles GET /api/v1/cities
func (h *Handler) GetCities(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"cities": h.cities,
	})
}
