package models

import (
	"encoding/json"
	"time"
)

// Unit selects how temperatures are shown. Storage is always Celsius.
type Unit string

const (
	Celsius    Unit = "celsius"
	Fahrenheit Unit = "fahrenheit"
)

// Symbol returns the degree suffix for the unit.
func (u Unit) Symbol() string {
	if u == Fahrenheit {
		return "°F"
	}
	return "°C"
}

// Reading is an optional derived number. The zero value is "unavailable".
type Reading struct {
	Value float64
	Valid bool
}

func Some(v float64) Reading {
	return Reading{Value: v, Valid: true}
}

func (r Reading) MarshalJSON() ([]byte, error) {
	if !r.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(r.Value)
}

// DayPhase is the day/night state of a location at an instant.
type DayPhase string

const (
	PhaseUnknown DayPhase = "unknown"
	PhaseDay     DayPhase = "day"
	PhaseNight   DayPhase = "night"
)

// SkyBand is the coarse time-of-day band used to pick a card background.
type SkyBand string

const (
	BandUnknown SkyBand = "unknown"
	BandMorning SkyBand = "morning"
	BandDaytime SkyBand = "daytime"
	BandEvening SkyBand = "evening"
	BandNight   SkyBand = "night"
)

type CurrentConditions struct {
	Available   bool      `json:"available"`
	City        string    `json:"city,omitempty"`
	Unit        Unit      `json:"unit"`
	Temperature Reading   `json:"temperature"`
	FeelsLike   Reading   `json:"feels_like"`
	MinTemp     Reading   `json:"min_temp"`
	MaxTemp     Reading   `json:"max_temp"`
	Humidity    Reading   `json:"humidity"`
	WindSpeed   Reading   `json:"wind_speed"`
	Cloudiness  Reading   `json:"cloudiness"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	IconURL     string    `json:"icon_url,omitempty"`
	Phase       DayPhase  `json:"phase"`
	Band        SkyBand   `json:"band"`
	Sunrise     string    `json:"sunrise"`
	Sunset      string    `json:"sunset"`
	ObservedAt  time.Time `json:"observed_at"`
	Updated     string    `json:"updated"`
}

type DailyAggregate struct {
	Date        string    `json:"date"`
	Label       string    `json:"label"`
	Instant     time.Time `json:"instant"`
	MinTemp     Reading   `json:"min_temp"`
	MaxTemp     Reading   `json:"max_temp"`
	FeelsLike   Reading   `json:"feels_like"`
	Humidity    Reading   `json:"humidity"`
	WindSpeed   Reading   `json:"wind_speed"`
	Sunrise     time.Time `json:"sunrise"`
	Sunset      time.Time `json:"sunset"`
	SunsetLabel string    `json:"sunset_label"`
	Condition   Condition `json:"condition"`
}

type HourlyPoint struct {
	Time      time.Time `json:"time"`
	Label     string    `json:"label"`
	Temp      Reading   `json:"temp"`
	FeelsLike Reading   `json:"feels_like"`
	Humidity  Reading   `json:"humidity"`
	WindSpeed Reading   `json:"wind_speed"`
	Category  string    `json:"category"`
	Icon      string    `json:"icon"`
}

type HourlySeries struct {
	Points []HourlyPoint `json:"points"`
	NoData bool          `json:"no_data"`
}

// Unavailable is the value shown for a detail field with no usable source.
const Unavailable = "N/A"

type DetailField struct {
	Title     string `json:"title"`
	Value     string `json:"value"`
	Available bool   `json:"available"`
	Category  string `json:"category"`
}

type Details struct {
	Available bool          `json:"available"`
	Fields    []DetailField `json:"fields"`
}

// Dashboard is the output of one derivation pass for a city.
type Dashboard struct {
	PassID      string            `json:"pass_id"`
	City        string            `json:"city"`
	Unit        Unit              `json:"unit"`
	GeneratedAt time.Time         `json:"generated_at"`
	Current     CurrentConditions `json:"current"`
	Forecast    []DailyAggregate  `json:"forecast"`
	Hourly      HourlySeries      `json:"hourly"`
	Details     Details           `json:"details"`
}
