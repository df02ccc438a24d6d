package models

import "math"

// Condition is one entry of the provider "weather" array.
type Condition struct {
	ID          int    `json:"id"`
	Main        string `json:"main"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

type MainReadings struct {
	Temp      *float64 `json:"temp,omitempty"`
	FeelsLike *float64 `json:"feels_like,omitempty"`
	TempMin   *float64 `json:"temp_min,omitempty"`
	TempMax   *float64 `json:"temp_max,omitempty"`
	Humidity  *float64 `json:"humidity,omitempty"`
	Pressure  *float64 `json:"pressure,omitempty"`
}

type Wind struct {
	Speed *float64 `json:"speed,omitempty"`
	Deg   *float64 `json:"deg,omitempty"`
}

type Clouds struct {
	All *float64 `json:"all,omitempty"`
}

type Sys struct {
	Country string `json:"country,omitempty"`
	Sunrise *int64 `json:"sunrise,omitempty"`
	Sunset  *int64 `json:"sunset,omitempty"`
}

// RawSnapshot is the provider current-weather payload. Every nested field is
// optional so that a missing value never reads as a measured zero.
type RawSnapshot struct {
	Name       string        `json:"name,omitempty"`
	Weather    []Condition   `json:"weather,omitempty"`
	Main       *MainReadings `json:"main,omitempty"`
	Wind       *Wind         `json:"wind,omitempty"`
	Clouds     *Clouds       `json:"clouds,omitempty"`
	Visibility *float64      `json:"visibility,omitempty"`
	Sys        *Sys          `json:"sys,omitempty"`
	Dt         *int64        `json:"dt,omitempty"`
	Timezone   *int          `json:"timezone,omitempty"`
}

// PrimaryCondition returns the first condition descriptor, if any.
func (s *RawSnapshot) PrimaryCondition() (Condition, bool) {
	if s == nil || len(s.Weather) == 0 {
		return Condition{}, false
	}
	return s.Weather[0], true
}

// Offset returns the UTC offset in seconds, 0 when absent.
func (s *RawSnapshot) Offset() int {
	if s == nil || s.Timezone == nil {
		return 0
	}
	return *s.Timezone
}

type RawForecastPoint struct {
	Dt      *int64        `json:"dt,omitempty"`
	Main    *MainReadings `json:"main,omitempty"`
	Wind    *Wind         `json:"wind,omitempty"`
	Clouds  *Clouds       `json:"clouds,omitempty"`
	Weather []Condition   `json:"weather,omitempty"`
}

func (p RawForecastPoint) PrimaryCondition() (Condition, bool) {
	if len(p.Weather) == 0 {
		return Condition{}, false
	}
	return p.Weather[0], true
}

type ForecastCity struct {
	Name     string `json:"name,omitempty"`
	Country  string `json:"country,omitempty"`
	Sunrise  *int64 `json:"sunrise,omitempty"`
	Sunset   *int64 `json:"sunset,omitempty"`
	Timezone *int   `json:"timezone,omitempty"`
}

// RawForecast is the provider 5 day / 3 hour forecast payload.
type RawForecast struct {
	List []RawForecastPoint `json:"list"`
	City *ForecastCity      `json:"city,omitempty"`
}

func (f *RawForecast) Offset() int {
	if f == nil || f.City == nil || f.City.Timezone == nil {
		return 0
	}
	return *f.City.Timezone
}

// Float reads an optional provider number. Absent and non-finite values both
// report ok == false.
func Float(p *float64) (float64, bool) {
	if p == nil || math.IsNaN(*p) || math.IsInf(*p, 0) {
		return 0, false
	}
	return *p, true
}

// Epoch reads an optional epoch-seconds instant. Zero counts as absent.
func Epoch(p *int64) (int64, bool) {
	if p == nil || *p == 0 {
		return 0, false
	}
	return *p, true
}

// ReadingOf lifts an optional provider number into a Reading.
func ReadingOf(p *float64) Reading {
	v, ok := Float(p)
	return Reading{Value: v, Valid: ok}
}
