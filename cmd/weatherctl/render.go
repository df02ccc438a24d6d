package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/bobby-s-dev/weather-dashboard/internal/display"
	"github.com/bobby-s-dev/weather-dashboard/internal/models"
)

func reading(r models.Reading, suffix string) string {
	if !r.Valid {
		return models.Unavailable
	}
	return fmt.Sprintf("%g%s", r.Value, suffix)
}

func writeDashboard(w io.Writer, dash *models.Dashboard) {
	symbol := dash.Unit.Symbol()
	cur := dash.Current

	fmt.Fprintf(w, "%s\n", dash.City)
	fmt.Fprintln(w, strings.Repeat("=", len(dash.City)))

	if cur.Available {
		fmt.Fprintf(w, "%s, %s (feels like %s)\n",
			reading(cur.Temperature, symbol), cur.Description, reading(cur.FeelsLike, symbol))
		fmt.Fprintf(w, "Min %s  Max %s  Humidity %s  Wind %s  Clouds %s\n",
			reading(cur.MinTemp, symbol), reading(cur.MaxTemp, symbol),
			reading(cur.Humidity, "%"), reading(cur.WindSpeed, " m/s"), reading(cur.Cloudiness, "%"))
		fmt.Fprintf(w, "Sunrise %s  Sunset %s  (%s)\n", cur.Sunrise, cur.Sunset, cur.Phase)
		if cur.Updated != "" {
			fmt.Fprintf(w, "Updated %s\n", cur.Updated)
		}
	} else {
		fmt.Fprintln(w, "Current conditions unavailable")
	}

	fmt.Fprintln(w, "\nForecast")
	if len(dash.Forecast) == 0 {
		fmt.Fprintln(w, "  no data")
	}
	for _, day := range dash.Forecast {
		fmt.Fprintf(w, "  %-12s %s / %s  %s\n",
			day.Label, reading(day.MinTemp, symbol), reading(day.MaxTemp, symbol), day.Condition.Description)
	}

	fmt.Fprintln(w, "\nHourly")
	if dash.Hourly.NoData {
		fmt.Fprintln(w, "  no data")
	}
	for _, p := range dash.Hourly.Points {
		fmt.Fprintf(w, "  %-5s %s %s\n", p.Label, reading(p.Temp, symbol), p.Icon)
	}

	fmt.Fprintln(w, "\nDetails")
	for _, f := range dash.Details.Fields {
		fmt.Fprintf(w, "  %-15s %s\n", f.Title, f.Value)
	}
}

func frameLine(f display.Frame) string {
	c := f.Conditions
	if !c.Available {
		return fmt.Sprintf("%s  no current conditions", f.Clock)
	}
	return fmt.Sprintf("%s  %s %s  %s  updated %s",
		f.Clock, c.City, reading(c.Temperature, c.Unit.Symbol()), c.Description, f.Updated)
}
