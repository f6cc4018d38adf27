package domain

import (
	"fmt"
	"math"
)

// weatherDescriptions maps WMO weather codes to display text.
var weatherDescriptions = map[int]string{
	0: "Clear Sky", 1: "Mainly Clear", 2: "Partly Cloudy", 3: "Overcast",
	45: "Foggy", 48: "Depositing Rime Fog",
	51: "Light Drizzle", 53: "Moderate Drizzle", 55: "Dense Drizzle",
	56: "Light Freezing Drizzle", 57: "Dense Freezing Drizzle",
	61: "Slight Rain", 63: "Moderate Rain", 65: "Heavy Rain",
	66: "Light Freezing Rain", 67: "Heavy Freezing Rain",
	71: "Slight Snow", 73: "Moderate Snow", 75: "Heavy Snow", 77: "Snow Grains",
	80: "Slight Rain Showers", 81: "Moderate Rain Showers", 82: "Violent Rain Showers",
	85: "Slight Snow Showers", 86: "Heavy Snow Showers",
	95: "Thunderstorm", 96: "Thunderstorm with Slight Hail", 99: "Thunderstorm with Heavy Hail",
}

// WeatherDescription returns the display text for a WMO weather code.
func WeatherDescription(code int) string {
	if description, ok := weatherDescriptions[code]; ok {
		return description
	}
	return "Unknown"
}

// CelsiusToFahrenheit converts and rounds to the nearest degree.
func CelsiusToFahrenheit(c float64) int {
	return int(math.Round(c*9/5 + 32))
}

// KmhToMph converts and rounds to the nearest mile per hour.
func KmhToMph(kmh float64) int {
	return int(math.Round(kmh * 0.621371))
}

// MmToInches converts precipitation, rounded to two decimals.
func MmToInches(mm float64) float64 {
	return math.Round(mm*0.0393701*100) / 100
}

// DailyWeather is one day of archive figures as returned by the upstream
// weather archive. Temperature fields are nil when the station has no data.
type DailyWeather struct {
	WeatherCode     int
	TemperatureMaxC *float64
	TemperatureMinC *float64
	PrecipitationMm float64
	WindSpeedKmh    float64
}

// BuildConditions summarizes one day of weather into a display line and its
// detail figures. It returns nil when temperatures are missing, which callers
// report as data unavailable rather than an error.
func BuildConditions(daily DailyWeather) *WeatherResult {
	if daily.TemperatureMaxC == nil || daily.TemperatureMinC == nil {
		return nil
	}

	description := WeatherDescription(daily.WeatherCode)
	maxC := int(math.Round(*daily.TemperatureMaxC))
	minC := int(math.Round(*daily.TemperatureMinC))
	maxF := CelsiusToFahrenheit(*daily.TemperatureMaxC)
	minF := CelsiusToFahrenheit(*daily.TemperatureMinC)
	windMph := KmhToMph(daily.WindSpeedKmh)
	precipIn := MmToInches(daily.PrecipitationMm)

	summary := fmt.Sprintf(
		"%s, High: %d degF (%d degC), Low: %d degF (%d degC), Wind: %d mph, Precip: %.2f in",
		description, maxF, maxC, minF, minC, windMph, precipIn,
	)

	return &WeatherResult{
		Success:    true,
		Conditions: &summary,
		Details: &WeatherDetails{
			WeatherCode:        daily.WeatherCode,
			WeatherDescription: description,
			TemperatureMaxC:    maxC,
			TemperatureMinC:    minC,
			TemperatureMaxF:    maxF,
			TemperatureMinF:    minF,
			PrecipitationMm:    math.Round(daily.PrecipitationMm*10) / 10,
			PrecipitationIn:    precipIn,
			WindSpeedKmh:       int(math.Round(daily.WindSpeedKmh)),
			WindSpeedMph:       windMph,
		},
	}
}
