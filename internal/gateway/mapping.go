package gateway

import (
	"fmt"

	"github.com/neexbeast/weather-gateway/internal/weatherapi"
)

func missing(field string) error {
	return fmt.Errorf("%w: missing %s", ErrMalformedPayload, field)
}

func toCurrentConditions(raw *weatherapi.CurrentResponse) (*CurrentConditions, error) {
	switch {
	case raw.Location == nil:
		return nil, missing("location")
	case raw.Current == nil:
		return nil, missing("current")
	case raw.Current.Condition == nil:
		return nil, missing("current.condition")
	}

	loc, cur := raw.Location, raw.Current
	return &CurrentConditions{
		City:    loc.Name,
		Country: loc.Country,
		Region:  loc.Region,
		Coordinates: Coordinates{
			Lat: loc.Lat,
			Lon: loc.Lon,
		},
		Current: CurrentReading{
			TemperatureC:  cur.TempC,
			TemperatureF:  cur.TempF,
			Condition:     cur.Condition.Text,
			Icon:          cur.Condition.Icon,
			Humidity:      cur.Humidity,
			WindSpeedKph:  cur.WindKph,
			WindDirection: cur.WindDegree,
			PressureMb:    cur.PressureMb,
			UVIndex:       cur.UV,
			FeelsLikeC:    cur.FeelslikeC,
			FeelsLikeF:    cur.FeelslikeF,
		},
		LastUpdated: cur.LastUpdated,
	}, nil
}

// toForecast keeps upstream day order.
func toForecast(raw *weatherapi.ForecastResponse) (*Forecast, error) {
	switch {
	case raw.Location == nil:
		return nil, missing("location")
	case raw.Forecast == nil:
		return nil, missing("forecast")
	}

	days := make([]DailyForecast, 0, len(raw.Forecast.ForecastDay))
	for i, fd := range raw.Forecast.ForecastDay {
		switch {
		case fd.Day == nil:
			return nil, missing(fmt.Sprintf("forecastday[%d].day", i))
		case fd.Day.Condition == nil:
			return nil, missing(fmt.Sprintf("forecastday[%d].day.condition", i))
		case fd.Astro == nil:
			return nil, missing(fmt.Sprintf("forecastday[%d].astro", i))
		}

		days = append(days, DailyForecast{
			Date:            fd.Date,
			MaxTempC:        fd.Day.MaxTempC,
			MinTempC:        fd.Day.MinTempC,
			MaxTempF:        fd.Day.MaxTempF,
			MinTempF:        fd.Day.MinTempF,
			Condition:       fd.Day.Condition.Text,
			Icon:            fd.Day.Condition.Icon,
			PrecipitationMm: fd.Day.TotalPrecipMm,
			MaxWindKph:      fd.Day.MaxWindKph,
			UVIndex:         fd.Day.UV,
			Sunrise:         fd.Astro.Sunrise,
			Sunset:          fd.Astro.Sunset,
		})
	}

	return &Forecast{
		City:     raw.Location.Name,
		Country:  raw.Location.Country,
		Forecast: days,
	}, nil
}
