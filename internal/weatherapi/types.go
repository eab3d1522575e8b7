package weatherapi

// Payload shapes returned by WeatherAPI.com. Nested objects are pointers so a
// missing block can be told apart from a zero value.

// Location is the "location" block shared by current.json and forecast.json.
type Location struct {
	Name           string  `json:"name"`
	Region         string  `json:"region"`
	Country        string  `json:"country"`
	Lat            float64 `json:"lat"`
	Lon            float64 `json:"lon"`
	TzID           string  `json:"tz_id"`
	LocaltimeEpoch int64   `json:"localtime_epoch"`
	Localtime      string  `json:"localtime"`
}

// Condition is a textual weather condition with its icon.
type Condition struct {
	Text string `json:"text"`
	Icon string `json:"icon"`
	Code int    `json:"code"`
}

// Current is the "current" block.
type Current struct {
	LastUpdatedEpoch int64      `json:"last_updated_epoch"`
	LastUpdated      string     `json:"last_updated"`
	TempC            float64    `json:"temp_c"`
	TempF            float64    `json:"temp_f"`
	IsDay            int        `json:"is_day"`
	Condition        *Condition `json:"condition"`
	WindKph          float64    `json:"wind_kph"`
	WindDegree       int        `json:"wind_degree"`
	WindDir          string     `json:"wind_dir"`
	PressureMb       float64    `json:"pressure_mb"`
	PrecipMm         float64    `json:"precip_mm"`
	Humidity         int        `json:"humidity"`
	Cloud            int        `json:"cloud"`
	FeelslikeC       float64    `json:"feelslike_c"`
	FeelslikeF       float64    `json:"feelslike_f"`
	VisKm            float64    `json:"vis_km"`
	UV               float64    `json:"uv"`
	GustKph          float64    `json:"gust_kph"`
}

// CurrentResponse is the body of current.json.
type CurrentResponse struct {
	Location *Location `json:"location"`
	Current  *Current  `json:"current"`
}

// Day is the daily aggregate of a forecast day.
type Day struct {
	MaxTempC          float64    `json:"maxtemp_c"`
	MaxTempF          float64    `json:"maxtemp_f"`
	MinTempC          float64    `json:"mintemp_c"`
	MinTempF          float64    `json:"mintemp_f"`
	AvgTempC          float64    `json:"avgtemp_c"`
	AvgTempF          float64    `json:"avgtemp_f"`
	MaxWindKph        float64    `json:"maxwind_kph"`
	TotalPrecipMm     float64    `json:"totalprecip_mm"`
	AvgHumidity       float64    `json:"avghumidity"`
	DailyChanceOfRain int        `json:"daily_chance_of_rain"`
	Condition         *Condition `json:"condition"`
	UV                float64    `json:"uv"`
}

// Astro holds sunrise and sunset as local "hh:mm AM" strings.
type Astro struct {
	Sunrise  string `json:"sunrise"`
	Sunset   string `json:"sunset"`
	Moonrise string `json:"moonrise"`
	Moonset  string `json:"moonset"`
}

// ForecastDay is one entry of forecast.forecastday.
type ForecastDay struct {
	Date      string `json:"date"`
	DateEpoch int64  `json:"date_epoch"`
	Day       *Day   `json:"day"`
	Astro     *Astro `json:"astro"`
}

// Forecast is the "forecast" block.
type Forecast struct {
	ForecastDay []ForecastDay `json:"forecastday"`
}

// ForecastResponse is the body of forecast.json.
type ForecastResponse struct {
	Location *Location `json:"location"`
	Current  *Current  `json:"current"`
	Forecast *Forecast `json:"forecast"`
}
