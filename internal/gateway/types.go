package gateway

// Coordinates of the resolved location.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// CurrentReading is the current weather block of CurrentConditions.
type CurrentReading struct {
	TemperatureC  float64 `json:"temperature_c"`
	TemperatureF  float64 `json:"temperature_f"`
	Condition     string  `json:"condition"`
	Icon          string  `json:"icon"`
	Humidity      int     `json:"humidity"`
	WindSpeedKph  float64 `json:"wind_speed_kph"`
	WindDirection int     `json:"wind_direction"`
	PressureMb    float64 `json:"pressure_mb"`
	UVIndex       float64 `json:"uv_index"`
	FeelsLikeC    float64 `json:"feels_like_c"`
	FeelsLikeF    float64 `json:"feels_like_f"`
}

// CurrentConditions is the public view of current weather for a location.
type CurrentConditions struct {
	City        string         `json:"city"`
	Country     string         `json:"country"`
	Region      string         `json:"region"`
	Coordinates Coordinates    `json:"coordinates"`
	Current     CurrentReading `json:"current"`
	LastUpdated string         `json:"last_updated"`
}

// DailyForecast is a single day of a Forecast.
type DailyForecast struct {
	Date            string  `json:"date"`
	MaxTempC        float64 `json:"max_temp_c"`
	MinTempC        float64 `json:"min_temp_c"`
	MaxTempF        float64 `json:"max_temp_f"`
	MinTempF        float64 `json:"min_temp_f"`
	Condition       string  `json:"condition"`
	Icon            string  `json:"icon"`
	PrecipitationMm float64 `json:"precipitation_mm"`
	MaxWindKph      float64 `json:"max_wind_kph"`
	UVIndex         float64 `json:"uv_index"`
	Sunrise         string  `json:"sunrise"`
	Sunset          string  `json:"sunset"`
}

// Forecast is the public view of a multi-day forecast, days in chronological order.
type Forecast struct {
	City     string          `json:"city"`
	Country  string          `json:"country"`
	Forecast []DailyForecast `json:"forecast"`
}

// Health is the static status payload served at the root path.
type Health struct {
	Message   string   `json:"message"`
	Status    string   `json:"status"`
	Service   string   `json:"service"`
	Endpoints []string `json:"endpoints"`
}
