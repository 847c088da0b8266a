package models

// Weather is one daily observation from the KMA ASOS dataset, keyed by date
// (YYYY-MM-DD). Summary is the classified label: "맑음", "흐림", "강우", or a
// composite "sky / rain" string such as "맑음 / 강우 없음". Empty when the
// day could not be classified.
type Weather struct {
	Date        string  `json:"date"`
	AvgTemp     float64 `json:"avg_temp"`
	MinTemp     float64 `json:"min_temp"`
	MaxTemp     float64 `json:"max_temp"`
	OneHourRain float64 `json:"one_hour_rain"`
	SumRain     float64 `json:"sum_rain"`
	AvgHumidity float64 `json:"avg_humidity"`
	Summary     string  `json:"summary"`
}
