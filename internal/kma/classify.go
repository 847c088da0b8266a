package kma

// Classification labels for daily weather. Summaries stored on weather rows
// are either a single label or a composite "sky / rain" string.
const (
	SkyClear    = "맑음"
	SkyOvercast = "흐림"
	Rain        = "강우"
	NoRain      = "강우 없음"
)

// SummarySeparator joins the sky and rain components of a composite summary.
const SummarySeparator = " / "

// ClassifySky classifies the day's sky from its mean total cloud cover
// (tenths, 0–10 as reported by ASOS).
func ClassifySky(avgTotalCloud float64) string {
	if avgTotalCloud <= 0.54 {
		return SkyClear
	}
	return SkyOvercast
}

// ClassifyRain classifies the day's rainfall from its max one-hour rainfall
// in mm.
func ClassifyRain(oneHourRain float64) string {
	if oneHourRain <= 0 {
		return NoRain
	}
	return Rain
}

// Summarize composes the stored summary label for a day.
func Summarize(avgTotalCloud, oneHourRain float64) string {
	return ClassifySky(avgTotalCloud) + SummarySeparator + ClassifyRain(oneHourRain)
}
