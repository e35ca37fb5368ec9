package export

import (
	"strings"
	"time"

	"github.com/goodsign/monday"
)

// defaultLayout is used for locales without an entry in layouts.
const defaultLayout = "1/2/2006 3:04:05 PM"

// layouts holds the conventional date/time layout per locale. Month and
// day names inside a layout are translated by monday at render time.
var layouts = map[monday.Locale]string{
	monday.LocaleEnUS: "1/2/2006 3:04:05 PM",
	monday.LocaleEnGB: "02/01/2006 15:04:05",
	monday.LocaleDeDE: "02.01.2006 15:04:05",
	monday.LocaleFrFR: "02/01/2006 15:04:05",
	monday.LocaleEsES: "02/01/2006 15:04:05",
	monday.LocaleItIT: "02/01/2006 15:04:05",
	monday.LocaleNlNL: "02-01-2006 15:04:05",
	monday.LocaleRuRU: "02.01.2006 15:04:05",
	monday.LocaleJaJP: "2006/01/02 15:04:05",
}

// ParseLocale converts a BCP-47 tag such as "en-US" into a monday locale.
// Unrecognized tags fall back to en-US so formatting always succeeds.
func ParseLocale(tag string) monday.Locale {
	loc := monday.Locale(strings.Replace(tag, "-", "_", 1))
	if _, ok := layouts[loc]; ok {
		return loc
	}
	return monday.LocaleEnUS
}

// FormatTimestamp renders an instant using the locale's date/time
// convention. Pure function: locale is passed in, nothing is cached.
func FormatTimestamp(t time.Time, loc monday.Locale) string {
	layout, ok := layouts[loc]
	if !ok {
		layout = defaultLayout
	}
	return monday.Format(t, layout, loc)
}
