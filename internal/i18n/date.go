package i18n

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/locales"
	"github.com/go-playground/locales/de"
	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/fr"
)

type dateStyle struct {
	translator locales.Translator
	connector  string
	clock      func(time.Time) string
}

var dateStyles = map[string]dateStyle{
	// en's FmtTimeShort prints midnight as 0:04 AM.
	"en": {translator: en.New(), connector: "at", clock: func(t time.Time) string { return t.Format("3:04 PM") }},
	"de": {translator: de.New(), connector: "um"},
	"fr": {translator: fr.New(), connector: "à"},
}

func (s dateStyle) timeOfDay(t time.Time) string {
	if s.clock != nil {
		return s.clock(t)
	}
	return s.translator.FmtTimeShort(t)
}

// FormatLongDate renders t with weekday, full month name, time and zone in the
// conventions of locale. Unknown locales use the English format.
func FormatLongDate(locale string, t time.Time) string {
	style, ok := dateStyles[strings.ToLower(locale)]
	if !ok {
		style = dateStyles[DefaultLocale]
	}
	return fmt.Sprintf("%s %s %s %s", style.translator.FmtDateFull(t), style.connector, style.timeOfDay(t), t.Format("MST"))
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTimestamp accepts RFC 3339 and a few close variants. Values without a
// zone are read as UTC.
func ParseTimestamp(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", value)
}
