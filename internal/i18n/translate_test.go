package i18n

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslate_FallbackChain(t *testing.T) {
	tests := []struct {
		name   string
		locale string
		key    string
		want   string
	}{
		{name: "requested locale", locale: "de", key: "Donation", want: "Spende"},
		{name: "locale is case-insensitive", locale: "FR", key: "From", want: "De"},
		{name: "missing key falls back to english", locale: "de", key: "{KOFI_NAME} Test Message", want: "{KOFI_NAME} Test Message"},
		{name: "unknown locale falls back to english", locale: "es", key: "Anonymous", want: "Anonymous"},
		{name: "unknown key is returned verbatim", locale: "de", key: "Spende", want: "Spende"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Translate(tt.locale, tt.key, nil))
		})
	}
}

func TestTranslate_ReplacesParams(t *testing.T) {
	params := map[string]string{"KOFI_NAME": "Buy Me Tea"}

	assert.Equal(t, "New Buy Me Tea Support Received!", Translate("en", "New {KOFI_NAME} Support Received!", params))
	assert.Equal(t, "Neue Buy Me Tea Spende erhalten!", Translate("de", "New {KOFI_NAME} Support Received!", params))
	assert.Equal(t, "Support Buy Me Tea", Translate("fr", "{KOFI_NAME} Support", params))
}

func TestTranslate_ParamValuesAreNotExpanded(t *testing.T) {
	params := map[string]string{"KOFI_NAME": "{VERSION} Jar", "VERSION": "1.2.0"}

	for range 50 {
		assert.Equal(t, "New {VERSION} Jar Support Received!", Translate("en", "New {KOFI_NAME} Support Received!", params))
	}
	assert.Equal(t, "{VERSION} Jar Support | v1.2.0", Translate("en", "{KOFI_NAME} Support | v{VERSION}", params))
}

func TestResolveLocale(t *testing.T) {
	tests := map[string]string{
		"":      "en",
		"en":    "en",
		"DE":    "de",
		"de-AT": "de",
		"fr_FR": "fr",
		"en-GB": "en",
		"es":    "es",
	}

	for input, want := range tests {
		assert.Equal(t, want, ResolveLocale(input), "input %q", input)
	}
}

func TestFormatLongDate(t *testing.T) {
	ts := time.Date(2022, time.August, 21, 13, 4, 30, 0, time.UTC)

	assert.Equal(t, "Sunday, August 21, 2022 at 1:04 PM UTC", FormatLongDate("en", ts))
	assert.Equal(t, "Sonntag, 21. August 2022 um 13:04 UTC", FormatLongDate("de", ts))
	assert.Equal(t, "dimanche 21 août 2022 à 13:04 UTC", FormatLongDate("fr", ts))
	assert.Equal(t, "Sunday, August 21, 2022 at 1:04 PM UTC", FormatLongDate("es", ts))

	midnight := time.Date(2023, time.January, 2, 0, 5, 0, 0, time.UTC)
	assert.Equal(t, "Monday, January 2, 2023 at 12:05 AM UTC", FormatLongDate("en", midnight))
	assert.Equal(t, "Montag, 2. Januar 2023 um 00:05 UTC", FormatLongDate("de", midnight))
	assert.Equal(t, "lundi 2 janvier 2023 à 00:05 UTC", FormatLongDate("fr", midnight))
}

func TestParseTimestamp(t *testing.T) {
	got, err := ParseTimestamp("2022-08-21T13:04:30Z")
	require.NoError(t, err)
	assert.True(t, got.Equal(time.Date(2022, time.August, 21, 13, 4, 30, 0, time.UTC)))

	got, err = ParseTimestamp("2022-08-21 13:04:30")
	require.NoError(t, err)
	assert.Equal(t, 13, got.Hour())

	_, err = ParseTimestamp("yesterday-ish")
	assert.Error(t, err)
}
