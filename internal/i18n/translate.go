// Package i18n holds the static label tables used in Discord notifications.
package i18n

import (
	"maps"
	"slices"
	"strings"

	"golang.org/x/text/language"
)

// DefaultLocale is consulted when a key is missing from the requested locale.
const DefaultLocale = "en"

var translations = map[string]map[string]string{
	"en": {
		"Donation":     "Donation",
		"Subscription": "Subscription",
		"Commission":   "Commission",
		"Shop Order":   "Shop Order",

		"From":            "From",
		"Type":            "Type",
		"Amount":          "Amount",
		"Membership Tier": "Membership Tier",
		"First Payment":   "First Payment",
		"Date":            "Date",
		"Transaction ID":  "Transaction ID",
		"Message":         "Message",

		"Yes":          "Yes",
		"Renewal":      "Renewal",
		"Anonymous":    "Anonymous",
		"Unknown date": "Unknown date",

		"New {KOFI_NAME} Support Received!": "New {KOFI_NAME} Support Received!",
		"has subscribed to the":             "has subscribed to the",
		"tier!":                             "tier!",
		"Thanks for the support!":           "Thanks for the support!",
		"{KOFI_NAME} Support":               "{KOFI_NAME} Support",

		"{KOFI_NAME} Test Message":                                   "{KOFI_NAME} Test Message",
		"This is a test message from the webhook service v{VERSION}": "This is a test message from the webhook service v{VERSION}",
	},
	"de": {
		"Donation":     "Spende",
		"Subscription": "Abo",
		"Commission":   "Auftrag",
		"Shop Order":   "Bestellung",

		"From":            "Von",
		"Type":            "Typ",
		"Amount":          "Betrag",
		"Membership Tier": "Mitgliedsstufe",
		"First Payment":   "Erste Zahlung",
		"Date":            "Datum",
		"Transaction ID":  "Transaktions-ID",
		"Message":         "Nachricht",

		"Yes":          "Ja",
		"Renewal":      "Verlängerung",
		"Anonymous":    "Anonym",
		"Unknown date": "Unbekanntes Datum",

		"New {KOFI_NAME} Support Received!": "Neue {KOFI_NAME} Spende erhalten!",
		"has subscribed to the":             "hat die",
		"tier!":                             "Stufe abonniert!",
		"Thanks for the support!":           "Vielen Dank für die Unterstützung!",
		"{KOFI_NAME} Support":               "{KOFI_NAME} Support",
	},
	"fr": {
		"Donation":     "Don",
		"Subscription": "Abonnement",
		"Commission":   "Commission",
		"Shop Order":   "Commande",

		"From":            "De",
		"Type":            "Type",
		"Amount":          "Montant",
		"Membership Tier": "Niveau d'adhésion",
		"First Payment":   "Premier paiement",
		"Date":            "Date",
		"Transaction ID":  "ID de transaction",
		"Message":         "Message",

		"Yes":          "Oui",
		"Renewal":      "Renouvellement",
		"Anonymous":    "Anonyme",
		"Unknown date": "Date inconnue",

		"New {KOFI_NAME} Support Received!": "Nouveau soutien {KOFI_NAME} reçu !",
		"has subscribed to the":             "a souscrit au niveau",
		"tier!":                             "!",
		"Thanks for the support!":           "Merci pour le soutien !",
		"{KOFI_NAME} Support":               "Support {KOFI_NAME}",
	},
}

// Translate looks key up in locale, then in DefaultLocale, and finally returns
// the key itself. Every {NAME} placeholder is replaced with params[NAME].
func Translate(locale, key string, params map[string]string) string {
	text, ok := lookup(strings.ToLower(locale), key)
	if !ok {
		text, ok = lookup(DefaultLocale, key)
	}
	if !ok {
		text = key
	}

	if len(params) == 0 {
		return text
	}
	pairs := make([]string, 0, 2*len(params))
	for _, name := range slices.Sorted(maps.Keys(params)) {
		pairs = append(pairs, "{"+name+"}", params[name])
	}
	return strings.NewReplacer(pairs...).Replace(text)
}

func lookup(locale, key string) (string, bool) {
	table, ok := translations[locale]
	if !ok {
		return "", false
	}
	text, ok := table[key]
	if !ok || text == "" {
		return "", false
	}
	return text, true
}

var (
	supportedTags = []language.Tag{language.English, language.German, language.French}
	matcher       = language.NewMatcher(supportedTags)
)

// ResolveLocale normalizes a configured language code such as "DE", "de-AT"
// or "fr_FR" to one of the supported base locales. Codes that match nothing
// are lower-cased and returned as is, so lookups fall back to DefaultLocale.
func ResolveLocale(code string) string {
	code = strings.TrimSpace(code)
	if code == "" {
		return DefaultLocale
	}

	tag, err := language.Parse(strings.ReplaceAll(code, "_", "-"))
	if err != nil {
		return strings.ToLower(code)
	}

	_, idx, confidence := matcher.Match(tag)
	if confidence == language.No {
		return strings.ToLower(code)
	}

	base, _ := supportedTags[idx].Base()
	return base.String()
}
