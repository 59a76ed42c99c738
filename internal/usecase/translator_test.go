package usecase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kofi-relay/internal/domain/model"
)

var fixedNow = time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)

func newTestTranslator(locale string) *Translator {
	tr := NewTranslator(TranslatorConfig{
		Locale:      locale,
		DisplayName: "Ko-fi",
		LogoURL:     "https://example.com/logo.png",
		Version:     "1.2.3",
	})
	tr.now = func() time.Time { return fixedNow }
	return tr
}

func flagPtr(v bool) *model.Flag {
	f := model.Flag(v)
	return &f
}

func fieldMap(n model.Notification) map[string]string {
	out := make(map[string]string, len(n.Fields))
	for _, f := range n.Fields {
		out[f.Name] = f.Value
	}
	return out
}

func fieldNames(n model.Notification) []string {
	names := make([]string, 0, len(n.Fields))
	for _, f := range n.Fields {
		names = append(names, f.Name)
	}
	return names
}

func TestTranslate_Donation(t *testing.T) {
	tr := newTestTranslator("en")

	n := tr.Translate(model.IncomingEvent{
		Type:          "Donation",
		FromName:      "Ada",
		Amount:        "5.00",
		Currency:      "USD",
		TransactionID: "abc123",
	})

	assert.Equal(t, "☕ New Ko-fi Support Received!", n.Title)
	assert.Equal(t, "Thanks for the support! 💖", n.Description)
	assert.Equal(t, ColorBrandBlue, n.Color)
	assert.Equal(t, "https://ko-fi.com/", n.URL)
	assert.Equal(t, "https://example.com/logo.png", n.Thumbnail)
	assert.Equal(t, "Ko-fi Support | v1.2.3", n.Footer.Text)
	assert.Equal(t, "https://example.com/logo.png", n.Footer.IconURL)
	assert.Equal(t, fixedNow, n.Timestamp)

	assert.Equal(t, []string{"From", "Type", "Amount", "Transaction ID"}, fieldNames(n))
	fields := fieldMap(n)
	assert.Equal(t, "Ada", fields["From"])
	assert.Equal(t, "Donation", fields["Type"])
	assert.Equal(t, "5.00 USD", fields["Amount"])
	assert.Equal(t, "abc123", fields["Transaction ID"])

	require.Len(t, n.Fields, 4)
	assert.True(t, n.Fields[0].Inline)
	assert.True(t, n.Fields[2].Inline)
	assert.False(t, n.Fields[3].Inline)
}

func TestTranslate_EmptyEventOmitsOptionalFields(t *testing.T) {
	tr := newTestTranslator("en")

	var n model.Notification
	require.NotPanics(t, func() {
		n = tr.Translate(model.IncomingEvent{})
	})

	assert.Equal(t, "💖 New Ko-fi Support Received!", n.Title)
	assert.Equal(t, []string{"From", "Type"}, fieldNames(n))
	fields := fieldMap(n)
	assert.Equal(t, "Anonymous", fields["From"])
	assert.Equal(t, "Donation", fields["Type"])
	assert.Equal(t, ColorBrandBlue, n.Color)
}

func TestTranslate_AmountDefaultsToUSD(t *testing.T) {
	n := newTestTranslator("en").Translate(model.IncomingEvent{Amount: "3.00"})
	assert.Equal(t, "3.00 USD", fieldMap(n)["Amount"])
}

func TestTranslate_SubscriptionWithoutMessage(t *testing.T) {
	tr := newTestTranslator("en")

	n := tr.Translate(model.IncomingEvent{
		Type:                       "Subscription",
		FromName:                   "Grace",
		Amount:                     "10.00",
		Currency:                   "EUR",
		TierName:                   "Gold",
		IsSubscriptionPayment:      true,
		IsFirstSubscriptionPayment: flagPtr(true),
		Timestamp:                  "2022-08-21T13:04:30Z",
		TransactionID:              "tx-1",
	})

	assert.Equal(t, "🏆 New Ko-fi Support Received!", n.Title)
	assert.Equal(t, "**Grace** has subscribed to the Gold tier! 🎉", n.Description)
	assert.Equal(t, ColorGold, n.Color)
	assert.Equal(t,
		[]string{"From", "Type", "Amount", "Membership Tier", "First Payment", "Date", "Transaction ID"},
		fieldNames(n))

	fields := fieldMap(n)
	assert.Equal(t, "Gold", fields["Membership Tier"])
	assert.Equal(t, "Yes ✨", fields["First Payment"])
	assert.Equal(t, "Sunday, August 21, 2022 at 1:04 PM UTC", fields["Date"])
}

func TestTranslate_SubscriptionRenewalWithMessage(t *testing.T) {
	tr := newTestTranslator("en")

	n := tr.Translate(model.IncomingEvent{
		Type:                       "Subscription",
		Message:                    "Keep it up",
		IsFirstSubscriptionPayment: flagPtr(false),
	})

	assert.Equal(t, `"Keep it up"`, n.Description)
	fields := fieldMap(n)
	assert.Equal(t, "Renewal 🔄", fields["First Payment"])
	assert.Equal(t, "Keep it up", fields["Message"])
	assert.NotContains(t, fields, "Membership Tier")
}

func TestTranslate_SubscriptionWithoutTierSkipsBlank(t *testing.T) {
	n := newTestTranslator("en").Translate(model.IncomingEvent{Type: "Subscription"})
	assert.Equal(t, "**Anonymous** has subscribed to the tier! 🎉", n.Description)
	assert.NotContains(t, fieldMap(n), "First Payment")
}

func TestTranslate_DonationMessageIsNotRepeatedAsField(t *testing.T) {
	n := newTestTranslator("en").Translate(model.IncomingEvent{Type: "Donation", Message: "Great work"})

	assert.Equal(t, `"Great work"`, n.Description)
	assert.NotContains(t, fieldMap(n), "Message")
}

func TestTranslate_BlankMessageUsesDefaultDescription(t *testing.T) {
	n := newTestTranslator("en").Translate(model.IncomingEvent{Type: "Donation", Message: "   "})
	assert.Equal(t, "Thanks for the support! 💖", n.Description)
}

func TestTranslate_German(t *testing.T) {
	tr := newTestTranslator("de")

	n := tr.Translate(model.IncomingEvent{
		Type:                       "Subscription",
		TierName:                   "Silver",
		IsFirstSubscriptionPayment: flagPtr(false),
		Timestamp:                  "2022-08-21T13:04:30Z",
	})

	assert.Equal(t, "🏆 Neue Ko-fi Spende erhalten!", n.Title)
	assert.Equal(t, "**Anonym** hat die Silver Stufe abonniert! 🎉", n.Description)
	fields := fieldMap(n)
	assert.Equal(t, "Anonym", fields["Von"])
	assert.Equal(t, "Abo", fields["Typ"])
	assert.Equal(t, "Verlängerung 🔄", fields["Erste Zahlung"])
	assert.Equal(t, "Sonntag, 21. August 2022 um 13:04 UTC", fields["Datum"])
}

func TestTranslate_DateUsesConfiguredLocation(t *testing.T) {
	loc := time.FixedZone("CEST", 2*60*60)
	tr := NewTranslator(TranslatorConfig{Locale: "en", DisplayName: "Ko-fi", Location: loc})

	n := tr.Translate(model.IncomingEvent{Timestamp: "2022-08-21T13:04:30Z"})
	assert.Equal(t, "Sunday, August 21, 2022 at 3:04 PM CEST", fieldMap(n)["Date"])
}

func TestTranslate_MalformedTimestampIsShownRaw(t *testing.T) {
	tr := newTestTranslator("en")

	var n model.Notification
	require.NotPanics(t, func() {
		n = tr.Translate(model.IncomingEvent{Timestamp: "not-a-date"})
	})
	assert.Equal(t, "not-a-date", fieldMap(n)["Date"])

	n = tr.Translate(model.IncomingEvent{Timestamp: "   "})
	assert.Equal(t, "Unknown date", fieldMap(n)["Date"])
}

func TestTranslate_EventURL(t *testing.T) {
	n := newTestTranslator("en").Translate(model.IncomingEvent{URL: "https://ko-fi.com/Home/CoffeeShop?txid=1"})
	assert.Equal(t, "https://ko-fi.com/Home/CoffeeShop?txid=1", n.URL)
}

func TestIsSubscription(t *testing.T) {
	tests := []struct {
		name  string
		event model.IncomingEvent
		want  bool
	}{
		{name: "english label", event: model.IncomingEvent{Type: "Subscription"}, want: true},
		{name: "german label", event: model.IncomingEvent{Type: "Abo"}, want: true},
		{name: "french label", event: model.IncomingEvent{Type: "Abonnement"}, want: true},
		{name: "flag with any type", event: model.IncomingEvent{Type: "Donation", IsSubscriptionPayment: true}, want: true},
		{name: "flag without type", event: model.IncomingEvent{IsSubscriptionPayment: true}, want: true},
		{name: "donation", event: model.IncomingEvent{Type: "Donation"}, want: false},
		{name: "empty", event: model.IncomingEvent{}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsSubscription(tt.event))
		})
	}
}

func TestColor(t *testing.T) {
	tests := []struct {
		name  string
		event model.IncomingEvent
		want  int
	}{
		{name: "gold tier wins over type", event: model.IncomingEvent{Type: "Commission", TierName: "gold"}, want: ColorGold},
		{name: "tier is case-insensitive", event: model.IncomingEvent{TierName: "Bronze"}, want: ColorBronze},
		{name: "silver", event: model.IncomingEvent{TierName: "silver"}, want: ColorSilver},
		{name: "platinum", event: model.IncomingEvent{TierName: "platinum"}, want: ColorPlatinum},
		{name: "unknown tier", event: model.IncomingEvent{Type: "Subscription", TierName: "Diamond"}, want: ColorBrandBlue},
		{name: "donation", event: model.IncomingEvent{Type: "Donation"}, want: ColorBrandBlue},
		{name: "subscription", event: model.IncomingEvent{Type: "Subscription"}, want: ColorPurple},
		{name: "german subscription", event: model.IncomingEvent{Type: "abo"}, want: ColorPurple},
		{name: "commission", event: model.IncomingEvent{Type: "Commission"}, want: ColorPink},
		{name: "shop order", event: model.IncomingEvent{Type: "Shop Order"}, want: ColorGreen},
		{name: "french shop order", event: model.IncomingEvent{Type: "Commande"}, want: ColorGreen},
		{name: "unknown type", event: model.IncomingEvent{Type: "Tip"}, want: ColorBrandBlue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Color(tt.event))
		})
	}
}

func TestTypeEmoji(t *testing.T) {
	assert.Equal(t, "☕", TypeEmoji("Donation"))
	assert.Equal(t, "☕", TypeEmoji("spende"))
	assert.Equal(t, "🏆", TypeEmoji("Abo"))
	assert.Equal(t, "🎨", TypeEmoji("Auftrag"))
	assert.Equal(t, "🛍️", TypeEmoji("Shop Order"))
	assert.Equal(t, "🛍️", TypeEmoji("Bestellung"))
	assert.Equal(t, "💖", TypeEmoji("Tip"))
	assert.Equal(t, "💖", TypeEmoji(""))
}

func TestTestNotification(t *testing.T) {
	n := newTestTranslator("en").TestNotification()

	assert.Equal(t, "Ko-fi Test Message", n.Title)
	assert.Equal(t, "This is a test message from the webhook service v1.2.3", n.Description)
	assert.Equal(t, ColorBrandBlue, n.Color)
	assert.Empty(t, n.Fields)
}
