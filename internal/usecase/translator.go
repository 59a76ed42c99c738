package usecase

import (
	"strings"
	"time"

	"kofi-relay/internal/domain/model"
	"kofi-relay/internal/i18n"
)

// Embed colors.
const (
	ColorBrandBlue = 0x29ABE0
	ColorPurple    = 0x8A2BE2
	ColorPink      = 0xFF69B4
	ColorGreen     = 0x32CD32
	ColorBronze    = 0xCD7F32
	ColorSilver    = 0xC0C0C0
	ColorGold      = 0xFFD700
	ColorPlatinum  = 0xE5E4E2
)

const (
	defaultEventURL = "https://ko-fi.com/"
	defaultCurrency = "USD"
	fallbackEmoji   = "💖"
)

// typeCategory groups the labels a Ko-fi type may carry across locales.
type typeCategory struct {
	labels []string
	emoji  string
	color  int
}

var (
	donationCategory     = typeCategory{labels: []string{"donation", "spende", "don"}, emoji: "☕", color: ColorBrandBlue}
	subscriptionCategory = typeCategory{labels: []string{"subscription", "abo", "abonnement"}, emoji: "🏆", color: ColorPurple}
	commissionCategory   = typeCategory{labels: []string{"commission", "auftrag"}, emoji: "🎨", color: ColorPink}
	shopOrderCategory    = typeCategory{labels: []string{"shop order", "bestellung", "commande"}, emoji: "🛍️", color: ColorGreen}

	categories = []typeCategory{donationCategory, subscriptionCategory, commissionCategory, shopOrderCategory}
)

func (c typeCategory) matches(eventType string) bool {
	normalized := strings.ToLower(strings.TrimSpace(eventType))
	for _, label := range c.labels {
		if normalized == label {
			return true
		}
	}
	return false
}

func categoryOf(eventType string) (typeCategory, bool) {
	for _, c := range categories {
		if c.matches(eventType) {
			return c, true
		}
	}
	return typeCategory{}, false
}

var tierColors = map[string]int{
	"bronze":   ColorBronze,
	"silver":   ColorSilver,
	"gold":     ColorGold,
	"platinum": ColorPlatinum,
}

// TranslatorConfig controls how events are rendered.
type TranslatorConfig struct {
	Locale      string
	DisplayName string
	LogoURL     string
	Version     string
	Location    *time.Location
}

// Translator maps Ko-fi events to Discord-ready notifications.
type Translator struct {
	cfg TranslatorConfig
	now func() time.Time
}

// NewTranslator constructs a Translator. A nil Location means UTC.
func NewTranslator(cfg TranslatorConfig) *Translator {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.Locale == "" {
		cfg.Locale = i18n.DefaultLocale
	}
	return &Translator{cfg: cfg, now: time.Now}
}

func (t *Translator) text(key string) string {
	return i18n.Translate(t.cfg.Locale, key, map[string]string{
		"KOFI_NAME": t.cfg.DisplayName,
		"VERSION":   t.cfg.Version,
	})
}

// IsSubscription reports whether the event belongs to a recurring membership.
func IsSubscription(event model.IncomingEvent) bool {
	return subscriptionCategory.matches(event.Type.String()) || bool(event.IsSubscriptionPayment)
}

// TypeEmoji picks the emoji shown in front of the title.
func TypeEmoji(eventType string) string {
	if c, ok := categoryOf(eventType); ok {
		return c.emoji
	}
	return fallbackEmoji
}

// Color picks the accent color. A tier name takes priority over the event type.
func Color(event model.IncomingEvent) int {
	if tier := strings.TrimSpace(event.TierName.String()); tier != "" {
		if color, ok := tierColors[strings.ToLower(tier)]; ok {
			return color
		}
		return ColorBrandBlue
	}
	if c, ok := categoryOf(event.Type.String()); ok {
		return c.color
	}
	return ColorBrandBlue
}

// Translate builds the notification for a single event. It never fails.
func (t *Translator) Translate(event model.IncomingEvent) model.Notification {
	subscription := IsSubscription(event)

	eventType := event.Type.String()
	if eventType == "" {
		eventType = model.EventTypeDonation
	}

	fromName := event.FromName.String()
	if fromName == "" {
		fromName = t.text("Anonymous")
	}

	url := event.URL.String()
	if url == "" {
		url = defaultEventURL
	}

	n := model.Notification{
		Title:       TypeEmoji(event.Type.String()) + " " + t.text("New {KOFI_NAME} Support Received!"),
		Description: t.description(event, fromName, subscription),
		URL:         url,
		Color:       Color(event),
		Thumbnail:   t.cfg.LogoURL,
		Footer: model.NotificationFooter{
			Text:    t.text("{KOFI_NAME} Support") + " | v" + t.cfg.Version,
			IconURL: t.cfg.LogoURL,
		},
		Timestamp: t.now(),
	}

	n.AddField(t.text("From"), fromName, true)
	n.AddField(t.text("Type"), t.text(eventType), true)

	if amount := event.Amount.String(); amount != "" {
		currency := event.Currency.String()
		if currency == "" {
			currency = defaultCurrency
		}
		n.AddField(t.text("Amount"), amount+" "+currency, true)
	}

	if subscription {
		if tier := event.TierName.String(); tier != "" {
			n.AddField(t.text("Membership Tier"), tier, true)
		}
		if first := event.IsFirstSubscriptionPayment; first != nil {
			value := t.text("Renewal") + " 🔄"
			if *first {
				value = t.text("Yes") + " ✨"
			}
			n.AddField(t.text("First Payment"), value, true)
		}
	}

	if ts := event.Timestamp.String(); ts != "" {
		n.AddField(t.text("Date"), t.formatDate(ts), false)
	}

	if id := event.TransactionID.String(); id != "" {
		n.AddField(t.text("Transaction ID"), id, false)
	}

	if event.HasMessage() && subscription {
		n.AddField(t.text("Message"), event.Message.String(), false)
	}

	return n
}

func (t *Translator) description(event model.IncomingEvent, fromName string, subscription bool) string {
	if event.HasMessage() {
		return `"` + event.Message.String() + `"`
	}

	if subscription {
		parts := []string{"**" + fromName + "**", t.text("has subscribed to the")}
		if tier := strings.TrimSpace(event.TierName.String()); tier != "" {
			parts = append(parts, tier)
		}
		parts = append(parts, t.text("tier!"), "🎉")
		return strings.Join(parts, " ")
	}

	return t.text("Thanks for the support!") + " 💖"
}

// formatDate renders a Ko-fi timestamp in the configured locale and zone.
// Unparseable values are shown as received.
func (t *Translator) formatDate(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return t.text("Unknown date")
	}
	ts, err := i18n.ParseTimestamp(raw)
	if err != nil {
		return raw
	}
	return i18n.FormatLongDate(t.cfg.Locale, ts.In(t.cfg.Location))
}

// TestNotification builds the canned message used to check the Discord webhook.
func (t *Translator) TestNotification() model.Notification {
	return model.Notification{
		Title:       t.text("{KOFI_NAME} Test Message"),
		Description: t.text("This is a test message from the webhook service v{VERSION}"),
		Color:       ColorBrandBlue,
		Thumbnail:   t.cfg.LogoURL,
		Footer: model.NotificationFooter{
			Text:    t.text("{KOFI_NAME} Support") + " | v" + t.cfg.Version,
			IconURL: t.cfg.LogoURL,
		},
		Timestamp: t.now(),
	}
}
