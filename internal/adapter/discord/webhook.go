package discord

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"kofi-relay/internal/domain/model"
	"kofi-relay/internal/domain/ports"
)

// Discord embed limits.
const (
	maxTitle       = 256
	maxDescription = 4096
	maxFieldName   = 256
	maxFieldValue  = 1024
	maxFooter      = 2048
	maxFields      = 25
	maxUsername    = 80
)

// Identity is how the webhook presents itself in the channel.
type Identity struct {
	Username  string
	AvatarURL string
}

// Webhook is a Discord webhook notifier.
type Webhook struct {
	webhookURL string
	identity   Identity
	httpClient *http.Client
	logger     ports.Logger
}

var _ ports.Notifier = (*Webhook)(nil)

// NewWebhook creates a new Discord webhook notifier.
func NewWebhook(webhookURL string, identity Identity, timeout time.Duration, logger ports.Logger) *Webhook {
	return &Webhook{
		webhookURL: webhookURL,
		identity:   identity,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

type executePayload struct {
	Username  string  `json:"username,omitempty"`
	AvatarURL string  `json:"avatar_url,omitempty"`
	Embeds    []embed `json:"embeds"`
}

type embed struct {
	Title       string      `json:"title,omitempty"`
	Description string      `json:"description,omitempty"`
	URL         string      `json:"url,omitempty"`
	Color       int         `json:"color"`
	Timestamp   string      `json:"timestamp,omitempty"`
	Thumbnail   *image      `json:"thumbnail,omitempty"`
	Footer      *footer     `json:"footer,omitempty"`
	Fields      []embedItem `json:"fields,omitempty"`
}

type image struct {
	URL string `json:"url"`
}

type footer struct {
	Text    string `json:"text"`
	IconURL string `json:"icon_url,omitempty"`
}

type embedItem struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

// Send posts the notification to Discord. It makes exactly one request.
func (w *Webhook) Send(ctx context.Context, notification model.Notification) error {
	if w.webhookURL == "" {
		return fmt.Errorf("webhook URL is empty")
	}

	body, err := json.Marshal(w.buildPayload(notification))
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	w.logger.Debug(ctx, "posting notification to discord", "fields", len(notification.Fields), "bytes", len(body))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("perform request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		if msg := strings.TrimSpace(string(data)); msg != "" {
			return fmt.Errorf("discord webhook returned status %d: %s", resp.StatusCode, msg)
		}
		return fmt.Errorf("discord webhook returned status %d", resp.StatusCode)
	}

	w.logger.Info(ctx, "notification sent to discord", "status", resp.StatusCode)
	return nil
}

func (w *Webhook) buildPayload(n model.Notification) executePayload {
	e := embed{
		Title:       truncate(n.Title, maxTitle),
		Description: truncate(n.Description, maxDescription),
		URL:         n.URL,
		Color:       n.Color,
		Fields:      convertFields(n.Fields),
	}
	if !n.Timestamp.IsZero() {
		e.Timestamp = n.Timestamp.UTC().Format(time.RFC3339)
	}
	if n.Thumbnail != "" {
		e.Thumbnail = &image{URL: n.Thumbnail}
	}
	if n.Footer.Text != "" {
		e.Footer = &footer{Text: truncate(n.Footer.Text, maxFooter), IconURL: n.Footer.IconURL}
	}

	return executePayload{
		Username:  truncate(w.identity.Username, maxUsername),
		AvatarURL: w.identity.AvatarURL,
		Embeds:    []embed{e},
	}
}

func convertFields(fields []model.NotificationField) []embedItem {
	if len(fields) == 0 {
		return nil
	}
	if len(fields) > maxFields {
		fields = fields[:maxFields]
	}

	result := make([]embedItem, 0, len(fields))
	for _, field := range fields {
		result = append(result, embedItem{
			Name:   truncate(field.Name, maxFieldName),
			Value:  truncate(field.Value, maxFieldValue),
			Inline: field.Inline,
		})
	}
	return result
}

// truncate shortens value to at most limit runes, marking the cut with "...".
func truncate(value string, limit int) string {
	if utf8.RuneCountInString(value) <= limit {
		return value
	}
	runes := []rune(value)
	return strings.TrimSpace(string(runes[:limit-3])) + "..."
}
