package usecase

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"kofi-relay/internal/domain/model"
	"kofi-relay/internal/domain/ports"
)

// ErrInvalidToken is returned when the event does not carry the configured verification token.
var ErrInvalidToken = errors.New("invalid verification token")

// SupportRelay verifies incoming Ko-fi events and forwards them to the notifier.
type SupportRelay struct {
	translator *Translator
	notifier   ports.Notifier
	logger     ports.Logger
	token      string
}

// RelayConfig controls optional behaviours for the relay.
type RelayConfig struct {
	// VerificationToken enables token checks when non-empty.
	VerificationToken string
}

// NewSupportRelay constructs a SupportRelay use case.
func NewSupportRelay(translator *Translator, notifier ports.Notifier, logger ports.Logger, cfg RelayConfig) *SupportRelay {
	return &SupportRelay{
		translator: translator,
		notifier:   notifier,
		logger:     logger,
		token:      cfg.VerificationToken,
	}
}

// Verify checks the event token. Without a configured token every event passes.
func (r *SupportRelay) Verify(event model.IncomingEvent) error {
	if r.token == "" {
		return nil
	}
	if subtle.ConstantTimeCompare([]byte(event.VerificationToken.String()), []byte(r.token)) != 1 {
		return ErrInvalidToken
	}
	return nil
}

// Relay verifies, translates and sends a single event. The notifier is called
// at most once and never when verification fails.
func (r *SupportRelay) Relay(ctx context.Context, event model.IncomingEvent) error {
	if err := r.Verify(event); err != nil {
		r.logger.Warn(ctx, "rejected event with invalid verification token")
		return err
	}

	start := time.Now()
	deliveryID := uuid.NewString()
	r.logger.Info(ctx, "relaying support event",
		"delivery_id", deliveryID,
		"transaction_id", valueOr(event.TransactionID.String(), "unknown"),
		"type", valueOr(event.Type.String(), "unknown"),
		"amount", valueOr(event.Amount.String(), "unknown"),
	)

	notification := r.translator.Translate(event)
	if err := r.notifier.Send(ctx, notification); err != nil {
		r.logger.Error(ctx, "failed to send notification", "delivery_id", deliveryID, "error", err)
		return fmt.Errorf("send notification: %w", err)
	}

	r.logger.Info(ctx, "support event relayed", "delivery_id", deliveryID, "duration", time.Since(start))
	return nil
}

// SendTest sends the canned diagnostic notification.
func (r *SupportRelay) SendTest(ctx context.Context) error {
	if err := r.notifier.Send(ctx, r.translator.TestNotification()); err != nil {
		r.logger.Error(ctx, "failed to send test notification", "error", err)
		return fmt.Errorf("send test notification: %w", err)
	}
	r.logger.Info(ctx, "test notification sent")
	return nil
}

func valueOr(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
