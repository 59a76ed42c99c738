package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// EventTypeDonation is assumed when an event carries no type.
const EventTypeDonation = "Donation"

// IncomingEvent is a single payment notification received from Ko-fi.
// Every field is optional. Fields Ko-fi sends that are not listed here, such
// as shop_items and shipping, are ignored.
type IncomingEvent struct {
	VerificationToken          Text  `json:"verification_token"`
	MessageID                  Text  `json:"message_id"`
	Timestamp                  Text  `json:"timestamp"`
	Type                       Text  `json:"type"`
	IsPublic                   *Flag `json:"is_public"`
	FromName                   Text  `json:"from_name"`
	Message                    Text  `json:"message"`
	Amount                     Text  `json:"amount"`
	URL                        Text  `json:"url"`
	Email                      Text  `json:"email"`
	Currency                   Text  `json:"currency"`
	IsSubscriptionPayment      Flag  `json:"is_subscription_payment"`
	IsFirstSubscriptionPayment *Flag `json:"is_first_subscription_payment"`
	TransactionID              Text  `json:"kofi_transaction_id"`
	TierName                   Text  `json:"tier_name"`
}

// HasMessage reports whether the supporter left a non-blank message.
func (e IncomingEvent) HasMessage() bool {
	return strings.TrimSpace(string(e.Message)) != ""
}

// Text is a string field that also accepts JSON numbers and booleans.
// null decodes to the empty string.
type Text string

// UnmarshalJSON implements json.Unmarshaler.
func (t *Text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*t = ""
		return nil
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = Text(s)
	case '{', '[':
		return fmt.Errorf("cannot decode %s into text field", data)
	default:
		// numbers and booleans keep their literal form, e.g. 5.00 stays "5.00"
		*t = Text(data)
	}
	return nil
}

// Flag is a boolean field that also accepts "true"/"false" strings and 0/1.
// null and "" decode to false.
type Flag bool

// UnmarshalJSON implements json.Unmarshaler.
func (f *Flag) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = false
		return nil
	}

	literal := string(data)
	if data[0] == '"' {
		if err := json.Unmarshal(data, &literal); err != nil {
			return err
		}
		literal = strings.TrimSpace(literal)
		if literal == "" {
			*f = false
			return nil
		}
	}

	v, err := strconv.ParseBool(literal)
	if err != nil {
		return fmt.Errorf("cannot decode %s into flag field", data)
	}
	*f = Flag(v)
	return nil
}

// String returns the raw text.
func (t Text) String() string {
	return string(t)
}
