// Package kofi decodes the webhook requests sent by Ko-fi.
package kofi

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"kofi-relay/internal/domain/model"
)

// MaxRequestBodySize caps inbound webhook bodies.
const MaxRequestBodySize = 1 << 20 // 1 MB

var (
	// ErrNoData means the request carried no usable data field.
	ErrNoData = errors.New("no data provided")
	// ErrMalformedBody means the request body itself could not be read or decoded.
	ErrMalformedBody = errors.New("malformed request body")
)

// DecodeRequest extracts the event from an inbound webhook request. Ko-fi posts
// a form with the event as a JSON string in the data field; JSON bodies of the
// form {"data": {...}} or {"data": "{...}"} are accepted too.
func DecodeRequest(r *http.Request) (model.IncomingEvent, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

	switch mediaType {
	case "application/x-www-form-urlencoded", "multipart/form-data":
		return decodeForm(r, mediaType)
	default:
		return decodeJSON(r.Body)
	}
}

func decodeForm(r *http.Request, mediaType string) (model.IncomingEvent, error) {
	var err error
	if mediaType == "multipart/form-data" {
		err = r.ParseMultipartForm(MaxRequestBodySize)
	} else {
		err = r.ParseForm()
	}
	if err != nil {
		return model.IncomingEvent{}, fmt.Errorf("%w: %w", ErrMalformedBody, err)
	}

	data := r.PostFormValue("data")
	if strings.TrimSpace(data) == "" {
		return model.IncomingEvent{}, ErrNoData
	}
	return parseObject([]byte(data))
}

func decodeJSON(body io.Reader) (model.IncomingEvent, error) {
	raw, err := io.ReadAll(body)
	if err != nil {
		return model.IncomingEvent{}, fmt.Errorf("%w: %w", ErrMalformedBody, err)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return model.IncomingEvent{}, ErrNoData
	}

	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return model.IncomingEvent{}, fmt.Errorf("%w: %w", ErrMalformedBody, err)
	}

	return ParseData(envelope.Data)
}

// ParseData converts the raw data field into an event. The field may hold the
// event object directly or a JSON string containing it. null, false, 0 and ""
// count as no data.
func ParseData(raw json.RawMessage) (model.IncomingEvent, error) {
	raw = bytes.TrimSpace(raw)
	if isEmptyValue(raw) {
		return model.IncomingEvent{}, ErrNoData
	}

	switch raw[0] {
	case '"':
		var encoded string
		if err := json.Unmarshal(raw, &encoded); err != nil {
			return model.IncomingEvent{}, fmt.Errorf("decode data string: %w", err)
		}
		if strings.TrimSpace(encoded) == "" {
			return model.IncomingEvent{}, ErrNoData
		}
		return parseObject([]byte(encoded))
	case '{':
		return parseObject(raw)
	default:
		return model.IncomingEvent{}, fmt.Errorf("data must be a JSON object or string, got %s", truncate(raw, 32))
	}
}

func isEmptyValue(raw []byte) bool {
	switch string(raw) {
	case "", "null", "false":
		return true
	}
	if raw[0] == '-' || (raw[0] >= '0' && raw[0] <= '9') {
		n, err := strconv.ParseFloat(string(raw), 64)
		return err == nil && n == 0
	}
	return false
}

func parseObject(raw []byte) (model.IncomingEvent, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '{' {
		return model.IncomingEvent{}, fmt.Errorf("data must contain a JSON object, got %s", truncate(raw, 32))
	}

	var event model.IncomingEvent
	if err := json.Unmarshal(raw, &event); err != nil {
		return model.IncomingEvent{}, fmt.Errorf("decode event: %w", err)
	}
	return event, nil
}

func truncate(raw []byte, limit int) string {
	if len(raw) <= limit {
		return string(raw)
	}
	return string(raw[:limit]) + "..."
}
