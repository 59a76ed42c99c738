package model

import "time"

// NotificationField represents a titled section within a notification payload.
type NotificationField struct {
	Name   string
	Value  string
	Inline bool
}

// NotificationFooter is the small caption rendered below a notification.
type NotificationFooter struct {
	Text    string
	IconURL string
}

// Notification is a transport-agnostic message for downstream notifiers.
type Notification struct {
	Title       string
	Description string
	URL         string
	Color       int
	Thumbnail   string
	Footer      NotificationFooter
	Timestamp   time.Time
	Fields      []NotificationField
}

// AddField appends a display field, preserving insertion order.
func (n *Notification) AddField(name, value string, inline bool) {
	n.Fields = append(n.Fields, NotificationField{Name: name, Value: value, Inline: inline})
}
