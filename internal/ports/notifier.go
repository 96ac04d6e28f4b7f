package ports

import "videovault/internal/domain"

// Notifier surfaces transient messages to the presentation layer
type Notifier interface {
	Notify(n domain.Notification)
}

// NotifierFunc adapts a function to Notifier
type NotifierFunc func(domain.Notification)

func (f NotifierFunc) Notify(n domain.Notification) { f(n) }

// NopNotifier drops every notification
type NopNotifier struct{}

func (NopNotifier) Notify(domain.Notification) {}
