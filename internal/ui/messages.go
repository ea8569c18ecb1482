package ui

import "github.com/jrsteele09/go-mail-badge/notifier"

// CountMsg carries a new unread count.
type CountMsg struct {
	Count int
}

// StatusMsg carries the session status after a notifier event.
type StatusMsg struct {
	Status notifier.Status
}
