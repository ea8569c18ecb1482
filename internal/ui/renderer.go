package ui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jrsteele09/go-mail-badge/badge"
	"github.com/jrsteele09/go-mail-badge/notifier"
)

// Sender is implemented by *tea.Program.
type Sender interface {
	Send(msg tea.Msg)
}

// ProgramRenderer forwards badge counts and statuses to the running program.
// Messages sent before Attach are dropped.
type ProgramRenderer struct {
	lock   sync.RWMutex
	sender Sender
}

var (
	_ badge.Renderer          = (*ProgramRenderer)(nil)
	_ notifier.StatusReporter = (*ProgramRenderer)(nil)
)

// Attach sets the program messages are sent to.
func (r *ProgramRenderer) Attach(sender Sender) {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.sender = sender
}

func (r *ProgramRenderer) SetCount(count int) {
	r.send(CountMsg{Count: count})
}

func (r *ProgramRenderer) SetStatus(status notifier.Status) {
	r.send(StatusMsg{Status: status})
}

func (r *ProgramRenderer) send(msg tea.Msg) {
	r.lock.RLock()
	defer r.lock.RUnlock()
	if r.sender != nil {
		r.sender.Send(msg)
	}
}
