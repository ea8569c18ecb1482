package ui_test

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jrsteele09/go-mail-badge/internal/ui"
	"github.com/jrsteele09/go-mail-badge/notifier"
	"github.com/stretchr/testify/require"
)

type fakeClicker struct {
	clicks    int
	refreshes int
}

func (f *fakeClicker) Click()   { f.clicks++ }
func (f *fakeClicker) Refresh() { f.refreshes++ }

type fakeSender struct {
	msgs []tea.Msg
}

func (f *fakeSender) Send(msg tea.Msg) { f.msgs = append(f.msgs, msg) }

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestApp_Keys(t *testing.T) {
	clicker := &fakeClicker{}
	app := ui.NewApp("Mail Badge", clicker)

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.Nil(t, cmd)
	require.Equal(t, 1, clicker.clicks)

	_, cmd = app.Update(runes("r"))
	require.Nil(t, cmd)
	require.Equal(t, 1, clicker.refreshes)

	_, cmd = app.Update(runes("x"))
	require.Nil(t, cmd)
	require.Equal(t, 1, clicker.clicks)
	require.Equal(t, 1, clicker.refreshes)

	_, cmd = app.Update(runes("q"))
	require.NotNil(t, cmd)
	require.Equal(t, tea.QuitMsg{}, cmd())
}

func TestApp_View(t *testing.T) {
	app := ui.NewApp("Mail Badge", &fakeClicker{})

	view := app.View()
	require.Contains(t, view, "Mail Badge")
	require.Contains(t, view, "no unread mail")
	require.Contains(t, view, "Not signed in")

	app.Update(ui.StatusMsg{Status: notifier.Status{
		Event:      notifier.EventPoll,
		Authorized: true,
		User:       "jane@contoso.com",
		At:         time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC),
	}})
	app.Update(ui.CountMsg{Count: 12})
	view = app.View()
	require.Contains(t, view, "9+")
	require.Contains(t, view, "jane@contoso.com")
	require.Contains(t, view, "09:30:00")

	app.Update(ui.CountMsg{Count: 3})
	view = app.View()
	require.NotContains(t, view, "9+")
	require.Contains(t, view, "unread")
	require.NotContains(t, view, "no unread mail")

	app.Update(ui.StatusMsg{Status: notifier.Status{
		Event: notifier.EventRefresh,
		Err:   errors.New("authorization failed"),
	}})
	view = app.View()
	require.Contains(t, view, "Last refresh failed: authorization failed")
	require.Contains(t, view, "Not signed in")
	// the badge keeps its last count
	require.NotContains(t, view, "no unread mail")
}

func TestProgramRenderer(t *testing.T) {
	renderer := &ui.ProgramRenderer{}
	renderer.SetCount(1)

	sender := &fakeSender{}
	renderer.Attach(sender)
	renderer.SetCount(5)
	renderer.SetStatus(notifier.Status{Event: notifier.EventClick, Authorized: true})

	require.Equal(t, []tea.Msg{
		ui.CountMsg{Count: 5},
		ui.StatusMsg{Status: notifier.Status{Event: notifier.EventClick, Authorized: true}},
	}, sender.msgs)
}
