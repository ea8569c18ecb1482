package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/jrsteele09/go-mail-badge/badge"
	"github.com/jrsteele09/go-mail-badge/notifier"
)

// Clicker is implemented by *notifier.Notifier.
type Clicker interface {
	Click()
	Refresh()
}

// App is the root Bubble Tea model: the badge, the signed in user and the
// outcome of the last notifier event.
type App struct {
	appName   string
	clicker   Clicker
	count     int
	status    notifier.Status
	hasStatus bool
	width     int
}

// NewApp creates the root application model.
func NewApp(appName string, clicker Clicker) *App {
	return &App{
		appName: appName,
		clicker: clicker,
	}
}

func (a *App) Init() tea.Cmd {
	return nil
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, Keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, Keys.Click):
			a.clicker.Click()
		case key.Matches(msg, Keys.Refresh):
			a.clicker.Refresh()
		}
	case CountMsg:
		a.count = msg.Count
	case StatusMsg:
		a.status = msg.Status
		a.hasStatus = true
	}
	return a, nil
}

func (a *App) View() string {
	lines := []string{
		TitleStyle.Render(a.appName),
		"",
		a.badgeView(),
		a.userView(),
	}
	if status := a.statusView(); status != "" {
		lines = append(lines, status)
	}
	lines = append(lines, "", a.helpView())

	return BoxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (a *App) badgeView() string {
	text := badge.Text(a.count)
	if text == "" {
		return EmptyBadgeStyle.Render("no unread mail")
	}
	return BadgeStyle.Render(text) + " unread"
}

func (a *App) userView() string {
	if !a.status.Authorized {
		return MetaStyle.Render("Not signed in. Press enter to sign in.")
	}
	if a.status.User == "" {
		return "Signed in"
	}
	return "Signed in as " + UserStyle.Render(a.status.User)
}

func (a *App) statusView() string {
	if !a.hasStatus {
		return ""
	}
	if a.status.Err != nil {
		return ErrorStyle.Render("Last " + string(a.status.Event) + " failed: " + a.status.Err.Error())
	}
	return MetaStyle.Render("Last " + string(a.status.Event) + " at " + a.status.At.Format("15:04:05"))
}

func (a *App) helpView() string {
	parts := make([]string, 0, len(Keys.ShortHelp()))
	for _, b := range Keys.ShortHelp() {
		parts = append(parts, b.Help().Key+" "+b.Help().Desc)
	}
	return MetaStyle.Render(strings.Join(parts, "  "))
}
