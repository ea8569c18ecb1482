package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/common-nighthawk/go-figure"
	"github.com/jrsteele09/go-mail-badge/auth"
	"github.com/jrsteele09/go-mail-badge/badge"
	"github.com/jrsteele09/go-mail-badge/internal/config"
	"github.com/jrsteele09/go-mail-badge/internal/ui"
	"github.com/jrsteele09/go-mail-badge/mail"
	"github.com/jrsteele09/go-mail-badge/notifier"
	"github.com/jrsteele09/go-mail-badge/scheduler"
	"github.com/jrsteele09/go-mail-badge/server"
	"github.com/jrsteele09/go-mail-badge/sessions/sqliterepo"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Bytes("stack", debug.Stack()).Msg("recovered from panic")
			returnError = errors.New("panic recovered")
		}
	}()

	c := config.New()
	headless := c.GetHeadless()
	if headless {
		displayAppname(c.GetAppName())
	}

	if err := os.MkdirAll(c.GetDataFolder(), 0o700); err != nil {
		return fmt.Errorf("creating data folder: %w", err)
	}
	logFile, err := setupLogging(c)
	if err != nil {
		return err
	}
	defer logFile.Close()

	repo, err := sqliterepo.Open(c.GetDatabasePath())
	if err != nil {
		return fmt.Errorf("opening session store: %w", err)
	}
	defer repo.Close()

	opener := server.BrowserOpener{}
	receiver, err := server.New(c, opener)
	if err != nil {
		return err
	}

	var (
		renderer        badge.Renderer
		programRenderer *ui.ProgramRenderer
	)
	if headless {
		renderer = &badge.LogRenderer{}
	} else {
		programRenderer = &ui.ProgramRenderer{}
		renderer = programRenderer
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	session, err := auth.NewAuthSession(ctx, c, auth.Dependencies{
		Sessions: repo,
		WebAuth:  receiver,
		Mail:     mail.NewClient(c.GetAPIEndpoint()),
		Badge:    renderer,
		Opener:   opener,
	})
	if err != nil {
		return err
	}

	var options []notifier.NotifierOption
	if programRenderer != nil {
		options = append(options, notifier.WithStatusReporter(programRenderer))
	}
	n, err := notifier.New(session, scheduler.NewAlarm(c.GetPollInterval()), options...)
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return receiver.ListenAndServe(gctx) })
	g.Go(func() error { return n.Run(gctx) })

	if headless {
		if !session.IsAuthorized() {
			log.Info().Msg("no stored session, starting sign in")
			n.Click()
		}
	} else {
		p := tea.NewProgram(ui.NewApp(c.GetAppName(), n), tea.WithAltScreen(), tea.WithContext(gctx))
		programRenderer.Attach(p)
		g.Go(func() error {
			_, err := p.Run()
			stop()
			if errors.Is(err, tea.ErrProgramKilled) {
				return nil
			}
			return err
		})
	}

	returnError = g.Wait()
	log.Info().Msg("mail badge stopped")
	return returnError
}

// setupLogging points the global logger at the console when headless and at
// the log file otherwise, since the terminal belongs to the UI.
func setupLogging(c config.Config) (io.Closer, error) {
	level, err := zerolog.ParseLevel(c.GetLogLevel())
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if c.GetHeadless() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
		return io.NopCloser(nil), nil
	}

	f, err := os.OpenFile(c.GetLogPath(), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	log.Logger = zerolog.New(f).With().Timestamp().Logger()
	return f, nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
