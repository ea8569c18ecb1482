package notifier

import (
	"context"
	"time"

	"github.com/jrsteele09/go-mail-badge/scheduler"
	"github.com/jrsteele09/go-mail-badge/sessions"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// Session is the part of auth.AuthSession the notifier drives.
type Session interface {
	FetchMessageCount(ctx context.Context) error
	Click(ctx context.Context) error
	Session() *sessions.Session
}

// Event names what woke the notifier.
type Event string

const (
	EventPoll    Event = "poll"
	EventClick   Event = "click"
	EventRefresh Event = "refresh"
)

// Status describes the session after an event was handled.
type Status struct {
	Event      Event
	Authorized bool
	User       string
	Err        error
	At         time.Time
}

// StatusReporter receives a Status after every handled event.
type StatusReporter interface {
	SetStatus(status Status)
}

// Notifier owns the single thread of control over the session. Alarm ticks,
// clicks and refresh requests are handled one at a time, so a
// reauthorization always finishes before the next session call starts.
type Notifier struct {
	session  Session
	alarm    *scheduler.Alarm
	reporter StatusReporter
	clicks   chan struct{}
	refresh  chan struct{}
	nowTime  func() time.Time
}

// NotifierOption defines a function type to modify the Notifier instance.
type NotifierOption func(*Notifier)

// WithStatusReporter sets where statuses are reported.
func WithStatusReporter(reporter StatusReporter) NotifierOption {
	return func(n *Notifier) {
		n.reporter = reporter
	}
}

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) NotifierOption {
	return func(n *Notifier) {
		n.nowTime = nowFunc
	}
}

func New(session Session, alarm *scheduler.Alarm, options ...NotifierOption) (*Notifier, error) {
	if session == nil {
		return nil, errors.New("[notifier.New] session is required")
	}
	if alarm == nil {
		return nil, errors.New("[notifier.New] alarm is required")
	}
	if alarm.Period <= 0 {
		return nil, errors.Errorf("[notifier.New] alarm period must be positive, got %s", alarm.Period)
	}

	n := &Notifier{
		session: session,
		alarm:   alarm,
		clicks:  make(chan struct{}, 1),
		refresh: make(chan struct{}, 1),
		nowTime: time.Now,
	}
	for _, opt := range options {
		opt(n)
	}
	return n, nil
}

// Click requests a badge click. Requests made while one is pending are dropped.
func (n *Notifier) Click() {
	select {
	case n.clicks <- struct{}{}:
	default:
	}
}

// Refresh requests an unread count fetch outside the alarm schedule.
func (n *Notifier) Refresh() {
	select {
	case n.refresh <- struct{}{}:
	default:
	}
}

// Run handles events until ctx is done. Session errors are logged and
// reported but never stop the loop.
func (n *Notifier) Run(ctx context.Context) error {
	ticks := n.alarm.Start(ctx)
	log.Info().Dur("period", n.alarm.Period).Msg("notifier started")

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("notifier stopped")
			return nil
		case _, ok := <-ticks:
			if !ok {
				return nil
			}
			n.handle(ctx, EventPoll, n.session.FetchMessageCount)
		case <-n.clicks:
			n.handle(ctx, EventClick, n.session.Click)
		case <-n.refresh:
			n.handle(ctx, EventRefresh, n.session.FetchMessageCount)
		}
	}
}

func (n *Notifier) handle(ctx context.Context, event Event, op func(context.Context) error) {
	err := op(ctx)
	if err != nil && ctx.Err() == nil {
		log.Error().Err(err).Str("event", string(event)).Msg("session operation failed")
	}
	n.report(event, err)
}

func (n *Notifier) report(event Event, err error) {
	if n.reporter == nil {
		return
	}
	s := n.session.Session()
	n.reporter.SetStatus(Status{
		Event:      event,
		Authorized: s.IsAuthorized,
		User:       s.User.SigninName,
		Err:        err,
		At:         n.nowTime(),
	})
}
