package repofakes

import (
	"errors"
	"sync"

	"github.com/jrsteele09/go-mail-badge/sessions"
)

var _ sessions.Repo = (*FakeSessionRepo)(nil)

// FakeSessionRepo keeps the session in memory and counts writes.
type FakeSessionRepo struct {
	session *sessions.Session
	saves   int
	saveErr error
	lock    sync.RWMutex
}

func NewFakeSessionRepo() *FakeSessionRepo {
	return &FakeSessionRepo{}
}

// NewFakeSessionRepoWith seeds the repo with a stored session.
func NewFakeSessionRepoWith(s *sessions.Session) *FakeSessionRepo {
	return &FakeSessionRepo{session: s.Clone()}
}

func (sr *FakeSessionRepo) Load() (*sessions.Session, error) {
	sr.lock.RLock()
	defer sr.lock.RUnlock()

	if sr.session == nil {
		return sessions.New(), nil
	}
	return sr.session.Clone(), nil
}

func (sr *FakeSessionRepo) Save(session *sessions.Session) error {
	if session == nil {
		return errors.New("session cannot be nil")
	}

	sr.lock.Lock()
	defer sr.lock.Unlock()

	if sr.saveErr != nil {
		return sr.saveErr
	}
	sr.session = session.Clone()
	sr.saves++
	return nil
}

// FailSaves makes every following Save return err.
func (sr *FakeSessionRepo) FailSaves(err error) {
	sr.lock.Lock()
	defer sr.lock.Unlock()
	sr.saveErr = err
}

// Saves returns how many successful Save calls were made.
func (sr *FakeSessionRepo) Saves() int {
	sr.lock.RLock()
	defer sr.lock.RUnlock()
	return sr.saves
}
