package sessions

// Repo persists the session. Load returns New() when nothing has been stored.
// Save writes every field at once.
type Repo interface {
	Load() (*Session, error)
	Save(session *Session) error
}
