package mailfakes

import (
	"context"
	"net/http"
	"sync"

	"github.com/jrsteele09/go-mail-badge/mail"
)

// Response scripts one MailFolders answer. A non-zero Status returns a
// *mail.StatusError instead of Folders.
type Response struct {
	Status  int
	Folders []mail.MailFolder
	Err     error
}

// Request records one MailFolders call.
type Request struct {
	AccessToken   string
	AnchorMailbox string
}

// FakeMailAPI answers MailFolders from a queue. When the queue is empty it
// returns an empty listing.
type FakeMailAPI struct {
	lock       sync.Mutex
	responses  []Response
	requests   []Request
	Email      string
	ProfileErr error
	profiles   int
}

func NewFakeMailAPI() *FakeMailAPI {
	return &FakeMailAPI{Email: "jane@contoso.com"}
}

// Queue scripts the next MailFolders responses.
func (f *FakeMailAPI) Queue(responses ...Response) *FakeMailAPI {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.responses = append(f.responses, responses...)
	return f
}

// Requests returns the recorded MailFolders calls.
func (f *FakeMailAPI) Requests() []Request {
	f.lock.Lock()
	defer f.lock.Unlock()
	return append([]Request(nil), f.requests...)
}

// ProfileCalls returns how many times Profile was called.
func (f *FakeMailAPI) ProfileCalls() int {
	f.lock.Lock()
	defer f.lock.Unlock()
	return f.profiles
}

func (f *FakeMailAPI) MailFolders(ctx context.Context, accessToken, anchorMailbox string) ([]mail.MailFolder, error) {
	f.lock.Lock()
	defer f.lock.Unlock()

	f.requests = append(f.requests, Request{AccessToken: accessToken, AnchorMailbox: anchorMailbox})
	if len(f.responses) == 0 {
		return nil, nil
	}
	resp := f.responses[0]
	f.responses = f.responses[1:]

	if resp.Err != nil {
		return nil, resp.Err
	}
	if resp.Status != 0 && resp.Status != http.StatusOK {
		return nil, &mail.StatusError{StatusCode: resp.Status, URL: "/me/MailFolders", Body: http.StatusText(resp.Status)}
	}
	return resp.Folders, nil
}

func (f *FakeMailAPI) Profile(ctx context.Context, accessToken string) (*mail.Profile, error) {
	f.lock.Lock()
	defer f.lock.Unlock()

	f.profiles++
	if f.ProfileErr != nil {
		return nil, f.ProfileErr
	}
	return &mail.Profile{EmailAddress: f.Email}, nil
}

// Unread returns a listing whose unread total, Archive excluded, is n.
func Unread(n int) []mail.MailFolder {
	return []mail.MailFolder{
		{DisplayName: "Inbox", UnreadItemCount: n},
		{DisplayName: mail.ArchiveFolderName, UnreadItemCount: 40},
	}
}
