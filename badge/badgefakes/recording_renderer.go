package badgefakes

import (
	"sync"

	"github.com/jrsteele09/go-mail-badge/badge"
)

var _ badge.Renderer = (*RecordingRenderer)(nil)

// RecordingRenderer keeps every count it was given.
type RecordingRenderer struct {
	lock   sync.Mutex
	counts []int
}

func (r *RecordingRenderer) SetCount(count int) {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.counts = append(r.counts, count)
}

// Counts returns the rendered counts in order.
func (r *RecordingRenderer) Counts() []int {
	r.lock.Lock()
	defer r.lock.Unlock()
	return append([]int(nil), r.counts...)
}

// Text returns the badge label of the last count, or "" when nothing was rendered.
func (r *RecordingRenderer) Text() string {
	r.lock.Lock()
	defer r.lock.Unlock()
	if len(r.counts) == 0 {
		return ""
	}
	return badge.Text(r.counts[len(r.counts)-1])
}
