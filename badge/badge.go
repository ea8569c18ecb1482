package badge

import (
	"strconv"
	"sync"

	"github.com/rs/zerolog/log"
)

const maxShownCount = 9

// Renderer displays an unread count.
type Renderer interface {
	SetCount(count int)
}

// Text returns the badge label for count: empty for zero, the number up to
// nine and "9+" above that.
func Text(count int) string {
	switch {
	case count <= 0:
		return ""
	case count > maxShownCount:
		return strconv.Itoa(maxShownCount) + "+"
	default:
		return strconv.Itoa(count)
	}
}

// LogRenderer writes the badge to the log. Used when running headless.
type LogRenderer struct {
	mu   sync.Mutex
	text string
}

var _ Renderer = (*LogRenderer)(nil)

func (l *LogRenderer) SetCount(count int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.text = Text(count)
	log.Info().Int("unread", count).Str("badge", l.text).Msg("badge updated")
}

// Text returns the last rendered label.
func (l *LogRenderer) Text() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.text
}
