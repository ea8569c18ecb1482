package badge_test

import (
	"testing"

	"github.com/jrsteele09/go-mail-badge/badge"
	"github.com/stretchr/testify/require"
)

func TestText(t *testing.T) {
	tests := map[int]string{
		-1:  "",
		0:   "",
		1:   "1",
		7:   "7",
		9:   "9",
		10:  "9+",
		12:  "9+",
		250: "9+",
	}
	for count, expected := range tests {
		require.Equal(t, expected, badge.Text(count), count)
	}
}

func TestLogRenderer(t *testing.T) {
	r := &badge.LogRenderer{}
	require.Equal(t, "", r.Text())
	r.SetCount(12)
	require.Equal(t, "9+", r.Text())
	r.SetCount(0)
	require.Equal(t, "", r.Text())
}
