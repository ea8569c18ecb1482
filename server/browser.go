package server

import (
	"os/exec"
	"runtime"

	"github.com/jrsteele09/go-mail-badge/auth"
	"github.com/pkg/errors"
)

// BrowserOpener opens URLs in the user's default browser.
type BrowserOpener struct{}

var _ auth.URLOpener = BrowserOpener{}

func (BrowserOpener) Open(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "linux", "freebsd", "openbsd":
		cmd = exec.Command("xdg-open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		return errors.Errorf("[BrowserOpener] unsupported platform %s", runtime.GOOS)
	}
	if err := cmd.Start(); err != nil {
		return errors.Wrap(err, "[BrowserOpener] starting browser")
	}
	go func() { _ = cmd.Wait() }()
	return nil
}
