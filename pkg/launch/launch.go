package launch

import (
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/atotto/clipboard"
)

// ErrCopied means no browser could be started but the URL is now on the
// clipboard.
var ErrCopied = errors.New("launch: browser unavailable, url copied to clipboard")

// Browser opens URLs with the platform's default handler.
type Browser struct {
	// Command overrides the platform handler, e.g. from $BROWSER.
	Command string
	// Start runs the handler without waiting for it. Tests replace it.
	Start func(name string, args ...string) error
	// Copy is the clipboard fallback. Tests replace it.
	Copy func(text string) error
}

// NewBrowser returns a Browser using the real handler and clipboard.
func NewBrowser(command string) *Browser {
	return &Browser{
		Command: strings.TrimSpace(command),
		Start:   startDetached,
		Copy:    clipboard.WriteAll,
	}
}

// Open launches url, falling back to copying it when no handler starts.
func (b *Browser) Open(url string) error {
	if strings.TrimSpace(url) == "" {
		return errors.New("launch: empty url")
	}
	name, args := b.handler(url)
	if name == "" {
		return b.fallback(url, fmt.Errorf("launch: unsupported platform %s", runtime.GOOS))
	}
	if err := b.Start(name, args...); err != nil {
		return b.fallback(url, fmt.Errorf("launch: %s: %w", name, err))
	}
	return nil
}

func (b *Browser) fallback(url string, cause error) error {
	if b.Copy == nil {
		return cause
	}
	if err := b.Copy(url); err != nil {
		return fmt.Errorf("%w (clipboard: %v)", cause, err)
	}
	return ErrCopied
}

func (b *Browser) handler(url string) (string, []string) {
	if b.Command != "" {
		return b.Command, []string{url}
	}
	switch runtime.GOOS {
	case "darwin":
		return "open", []string{url}
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", url}
	case "linux", "freebsd", "openbsd", "netbsd":
		return "xdg-open", []string{url}
	default:
		return "", nil
	}
}

// startDetached does not wait for the browser so the UI never blocks on it.
func startDetached(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() { _ = cmd.Wait() }()
	return nil
}
