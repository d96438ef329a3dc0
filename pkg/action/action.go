// Package action implements what happens when the user picks a suggestion.
package action

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/log"
	"github.com/pkg/browser"
)

// Placeholder is replaced with the selected path when a URLTemplate expands.
const Placeholder = "{path}"

// URLTemplate derives a URL from a path. Every occurrence of {path} is
// replaced; a template without the placeholder is treated as a base the path
// is appended to.
type URLTemplate string

func (t URLTemplate) Expand(path string) string {
	if t == "" {
		return ""
	}
	s := string(t)
	if strings.Contains(s, Placeholder) {
		return strings.ReplaceAll(s, Placeholder, path)
	}
	return s + path
}

// Action runs once per user selection with the selected path.
type Action interface {
	Select(path string) error
}

// Func adapts a callback to the Action interface.
type Func func(path string) error

func (f Func) Select(path string) error {
	return f(path)
}

// Navigate opens the URL derived from the path. Open defaults to the system
// browser.
type Navigate struct {
	Template URLTemplate
	Open     func(url string) error
}

func (n Navigate) Select(path string) error {
	url := n.Template.Expand(path)
	if url == "" {
		return fmt.Errorf("navigate: no url template configured for %q", path)
	}
	open := n.Open
	if open == nil {
		open = browser.OpenURL
	}
	log.Debugf("Opening %s", url)
	if err := open(url); err != nil {
		return fmt.Errorf("navigate to %s: %w", url, err)
	}
	return nil
}

// Clipboard copies the path. Write defaults to the system clipboard.
type Clipboard struct {
	Write func(text string) error
}

func (c Clipboard) Select(path string) error {
	write := c.Write
	if write == nil {
		write = clipboard.WriteAll
	}
	if err := write(path); err != nil {
		return fmt.Errorf("copy %q to clipboard: %w", path, err)
	}
	return nil
}

// Log only reports the selection.
type Log struct {
	Logger *log.Logger
}

func (l Log) Select(path string) error {
	logger := l.Logger
	if logger == nil {
		logger = log.Default()
	}
	logger.Info("Selected", "path", path)
	return nil
}

// Selection modes accepted by FromMode.
const (
	ModeNavigate  = "navigate"
	ModeClipboard = "clipboard"
	ModeLog       = "log"
	ModeNone      = "none"
)

// FromMode builds the action for a configured mode. ModeNone and the empty
// mode return a nil Action.
func FromMode(mode string, tmpl URLTemplate) (Action, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case ModeNavigate:
		if tmpl == "" {
			return nil, fmt.Errorf("on_select %q needs a url_template", ModeNavigate)
		}
		return Navigate{Template: tmpl}, nil
	case ModeClipboard:
		return Clipboard{}, nil
	case ModeLog:
		return Log{}, nil
	case ModeNone, "":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown on_select mode %q", mode)
	}
}
