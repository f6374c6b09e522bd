// Package focus reports which application and window title currently have
// keyboard focus.
package focus

import (
	"context"
	"errors"
	"fmt"
)

// ErrNoWindow is returned when nothing has focus (locked screen, empty
// desktop) or the platform cannot tell.
var ErrNoWindow = errors.New("no focused window")

// Window is one observation of the focused window.
type Window struct {
	App   string
	Title string
}

// Source returns the currently focused window.
type Source interface {
	ActiveWindow(ctx context.Context) (Window, error)
}

// Static always reports the same window. An empty App reports ErrNoWindow.
type Static Window

// ActiveWindow implements Source.
func (s Static) ActiveWindow(ctx context.Context) (Window, error) {
	if s.App == "" {
		return Window{}, ErrNoWindow
	}
	return Window(s), nil
}

// New builds the Source named by provider.
func New(provider, staticApp, staticTitle string) (Source, error) {
	switch provider {
	case "", "xdotool":
		return NewXdotool(), nil
	case "static":
		return Static{App: staticApp, Title: staticTitle}, nil
	default:
		return nil, fmt.Errorf("unknown focus provider %q", provider)
	}
}
