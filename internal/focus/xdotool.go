package focus

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
)

// Xdotool reads the focused X11 window with the xdotool binary. The app
// name is the executable name of the window's owning process.
type Xdotool struct {
	run      func(ctx context.Context, name string, args ...string) ([]byte, error)
	readFile func(path string) ([]byte, error)
}

// NewXdotool returns a Source that shells out to xdotool.
func NewXdotool() *Xdotool {
	return &Xdotool{
		run: func(ctx context.Context, name string, args ...string) ([]byte, error) {
			return exec.CommandContext(ctx, name, args...).Output()
		},
		readFile: os.ReadFile,
	}
}

// ActiveWindow implements Source.
func (x *Xdotool) ActiveWindow(ctx context.Context) (Window, error) {
	out, err := x.run(ctx, "xdotool", "getactivewindow", "getwindowname")
	if err != nil {
		// xdotool exits non-zero when no window has focus.
		return Window{}, fmt.Errorf("%w: %v", ErrNoWindow, err)
	}
	title := strings.TrimRight(string(out), "\r\n")

	out, err = x.run(ctx, "xdotool", "getactivewindow", "getwindowpid")
	if err != nil {
		return Window{}, fmt.Errorf("%w: window pid: %v", ErrNoWindow, err)
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(out)))
	if err != nil {
		return Window{}, fmt.Errorf("%w: bad pid %q", ErrNoWindow, strings.TrimSpace(string(out)))
	}

	comm, err := x.readFile(fmt.Sprintf("/proc/%d/comm", pid))
	if err != nil {
		return Window{}, fmt.Errorf("%w: process name: %v", ErrNoWindow, err)
	}
	app := strings.TrimSpace(string(comm))
	if app == "" {
		return Window{}, ErrNoWindow
	}

	return Window{App: app, Title: title}, nil
}
