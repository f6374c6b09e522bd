package focus

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeXdotool(outputs map[string]string, files map[string]string) *Xdotool {
	return &Xdotool{
		run: func(ctx context.Context, name string, args ...string) ([]byte, error) {
			out, ok := outputs[strings.Join(args, " ")]
			if !ok {
				return nil, errors.New("exit status 1")
			}
			return []byte(out), nil
		},
		readFile: func(path string) ([]byte, error) {
			data, ok := files[path]
			if !ok {
				return nil, os.ErrNotExist
			}
			return []byte(data), nil
		},
	}
}

func TestXdotool_ActiveWindow(t *testing.T) {
	x := fakeXdotool(
		map[string]string{
			"getactivewindow getwindowname": "README.md - Visual Studio Code\n",
			"getactivewindow getwindowpid":  "4242\n",
		},
		map[string]string{"/proc/4242/comm": "code\n"},
	)

	w, err := x.ActiveWindow(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Window{App: "code", Title: "README.md - Visual Studio Code"}, w)
}

func TestXdotool_EmptyTitleIsAllowed(t *testing.T) {
	x := fakeXdotool(
		map[string]string{
			"getactivewindow getwindowname": "\n",
			"getactivewindow getwindowpid":  "7",
		},
		map[string]string{"/proc/7/comm": "xterm\n"},
	)

	w, err := x.ActiveWindow(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "xterm", w.App)
	assert.Equal(t, "", w.Title)
}

func TestXdotool_NoWindow(t *testing.T) {
	tests := []struct {
		name    string
		outputs map[string]string
		files   map[string]string
	}{
		{"no focus", map[string]string{}, nil},
		{"no pid", map[string]string{"getactivewindow getwindowname": "x"}, nil},
		{"bad pid", map[string]string{"getactivewindow getwindowname": "x", "getactivewindow getwindowpid": "abc"}, nil},
		{"process gone", map[string]string{"getactivewindow getwindowname": "x", "getactivewindow getwindowpid": "9"}, nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := fakeXdotool(tc.outputs, tc.files).ActiveWindow(context.Background())
			assert.True(t, errors.Is(err, ErrNoWindow), "got %v", err)
		})
	}
}

func TestStatic(t *testing.T) {
	w, err := Static{App: "Terminal", Title: "zsh"}.ActiveWindow(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Window{App: "Terminal", Title: "zsh"}, w)

	_, err = Static{}.ActiveWindow(context.Background())
	assert.True(t, errors.Is(err, ErrNoWindow))
}

func TestNew(t *testing.T) {
	src, err := New("xdotool", "", "")
	require.NoError(t, err)
	assert.IsType(t, &Xdotool{}, src)

	src, err = New("static", "App", "Title")
	require.NoError(t, err)
	assert.Equal(t, Static{App: "App", Title: "Title"}, src)

	_, err = New("wayland", "", "")
	assert.Error(t, err)
}
