// Package clipboard copies text to the system clipboard through the platform's command-line utility (pbcopy, clip.exe, wl-copy, xclip, or xsel).
package clipboard

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
)

// ErrUnavailable indicates that no clipboard utility was found.
var ErrUnavailable = errors.New("clipboard unavailable")

// command is a copy utility invocation that reads the text on stdin.
type command struct {
	name string
	args []string
}

// Copier writes to the clipboard. Its zero value uses the running OS, exec.LookPath, and os.Getenv.
type Copier struct {
	GOOS     string
	LookPath func(string) (string, error)
	Getenv   func(string) string
}

func (c Copier) goos() string {
	if c.GOOS != "" {
		return c.GOOS
	}
	return runtime.GOOS
}

func (c Copier) lookPath(name string) bool {
	lp := c.LookPath
	if lp == nil {
		lp = exec.LookPath
	}
	_, err := lp(name)
	return err == nil
}

func (c Copier) getenv(k string) string {
	if c.Getenv == nil {
		return os.Getenv(k)
	}
	return c.Getenv(k)
}

// selectCommand picks the copy utility for this system.
func (c Copier) selectCommand() (command, error) {
	var candidates []command
	switch c.goos() {
	case "darwin":
		candidates = []command{{name: "pbcopy"}}
	case "windows":
		candidates = []command{{name: "clip.exe"}}
	default:
		if c.getenv("WAYLAND_DISPLAY") != "" {
			candidates = append(candidates, command{name: "wl-copy"})
		}
		candidates = append(candidates,
			command{name: "xclip", args: []string{"-in", "-selection", "clipboard"}},
			command{name: "xsel", args: []string{"--input", "--clipboard"}},
		)
	}

	var names []string
	for _, cand := range candidates {
		if c.lookPath(cand.name) {
			return cand, nil
		}
		names = append(names, cand.name)
	}
	return command{}, fmt.Errorf("%w: none of %s found", ErrUnavailable, strings.Join(names, ", "))
}

// Available reports whether a copy utility exists.
func (c Copier) Available() bool {
	_, err := c.selectCommand()
	return err == nil
}

// Write replaces the clipboard contents with s.
func (c Copier) Write(ctx context.Context, s string) error {
	cmd, err := c.selectCommand()
	if err != nil {
		return err
	}
	return run(ctx, cmd, s)
}

func run(ctx context.Context, c command, s string) error {
	cmd := exec.CommandContext(ctx, c.name, c.args...)
	cmd.Stdin = strings.NewReader(s)
	if out, err := cmd.CombinedOutput(); err != nil {
		if msg := strings.TrimSpace(string(out)); msg != "" {
			return fmt.Errorf("%s: %w: %s", c.name, err, msg)
		}
		return fmt.Errorf("%s: %w", c.name, err)
	}
	return nil
}

// Write copies s using the default Copier.
func Write(ctx context.Context, s string) error {
	return Copier{}.Write(ctx, s)
}
