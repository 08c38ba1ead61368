package config

import (
	"os"
	"path/filepath"
	"strings"
)

// ExpandPath expands a leading ~ to the home directory and makes path absolute.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	expanded := path
	if strings.HasPrefix(expanded, "~") {
		if home, _ := os.UserHomeDir(); home != "" {
			switch {
			case expanded == "~" || expanded == "~/" || expanded == `~\`:
				expanded = home
			case strings.HasPrefix(expanded, "~/") || strings.HasPrefix(expanded, `~\`):
				expanded = filepath.Join(home, expanded[2:])
			}
		}
	}
	if !filepath.IsAbs(expanded) {
		if abs, err := filepath.Abs(expanded); err == nil {
			expanded = abs
		}
	}
	return expanded
}

// resolveRelative interprets a db path from a config file relative to that file's directory.
func resolveRelative(path, dir string) string {
	switch {
	case path == "" || path == ":memory:":
		return path
	case strings.HasPrefix(path, "~") || filepath.IsAbs(path):
		return ExpandPath(path)
	}
	return filepath.Join(dir, path)
}

// findNearest searches upward from start (or the working directory) for a non-empty fileName. It returns "" if none is found.
func findNearest(fileName, start string) string {
	if start == "" {
		if wd, err := os.Getwd(); err == nil {
			start = wd
		}
	}
	if start == "" {
		return ""
	}
	if fi, err := os.Stat(start); err == nil && !fi.IsDir() {
		start = filepath.Dir(start)
	}
	for dir := start; ; dir = filepath.Dir(dir) {
		candidate := filepath.Join(dir, fileName)
		if data, err := os.ReadFile(candidate); err == nil && strings.TrimSpace(string(data)) != "" {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
	}
}
