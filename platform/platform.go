// Package platform reports what kind of machine and desktop session the
// process is running on. Detection happens once in main; the resulting Info
// value is carried through the configuration rather than cached globally.
package platform

import (
	"os"
	"runtime"
	"strings"
)

// Session identifies the windowing session type on Linux.
type Session string

const (
	SessionNone    Session = ""
	SessionX11     Session = "x11"
	SessionWayland Session = "wayland"
)

// Info is an immutable snapshot of the host platform.
type Info struct {
	OS      string // "linux", "darwin", "windows", ...
	ARM     bool
	Session Session
}

func (i Info) IsLinux() bool   { return i.OS == "linux" }
func (i Info) IsMacOS() bool   { return i.OS == "darwin" }
func (i Info) IsWindows() bool { return i.OS == "windows" }
func (i Info) IsWayland() bool { return i.Session == SessionWayland }
func (i Info) IsX11() bool     { return i.Session == SessionX11 }

// Detect inspects the runtime and environment. Call it once at startup.
func Detect() Info {
	return Info{
		OS:      runtime.GOOS,
		ARM:     strings.HasPrefix(runtime.GOARCH, "arm"),
		Session: detectSession(runtime.GOOS, os.Getenv),
	}
}

// detectSession resolves the Linux session type. XDG_SESSION_TYPE wins;
// WAYLAND_DISPLAY and DISPLAY are fallbacks for sessions that don't set it.
func detectSession(goos string, getenv func(string) string) Session {
	if goos != "linux" {
		return SessionNone
	}
	switch strings.ToLower(getenv("XDG_SESSION_TYPE")) {
	case "wayland":
		return SessionWayland
	case "x11":
		return SessionX11
	}
	if getenv("WAYLAND_DISPLAY") != "" {
		return SessionWayland
	}
	if getenv("DISPLAY") != "" {
		return SessionX11
	}
	return SessionNone
}
