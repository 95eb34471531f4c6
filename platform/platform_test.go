package platform

import "testing"

func env(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestDetectSession(t *testing.T) {
	tests := []struct {
		name string
		goos string
		vars map[string]string
		want Session
	}{
		{"non-linux", "darwin", map[string]string{"XDG_SESSION_TYPE": "wayland"}, SessionNone},
		{"xdg wayland", "linux", map[string]string{"XDG_SESSION_TYPE": "wayland"}, SessionWayland},
		{"xdg x11", "linux", map[string]string{"XDG_SESSION_TYPE": "x11"}, SessionX11},
		{"xdg uppercase", "linux", map[string]string{"XDG_SESSION_TYPE": "Wayland"}, SessionWayland},
		{"wayland display fallback", "linux", map[string]string{"WAYLAND_DISPLAY": "wayland-0"}, SessionWayland},
		{"x display fallback", "linux", map[string]string{"DISPLAY": ":0"}, SessionX11},
		{"wayland display wins over x", "linux", map[string]string{"WAYLAND_DISPLAY": "wayland-0", "DISPLAY": ":0"}, SessionWayland},
		{"headless", "linux", map[string]string{}, SessionNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := detectSession(tt.goos, env(tt.vars)); got != tt.want {
				t.Errorf("detectSession() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDetectReturnsCurrentOS(t *testing.T) {
	info := Detect()
	if info.OS == "" {
		t.Fatal("Detect returned empty OS")
	}
	if info.IsWayland() && info.IsX11() {
		t.Fatal("session cannot be both wayland and x11")
	}
}
