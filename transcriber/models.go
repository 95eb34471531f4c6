package transcriber

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ResolveModelPath turns a model size name ("base", "small.en") into the
// expected ggml file path under the user cache. Explicit paths pass through.
func ResolveModelPath(model string) string {
	if strings.ContainsAny(model, `/\`) || strings.HasSuffix(model, ".bin") {
		return model
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return model
	}
	return filepath.Join(home, ".cache", "dictate", "models", fmt.Sprintf("ggml-%s.bin", model))
}

type modelOption struct {
	name string
	note string
}

var knownModels = []modelOption{
	{"tiny", "fastest, lowest quality"},
	{"base", ""},
	{"small", ""},
	{"medium", ""},
	{"large", ""},
	{"large-v2", ""},
	{"large-v3", ""},
	{"large-v3-turbo", "default"},
	{"turbo", "alias for large-v3-turbo"},
}

// PrintModels writes the known whisper model names for -list-models.
// English-only .en variants exist for the smaller sizes.
func PrintModels(w io.Writer) {
	fmt.Fprintln(w, "Available model names:")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Whisper models (use the ggml file path with -model):")
	for _, m := range knownModels {
		if m.note != "" {
			fmt.Fprintf(w, "  %-16s [%s]\n", m.name, m.note)
		} else {
			fmt.Fprintf(w, "  %s\n", m.name)
		}
	}
	fmt.Fprintln(w, "  .en variants: tiny.en, base.en, small.en, medium.en")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Server models (with -server, passed through as-is):")
	fmt.Fprintln(w, "  Qwen/Qwen3-ASR-0.6B    [default] (fast, lightweight)")
	fmt.Fprintln(w, "  Qwen/Qwen3-ASR-1.7B              (better quality)")
}
