package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/muesli/termenv"
	"go.trai.ch/cwaimg/internal/ui/output"
	"go.trai.ch/cwaimg/internal/ui/style"
)

// PrettyHandler is a slog.Handler that writes one colored line per record.
// Warnings and errors carry an icon prefix.
type PrettyHandler struct {
	out   *termenv.Output
	level slog.Leveler
	// attrs holds the rendered " key=value" pairs added with WithAttrs.
	attrs string
	// prefix is the dotted group path applied to later keys.
	prefix string
}

// NewPrettyHandler creates a PrettyHandler writing to w, or to stderr when w is nil.
func NewPrettyHandler(w io.Writer, opts *slog.HandlerOptions) *PrettyHandler {
	if w == nil {
		w = os.Stderr
	}
	h := &PrettyHandler{out: output.New(w), level: slog.LevelInfo}
	if opts != nil && opts.Level != nil {
		h.level = opts.Level
	}
	return h
}

// Enabled reports whether the handler handles records at the given level.
func (h *PrettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle writes r as a single line.
//
//nolint:gocritic // slog.Handler interface requires slog.Record by value
func (h *PrettyHandler) Handle(_ context.Context, r slog.Record) error {
	icon, color := decoration(r.Level)

	var line strings.Builder
	line.WriteString(icon)
	line.WriteString(r.Message)
	line.WriteString(h.attrs)
	r.Attrs(func(a slog.Attr) bool {
		writeAttr(&line, h.prefix, a)
		return true
	})

	_, err := h.out.WriteString(h.out.String(line.String()).Foreground(color).String() + "\n")
	return err
}

// WithAttrs returns a copy of h that renders attrs on every record.
func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	var rendered strings.Builder
	rendered.WriteString(h.attrs)
	for _, a := range attrs {
		writeAttr(&rendered, h.prefix, a)
	}
	clone := *h
	clone.attrs = rendered.String()
	return &clone
}

// WithGroup returns a copy of h that qualifies later keys with name.
func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	clone.prefix += name + "."
	return &clone
}

func decoration(level slog.Level) (string, termenv.Color) {
	switch {
	case level >= slog.LevelError:
		return style.Cross + " ", termenv.RGBColor(string(style.Red))
	case level >= slog.LevelWarn:
		return style.Warning + " ", termenv.RGBColor(string(style.Yellow))
	case level < slog.LevelInfo:
		return style.Dot + " ", termenv.RGBColor(string(style.Slate))
	default:
		return "", termenv.RGBColor(string(style.Iris))
	}
}

func writeAttr(b *strings.Builder, prefix string, a slog.Attr) {
	if a.Equal(slog.Attr{}) {
		return
	}
	v := a.Value.Resolve()
	if v.Kind() == slog.KindGroup {
		if a.Key != "" {
			prefix += a.Key + "."
		}
		for _, member := range v.Group() {
			writeAttr(b, prefix, member)
		}
		return
	}
	b.WriteString(" " + prefix + a.Key + "=" + v.String())
}
