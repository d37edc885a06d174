package log

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

var (
	styleKey   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	styleStr   = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	styleNum   = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	styleTime  = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	styleTrue  = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	styleFalse = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))

	styleLevel = map[Level]lipgloss.Style{
		LevelTrace: lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
		LevelDebug: lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
		LevelInfo:  lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		LevelWarn:  lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		LevelError: lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	}
)

// prettyHandler renders colorized single-line text records.
type prettyHandler struct {
	opts       slog.HandlerOptions
	mu         *sync.Mutex
	w          io.Writer
	timeLayout string
	attrs      []slog.Attr
}

func newPrettyHandler(
	w io.Writer,
	opts *slog.HandlerOptions,
	timeLayout string,
) *prettyHandler {
	return &prettyHandler{
		opts:       *opts,
		mu:         &sync.Mutex{},
		w:          w,
		timeLayout: timeLayout,
	}
}

func (h *prettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.Level.Level()
}

func (h *prettyHandler) Handle(_ context.Context, r slog.Record) error {
	buf := new(bytes.Buffer)

	if !r.Time.IsZero() && h.timeLayout != "" {
		buf.WriteString(styleTime.Render(r.Time.Format(h.timeLayout)))
	}

	level := Level(r.Level)

	style, ok := styleLevel[level]
	if !ok {
		style = styleKey
	}

	writeSep(buf)
	buf.WriteString(style.Render(level.String()))

	if h.opts.AddSource {
		if src := r.Source(); src != nil {
			writeSep(buf)
			buf.WriteString(styleKey.Render(
				fmt.Sprintf("%s:%d", src.File, src.Line)))
		}
	}

	writeSep(buf)
	buf.WriteString(r.Message)

	for _, a := range h.attrs {
		h.writeAttr(buf, a)
	}

	r.Attrs(func(a slog.Attr) bool {
		h.writeAttr(buf, a)

		return true
	})

	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.w.Write(buf.Bytes())

	return err
}

func (h *prettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = append(h.attrs[:len(h.attrs):len(h.attrs)], attrs...)

	return &clone
}

func (h *prettyHandler) WithGroup(string) slog.Handler {
	// Groups are flattened in pretty output.
	return h
}

func writeSep(buf *bytes.Buffer) {
	if buf.Len() > 0 {
		buf.WriteByte(' ')
	}
}

func (h *prettyHandler) writeAttr(buf *bytes.Buffer, a slog.Attr) {
	v := a.Value.Resolve()

	if v.Kind() == slog.KindGroup {
		for _, member := range v.Group() {
			h.writeAttr(buf, member)
		}

		return
	}

	writeSep(buf)
	buf.WriteString(styleKey.Render(a.Key))
	buf.WriteByte('=')
	buf.WriteString(renderValue(v))
}

func renderValue(v slog.Value) string {
	switch v.Kind() {
	case slog.KindString:
		return styleStr.Render(v.String())

	case slog.KindInt64:
		return styleNum.Render(strconv.FormatInt(v.Int64(), 10))

	case slog.KindUint64:
		return styleNum.Render(strconv.FormatUint(v.Uint64(), 10))

	case slog.KindFloat64:
		return styleNum.Render(
			strconv.FormatFloat(v.Float64(), 'g', -1, 64))

	case slog.KindBool:
		if v.Bool() {
			return styleTrue.Render("true")
		}

		return styleFalse.Render("false")

	case slog.KindDuration:
		return styleNum.Render(v.Duration().String())

	case slog.KindTime:
		return styleTime.Render(v.Time().String())

	default:
		return styleStr.Render(v.String())
	}
}
