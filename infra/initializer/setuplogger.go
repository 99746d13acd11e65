package initializer

import (
	"io"
	"log/slog"

	"github.com/amirasaad/bankcore/pkg/config"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

var levelStyles = []struct {
	level log.Level
	icon  string
	color lipgloss.AdaptiveColor
}{
	{log.ErrorLevel, "❌", lipgloss.AdaptiveColor{Light: "#FF6B6B", Dark: "#FF6B6B"}},
	{log.WarnLevel, "⚠️", lipgloss.AdaptiveColor{Light: "#EE6FF8", Dark: "#EE6FF8"}},
	{log.InfoLevel, "ℹ️", lipgloss.AdaptiveColor{Light: "#04B575", Dark: "#04B575"}},
	{log.DebugLevel, "🐛", lipgloss.AdaptiveColor{Light: "#7E57C2", Dark: "#7E57C2"}},
}

var keyColor = lipgloss.AdaptiveColor{Light: "#7E57C2", Dark: "#7E57C2"}

// setupLogger builds the process logger on a charmbracelet handler and
// installs it as the slog default.
func setupLogger(cfg *config.Log, w io.Writer) *slog.Logger {
	if cfg == nil {
		cfg = &config.Log{Format: "text"}
	}
	styles := log.DefaultStyles()
	for _, s := range levelStyles {
		styles.Levels[s.level] = lipgloss.NewStyle().
			SetString(s.icon).
			Bold(true).
			Padding(0, 1).
			Foreground(s.color)
	}
	styles.Keys["error"] = lipgloss.NewStyle().Foreground(levelStyles[0].color)
	styles.Values["error"] = lipgloss.NewStyle().Bold(true)
	for _, k := range []string{"reference", "userID", "transferID", "prefix", "caller"} {
		styles.Keys[k] = lipgloss.NewStyle().Foreground(keyColor)
		styles.Values[k] = lipgloss.NewStyle().Bold(true)
	}

	formatter := log.TextFormatter
	switch cfg.Format {
	case "json":
		formatter = log.JSONFormatter
	case "logfmt":
		formatter = log.LogfmtFormatter
	}

	handler := log.NewWithOptions(w, log.Options{
		ReportCaller:    true,
		ReportTimestamp: true,
		TimeFormat:      cfg.TimeFormat,
		Level:           log.Level(cfg.Level),
		Prefix:          cfg.Prefix,
		Formatter:       formatter,
	})
	handler.SetStyles(styles)

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}
