package settings

import (
	"io"
	"log/slog"
)

// Logger builds the text logger used by the binaries.
func (s *Settings) Logger(w io.Writer) *slog.Logger {
	lvl, err := ParseLevel(s.LogLevel)
	if err != nil {
		lvl = slog.LevelInfo
	}
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		AddSource: lvl == slog.LevelDebug,
		Level:     lvl,
	})
	return slog.New(handler)
}
