package logging

import (
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
)

// InitLogger installs a tint handler on stderr so stdout stays free for
// report and CSV output.
func InitLogger(level slog.Level) {
	handler := tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
		AddSource:  level <= slog.LevelDebug,
	})

	slog.SetDefault(slog.New(handler))
}
