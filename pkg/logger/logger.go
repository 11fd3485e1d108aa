package logger

import (
	"context"
	"io"
	"os"

	"github.com/rs/zerolog"
)

// InitLogger installs a console logger as the default context logger.
// Unknown levels fall back to info.
func InitLogger(level string) *zerolog.Logger {
	return InitLoggerWithWriter(os.Stdout, level)
}

func InitLoggerWithWriter(out io.Writer, level string) *zerolog.Logger {
	consoleWriter := zerolog.ConsoleWriter{Out: out, TimeFormat: "15:04:05"}

	logger := zerolog.New(consoleWriter).
		With().
		Timestamp().
		Logger()

	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
	zerolog.DefaultContextLogger = &logger
	return &logger
}

func Logger(ctx context.Context) *zerolog.Logger {
	return zerolog.Ctx(ctx)
}
