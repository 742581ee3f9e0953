package logger

import (
	"log/slog"
	"os"
	"sync"
)

var (
	loggerInstance *slog.Logger
	once           sync.Once
)

// GetLogger returns a singleton slog.Logger that logs to the console
func GetLogger() *slog.Logger {
	once.Do(func() {
		handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})

		loggerInstance = slog.New(handler)
	})

	return loggerInstance
}
