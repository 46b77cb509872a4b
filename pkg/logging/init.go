package logging

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/lmittmann/tint"
)

const (
	JSON = "json"
	Text = "text"
	Tint = "tint"
)

// Initialize installs the process-wide logger. The level comes from
// the root workflow's declaration, the handler from loggingType.
func Initialize(loggingType string, level slog.Level) (*slog.Logger, error) {
	var (
		logHandlerOptions = slog.HandlerOptions{
			AddSource: true,
			Level:     level,
		}
		logHandler slog.Handler
	)

	switch loggingType {
	case JSON:
		logHandler = slog.NewJSONHandler(os.Stdout, &logHandlerOptions)
	case Text:
		logHandler = slog.NewTextHandler(os.Stdout, &logHandlerOptions)
	case Tint:
		logHandler = tint.NewHandler(os.Stdout, &tint.Options{
			AddSource: logHandlerOptions.AddSource,
			Level:     logHandlerOptions.Level,
		})
	default:
		return nil, fmt.Errorf("unknown logging type: %s", loggingType)
	}

	logger := slog.New(logHandler)
	slog.SetDefault(logger)
	logger.Info("logging initialized", "logLevel", level)
	return logger, nil
}
