package logging

import (
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// The TUI owns the terminal, so diagnostics go to a rotating file under
// the state directory.

func logPath() (string, error) {
	if xdgState := os.Getenv("XDG_STATE_HOME"); xdgState != "" {
		return filepath.Join(xdgState, "hue-scenes", "hue-scenes.log"), nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "state", "hue-scenes", "hue-scenes.log"), nil
}

// Setup configures the default logger to write to the application log file.
// The level comes from HUE_SCENES_LOG_LEVEL (default info).
func Setup() error {
	path, err := logPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	writer := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    5, // megabytes
		MaxBackups: 2,
	}

	logger := log.NewWithOptions(writer, log.Options{
		ReportTimestamp: true,
		Level:           levelFromEnv(),
	})
	log.SetDefault(logger)

	return nil
}

func levelFromEnv() log.Level {
	raw := os.Getenv("HUE_SCENES_LOG_LEVEL")
	if raw == "" {
		return log.InfoLevel
	}

	level, err := log.ParseLevel(raw)
	if err != nil {
		return log.InfoLevel
	}
	return level
}
