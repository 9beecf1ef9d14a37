package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// DefaultDir is where InitLogger writes log files
const DefaultDir = "logs"

// InitLogger initializes a zap logger that writes to stdout and to a JSON
// log file under logs/ named after env
func InitLogger(env string) (*zap.Logger, error) {
	return NewLogger(env, DefaultDir, os.Stdout)
}

// NewLogger builds a logger with a colored Info console core writing to
// console and a Debug JSON core writing to <dir>/<env>_<timestamp>.log
func NewLogger(env, dir string, console io.Writer) (*zap.Logger, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create logs directory: %w", err)
	}

	logFile, err := os.OpenFile(logFilePath(dir, env, time.Now()), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	consoleEncoderConfig := zap.NewDevelopmentEncoderConfig()
	consoleEncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
	consoleEncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder

	fileEncoderConfig := zap.NewProductionEncoderConfig()
	fileEncoderConfig.TimeKey = "timestamp"
	fileEncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewTee(
		zapcore.NewCore(zapcore.NewConsoleEncoder(consoleEncoderConfig), zapcore.AddSync(console), zapcore.InfoLevel),
		zapcore.NewCore(zapcore.NewJSONEncoder(fileEncoderConfig), zapcore.AddSync(logFile), zapcore.DebugLevel),
	)

	logger := zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
	if env != "" {
		logger = logger.With(zap.String("env", env))
	}

	return logger, nil
}

func logFilePath(dir, env string, at time.Time) string {
	name := at.Format("2006-01-02_15-04-05") + ".log"
	if env != "" {
		name = env + "_" + name
	}
	return filepath.Join(dir, name)
}
