// Package logging adapts zap to the platz.Logger interface.
package logging

import (
	"fmt"
	"sort"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ZapLogger implements platz.Logger on top of a zap SugaredLogger.
type ZapLogger struct {
	logger *zap.SugaredLogger
}

// New wraps an existing sugared logger.
func New(logger *zap.SugaredLogger) *ZapLogger {
	return &ZapLogger{logger: logger}
}

// NewCLI builds a console logger writing to stderr. verbose enables debug
// level; otherwise only warnings and errors are emitted.
func NewCLI(verbose bool) (*ZapLogger, error) {
	config := zap.NewDevelopmentConfig()
	config.DisableStacktrace = true
	config.DisableCaller = !verbose
	config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder

	if verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	} else {
		config.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	}

	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}

	return New(logger.Sugar()), nil
}

// Debug logs at debug level.
func (l *ZapLogger) Debug(msg string, fields map[string]interface{}) {
	l.logger.Debugw(msg, keysAndValues(fields)...)
}

// Info logs at info level.
func (l *ZapLogger) Info(msg string, fields map[string]interface{}) {
	l.logger.Infow(msg, keysAndValues(fields)...)
}

// Warn logs at warn level.
func (l *ZapLogger) Warn(msg string, fields map[string]interface{}) {
	l.logger.Warnw(msg, keysAndValues(fields)...)
}

// Error logs at error level.
func (l *ZapLogger) Error(msg string, fields map[string]interface{}) {
	l.logger.Errorw(msg, keysAndValues(fields)...)
}

// Sync flushes buffered entries.
func (l *ZapLogger) Sync() error {
	return l.logger.Sync()
}

// keysAndValues flattens fields in key order so output is stable.
func keysAndValues(fields map[string]interface{}) []interface{} {
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	out := make([]interface{}, 0, len(fields)*2)
	for _, key := range keys {
		out = append(out, key, fields[key])
	}

	return out
}
