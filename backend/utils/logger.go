package utils

import (
	"log"
	"strings"

	"go.uber.org/zap"
)

// Logger is the application logger: a sugared zap logger with a key/value API.
type Logger struct {
	sugar *zap.SugaredLogger
}

// InitLogger builds a logger for the given environment. Production logs JSON,
// everything else logs human-readable console output.
func InitLogger(env string) (*Logger, error) {
	var cfg zap.Config
	switch strings.ToLower(env) {
	case "prod", "production":
		cfg = zap.NewProductionConfig()
	default:
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.InitialFields = map[string]interface{}{"app": "signlearn"}

	zl, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return &Logger{sugar: zl.Sugar()}, nil
}

// NopLogger discards everything. Used by tests.
func NopLogger() *Logger {
	return &Logger{sugar: zap.NewNop().Sugar()}
}

func (l *Logger) Debug(msg string, keysAndValues ...interface{}) {
	l.sugar.Debugw(msg, redact(keysAndValues)...)
}

func (l *Logger) Info(msg string, keysAndValues ...interface{}) {
	l.sugar.Infow(msg, redact(keysAndValues)...)
}

func (l *Logger) Warn(msg string, keysAndValues ...interface{}) {
	l.sugar.Warnw(msg, redact(keysAndValues)...)
}

func (l *Logger) Error(msg string, keysAndValues ...interface{}) {
	l.sugar.Errorw(msg, redact(keysAndValues)...)
}

// StdLogger adapts the logger to the standard library interface expected by
// gorm's logger and similar writers.
func (l *Logger) StdLogger() *log.Logger {
	return zap.NewStdLog(l.sugar.Desugar())
}

func (l *Logger) Sync() {
	_ = l.sugar.Sync()
}

func redact(kv []interface{}) []interface{} {
	if len(kv) < 2 {
		return kv
	}
	out := make([]interface{}, len(kv))
	copy(out, kv)
	for i := 0; i+1 < len(out); i += 2 {
		key, ok := out[i].(string)
		if !ok {
			continue
		}
		if isSensitiveKey(strings.ToLower(key)) {
			out[i+1] = "[REDACTED]"
		}
	}
	return out
}

func isSensitiveKey(key string) bool {
	for _, s := range []string{"password", "token", "secret", "cookie", "authorization", "email"} {
		if strings.Contains(key, s) {
			return true
		}
	}
	return false
}
