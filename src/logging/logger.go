package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var levelNames = map[string]zapcore.Level{
	"debug":   zapcore.DebugLevel,
	"info":    zapcore.InfoLevel,
	"warn":    zapcore.WarnLevel,
	"warning": zapcore.WarnLevel,
	"error":   zapcore.ErrorLevel,
}

var level = zap.NewAtomicLevelAt(zapcore.InfoLevel)

var baseLogger = newLogger(os.Stderr)

func newLogger(w io.Writer) *zap.SugaredLogger {
	enc := zap.NewDevelopmentEncoderConfig()
	enc.EncodeTime = zapcore.TimeEncoderOfLayout("2006/01/02 15:04:05.000000")
	enc.CallerKey = ""
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(enc), zapcore.AddSync(w), level)
	return zap.New(core).Sugar()
}

// SetOutput redirects all log output to w.
func SetOutput(w io.Writer) {
	baseLogger = newLogger(w)
}

// SetLogLevel parses and sets global log level. Unknown names are ignored.
func SetLogLevel(s string) {
	l, ok := levelNames[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return
	}
	level.SetLevel(l)
}

// ValidLevel reports whether s names a known level.
func ValidLevel(s string) bool {
	_, ok := levelNames[strings.ToLower(strings.TrimSpace(s))]
	return ok
}

// GetLogLevel returns current global log level.
func GetLogLevel() zapcore.Level { return level.Level() }

func logf(l zapcore.Level, format string, args ...interface{}) {
	if !level.Enabled(l) {
		return
	}
	// Only format when there are args; raw lines from input files may contain '%'.
	if len(args) == 0 {
		baseLogger.Log(l, format)
		return
	}
	baseLogger.Logf(l, format, args...)
}

// Public helpers
func Debugf(format string, a ...interface{}) { logf(zapcore.DebugLevel, format, a...) }
func Infof(format string, a ...interface{})  { logf(zapcore.InfoLevel, format, a...) }
func Warnf(format string, a ...interface{})  { logf(zapcore.WarnLevel, format, a...) }
func Errorf(format string, a ...interface{}) { logf(zapcore.ErrorLevel, format, a...) }

// Sync flushes buffered output.
func Sync() { _ = baseLogger.Sync() }

// Timing helper for phases.
func TimeTrack(start time.Time, label string) {
	Debugf("%s took %s", label, time.Since(start))
}
