// Package logger owns the process-wide zap logger. The terminal belongs to
// the UI, so every record goes to a file.
package logger

import (
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Job kinds tagged on background work records.
const (
	JobTranslate = "translate"
	JobExport    = "export"
)

var (
	L       *zap.Logger
	S       *zap.SugaredLogger
	logFile *os.File
)

// Init opens the log file (truncated per run) and installs L and S.
// The file is THAIPAD_LOG_FILE when set, otherwise thaipad.log in the
// thaipad config directory.
func Init(debug bool) error {
	path, err := logPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	logFile, err = os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}

	level := zapcore.InfoLevel
	if debug {
		level = zapcore.DebugLevel
	}
	install(logFile, level)
	S.Infow("logger initialized", "path", path, "debug", debug)
	return nil
}

func install(w io.Writer, level zapcore.Level) {
	enc := zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		NameKey:        "component",
		CallerKey:      "caller",
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeTime:     zapcore.TimeEncoderOfLayout("15:04:05.000"),
		EncodeDuration: zapcore.MillisDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
		EncodeName:     zapcore.FullNameEncoder,
	})
	core := zapcore.NewCore(enc, zapcore.AddSync(w), level)
	L = zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1), zap.AddStacktrace(zapcore.ErrorLevel)).
		Named("thaipad").
		With(zap.Int("pid", os.Getpid()))
	S = L.Sugar()
}

// Close flushes and closes the log file.
func Close() {
	if L != nil {
		_ = L.Sync()
	}
	if logFile != nil {
		_ = logFile.Close()
	}
}

func logPath() (string, error) {
	if v := os.Getenv("THAIPAD_LOG_FILE"); v != "" {
		return v, nil
	}
	dir := os.Getenv("THAIPAD_CONFIG_HOME")
	if dir == "" {
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			dir = filepath.Join(xdg, "thaipad")
		} else {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", err
			}
			dir = filepath.Join(home, ".config", "thaipad")
		}
	}
	return filepath.Join(dir, "thaipad.log"), nil
}

// Job returns a logger for one background job. Its records carry the job
// kind and the token the UI uses to match the result. Before Init it
// discards everything.
func Job(kind string, token uint64, keysAndValues ...interface{}) *zap.SugaredLogger {
	if S == nil {
		return zap.NewNop().Sugar()
	}
	return S.WithOptions(zap.AddCallerSkip(-1)).
		Named(kind).
		With(append([]interface{}{"job", kind, "token", token}, keysAndValues...)...)
}

// The helpers below are no-ops before Init.

func Debug(msg string, keysAndValues ...interface{}) {
	if S != nil {
		S.Debugw(msg, keysAndValues...)
	}
}

func Info(msg string, keysAndValues ...interface{}) {
	if S != nil {
		S.Infow(msg, keysAndValues...)
	}
}

func Warn(msg string, keysAndValues ...interface{}) {
	if S != nil {
		S.Warnw(msg, keysAndValues...)
	}
}

func Error(msg string, keysAndValues ...interface{}) {
	if S != nil {
		S.Errorw(msg, keysAndValues...)
	}
}
