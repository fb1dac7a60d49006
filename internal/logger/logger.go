// internal/logger/logger.go
//
// Structured JSON logger (Zap + Lumberjack).
//
// Context
// -------
// leadmodal writes lifecycle, anti-spam, and webhook events to one JSON log
// per day under `<dir>/YYYY-MM-DD.log`.  In an interactive TTY the same
// events are teed to stdout in console form.  Lumberjack handles rotation,
// compression, and retention.
//
// Usage
// -----
//
//	log, err := logger.New(logger.Options{Dir: filepath.Join(root, "logs"), Tee: isTTY()})
//	if err != nil { … }
//	log.Infow("visitor session created", "visitor", id)
//
// Notes
// -----
// • ISO-8601 timestamps, lowercase levels.
// • zap's own errors go to the same file sink.
package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/natefinch/lumberjack"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options configures New.
type Options struct {
	Dir   string // log directory; created when missing
	Tee   bool   // also write console output to stdout
	Level string // debug, info, warn, error; empty means info
}

// New returns a sugared logger writing JSON to Dir and installs it as the
// process-wide default via zap.ReplaceGlobals.
func New(o Options) (*zap.SugaredLogger, error) {
	if err := os.MkdirAll(o.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("log dir: %w", err)
	}
	level := zap.InfoLevel
	if o.Level != "" {
		if err := level.UnmarshalText([]byte(o.Level)); err != nil {
			return nil, fmt.Errorf("log level %q: %w", o.Level, err)
		}
	}

	sink := &lumberjack.Logger{
		Filename:   filepath.Join(o.Dir, time.Now().Format("2006-01-02")+".log"),
		MaxSize:    50, // MB
		MaxBackups: 7,
		MaxAge:     14, // days
		Compress:   true,
	}

	enc := zapcore.EncoderConfig{
		TimeKey:      "ts",
		LevelKey:     "level",
		MessageKey:   "msg",
		CallerKey:    "caller",
		EncodeTime:   zapcore.ISO8601TimeEncoder,
		EncodeLevel:  zapcore.LowercaseLevelEncoder,
		EncodeCaller: zapcore.ShortCallerEncoder,
	}

	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewJSONEncoder(enc), zapcore.AddSync(sink), level),
	}
	if o.Tee {
		cores = append(cores,
			zapcore.NewCore(zapcore.NewConsoleEncoder(enc), zapcore.AddSync(os.Stdout), level))
	}

	z := zap.New(
		zapcore.NewTee(cores...),
		zap.AddCaller(),
		zap.ErrorOutput(zapcore.AddSync(sink)),
	).Sugar()
	zap.ReplaceGlobals(z.Desugar())

	z.Infow("logger online", "tee", o.Tee, "level", level.String())
	return z, nil
}
