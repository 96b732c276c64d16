package logger

import (
	"io"
	"os"
	"skillswap_backend/internal/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Log is a no-op until InitLogger runs, so packages can log from tests.
var Log = zap.NewNop()

// InitLogger replaces Log with a logger built from cfg.Log and server.mode.
func InitLogger(cfg *config.Config) {
	var file io.Writer
	if cfg.Log.File != "" {
		file = &lumberjack.Logger{
			Filename:   cfg.Log.File,
			MaxSize:    cfg.Log.MaxSizeMB,
			MaxBackups: cfg.Log.MaxBackups,
			MaxAge:     cfg.Log.MaxAgeDays,
			Compress:   true,
		}
	}
	Log = New(cfg.Log.Level, cfg.Server.Mode, os.Stdout, file)
}

// New builds a logger writing to console and, if file is non-nil, JSON lines
// to file. Console output is JSON in release mode and colored text otherwise.
func New(levelName, mode string, console, file io.Writer) *zap.Logger {
	level := Level(levelName, mode)

	consoleEncoder := zapcore.NewJSONEncoder(encoderConfig())
	if mode != "release" {
		devConfig := encoderConfig()
		devConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		consoleEncoder = zapcore.NewConsoleEncoder(devConfig)
	}

	cores := []zapcore.Core{
		zapcore.NewCore(consoleEncoder, zapcore.AddSync(console), level),
	}
	if file != nil {
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig()), zapcore.AddSync(file), level))
	}

	return zap.New(zapcore.NewTee(cores...),
		zap.AddCaller(),
		zap.AddStacktrace(zap.ErrorLevel),
		zap.Fields(zap.String("mode", mode)))
}

// Level parses name. An empty or unknown name means debug in debug mode and
// info in every other mode.
func Level(name, mode string) zapcore.Level {
	var level zapcore.Level
	if name != "" && level.UnmarshalText([]byte(name)) == nil {
		return level
	}
	if mode == "debug" {
		return zapcore.DebugLevel
	}
	return zapcore.InfoLevel
}

func encoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.SecondsDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
}
