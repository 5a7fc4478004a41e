package logger

import (
	"os"
	"strings"

	"github.com/rs/zerolog"
)

const (
	debugLvl = "debug"
	infoLvl  = "info"
	warnLvl  = "warn"
	errorLvl = "error"
)

type Logger interface {
	Debug(msg string, msgArgs ...any)
	Info(msg string, msgArgs ...any)
	Warn(msg string, msgArgs ...any)
	Error(msg string, msgArgs ...any)
}

// ZLBasedLogger - 'Zerolog' based implementation of Logger interface.
// Records go to stderr, stdout is reserved for the computed networks.
type ZLBasedLogger struct {
	logger *zerolog.Logger
}

// ValidLevel reports whether lvl names a known level.
func ValidLevel(lvl string) bool {
	switch strings.ToLower(lvl) {
	case debugLvl, infoLvl, warnLvl, errorLvl:
		return true
	}
	return false
}

func NewLogger(lvl string) *ZLBasedLogger {
	var level zerolog.Level

	switch strings.ToLower(lvl) {
	case errorLvl:
		level = zerolog.ErrorLevel
	case warnLvl:
		level = zerolog.WarnLevel
	case infoLvl:
		level = zerolog.InfoLevel
	case debugLvl:
		level = zerolog.DebugLevel
	default:
		level = zerolog.WarnLevel
	}

	logger := zerolog.New(os.Stderr).
		Level(level).
		With().
		Timestamp().
		CallerWithSkipFrameCount(3).
		Logger()

	return &ZLBasedLogger{
		logger: &logger,
	}
}

func (l *ZLBasedLogger) Debug(msg string, msgArgs ...any) {
	l.logger.Debug().Msgf(msg, msgArgs...)
}

func (l *ZLBasedLogger) Info(msg string, msgArgs ...any) {
	l.logger.Info().Msgf(msg, msgArgs...)
}

func (l *ZLBasedLogger) Warn(msg string, msgArgs ...any) {
	l.logger.Warn().Msgf(msg, msgArgs...)
}

func (l *ZLBasedLogger) Error(msg string, msgArgs ...any) {
	l.logger.Error().Msgf(msg, msgArgs...)
}
