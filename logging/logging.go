package logging

import (
	"io"
	"os"
	"time"

	"pngo/oops"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func init() {
	zerolog.ErrorStackMarshaler = oops.ZerologStackMarshaler
	log.Logger = log.Output(NewPrettyWriter(os.Stderr))
}

// Init sets the global level. Safe to call more than once.
func Init(level zerolog.Level) {
	zerolog.SetGlobalLevel(level)
}

func NewPrettyWriter(out io.Writer) zerolog.ConsoleWriter {
	return zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.Kitchen,
		NoColor:    out != os.Stderr,
	}
}

func GlobalLogger() *zerolog.Logger {
	return &log.Logger
}

func Debug() *zerolog.Event {
	return log.Debug().Timestamp().Stack()
}

func Info() *zerolog.Event {
	return log.Info().Timestamp().Stack()
}

func Error() *zerolog.Event {
	return log.Error().Timestamp().Stack()
}

func LogPanics(logger *zerolog.Logger) {
	if r := recover(); r != nil {
		LogPanicValue(logger, r, "recovered from panic")
	}
}

func LogPanicValue(logger *zerolog.Logger, val interface{}, msg string) {
	if logger == nil {
		logger = GlobalLogger()
	}

	if err, ok := val.(error); ok {
		l := logger.Error().Err(err)
		if _, ok := err.(*oops.Error); !ok {
			l = l.Interface(zerolog.ErrorStackFieldName, oops.Trace())
		}
		l.Msg(msg)
	} else {
		logger.Error().
			Interface("recovered", val).
			Interface(zerolog.ErrorStackFieldName, oops.Trace()).
			Msg(msg)
	}
}
