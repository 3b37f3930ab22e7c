package logger

import (
	"io"
	"net"
	"os"
	"time"

	"github.com/rs/zerolog"
)

var log = zerolog.New(os.Stdout).With().Timestamp().Logger()

// Init configures the process-wide logger writing JSON lines to stdout.
func Init(serviceName string, level string) {
	log = newLogger(os.Stdout, serviceName, level)
}

// InitWithWriter is Init with a custom sink, used by tests to capture output.
func InitWithWriter(serviceName string, level string, w io.Writer) {
	log = newLogger(w, serviceName, level)
}

// InitLogstash tees log lines to a Logstash TCP input in addition to stdout.
func InitLogstash(addr string, serviceName string, level string) error {
	conn, err := net.DialTimeout("tcp", addr, 5*time.Second)
	if err != nil {
		return err
	}

	log = newLogger(zerolog.MultiLevelWriter(os.Stdout, conn), serviceName, level)
	return nil
}

func newLogger(w io.Writer, serviceName, level string) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339Nano

	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}

	return zerolog.New(w).
		Level(lvl).
		With().
		Timestamp().
		Str("service", serviceName).
		Logger()
}

// Setup is the common bootstrap of every cmd: LOG_LEVEL and the optional
// LOGSTASH_ADDR are read from the environment.
func Setup(serviceName string) {
	level := os.Getenv("LOG_LEVEL")
	if level == "" {
		level = "info"
	}
	Init(serviceName, level)

	if addr := os.Getenv("LOGSTASH_ADDR"); addr != "" {
		if err := InitLogstash(addr, serviceName, level); err != nil {
			Warn().Err(err).Msg("Failed to connect to Logstash, using stdout only")
		} else {
			Info().Str("logstash_addr", addr).Msg("Connected to Logstash")
		}
	}
}

func Info() *zerolog.Event {
	return log.Info()
}

func Error() *zerolog.Event {
	return log.Error()
}

func Debug() *zerolog.Event {
	return log.Debug()
}

func Warn() *zerolog.Event {
	return log.Warn()
}

func Fatal() *zerolog.Event {
	return log.Fatal()
}

func With() zerolog.Context {
	return log.With()
}

// Printf adapts the logger to printf style consumers such as cron and kafka-go.
func Printf(format string, args ...interface{}) {
	log.Debug().Msgf(format, args...)
}

// ErrorPrintf is Printf at error level.
func ErrorPrintf(format string, args ...interface{}) {
	log.Error().Msgf(format, args...)
}

// PrintfFunc lets a plain function satisfy Printf interfaces such as cron's.
type PrintfFunc func(format string, args ...interface{})

func (f PrintfFunc) Printf(format string, args ...interface{}) {
	f(format, args...)
}
