package log

import (
	"io"
	"os"

	"github.com/op/go-logging"
)

type Level logging.Level

// The levels a build run actually logs at: per-kernel-dispatch detail
// (Debug, enabled with -vv) and per-phase milestones (Notice, the
// default). Info exists only so -v can ask for something between the
// two without turning on full kernel tracing.
const (
	Debug Level = iota
	Info
	Notice
)

// The logger format. cmd.Build puts the build's run ID into its own
// %{message} payloads, so the module tag stays short; lines logged by the
// lbvh package carry no run ID.
var format = logging.MustStringFormatter(
	`%{color}[%{time:15:04:05.000}] [%{module}] [%{level}]%{color:reset} %{message}`,
)

// The internal leveled logger backend
var leveledBackend logging.LeveledBackend

// Logger is the subset of go-logging's leveled logger this tool actually
// calls: Debugf for kernel-dispatch tracing and Noticef for build-phase
// and CLI-table output.
type Logger interface {
	Debugf(format string, v ...interface{})
	Noticef(format string, v ...interface{})
}

// Create a new named logger.
func New(name string) Logger {
	return logging.MustGetLogger(name)
}

// Override the backend output sink.
func SetSink(sink io.Writer) {
	backend := logging.NewLogBackend(sink, "", 0)
	backendWithFormatter := logging.NewBackendFormatter(backend, format)
	leveledBackend = logging.AddModuleLevel(backendWithFormatter)
	leveledBackend.SetLevel(logging.INFO, "")
	logging.SetBackend(leveledBackend)
}

// Set logger verbosity.
func SetLevel(level Level) {
	var loggerLevel logging.Level

	switch level {
	case Debug:
		loggerLevel = logging.DEBUG
	case Info:
		loggerLevel = logging.INFO
	case Notice:
		loggerLevel = logging.NOTICE
	}

	leveledBackend.SetLevel(loggerLevel, "")
}

func init() {
	SetSink(os.Stdout)
	SetLevel(Notice)
}
