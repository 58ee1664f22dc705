package logger

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/google/uuid"
	slogmulti "github.com/samber/slog-multi"
	slogsentry "github.com/samber/slog-sentry/v2"
)

// Log is the global logger instance
var Log *slog.Logger

type Options struct {
	// Development: text at debug level. Otherwise JSON at info level.
	Development bool
	// Verbose forces debug level outside development
	Verbose bool
	// SentryDSN optionally forwards errors to Sentry
	SentryDSN string
	// Output defaults to stderr so stdout stays free for drained rows
	Output io.Writer
}

// Init installs the global logger. Every record carries the run_id of this
// process so the logs of one extraction run can be told apart.
func Init(opts Options) string {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	level := slog.LevelInfo
	if opts.Development || opts.Verbose {
		level = slog.LevelDebug
	}

	var handlers []slog.Handler
	if opts.Development {
		handlers = append(handlers, slog.NewTextHandler(out, &slog.HandlerOptions{Level: level}))
	} else {
		handlers = append(handlers, slog.NewJSONHandler(out, &slog.HandlerOptions{Level: level}))
	}

	// Optional Sentry handler (sends errors only)
	if opts.SentryDSN != "" {
		err := sentry.Init(sentry.ClientOptions{
			Dsn: opts.SentryDSN,
		})
		if err == nil {
			handlers = append(handlers, slogsentry.Option{
				Level: slog.LevelError,
			}.NewSentryHandler())
		}
	}

	var handler slog.Handler
	if len(handlers) > 1 {
		handler = slogmulti.Fanout(handlers...)
	} else {
		handler = handlers[0]
	}

	runID := uuid.NewString()
	Log = slog.New(handler).With("run_id", runID)
	slog.SetDefault(Log)
	return runID
}

// Flush waits for buffered Sentry events; a no-op when Sentry is not configured.
func Flush() {
	sentry.Flush(2 * time.Second)
}
