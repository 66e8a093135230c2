// Package log provides a concurrency-safe simplified logging interface
// based on [log/slog].
//
// # Basic Usage
//
//	logger := log.Make(os.Stderr)
//	logger.Info("export complete", slog.String("model", "decay"))
//
// # Configuration
//
// Loggers are configured at creation time using functional options:
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithFormat(log.FormatText),
//		log.WithTimeLayout("kitchen"),
//		log.WithCaller(true))
//
// [Logger.Wrap] derives a logger with some options overridden, and
// [Logger.With] derives a logger that adds attributes to every record.
//
// # Package Logger
//
// The package-level functions ([Info], [DebugContext], ...) write to a
// default logger on [os.Stderr]. [Config] reconfigures it in place; the CLI
// calls it while parsing flags so that parse errors are already formatted
// as requested.
//
// # Levels
//
// Five levels are supported: [LevelTrace], [LevelDebug], [LevelInfo],
// [LevelWarn], and [LevelError]. Trace sits below slog's debug level and is
// rendered as "TRACE".
//
// # Output Formats
//
// [FormatJSON] (default) and [FormatText]. With pretty printing enabled
// (default), text records are colorized with lipgloss and JSON records are
// indented.
package log
