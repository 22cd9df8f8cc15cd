// Package logging provides structured logging for scrolldash.
//
// It wraps Go's log/slog with a JSON handler and a small set of context
// helpers. A dashboard session writes to {dir}/debug.log; the terminal UI
// owns stdout, so logging to stderr is only used by the headless commands.
//
// # Basic Usage
//
//	logger, err := logging.NewLogger("/path/to/logs", "INFO")
//	if err != nil {
//	    return err
//	}
//	defer logger.Close()
//
//	logger.Info("spreadsheet loaded", "records", 42)
//
// # Context Propagation
//
// Child loggers carry persistent attributes:
//
//	panelLogger := logger.WithComponent("autoscroll").WithPanel(2)
//	panelLogger.Debug("boundary reached", "offset", 200)
//
// Output:
//
//	{"time":"...","level":"DEBUG","msg":"boundary reached","component":"autoscroll","panel":2,"offset":200}
//
// # Testing
//
// Use [NopLogger] to discard all output.
package logging
