// Package logging provides the logging facade used by bbgen.
//
// The Logger interface wraps the subset of log/slog the pipeline needs. Tests
// pass Discard() or a text logger over a buffer.
//
// bbgen reserves standard output for link directives, so New writes to
// whatever writer the caller supplies (standard error in cmd/bbgen):
//
//	logger, err := logging.NewText(os.Stderr, "debug")
//	if err != nil {
//	    return err
//	}
//	logger.Info(ctx, "probing pkg-config", "library", "barretenberg")
package logging
