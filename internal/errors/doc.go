// Package errors provides error handling conventions for the ci CLI.
//
// It re-exports the cockroachdb/errors helpers used across the module
// (New, Wrap, Wrapf, Is, As), defines sentinel errors for the failure
// conditions commands report, and the ExitError type that carries a
// process exit code and an optional suggestion back to main.
//
// # Sentinel Errors
//
//	if errors.Is(err, cierrors.ErrNotFound) {
//	    // handle not found case
//	}
//
// # Exit Codes
//
//   - ExitSuccess (0): Command completed successfully
//   - ExitUser (1): User-related error (invalid input, configuration, etc.)
//   - ExitSystem (2): System-related error (missing tools, subprocess failures)
//
// # ExitError
//
//	err := cierrors.NewUserError(cierrors.ErrInvalidConfig, "Run: ci config validate")
//	os.Exit(cierrors.ExitCode(err))
package errors
