// Package errors provides the classified error type used across crumbler.
//
// Errors carry a category (config, filesystem, convert, ...), a severity and
// structured context. The category decides the process exit code through
// CLIErrorAdapter; the severity decides whether a build aborts (fatal) or
// records the problem and moves on to the next file.
//
// Example usage:
//
//	err := errors.WrapError(readErr, errors.CategoryConfig, "page template unreadable").
//		Fatal().
//		WithContext("path", templatePath).
//		Build()
package errors
