package cli

import (
	"errors"
	"io/fs"

	"github.com/yaklabco/gobbcode/internal/configloader"
	"github.com/yaklabco/gobbcode/pkg/fsutil"
	"github.com/yaklabco/gobbcode/pkg/runner"
)

// Exit codes for gobbcode.
const (
	// ExitSuccess indicates every input parsed.
	ExitSuccess = 0

	// ExitParseErrors indicates at least one input failed to parse, or
	// compared trees differ.
	ExitParseErrors = 1

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

var (
	// ErrParseFailed is returned when at least one input failed to parse.
	// It carries no message of its own; the failures were already reported.
	ErrParseFailed = errors.New("parse failed")

	// ErrTreesDiffer is returned by compare when the two trees differ.
	ErrTreesDiffer = errors.New("trees differ")

	// ErrInvalidUsage marks bad flag values and arguments.
	ErrInvalidUsage = errors.New("invalid usage")

	// ErrConfig marks configuration that could not be loaded.
	ErrConfig = errors.New("configuration error")
)

// ExitCodeFromResult determines the exit code for a parse run.
func ExitCodeFromResult(result *runner.Result) int {
	if result == nil || !result.HasFailures() {
		return ExitSuccess
	}
	return ExitParseErrors
}

// ExitCodeFromError maps an error returned by a command to its exit code.
func ExitCodeFromError(err error) int {
	var validationErr *configloader.ValidationError

	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrParseFailed), errors.Is(err, ErrTreesDiffer):
		return ExitParseErrors
	case errors.Is(err, ErrInvalidUsage):
		return ExitInvalidUsage
	case errors.Is(err, ErrConfig), errors.As(err, &validationErr):
		return ExitConfigError
	case errors.Is(err, fs.ErrNotExist),
		errors.Is(err, fs.ErrPermission),
		errors.Is(err, fsutil.ErrNotFound),
		errors.Is(err, fsutil.ErrPermissionDenied),
		errors.Is(err, fsutil.ErrIsDirectory):
		return ExitIOError
	default:
		return ExitInternalError
	}
}

// IsReported reports whether err only signals an exit code and has already
// been shown to the user.
func IsReported(err error) bool {
	return errors.Is(err, ErrParseFailed) || errors.Is(err, ErrTreesDiffer)
}
