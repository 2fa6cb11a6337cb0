// Package contract re-exports the use-case request and response types that
// presentation layers (the CLI, JSON output) depend on.
package contract

import "github.com/alexanderramin/relplan/internal/app"

type ErrorCode = app.ErrorCode

const (
	ErrReleaseNotFound  ErrorCode = app.ErrReleaseNotFound
	ErrAmbiguousRelease ErrorCode = app.ErrAmbiguousRelease
	ErrNoReleases       ErrorCode = app.ErrNoReleases
	ErrTicketNotFound   ErrorCode = app.ErrTicketNotFound
	ErrMemberNotFound   ErrorCode = app.ErrMemberNotFound
	ErrInvalidRange     ErrorCode = app.ErrInvalidRange
	ErrInvalidInput     ErrorCode = app.ErrInvalidInput
	ErrReleaseExists    ErrorCode = app.ErrReleaseExists
)

type UseCaseError = app.UseCaseError

type ReleaseSummary = app.ReleaseSummary

type ImportOptions = app.ImportOptions

type ImportResult = app.ImportResult
