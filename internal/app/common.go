package app

import "time"

// DateLayout is the wire format of every calendar day in responses.
const DateLayout = "2006-01-02"

// FormatDate renders a calendar day, or "" for the zero time.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}

type ErrorCode string

const (
	ErrReleaseNotFound  ErrorCode = "RELEASE_NOT_FOUND"
	ErrAmbiguousRelease ErrorCode = "AMBIGUOUS_RELEASE"
	ErrNoReleases       ErrorCode = "NO_RELEASES"
	ErrTicketNotFound   ErrorCode = "TICKET_NOT_FOUND"
	ErrMemberNotFound   ErrorCode = "MEMBER_NOT_FOUND"
	ErrInvalidRange     ErrorCode = "INVALID_RANGE"
	ErrInvalidInput     ErrorCode = "INVALID_INPUT"
	ErrReleaseExists    ErrorCode = "RELEASE_EXISTS"
)

// UseCaseError is returned for failures the caller can fix by changing the
// request, as opposed to storage or internal errors.
type UseCaseError struct {
	Code    ErrorCode
	Message string
}

func (e *UseCaseError) Error() string {
	return string(e.Code) + ": " + e.Message
}

// NewError builds a UseCaseError with a formatted message.
func NewError(code ErrorCode, message string) *UseCaseError {
	return &UseCaseError{Code: code, Message: message}
}

// ReleaseSummary identifies a release in every report.
type ReleaseSummary struct {
	ID           string `json:"id"`
	ShortID      string `json:"short_id"`
	Name         string `json:"name"`
	StartDate    string `json:"start_date,omitempty"`
	EndDate      string `json:"end_date,omitempty"`
	FeatureCount int    `json:"feature_count"`
	SprintCount  int    `json:"sprint_count"`
	ItemCount    int    `json:"item_count"`
}
