// Package apperrors provides coded domain errors for the roster core.
//
// Every failure the core can report carries a Code. Callers match on kind with
// errors.Is against a bare *Error holding only the code, or with the helpers in
// this package. Messages are user facing and are surfaced verbatim.
package apperrors

// Code is a machine-readable error kind.
type Code string

const (
	// CodeUnknown represents an unclassified error.
	CodeUnknown Code = "UNKNOWN"

	// CodeValidation indicates a scalar value failed its own format rule.
	CodeValidation Code = "VALIDATION"

	// Identity errors
	CodeDuplicateIdentity Code = "DUPLICATE_IDENTITY"
	CodeDuplicateTeamName Code = "DUPLICATE_TEAM_NAME"
	CodeNotFound          Code = "NOT_FOUND"

	// Team formation errors
	CodeInvalidTeamSize       Code = "INVALID_TEAM_SIZE"
	CodeMemberAlreadyAssigned Code = "MEMBER_ALREADY_ASSIGNED"

	// Session calendar errors
	CodeDuplicateSession   Code = "DUPLICATE_SESSION"
	CodeOverlappingSession Code = "OVERLAPPING_SESSION"

	// Ordinal addressing errors
	CodeInvalidSessionIndex Code = "INVALID_SESSION_INDEX"
	CodeInvalidTeamIndex    Code = "INVALID_TEAM_INDEX"
	CodeInvalidAthleteIndex Code = "INVALID_ATHLETE_INDEX"

	// Query errors
	CodeEmptyQuery Code = "EMPTY_QUERY"
)

// String returns the code as a plain string.
func (c Code) String() string {
	return string(c)
}
