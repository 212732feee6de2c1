package util

import "errors"

// Domain errors. Services return these and controllers map them to HTTP
// statuses. Credential failures are deliberately indistinguishable
// between "no such account" and "wrong password".
var (
	ErrEmailRegistered    = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")

	ErrClassNotFound   = errors.New("class not found")
	ErrInvalidPasscode = errors.New("invalid passcode")
	ErrAlreadyEnrolled = errors.New("already enrolled in this class")
	ErrNotEnrolled     = errors.New("not enrolled in this class")

	ErrAssignmentNotFound = errors.New("assignment not found")
	ErrSubmissionNotFound = errors.New("submission not found")
	ErrAlreadySubmitted   = errors.New("already submitted, use PUT to edit")

	ErrSelfReview      = errors.New("cannot review your own submission")
	ErrAlreadyReviewed = errors.New("you have already reviewed this submission")

	ErrPermissionDenied = errors.New("permission denied")

	ErrInvalidToken   = errors.New("invalid token")
	ErrTokenRevoked   = errors.New("token has been revoked")
	ErrWrongTokenType = errors.New("wrong token type")
)

// ValidationError marks malformed input rejected before any mutation;
// controllers answer it with 400 and the message verbatim.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}
