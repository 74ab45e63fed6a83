package errors

import "fmt"

// ErrorCode is a stable machine-readable code carried to the API boundary.
type ErrorCode string

const (
	ErrInternalServer ErrorCode = "INTERNAL__SERVER_ERROR"
	ErrInvalidInput   ErrorCode = "INVALID__INPUT"
	ErrUnauthorized   ErrorCode = "AUTH__UNAUTHORIZED"
	ErrTokenExpired   ErrorCode = "AUTH__EXPIRED_TOKEN"
	ErrDecodeToken    ErrorCode = "AUTH__DECODE_TOKEN"
	ErrInvalidToken   ErrorCode = "AUTH__INVALID_TOKEN"
	ErrEmailVerify    ErrorCode = "AUTH__VERIFICATION_FAILED"

	ErrUserNotFound         ErrorCode = "USER__NOT_FOUND"
	ErrUserDuplicate        ErrorCode = "USER__DUPLICATE_EMAIL_OR_USERNAME"
	ErrUserPasswordMismatch ErrorCode = "USER__PASSWORD_DOES_NOT_MATCH"

	ErrWorkspaceNotFound     ErrorCode = "WORKSPACE__NOT_FOUND"
	ErrWorkspaceAccessDenied ErrorCode = "WORKSPACE__ACCESS_DENIED"
	ErrTooManyWorkspaces     ErrorCode = "WORKSPACE__TOO_MANY"
	ErrWrongOrderNo          ErrorCode = "WORKSPACE__WRONG_ORDER_NO"

	ErrProjectNotFound         ErrorCode = "PROJECT__NOT_FOUND"
	ErrProjectAccessDenied     ErrorCode = "PROJECT__ACCESS_DENIED"
	ErrProjectTypeNotSupported ErrorCode = "PROJECT__TYPE_NOT_SUPPORTED"

	ErrTimeslotNotFound      ErrorCode = "TIMESLOT__NOT_FOUND"
	ErrTimeslotAlreadyExists ErrorCode = "TIMESLOT__ALREADY_EXISTS"
	ErrTimeslotFull          ErrorCode = "TIMESLOT__FULL"

	ErrParticipantNotFound      ErrorCode = "PARTICIPANT__NOT_FOUND"
	ErrParticipantAccessDenied  ErrorCode = "PARTICIPANT__ACCESS_DENIED"
	ErrParticipantAlreadyJoined ErrorCode = "PARTICIPANT__ALREADY_JOINED"
)

// AppError is the typed error services return; it propagates unmodified
// to the boundary where the base controller maps it to an HTTP response.
type AppError struct {
	Code    ErrorCode
	Message string
	Err     error
}

func NewAppError(code ErrorCode, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}
