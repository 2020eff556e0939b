package apperror

import "fmt"

// Kind classifies an operation failure. The web layer maps kinds to HTTP
// status codes; services only ever decide the kind.
type Kind int

const (
	Unauthenticated Kind = iota + 1
	Forbidden
	NotFound
	Validation
	Conflict
)

type Error struct {
	Kind    Kind
	Code    string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func New(kind Kind, code, format string, args ...any) *Error {
	return &Error{Kind: kind, Code: code, Message: fmt.Sprintf(format, args...)}
}

var (
	ErrUnauthenticated = &Error{Kind: Unauthenticated, Code: "Unauthenticated", Message: "authentication required"}
	ErrForbidden       = &Error{Kind: Forbidden, Code: "Forbidden", Message: "insufficient role for this operation"}

	ErrAlreadyCheckedIn  = &Error{Kind: Conflict, Code: "AlreadyCheckedIn", Message: "an attendance record already exists for today"}
	ErrNoOpenSession     = &Error{Kind: Conflict, Code: "NoOpenSession", Message: "no open attendance session to check out of"}
	ErrAlreadyCheckedOut = &Error{Kind: Conflict, Code: "AlreadyCheckedOut", Message: "attendance session is already closed"}
	ErrNotPending        = &Error{Kind: Conflict, Code: "NotPending", Message: "leave request has already been decided"}
	ErrAlreadyPaidPeriod = &Error{Kind: Conflict, Code: "AlreadyPaidPeriod", Message: "employee already paid for this period"}
	ErrProfileExists     = &Error{Kind: Conflict, Code: "ProfileExists", Message: "profile already registered"}

	ErrInvalidRange  = &Error{Kind: Validation, Code: "InvalidRange", Message: "endDate must not be before startDate"}
	ErrEmptyReason   = &Error{Kind: Validation, Code: "EmptyReason", Message: "reason must not be blank"}
	ErrInvalidSalary = &Error{Kind: Validation, Code: "InvalidSalary", Message: "salary must be a positive amount"}
)

func NotFoundf(format string, args ...any) *Error {
	return New(NotFound, "NotFound", format, args...)
}

func Validationf(code, format string, args ...any) *Error {
	return New(Validation, code, format, args...)
}
