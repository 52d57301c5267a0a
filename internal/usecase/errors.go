package usecase

import "errors"

const (
	CodeValidationFailed = "VALIDATION_FAILED"
	CodeNotFound         = "NOT_FOUND"
	CodeAccessDenied     = "ACCESS_DENIED"
	CodeConflict         = "CONFLICT"
	CodeBatchTooLarge    = "BATCH_TOO_LARGE"
	CodeNoValidRows      = "NO_VALID_ROWS"
)

// DomainError is a business-rule failure. It is terminal for the
// operation that raised it; retrying is the caller's call.
type DomainError struct {
	Code    string
	Message string

	// Fields carries the full accumulated list when Code is
	// VALIDATION_FAILED, so a single response can report every
	// violated rule at once.
	Fields []ValidationError
}

func (e *DomainError) Error() string {
	return e.Message
}

func NewValidationFailed(fields []ValidationError) *DomainError {
	return &DomainError{Code: CodeValidationFailed, Message: "validation failed", Fields: fields}
}

func NewNotFound() *DomainError {
	return &DomainError{Code: CodeNotFound, Message: "lead not found"}
}

func NewAccessDenied() *DomainError {
	return &DomainError{Code: CodeAccessDenied, Message: "access denied"}
}

func NewConflict() *DomainError {
	return &DomainError{Code: CodeConflict, Message: "record changed, please refresh"}
}

func NewBatchTooLarge() *DomainError {
	return &DomainError{Code: CodeBatchTooLarge, Message: "too many rows, max 200"}
}

func NewNoValidRows() *DomainError {
	return &DomainError{Code: CodeNoValidRows, Message: "no valid rows found"}
}

// AsDomainError unwraps err into a DomainError if it is one.
func AsDomainError(err error) (*DomainError, bool) {
	var de *DomainError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// TechnicalError wraps infrastructure failures (store down, broker
// unreachable). The core does not distinguish transient from permanent.
type TechnicalError struct {
	Code    string
	Message string
	Err     error
}

func (e *TechnicalError) Error() string {
	return e.Message
}

func (e *TechnicalError) Unwrap() error {
	return e.Err
}

func IsTechnicalError(err error) bool {
	var te *TechnicalError
	return errors.As(err, &te)
}
