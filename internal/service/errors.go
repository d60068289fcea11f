package service

import "errors"

// ErrorKind classifies expected business rejections so the HTTP boundary
// can map them without string matching.
type ErrorKind int

const (
	// KindNotFound: a lookup by id or key yielded no row.
	KindNotFound ErrorKind = iota + 1
	// KindConflict: a uniqueness rule would be violated.
	KindConflict
	// KindReferenceMissing: a referenced entity (building, workspace type,
	// amenity) does not exist; nothing was written.
	KindReferenceMissing
)

// BusinessError is an expected, caller-actionable rejection. Anything that
// is not a BusinessError is a system fault and crosses the service boundary
// unmodified, after its transaction (if any) rolled back.
type BusinessError struct {
	Kind    ErrorKind
	Message string
}

func (e *BusinessError) Error() string { return e.Message }

func NotFound(message string) error {
	return &BusinessError{Kind: KindNotFound, Message: message}
}

func Conflict(message string) error {
	return &BusinessError{Kind: KindConflict, Message: message}
}

func ReferenceMissing(message string) error {
	return &BusinessError{Kind: KindReferenceMissing, Message: message}
}

// AsBusiness unwraps err into a BusinessError when it is one.
func AsBusiness(err error) (*BusinessError, bool) {
	var be *BusinessError
	if errors.As(err, &be) {
		return be, true
	}
	return nil, false
}
