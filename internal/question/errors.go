package question

import "errors"

var (
	// ErrCategoryNotFound is returned when a client category id resolves to no stored category.
	ErrCategoryNotFound = errors.New("category not found")
	// ErrNoMatch is returned when a search matches no question.
	ErrNoMatch = errors.New("no question matches the search term")
	// ErrBadRequest is returned for malformed quiz input or a failed candidate lookup.
	ErrBadRequest = errors.New("bad request")
	// ErrCreationFailed is matched by every CreationFailedError.
	ErrCreationFailed = errors.New("question creation failed")
	// ErrDeleteFailed wraps store errors raised while deleting.
	ErrDeleteFailed = errors.New("question deletion failed")
	// ErrUnknownCategory is the creation cause when the category reference does not resolve.
	ErrUnknownCategory = errors.New("unknown category")
)

// CreationFailedError collapses validation and storage failures into one
// outcome for clients while keeping the cause for logs.
type CreationFailedError struct {
	Cause error
}

func (e *CreationFailedError) Error() string {
	if e.Cause == nil {
		return ErrCreationFailed.Error()
	}
	return ErrCreationFailed.Error() + ": " + e.Cause.Error()
}

func (e *CreationFailedError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrCreationFailed}
	}
	return []error{ErrCreationFailed, e.Cause}
}
