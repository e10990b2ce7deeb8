package save

// Code classifies persistence failures.
type Code string

const (
	// CodeNotFound means the save slot is empty.
	CodeNotFound Code = "SAVE_NOT_FOUND"
	// CodeCorrupted means the slot holds data that is not a valid game.
	CodeCorrupted Code = "SAVE_CORRUPTED"
	// CodeStorage means the storage back-end failed.
	CodeStorage Code = "SAVE_STORAGE"
)

// Error is a persistence failure with a machine-readable code.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause == nil {
		return e.Message
	}
	return e.Message + ": " + e.Cause.Error()
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an *Error with the same code, so callers can
// write errors.Is(err, save.ErrCorrupted).
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

var (
	// ErrNotFound is returned by LoadGame when nothing has been saved.
	ErrNotFound = &Error{Code: CodeNotFound, Message: "No save data found"}
	// ErrCorrupted is returned by LoadGame when the slot cannot be decoded.
	ErrCorrupted = &Error{Code: CodeCorrupted, Message: "save data corrupted"}
	// ErrStorage matches failures of the storage back-end.
	ErrStorage = &Error{Code: CodeStorage, Message: "save storage failed"}
)

func corrupted(cause error) *Error {
	return &Error{Code: CodeCorrupted, Message: ErrCorrupted.Message, Cause: cause}
}

func storageFailure(message string, cause error) *Error {
	return &Error{Code: CodeStorage, Message: message, Cause: cause}
}
