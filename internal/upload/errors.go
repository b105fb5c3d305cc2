package upload

import "fmt"

// UploadError carries the server's error message together with the
// source filename of the failed item.
type UploadError struct {
	Message string
	File    string
	Status  int
}

func (e *UploadError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("upload %s failed (status %d): %s", e.File, e.Status, e.Message)
	}
	return fmt.Sprintf("upload %s failed: %s", e.File, e.Message)
}

// MalformedResponseError is returned when a success response is missing
// the expected image fields.
type MalformedResponseError struct {
	File string
	Err  error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed upload response for %s: %v", e.File, e.Err)
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }
