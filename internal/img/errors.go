package img

import "fmt"

// DecodeError wraps a failure to decode an image buffer.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode image: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// InvalidWidthError is returned when a resize target would upscale the
// image or drop below one pixel.
type InvalidWidthError struct {
	Width   int
	Current int
}

func (e *InvalidWidthError) Error() string {
	return fmt.Sprintf("invalid target width %d: must be at least 1 and lower than the current width %d", e.Width, e.Current)
}

// ConvergenceError is returned when the fitter cannot pick a smaller
// width and the buffer is still above the size ceiling.
type ConvergenceError struct {
	Width   int
	Ceiling int
}

func (e *ConvergenceError) Error() string {
	return fmt.Sprintf("cannot shrink below width %d to satisfy the %d byte ceiling", e.Width, e.Ceiling)
}
