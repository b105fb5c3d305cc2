// internal/img/fit.go
package img

import (
	"errors"
	"fmt"
	"io"

	"github.com/hammyapp/hammy/internal/logutil"
)

// DefaultSizeCeiling is the largest payload the hosting API accepts.
const DefaultSizeCeiling = 7_600_000

// WidthPolicy picks the next render width while a buffer is above the
// size ceiling. The returned width must be at least 1 and strictly lower
// than the current one.
type WidthPolicy interface {
	NextWidth(current int) (int, error)
}

// HalvePolicy shrinks the width by half each round. It is the
// non-interactive default.
type HalvePolicy struct{}

func (HalvePolicy) NextWidth(current int) (int, error) {
	next := current / 2
	if next < 1 {
		return 0, &ConvergenceError{Width: current}
	}
	return next, nil
}

// PromptPolicy asks for the next width on the given streams, retrying
// until the input is a valid shrinking width.
type PromptPolicy struct {
	In  io.Reader
	Out io.Writer
}

func (p PromptPolicy) NextWidth(current int) (int, error) {
	for {
		fmt.Fprintf(p.Out, "Current width: %d\nEnter new width: ", current)
		var next int
		if _, err := fmt.Fscanln(p.In, &next); err != nil {
			return 0, fmt.Errorf("read width: %w", err)
		}
		if next >= 1 && next < current {
			return next, nil
		}
		fmt.Fprintln(p.Out, "Enter an integer greater than 0 and lower than the current width.")
	}
}

// FuncPolicy adapts a plain function to a WidthPolicy.
type FuncPolicy func(current int) (int, error)

func (f FuncPolicy) NextWidth(current int) (int, error) { return f(current) }

// Fitter re-encodes a buffer at progressively smaller widths until it is
// at or under the size ceiling.
type Fitter struct {
	Ceiling int
	Policy  WidthPolicy
}

// NewFitter returns a fitter for the hosting API ceiling with the
// halving policy.
func NewFitter() *Fitter {
	return &Fitter{Ceiling: DefaultSizeCeiling, Policy: HalvePolicy{}}
}

// Fit shrinks data until len(data) <= Ceiling, or fails with
// ConvergenceError when no smaller valid width exists. The input buffer
// is expected to already carry its dedup trailer; every re-encoded
// buffer gets a fresh one so the ceiling check always accounts for it.
func (f *Fitter) Fit(data []byte, animated bool) ([]byte, error) {
	for len(data) > f.Ceiling {
		logutil.Warnf("image size is too big! current size: %d", len(data))

		info, err := Probe(data)
		if err != nil {
			return nil, err
		}
		if info.Width <= 1 {
			return nil, &ConvergenceError{Width: info.Width, Ceiling: f.Ceiling}
		}

		next, err := f.Policy.NextWidth(info.Width)
		if err != nil {
			var conv *ConvergenceError
			if errors.As(err, &conv) {
				conv.Ceiling = f.Ceiling
			}
			return nil, err
		}
		if next < 1 || next >= info.Width {
			return nil, &ConvergenceError{Width: info.Width, Ceiling: f.Ceiling}
		}

		encoded, err := EncodeForWidth(data, next, animated)
		if err != nil {
			return nil, err
		}
		data, err = Stuff(encoded)
		if err != nil {
			return nil, err
		}
	}
	return data, nil
}
