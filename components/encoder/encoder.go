// Package encoder implements the quadrature encoder component.
package encoder

import "context"

// An Encoder counts ticks of a rotating shaft.
type Encoder interface {
	// TicksCount returns the number of ticks since the last reset.
	TicksCount(ctx context.Context) (int64, error)

	// Reset sets the current position to zero.
	Reset(ctx context.Context) error
}

// Reversed wraps e so that its count runs the other way.
func Reversed(e Encoder) Encoder {
	return &reversed{e}
}

type reversed struct {
	Encoder
}

func (e *reversed) TicksCount(ctx context.Context) (int64, error) {
	ticks, err := e.Encoder.TicksCount(ctx)
	return -ticks, err
}
