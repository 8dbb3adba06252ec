package inject

import (
	"context"

	"github.com/TechnoJays/robot2017/components/encoder"
)

// Encoder is an injected encoder.
type Encoder struct {
	encoder.Encoder
	TicksCountFunc func(ctx context.Context) (int64, error)
	ResetFunc      func(ctx context.Context) error
}

// TicksCount calls the injected TicksCount or the real version.
func (e *Encoder) TicksCount(ctx context.Context) (int64, error) {
	if e.TicksCountFunc == nil {
		return e.Encoder.TicksCount(ctx)
	}
	return e.TicksCountFunc(ctx)
}

// Reset calls the injected Reset or the real version.
func (e *Encoder) Reset(ctx context.Context) error {
	if e.ResetFunc == nil {
		return e.Encoder.Reset(ctx)
	}
	return e.ResetFunc(ctx)
}
