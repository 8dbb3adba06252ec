package inject

import (
	"context"

	"github.com/TechnoJays/robot2017/components/solenoid"
)

// Solenoid is an injected solenoid.
type Solenoid struct {
	solenoid.Solenoid
	SetFunc func(ctx context.Context, on bool) error
	GetFunc func(ctx context.Context) (bool, error)
}

// Set calls the injected Set or the real version.
func (s *Solenoid) Set(ctx context.Context, on bool) error {
	if s.SetFunc == nil {
		return s.Solenoid.Set(ctx, on)
	}
	return s.SetFunc(ctx, on)
}

// Get calls the injected Get or the real version.
func (s *Solenoid) Get(ctx context.Context) (bool, error) {
	if s.GetFunc == nil {
		return s.Solenoid.Get(ctx)
	}
	return s.GetFunc(ctx)
}
