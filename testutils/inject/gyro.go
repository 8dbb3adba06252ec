package inject

import (
	"context"

	"github.com/TechnoJays/robot2017/components/gyro"
)

// Gyro is an injected gyro.
type Gyro struct {
	gyro.Gyro
	AngleFunc func(ctx context.Context) (float64, error)
	ResetFunc func(ctx context.Context) error
}

// Angle calls the injected Angle or the real version.
func (g *Gyro) Angle(ctx context.Context) (float64, error) {
	if g.AngleFunc == nil {
		return g.Gyro.Angle(ctx)
	}
	return g.AngleFunc(ctx)
}

// Reset calls the injected Reset or the real version.
func (g *Gyro) Reset(ctx context.Context) error {
	if g.ResetFunc == nil {
		return g.Gyro.Reset(ctx)
	}
	return g.ResetFunc(ctx)
}
