package drivetrain

import (
	"math"

	"github.com/TechnoJays/robot2017/utils"
)

// ArcadeMix converts a linear speed and a turn rate into left and right
// side speeds in [-1, 1]. Inputs are used as given, not squared. The right
// side value is the one a right motor facing the same way as the left one
// would need; the drivetrain inverts it when writing.
func ArcadeMix(move, rotate float64) (left, right float64) {
	move = utils.ClampPower(move)
	rotate = utils.ClampPower(rotate)
	if move > 0 {
		if rotate > 0 {
			left = move - rotate
			right = math.Max(move, rotate)
		} else {
			left = math.Max(move, -rotate)
			right = move + rotate
		}
	} else {
		if rotate > 0 {
			left = -math.Max(-move, rotate)
			right = move + rotate
		} else {
			left = move - rotate
			right = -math.Max(-move, -rotate)
		}
	}
	return utils.ClampPower(left), utils.ClampPower(right)
}
