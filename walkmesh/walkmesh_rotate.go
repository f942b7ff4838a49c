package walkmesh

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gorustyt/gowalkmesh/common"
)

// Below this |from x to| the two directions are treated as parallel.
const parallelEpsilon = 1e-6

// RotationBetween returns the shortest rotation taking direction from onto
// direction to. Parallel inputs give the identity; anti-parallel inputs give
// a half turn about some axis orthogonal to from.
func RotationBetween(from, to common.Vec3) mgl32.Quat {
	f := from.Normalize()
	t := to.Normalize()
	axis := f.Cross(t)
	sin := axis.Len()
	cos := common.Clamp(f.Dot(t), -1, 1)
	if sin < parallelEpsilon {
		if cos > 0 {
			return mgl32.QuatIdent()
		}
		return mgl32.QuatRotate(math.Pi, common.AnyOrthogonal(f))
	}
	angle := float32(math.Atan2(float64(sin), float64(cos)))
	return mgl32.QuatRotate(angle, axis.Mul(1/sin))
}
