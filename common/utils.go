package common

import "github.com/go-gl/mathgl/mgl32"

type Vec3 = mgl32.Vec3

type IT interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// FlattenVec3 copies vectors into a flat [x, y, z, x, y, z, ...] slice.
func FlattenVec3(vs []Vec3) []float32 {
	res := make([]float32, 0, len(vs)*3)
	for _, v := range vs {
		res = append(res, v[0], v[1], v[2])
	}
	return res
}

// UnflattenVec3 is the inverse of FlattenVec3. Trailing values that do not
// make a whole vector are dropped.
func UnflattenVec3(flat []float32) []Vec3 {
	res := make([]Vec3, len(flat)/3)
	for i := range res {
		res[i] = Vec3{flat[i*3], flat[i*3+1], flat[i*3+2]}
	}
	return res
}
