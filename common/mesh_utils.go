package common

// Last time I checked the if version got compiled using cmov, which was a lot faster than module (with idiv).
func Prev[T IT](i, n T) T {
	if i-1 >= 0 {
		return i - 1
	}
	return n - 1
}

func Next[T IT](i, n T) T {
	if i+1 < n {
		return i + 1
	}
	return 0
}

// TriFaceNormal returns the unnormalized normal of triangle abc; its length
// is twice the triangle's area.
func TriFaceNormal(a, b, c Vec3) Vec3 {
	return b.Sub(a).Cross(c.Sub(a))
}

// TriAreaHeron derives the area of triangle abc from its side lengths,
// evaluated in float64. Collinear points give 0.
func TriAreaHeron(a, b, c Vec3) float64 {
	la := Sqrt(VdistSqr(a, b))
	lb := Sqrt(VdistSqr(b, c))
	lc := Sqrt(VdistSqr(c, a))
	s := (la + lb + lc) / 2
	prod := s * (s - la) * (s - lb) * (s - lc)
	if prod <= 0 {
		return 0
	}
	return Sqrt(prod)
}

// ProjectOntoPlane drops p onto the plane through origin with unit normal n.
func ProjectOntoPlane(p, origin, n Vec3) Vec3 {
	return p.Sub(n.Mul(p.Sub(origin).Dot(n)))
}

// ProjectOntoLine keeps the part of v that runs along dir.
func ProjectOntoLine(v, dir Vec3) Vec3 {
	dd := dir.Dot(dir)
	if dd == 0 {
		return Vec3{}
	}
	return dir.Mul(v.Dot(dir) / dd)
}

// AnyOrthogonal returns a unit vector perpendicular to v.
func AnyOrthogonal(v Vec3) Vec3 {
	ax, ay, az := Abs(v[0]), Abs(v[1]), Abs(v[2])
	axis := Vec3{1, 0, 0}
	if ay <= ax && ay <= az {
		axis = Vec3{0, 1, 0}
	} else if az <= ax && az <= ay {
		axis = Vec3{0, 0, 1}
	}
	return v.Cross(axis).Normalize()
}
