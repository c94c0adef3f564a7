package beam

import "math"

// RefractDir bends the unit direction incident through a surface with unit
// normal facing against it, going from index n1 into index n2. It returns
// false on total internal reflection.
func RefractDir(incident, normal Vec3, n1, n2 float64) (Vec3, bool) {
	eta := n1 / n2
	cosTheta1 := incident.Neg().Dot(normal)
	k := 1 - eta*eta*(1-cosTheta1*cosTheta1)
	if k < 0 {
		return Vec3{}, false
	}
	return incident.Scale(eta).Add(normal.Scale(eta*cosTheta1 - math.Sqrt(k))), true
}
