package mathutil

// Pose is a rigid transform x' = R·x + T.
type Pose struct {
	R Mat3
	T Vec3
}

func PoseIdentity() Pose {
	return Pose{R: Mat3Identity()}
}

// Translate returns the pose that only moves by t.
func Translate(t Vec3) Pose {
	return Pose{R: Mat3Identity(), T: t}
}

// Rotate returns the pose that only rotates by r about the origin.
func Rotate(r Mat3) Pose {
	return Pose{R: r}
}

// Apply moves the point v by the pose.
func (p Pose) Apply(v Vec3) Vec3 {
	return p.R.MulVec3(v).Add(p.T)
}

// Then returns the pose that applies p first, then q.
func (p Pose) Then(q Pose) Pose {
	return Pose{
		R: Mat3Mul(q.R, p.R),
		T: q.R.MulVec3(p.T).Add(q.T),
	}
}

// Mat4 returns the pose as an affine matrix.
func (p Pose) Mat4() Mat4 {
	return FromMat3Translation(p.R, p.T)
}
