package placement

import (
	"fmt"

	"dactyl-gen/internal/csg"
	"dactyl-gen/internal/mathutil"
)

// StepKind is one elementary motion of a placement.
type StepKind uint8

const (
	StepTranslate StepKind = iota + 1
	StepRotateX
	StepRotateY
	StepRotateZ
)

// Step is one motion of the ordered sequence that places a key.
type Step struct {
	Kind   StepKind
	Offset mathutil.Vec3 // StepTranslate
	Angle  float64       // rotations, radians
}

func (s Step) String() string {
	switch s.Kind {
	case StepTranslate:
		return fmt.Sprintf("translate [%.3f %.3f %.3f]", s.Offset[0], s.Offset[1], s.Offset[2])
	case StepRotateX:
		return fmt.Sprintf("rotate x %.3f°", mathutil.Rad2Deg(s.Angle))
	case StepRotateY:
		return fmt.Sprintf("rotate y %.3f°", mathutil.Rad2Deg(s.Angle))
	case StepRotateZ:
		return fmt.Sprintf("rotate z %.3f°", mathutil.Rad2Deg(s.Angle))
	}
	return fmt.Sprintf("Step(%d)", s.Kind)
}

func translate(v mathutil.Vec3) Step { return Step{Kind: StepTranslate, Offset: v} }
func rotateX(a float64) Step         { return Step{Kind: StepRotateX, Angle: a} }
func rotateY(a float64) Step         { return Step{Kind: StepRotateY, Angle: a} }
func rotateZ(a float64) Step         { return Step{Kind: StepRotateZ, Angle: a} }

// pivot rotates about an axis parallel to the rotation axis through
// (0, 0, -r): move down, rotate, move back.
func pivot(r float64, rot Step) []Step {
	return []Step{
		translate(mathutil.Vec3{0, 0, -r}),
		rot,
		translate(mathutil.Vec3{0, 0, r}),
	}
}

// shapeForm wraps n in one CSG transform node per step, first step innermost.
func shapeForm(steps []Step, n csg.Node) csg.Node {
	for _, s := range steps {
		switch s.Kind {
		case StepTranslate:
			n = csg.Translate(s.Offset, n)
		case StepRotateX:
			n = csg.RotateX(s.Angle, n)
		case StepRotateY:
			n = csg.RotateY(s.Angle, n)
		case StepRotateZ:
			n = csg.RotateZ(s.Angle, n)
		}
	}
	return n
}

// pointForm moves v through the steps with explicit rotation matrices.
func pointForm(steps []Step, v mathutil.Vec3) mathutil.Vec3 {
	for _, s := range steps {
		switch s.Kind {
		case StepTranslate:
			v = v.Add(s.Offset)
		case StepRotateX:
			v = mathutil.RotX(s.Angle).MulVec3(v)
		case StepRotateY:
			v = mathutil.RotY(s.Angle).MulVec3(v)
		case StepRotateZ:
			v = mathutil.RotZ(s.Angle).MulVec3(v)
		}
	}
	return v
}

// poseForm folds the steps into a single rigid transform.
func poseForm(steps []Step) mathutil.Pose {
	p := mathutil.PoseIdentity()
	for _, s := range steps {
		var q mathutil.Pose
		switch s.Kind {
		case StepTranslate:
			q = mathutil.Translate(s.Offset)
		case StepRotateX:
			q = mathutil.Rotate(mathutil.RotX(s.Angle))
		case StepRotateY:
			q = mathutil.Rotate(mathutil.RotY(s.Angle))
		case StepRotateZ:
			q = mathutil.Rotate(mathutil.RotZ(s.Angle))
		default:
			continue
		}
		p = p.Then(q)
	}
	return p
}
