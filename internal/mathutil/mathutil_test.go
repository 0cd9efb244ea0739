package mathutil

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eps = 1e-9

func TestEulerQuatMatchesComposedRotations(t *testing.T) {
	rx, ry, rz := Deg2Rad(10), Deg2Rad(-23), Deg2Rad(10)
	want := Mat3Mul(RotZ(rz), Mat3Mul(RotY(ry), RotX(rx)))
	got := QuatToMat3(EulerToQuat(rx, ry, rz))
	require.True(t, got.ApproxEqual(want, eps), "got %v want %v", got, want)
}

func TestRotAxisMatchesPrincipalAxes(t *testing.T) {
	a := 0.7
	assert.True(t, RotAxis(a, Vec3{1, 0, 0}).ApproxEqual(RotX(a), eps))
	assert.True(t, RotAxis(a, Vec3{0, 2, 0}).ApproxEqual(RotY(a), eps))
	assert.True(t, RotAxis(a, Vec3{0, 0, -1}).ApproxEqual(RotZ(-a), eps))
	assert.Equal(t, Mat3Identity(), RotAxis(a, Vec3{}))
}

func TestRotationsAreOrthonormal(t *testing.T) {
	r := QuatToMat3(EulerToQuat(0.3, -1.1, 2.4))
	assert.True(t, Mat3Mul(r.Transpose(), r).ApproxEqual(Mat3Identity(), eps))
	assert.InDelta(t, 1, r.Det(), eps)
}

func TestReflect(t *testing.T) {
	m := Reflect(Vec3{1, 0, 0})
	assert.Equal(t, Mat3Diag(-1, 1, 1), m)
	assert.InDelta(t, -1.0, m.Det(), eps)
	assert.InDelta(t, 1.0, RotY(1.1).Det(), eps)
}

func TestPoseThen(t *testing.T) {
	a := Rotate(RotX(math.Pi / 2))
	b := Translate(Vec3{1, 2, 3})
	v := Vec3{0, 1, 0}

	// rotate (0,1,0) about x by 90° -> (0,0,1), then move
	got := a.Then(b).Apply(v)
	assert.True(t, got.ApproxEqual(Vec3{1, 2, 4}, eps), "got %v", got)
	assert.True(t, a.Then(b).Mat4().MulPoint(v).ApproxEqual(got, eps))

	// other order: move first, then rotate
	got = b.Then(a).Apply(v)
	assert.True(t, got.ApproxEqual(Vec3{1, -3, 3}, eps), "got %v", got)
}

func TestMat4Compose(t *testing.T) {
	m := Mat4Mul(Translate(Vec3{0, 0, 5}).Mat4(), Rotate(RotZ(math.Pi)).Mat4())
	got := m.MulPoint(Vec3{1, 0, 0})
	assert.True(t, got.ApproxEqual(Vec3{-1, 0, 5}, eps), "got %v", got)
	assert.Equal(t, Vec3{0, 0, 5}, m.Translation())
	assert.True(t, Mat4Identity().IsIdentity())
}

func TestVecMinMax(t *testing.T) {
	a, b := Vec3{1, -2, 3}, Vec3{0, 5, 3}
	assert.Equal(t, Vec3{0, -2, 3}, a.Min(b))
	assert.Equal(t, Vec3{1, 5, 3}, a.Max(b))
	assert.Equal(t, Vec3{-1, 2, -3}, a.Neg())
}
