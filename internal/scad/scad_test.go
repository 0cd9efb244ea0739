package scad_test

import (
	"bytes"
	"math"
	"testing"

	"dactyl-gen/internal/csg"
	"dactyl-gen/internal/mathutil"
	"dactyl-gen/internal/scad"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrimitives(t *testing.T) {
	tests := []struct {
		name string
		node csg.Node
		want string
	}{
		{"box", csg.Box(1, 2.5, 3), "cube([1, 2.5, 3], center=true);\n"},
		{"cone", csg.Cone(2, 1, 4, 30), "cylinder(h=4, r1=2, r2=1, center=true, $fn=30);\n"},
		{"sphere default resolution", csg.Sphere(1.5, 0), "sphere(r=1.5);\n"},
		{"square", csg.Square(2, 4, 0.1),
			"linear_extrude(height=0.1, center=true) polygon(points=[[1, 2], [1, -2], [-1, -2], [-1, 2]]);\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := scad.String(tt.node)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNesting(t *testing.T) {
	n := csg.Difference(
		csg.Translate(mathutil.Vec3{1, 0, -2}, csg.Box(1, 1, 1)),
		csg.RotateZ(math.Pi/2, csg.Mirror(mathutil.Vec3{1, 0, 0}, csg.Box(2, 2, 2))),
	)
	got, err := scad.String(n)
	require.NoError(t, err)
	assert.Equal(t, `difference() {
  translate([1, 0, -2]) {
    cube([1, 1, 1], center=true);
  }
  rotate(a=90, v=[0, 0, 1]) {
    mirror([1, 0, 0]) {
      cube([2, 2, 2], center=true);
    }
  }
}
`, got)
}

func TestProjection(t *testing.T) {
	got, err := scad.String(csg.Project(csg.Box(1, 1, 1), 2.6))
	require.NoError(t, err)
	assert.Equal(t, `linear_extrude(height=2.6) {
  projection(cut=false) {
    cube([1, 1, 1], center=true);
  }
}
`, got)
}

func TestNumbersAreStable(t *testing.T) {
	got, err := scad.String(csg.Translate(mathutil.Vec3{math.Copysign(0, -1), 1e-12, 0.1 + 0.2}, csg.Box(1, 1, 1)))
	require.NoError(t, err)
	assert.Contains(t, got, "translate([0, 0, 0.3])")
}

func TestUnknownNode(t *testing.T) {
	var buf bytes.Buffer
	err := scad.Emitter{}.Write(&buf, csg.Primitive{})
	assert.ErrorIs(t, err, scad.ErrUnknownNode)

	err = scad.Emitter{}.Write(&buf, csg.Boolean{Op: 0, Children: []csg.Node{csg.Box(1, 1, 1)}})
	assert.ErrorIs(t, err, scad.ErrUnknownNode)
}

func TestNilTreeWritesNothing(t *testing.T) {
	got, err := scad.String(nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}
