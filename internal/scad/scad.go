// Package scad writes CSG trees as OpenSCAD source.
package scad

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"dactyl-gen/internal/csg"
	"dactyl-gen/internal/mathutil"
)

// ErrUnknownNode is returned for a node or primitive the writer cannot express.
var ErrUnknownNode = errors.New("scad: unknown node")

// Writer serializes one tree.
type Writer interface {
	Write(w io.Writer, n csg.Node) error
}

// Emitter is the OpenSCAD Writer. Output depends only on the tree, so the
// same tree always produces the same bytes.
type Emitter struct {
	// Indent is repeated once per nesting level; empty means two spaces.
	Indent string
	// Digits is the number of decimals kept; 0 means 6.
	Digits int
}

var _ Writer = Emitter{}

type emitter struct {
	Emitter
	w   *bufio.Writer
	err error
}

func (e Emitter) Write(w io.Writer, n csg.Node) error {
	if e.Indent == "" {
		e.Indent = "  "
	}
	if e.Digits <= 0 {
		e.Digits = 6
	}
	em := &emitter{Emitter: e, w: bufio.NewWriter(w)}
	if n != nil {
		em.node(n, 0)
	}
	if em.err != nil {
		return em.err
	}
	return em.w.Flush()
}

// String renders n with the default Emitter.
func String(n csg.Node) (string, error) {
	var sb strings.Builder
	if err := (Emitter{}).Write(&sb, n); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func (e *emitter) line(depth int, format string, args ...any) {
	if e.err != nil {
		return
	}
	if _, err := e.w.WriteString(strings.Repeat(e.Indent, depth)); err != nil {
		e.err = err
		return
	}
	if _, err := fmt.Fprintf(e.w, format+"\n", args...); err != nil {
		e.err = err
	}
}

func (e *emitter) block(depth int, head string, children ...csg.Node) {
	e.line(depth, "%s {", head)
	for _, c := range children {
		e.node(c, depth+1)
	}
	e.line(depth, "}")
}

func (e *emitter) node(n csg.Node, depth int) {
	if e.err != nil {
		return
	}
	switch v := n.(type) {
	case csg.Primitive:
		e.primitive(v, depth)
	case csg.Transform:
		switch v.Op {
		case csg.OpTranslate:
			e.block(depth, "translate("+e.vec(v.Vector)+")", v.Child)
		case csg.OpRotate:
			e.block(depth, fmt.Sprintf("rotate(a=%s, v=%s)", e.num(mathutil.Rad2Deg(v.Angle)), e.vec(v.Vector)), v.Child)
		case csg.OpMirror:
			e.block(depth, "mirror("+e.vec(v.Vector)+")", v.Child)
		default:
			e.err = fmt.Errorf("%w: transform op %d", ErrUnknownNode, v.Op)
		}
	case csg.Boolean:
		switch v.Op {
		case csg.OpUnion, csg.OpDifference, csg.OpHull, csg.OpIntersection:
			e.block(depth, v.Op.String()+"()", v.Children...)
		default:
			e.err = fmt.Errorf("%w: boolean op %d", ErrUnknownNode, v.Op)
		}
	case csg.Projection:
		e.line(depth, "linear_extrude(height=%s) {", e.num(v.Height))
		e.block(depth+1, "projection(cut=false)", v.Child)
		e.line(depth, "}")
	default:
		e.err = fmt.Errorf("%w: %T", ErrUnknownNode, n)
	}
}

func (e *emitter) primitive(p csg.Primitive, depth int) {
	switch p.Shape {
	case csg.ShapeBox:
		e.line(depth, "cube(%s, center=true);", e.vec(p.Size))
	case csg.ShapeCylinder:
		e.line(depth, "cylinder(h=%s, r1=%s, r2=%s, center=true%s);",
			e.num(p.Height), e.num(p.Radius1), e.num(p.Radius2), fn(p.Segments))
	case csg.ShapeSphere:
		e.line(depth, "sphere(r=%s%s);", e.num(p.Radius1), fn(p.Segments))
	case csg.ShapeExtrusion:
		pts := make([]string, len(p.Polygon))
		for i, pt := range p.Polygon {
			pts[i] = "[" + e.num(pt[0]) + ", " + e.num(pt[1]) + "]"
		}
		e.line(depth, "linear_extrude(height=%s, center=true) polygon(points=[%s]);",
			e.num(p.Height), strings.Join(pts, ", "))
	default:
		e.err = fmt.Errorf("%w: shape %d", ErrUnknownNode, p.Shape)
	}
}

func fn(segments int) string {
	if segments <= 0 {
		return ""
	}
	return ", $fn=" + strconv.Itoa(segments)
}

// num formats v with at most Digits decimals and no trailing zeros.
// Negative zero prints as 0.
func (e *emitter) num(v float64) string {
	scale := math.Pow(10, float64(e.Digits))
	r := math.Round(v*scale) / scale
	if r == 0 {
		return "0"
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}

func (e *emitter) vec(v mathutil.Vec3) string {
	return "[" + e.num(v[0]) + ", " + e.num(v[1]) + ", " + e.num(v[2]) + "]"
}
