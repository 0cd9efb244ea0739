package peripheral

import (
	"math"

	"dactyl-gen/internal/csg"
	"dactyl-gen/internal/mathutil"
)

// Insert dimensions for heat-set M3 inserts.
const (
	InsertHeight       = 3.8
	InsertBottomRadius = 5.31 / 2
	InsertTopRadius    = 5.1 / 2
	InsertWall         = 1.6
	ScrewRadius        = 1.7
)

// Site is one screw insert location.
type Site struct {
	Col, Row int
	Offset   mathutil.Vec3
}

// Sites are the default insert locations: the four case corners plus one
// on the back edge and one beside the thumb cluster.
func (pp *Placer) Sites() []Site {
	p := pp.p
	return []Site{
		{0, 0, mathutil.Vec3{8, 10.5, 0}},
		{0, p.LastRow, mathutil.Vec3{}},
		{p.LastCol, p.CornerRow, mathutil.Vec3{}},
		{p.LastCol, 0, mathutil.Vec3{}},
		{3, 0, mathutil.Vec3{}},
		{1, p.LastRow, mathutil.Vec3{}},
	}
}

// SiteCenter is the ground point of an insert: the anchor of the site
// moved by its offset, then pulled onto the nearest wall so the boss
// fuses with the case.
func (pp *Placer) SiteCenter(s Site) mathutil.Vec3 {
	return pp.w.OnWall(pp.Ground(s.Col, s.Row, s.Offset, 0))
}

// Inserts places one insert shape of the given size at every site.
func (pp *Placer) Inserts(bottomRadius, topRadius, height float64) csg.Node {
	sites := pp.Sites()
	parts := make([]csg.Node, len(sites))
	for i, s := range sites {
		// the wall pull becomes part of the offset from the bare anchor
		off := pp.SiteCenter(s).Sub(pp.Ground(s.Col, s.Row, mathutil.Vec3{}, 0))
		parts[i] = pp.ScrewInsert(s.Col, s.Row, bottomRadius, topRadius, height, off)
	}
	return csg.Union(parts...)
}

// InsertHoles are the pockets cut into the insert outers.
func (pp *Placer) InsertHoles() csg.Node {
	return pp.Inserts(InsertBottomRadius, InsertTopRadius, InsertHeight)
}

// InsertOuters are the bosses added to the walls around each pocket.
func (pp *Placer) InsertOuters() csg.Node {
	return pp.Inserts(InsertBottomRadius+InsertWall, InsertTopRadius+InsertWall, InsertHeight+1.5)
}

// ScrewHoles are through holes for the bottom plate, tall enough to cut
// any plate of the given thickness.
func (pp *Placer) ScrewHoles(height float64) csg.Node {
	return pp.Inserts(ScrewRadius, ScrewRadius, height)
}

// USB holder dimensions.
var (
	usbHolderSize = mathutil.Vec3{6.5, 10, 13.6}
	usbJackSize   = mathutil.Vec3{8.1, 20, 3.1}
)

const usbHolderThickness = 4

// USBPosition is the back-wall point above column 1 where the USB jack exits.
func (pp *Placer) USBPosition() mathutil.Vec3 {
	up := mathutil.Vec3{0, pp.p.MountHeight / 2, 0}
	return pp.pl.KeyPosition(1, 0, pp.w.Locate2(0, 1).Add(up))
}

func (pp *Placer) usbLift() float64 {
	return (usbHolderSize[2] + usbHolderThickness) / 2
}

// USBHolder is the solid block around the USB breakout.
func (pp *Placer) USBHolder() csg.Node {
	pos := pp.USBPosition()
	return csg.Translate(mathutil.Vec3{pos[0], pos[1], pp.usbLift()},
		csg.Box(usbHolderSize[0]+usbHolderThickness, usbHolderSize[1], usbHolderSize[2]+usbHolderThickness))
}

// USBHolderHole is the pocket for the breakout board.
func (pp *Placer) USBHolderHole() csg.Node {
	pos := pp.USBPosition()
	return csg.Translate(mathutil.Vec3{pos[0], pos[1], pp.usbLift()},
		csg.Box(usbHolderSize[0], usbHolderSize[1], usbHolderSize[2]))
}

// USBJack is the cut through the back wall for the plug.
func (pp *Placer) USBJack() csg.Node {
	return csg.Translate(pp.USBPosition().Add(mathutil.Vec3{0, 10, 3}),
		csg.Box(usbJackSize[0], usbJackSize[1], usbJackSize[2]))
}

// TRRS holder dimensions.
var (
	trrsHolderSize = mathutil.Vec3{6.2, 10, 2}
	trrsHoleSize   = mathutil.Vec3{6.2, 10, 6}
)

const (
	trrsHolderThickness = 2
	trrsJackRadius      = 2.55
)

// TRRSPosition sits beside the USB holder towards column 0.
func (pp *Placer) TRRSPosition() mathutil.Vec3 {
	return pp.USBPosition().Add(mathutil.Vec3{-13.6, 0, 0})
}

// TRRSHolder is the block around the TRRS jack.
func (pp *Placer) TRRSHolder() csg.Node {
	pos := pp.TRRSPosition()
	size := mathutil.Vec3{
		trrsHolderSize[0] + 2*trrsHolderThickness,
		trrsHolderSize[1] + trrsHolderThickness,
		trrsHolderSize[2] + trrsHolderThickness,
	}
	return csg.Translate(mathutil.Vec3{pos[0], pos[1], size[2] / 2}, csg.Box(size[0], size[1], size[2]))
}

// TRRSHole is the round jack hole through the wall plus the jack pocket.
func (pp *Placer) TRRSHole() csg.Node {
	pos := pp.TRRSPosition()
	round := csg.Translate(mathutil.Vec3{
		pos[0],
		pos[1] + (trrsHolderSize[1]+trrsHolderThickness)/2,
		3 + (trrsHolderSize[2]+trrsHolderThickness)/2,
	}, csg.RotateX(math.Pi/2, csg.Cylinder(trrsJackRadius, 20, pp.p.Resolution)))
	pocket := csg.Translate(mathutil.Vec3{
		pos[0],
		pos[1] - trrsHolderThickness/2,
		trrsHolderSize[2]/2 + trrsHolderThickness,
	}, csg.Box(trrsHoleSize[0], trrsHoleSize[1], trrsHoleSize[2]))
	return csg.Union(round, pocket)
}

// Pro-micro holder dimensions; the space has no wall in z.
var proMicroSpace = mathutil.Vec3{4, 10, 12}

const proMicroWall = 2

// ProMicroPosition hangs the controller off the left wall at row 1.
func (pp *Placer) ProMicroPosition() mathutil.Vec3 {
	return pp.pl.KeyPosition(0, 1, pp.w.Locate3(-1, 0)).Add(mathutil.Vec3{-6, 2, -15})
}

// ProMicroSpace is the cavity for the controller board.
func (pp *Placer) ProMicroSpace() csg.Node {
	pos := pp.ProMicroPosition()
	return csg.Translate(mathutil.Vec3{pos[0] - proMicroWall/2, pos[1] - proMicroWall/2, pos[2]},
		csg.Box(proMicroSpace[0], proMicroSpace[1], proMicroSpace[2]))
}

// ProMicroHolder is the open frame around ProMicroSpace.
func (pp *Placer) ProMicroHolder() csg.Node {
	outer := csg.Translate(pp.ProMicroPosition(),
		csg.Box(proMicroSpace[0]+proMicroWall, proMicroSpace[1]+proMicroWall, proMicroSpace[2]))
	return csg.Difference(outer, pp.ProMicroSpace())
}
