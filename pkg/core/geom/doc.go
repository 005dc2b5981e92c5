// Package geom provides the small amount of plane geometry the chaos game needs.
//
// # Targets
//
// [Polygon] places n target vertices on the circle inscribed in the unit
// square, starting at the top and proceeding clockwise in screen coordinates
// (y grows downward). Four targets are rotated by 45° so that they land on the
// corners of the unit square rather than the edge midpoints.
//
// # Linear Maps
//
// Every transform of the game is a uniform scale followed by a rotation.
// [Linear] composes the two into a single [gg.Matrix] once, so the hot loop
// only pays for one matrix-vector product per step:
//
//	m := geom.Linear(0.5, math.Pi/6)
//	next := geom.Toward(current, target, m)
//
// [Toward] is the iterated function system update: the delta from the
// current point to the target is mapped through m and added back to the
// current point. With m = scale(0.5) this is the classic "move halfway".
//
// [gg.Matrix]: github.com/gogpu/gg.Matrix
package geom
