// Package palette turns configured colors into per-point colors.
//
// # Color Values
//
// A configured [Color] is either a hex string ("#e4572e", "#fa0") or a
// symbolic reference into the default palette ("palette:3"). [Resolve]
// turns either form into a canonical lowercase "#rrggbb" string; every
// policy resolves its colors once at construction.
//
// # Policies
//
// Three interchangeable [Selector] policies are available, chosen by [Mode]:
//
//   - [ModeByTransform]: the color of the transform used for the step
//   - [ModeByTarget]: the color of the target moved toward
//   - [ModeGradient]: a bilinear blend of four corner colors over the unit
//     square, evaluated at the new point
//
// An empty Mode means [ModeByTransform].
//
// # Gradient Corners
//
// Corner 0 sits at (0,0), corner 1 at (0,1), corner 2 at (1,0) and corner 3
// at (1,1). Each channel is interpolated along x first with weights
// (1-x, x), then along y with weights (1-y, y); both coordinates are clamped
// to [0,1] first.
package palette
