// Package game is the catalog of chaos game variants.
//
// Each [Game] wires the exclusion, selector and palette packages into an
// [attractor.Attractor] in its own way:
//
//   - [HistoryExclusion]: the next target must be a legal successor of every
//     target in the history window (size set by the history control).
//   - [HistoryExclusionPairwise]: exclusions only apply when the last two
//     targets were the same; otherwise any target may follow.
//   - [TargetTransforms]: each target owns one transform, and targets are
//     drawn with the probability of their own transform.
//
// # Controls
//
// [Controls] is the validated configuration of a run: target count, history
// size, exclusion offsets, transforms, colors and coloring mode. Use
// [Controls.WithDefaults] to fill missing values and [Controls.Validate] to
// check them against a game before building an attractor. Invalid controls
// are reported with [errors.ErrCodeInvalidControls] or
// [errors.ErrCodeInvalidColor]; the engine itself never fails once built.
//
// # Presets
//
// [Presets] lists named, ready-made configurations. [FindPreset] accepts a
// preset name or its 1-based position in the list.
//
// [errors.ErrCodeInvalidControls]: github.com/matzehuels/chaosgame/pkg/errors
// [errors.ErrCodeInvalidColor]: github.com/matzehuels/chaosgame/pkg/errors
package game
