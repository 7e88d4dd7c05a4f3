// Package game2048 implements the rules of the 2048 sliding-tile puzzle on a
// rectangular grid: configuration validation, directional sliding and
// merging, tile spawning and win/loss detection.
//
// The engine has no rendering, input handling or persistence. Randomness is
// injected through Source so games are reproducible under a fixed seed.
// An Engine is not safe for concurrent use; callers serialize access.
package game2048
