// Package zoom defines the discrete detail tiers an object can be examined
// at and the per-object rules that gate them.
//
// Levels form a small ordered state machine: Coarse < Medium < Close < Fine.
// Movement is adjacent-only and clamps at both ends, so ZoomIn on Fine and
// ZoomOut on Coarse are no-ops rather than errors.
//
// Constraints bound the levels an object supports. The only tool gate is on
// Fine: an object may demand a specific tool before its finest layer becomes
// reachable, in which case the player is capped at MaxUnaidedLevel.
package zoom
