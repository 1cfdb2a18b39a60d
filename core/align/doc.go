// Package align re-bases experiment periods onto a common relative-time
// axis and clips them to display windows. It replaces the near-duplicate
// inline filtering that used to live in every figure script with one
// parameterized batch transform.
package align
