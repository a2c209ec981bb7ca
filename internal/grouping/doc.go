// Package grouping clusters chapters that share a structural role.
//
// IntroSequence finds the single densest set of chapters whose opening audio
// matches (a recurring intro). ByDuration groups chapters of near-equal
// length (a recurring recap or outro). Both return Group values that the
// episode planner interprets.
package grouping
