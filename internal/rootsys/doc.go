// Package rootsys implements the root architecture growth engine.
//
// A [RootSystem] holds a tree of roots growing from a seed. Each root is a
// polyline extended at its tip, lays down nodes every dx centimeters with a
// tropism-bent heading, and spawns lateral roots as its branching zone
// develops. Elongation is length-driven: the step increment of a root is
//
//	inc = gf.Length(gf.Age(l) + dt) - l
//
// scaled by the shared elongation scale, so a root slowed by the carbon
// budget resumes from its actual length rather than its calendar age.
//
// All randomness flows through one PCG source owned by the system. Copy
// duplicates that source state, so a copy replays the exact growth of its
// original until their inputs diverge.
package rootsys
