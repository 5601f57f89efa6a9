// Package analysis provides root architecture analysis tools.
//
// The package characterizes a grown root system from its polylines:
//
//   - [DepthProfile]: histogram of root length over soil depth
//   - [MaxDepth]: rooting depth of the deepest tip
//   - [Spread]: maximum horizontal distance from the plant axis
//   - [ByType]: length and count per root type
//   - [ByOrder]: length and count per branching order
//
// # Depth Profiles
//
// A depth profile answers where the root length sits in the soil column:
//
//	profile := analysis.DepthProfile(rs.Polylines(), 5)
//	fmt.Print(profile.ToASCII(40))
package analysis
