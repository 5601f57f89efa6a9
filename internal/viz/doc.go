// Package viz renders root systems in the terminal.
//
// The package draws on a Braille pixel canvas and animates running
// simulations with the Bubble Tea framework:
//
//   - [Canvas]: Braille-based pixel canvas, 2x4 sub-pixels per character
//   - [RenderRootSystem]: one-shot side view of a grown root system
//   - [LiveModel]: day-by-day growth animation with replay
//
// # Key Bindings
//
//	Space - Pause/Resume growth
//	[]/   - Step back/forward through recorded days
//	?     - Show help overlay
//	Q     - Quit
package viz
