// Package ui implements the mini-player's terminal interface using bubbletea's Elm architecture.
//
// The (view) [Model] renders the shared controls: title and artist labels, whichever of the play and
// pause buttons is visible, and the scrubber as a progress bar with elapsed and total time.
//
// Player callbacks raised off the UI goroutine (time updates, end of stream) are posted to a
// [controls.Loop] and drained one per message inside Update, so the player only ever runs on the
// bubbletea goroutine.
//
// Keyboard bindings: space/p toggles playback by clicking the visible button, ←/→ (h/l) scrub, o opens
// a prompt for a new source, q quits. Help is displayed via charmbracelet/bubbles/help.
package ui
