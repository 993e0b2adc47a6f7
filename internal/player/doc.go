// Package player implements the mini-player: one media element bound to a fixed set of controls,
// with the last loaded track persisted in a single storage slot.
//
// # Bindings
//
// [MiniPlayer] owns references to its collaborators, injected through [Options]:
//   - [Media] : the playable-media element (source, play/pause, duration, position, events)
//   - [Button] : play and pause triggers
//   - [Label] : title and artist displays
//   - [Scrubber] : a 0-100 range mirroring playback position
//   - [Storage] : a get/set persistence port holding the serialized [models.TrackState]
//
// # Observers
//
// Playback state lives in the media element. The player mirrors it:
//
//	play        → hide play, show pause
//	pause       → show play, hide pause
//	timeupdate  → scrubber = position / duration × 100
//	input       → position = duration × scrubber / 100
//
// Scrubber sync and seeks are skipped while the duration is unknown (zero, NaN or infinite).
//
// # Failure policy
//
// Malformed persisted state counts as no stored track. Autoplay failures are logged and otherwise ignored.
// Source and persistence failures never interrupt a load; they are joined and returned by [MiniPlayer.PlayTrack].
package player
