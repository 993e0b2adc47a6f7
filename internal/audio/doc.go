// Package audio implements player.Media on top of github.com/faiface/beep.
//
// An [Engine] decodes one source at a time (MP3, WAV or FLAC from a path, file:// or http(s):// URL)
// and plays it through an [Output]: the system speaker or [Discard] for headless runs.
//
// Playback notifications mirror an HTML media element: "play" and "pause" fire when the state changes
// (including at end of stream), and "timeupdate" fires on every tick while playing and after each seek.
// Notifications raised off the caller's goroutine are handed to the configured poster, normally a
// controls.Loop, so observers never run concurrently.
package audio
