// Package controls provides in-memory UI bindings and a single-threaded event loop.
//
// The widgets ([Button], [Label], [Range]) hold display state and notify observers registered with an
// [Emitter]. Hosts render them; the mini-player only writes to them and reacts to their events.
//
// [Loop] serializes callbacks posted from other goroutines (audio ticker, end-of-stream) so every observer
// runs on the goroutine that drains the loop.
package controls
