// Package models defines the track entity shared by the mini-player, its storage and its hosts.
//
//   - [TrackState] : the currently loaded track (source, title, artist)
//   - [Request] : the payload of the external load-and-play entry point
//
// A TrackState is replaced whole; there are no partial updates. Its JSON form is the persisted state
// written under a single key on every load.
package models
