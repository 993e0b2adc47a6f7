// Package repositories implements persistence for the mini-player's single state slot.
//
// Every implementation satisfies player.Storage: Get returns "" with a nil error for unknown keys and Set
// overwrites unconditionally.
//
// Key Implementations:
//   - [StateRepository] : SQLite key-value table (player_state) with upsert semantics
//   - [FileStore] : JSON object file replaced atomically on every write
//   - [MemoryStore] : process-local map for headless runs and tests
package repositories
