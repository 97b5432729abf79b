// Package store provides SQLite-backed export of resolved circuit
// schedules.
//
// A schedule export is a point-in-time snapshot: the lazy timing of the
// circuit is resolved once at write time and stored as plain rows, one
// per primitive operation in schedule order. Re-exporting after a
// registry change produces a new schedule row set.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
package store
