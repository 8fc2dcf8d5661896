// Package library persists subscribed podcasts and their episodes in a
// SQLite database guarded by a single-instance file lock.
package library
