package rowstore

// Package rowstore provides an ordered, mutable sequence of fixed-shape rows
// with change notification, and lazily recomputed filtered/sorted projections
// over it. Stores are not safe for concurrent use: all access is expected on
// the UI goroutine.
