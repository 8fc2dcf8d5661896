package download

// Package download fetches episode enclosures over HTTP. It manages the task
// lifecycle, the parallel download limit, resumable partial files, and
// progress propagation to the UI through an update callback that receives
// task snapshots.
