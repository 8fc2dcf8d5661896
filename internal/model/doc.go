package model

// Package model defines domain data structures used across the app: podcasts,
// episodes, download tasks, and state enums. The list models hold non-owning
// pointers to these values and recompute their cached row fields on request.
