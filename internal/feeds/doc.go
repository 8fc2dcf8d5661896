// Package feeds fetches podcast RSS/Atom feeds over HTTP and converts them
// into podcasts and episodes ready to be merged into the library.
package feeds
