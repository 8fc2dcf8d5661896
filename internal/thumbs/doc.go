package thumbs

// Package thumbs decodes, resizes, caches and decorates podcast cover
// thumbnails. Cached thumbnails are sized to one global maximum side; badges
// such as the "paused" overlay are drawn on copies at render time.
