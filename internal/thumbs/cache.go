package thumbs

import (
	"image"
	"sync"

	"github.com/rs/zerolog/log"
)

// DefaultMaxSide is the default bounding box side of a thumbnail in pixels
const DefaultMaxSide = 40

// Cache maps a cover identifier to its resized image
type Cache struct {
	mu      sync.Mutex
	maxSide int
	entries map[string]image.Image
}

// NewCache creates an empty cache for thumbnails fitting maxSide
func NewCache(maxSide int) *Cache {
	if maxSide <= 0 {
		maxSide = DefaultMaxSide
	}
	return &Cache{
		maxSide: maxSide,
		entries: make(map[string]image.Image),
	}
}

// MaxSide returns the current bounding box side
func (c *Cache) MaxSide() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.maxSide
}

// SetMaxSide changes the thumbnail size and drops every cached entry
func (c *Cache) SetMaxSide(side int) {
	if side <= 0 {
		side = DefaultMaxSide
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.maxSide = side
	c.entries = make(map[string]image.Image)
}

// Get returns the cached thumbnail for id
func (c *Cache) Get(id string) (image.Image, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	img, ok := c.entries[id]
	return img, ok
}

// Resized returns the cached thumbnail for id, creating it from src on the
// first request. A nil src yields nil and caches nothing.
func (c *Cache) Resized(id string, src image.Image) image.Image {
	c.mu.Lock()
	defer c.mu.Unlock()

	if img, ok := c.entries[id]; ok {
		return img
	}
	if src == nil {
		return nil
	}

	img, _ := ResizeKeepRatio(src, c.maxSide)
	c.entries[id] = img
	return img
}

// Invalidate drops the cached thumbnail for id
func (c *Cache) Invalidate(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.entries[id]; ok {
		log.Debug().Str("cover", id).Msg("clearing cover from cache")
		delete(c.entries, id)
	}
}

// Len returns the number of cached thumbnails
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
