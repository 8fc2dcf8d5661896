package listmodel

import (
	"image"

	"github.com/rs/zerolog/log"

	"github.com/ytget/podshelf/internal/model"
	"github.com/ytget/podshelf/internal/thumbs"
)

// CoverSource provides full-size cover images. With avoidDownloading set it
// must only consult local copies.
type CoverSource interface {
	Cover(ch model.Channel, avoidDownloading bool) (image.Image, error)
}

// ThumbSaver persists a podcast's encoded thumbnail; nil data clears it
type ThumbSaver interface {
	SaveCoverThumb(podcastURL string, data []byte) error
}

// CoverLoader produces the cover column of podcast rows
type CoverLoader struct {
	cache  *thumbs.Cache
	source CoverSource
	saver  ThumbSaver
}

// NewCoverLoader creates a loader; saver may be nil
func NewCoverLoader(cache *thumbs.Cache, source CoverSource, saver ThumbSaver) *CoverLoader {
	if cache == nil {
		cache = thumbs.NewCache(thumbs.DefaultMaxSide)
	}
	return &CoverLoader{cache: cache, source: source, saver: saver}
}

// Cache returns the underlying thumbnail cache
func (c *CoverLoader) Cache() *thumbs.Cache { return c.cache }

// Image returns the thumbnail for ch, decorated with the paused badge when
// addOverlay is set and the subscription is paused
func (c *CoverLoader) Image(ch model.Channel, addOverlay bool) image.Image {
	if c.source == nil {
		return nil
	}

	img, ok := c.cache.Get(ch.CoverID())
	if !ok {
		if thumb := c.cachedThumb(ch); thumb != nil {
			img = c.cache.Resized(ch.CoverID(), thumb)
		} else {
			src, err := c.source.Cover(ch, true)
			if err != nil {
				log.Debug().Err(err).Str("podcast", ch.URL()).Msg("no local cover")
			}
			img = c.cache.Resized(ch.CoverID(), src)
			if img != nil {
				c.saveThumb(ch, img)
			}
		}
	}

	return c.decorate(ch, img, addOverlay)
}

// AddCover replaces the cover of ch with src and returns the image to show
func (c *CoverLoader) AddCover(ch model.Channel, src image.Image) image.Image {
	if src == nil {
		return nil
	}
	c.cache.Invalidate(ch.CoverID())

	img := c.cache.Resized(ch.CoverID(), src)
	c.saveThumb(ch, img)
	return c.decorate(ch, img, true)
}

// Invalidate drops the cached thumbnail for a cover id
func (c *CoverLoader) Invalidate(coverID string) { c.cache.Invalidate(coverID) }

// SetMaxSide changes the thumbnail size, dropping cached thumbnails
func (c *CoverLoader) SetMaxSide(side int) { c.cache.SetMaxSide(side) }

func (c *CoverLoader) decorate(ch model.Channel, img image.Image, addOverlay bool) image.Image {
	if img == nil || !addOverlay || !ch.Paused() {
		return img
	}
	return thumbs.PausedOverlay(img)
}

// cachedThumb decodes the persisted thumbnail if it matches the current size
func (c *CoverLoader) cachedThumb(ch model.Channel) image.Image {
	data := ch.CoverThumb()
	if data == nil {
		return nil
	}

	img, err := thumbs.Decode(data)
	if err != nil {
		log.Warn().Err(err).Str("podcast", ch.URL()).Msg("could not load cached cover art")
		ch.SetCoverThumb(nil)
		c.persist(ch, nil)
		return nil
	}

	if side := c.cache.MaxSide(); !thumbs.Fits(img, side) {
		b := img.Bounds()
		log.Debug().Int("width", b.Dx()).Int("height", b.Dy()).Int("max_side", side).Msg("cached thumb wrong size")
		return nil
	}
	return img
}

func (c *CoverLoader) saveThumb(ch model.Channel, img image.Image) {
	if ch.Aggregate() {
		return
	}
	data, err := thumbs.EncodePNG(img)
	if err != nil {
		log.Warn().Err(err).Str("podcast", ch.URL()).Msg("could not encode cover thumbnail")
		return
	}
	ch.SetCoverThumb(data)
	c.persist(ch, data)
}

func (c *CoverLoader) persist(ch model.Channel, data []byte) {
	if c.saver == nil || ch.Aggregate() {
		return
	}
	if err := c.saver.SaveCoverThumb(ch.URL(), data); err != nil {
		log.Warn().Err(err).Str("podcast", ch.URL()).Msg("could not save cover thumbnail")
	}
}
