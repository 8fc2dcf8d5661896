package thumbs

import (
	"image"
	"image/color"
	"testing"
)

func solid(w, h int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestCache_ResizedReturnsSameInstance(t *testing.T) {
	c := NewCache(40)
	src := solid(200, 100, color.RGBA{R: 200, A: 255})

	first := c.Resized("https://example.com/feed", src)
	second := c.Resized("https://example.com/feed", solid(10, 10, color.Black))

	if first != second {
		t.Error("Expected the cached instance on the second request")
	}
	if b := first.Bounds(); b.Dx() != 40 || b.Dy() != 20 {
		t.Errorf("Expected 40x20 thumbnail, got %dx%d", b.Dx(), b.Dy())
	}
}

func TestCache_SmallSourceIsCachedUnchanged(t *testing.T) {
	c := NewCache(40)
	src := solid(16, 16, color.White)

	got := c.Resized("a", src)
	if got != image.Image(src) {
		t.Error("Source within bounds should be returned unchanged")
	}
	if c.Len() != 1 {
		t.Errorf("Expected 1 cached entry, got %d", c.Len())
	}
}

func TestCache_NilSource(t *testing.T) {
	c := NewCache(40)
	if c.Resized("a", nil) != nil {
		t.Error("Expected nil for nil source")
	}
	if c.Len() != 0 {
		t.Error("nil source must not be cached")
	}
}

func TestCache_Invalidate(t *testing.T) {
	c := NewCache(40)
	first := c.Resized("a", solid(80, 80, color.White))
	c.Resized("b", solid(80, 80, color.White))

	c.Invalidate("a")
	c.Invalidate("missing")

	if _, ok := c.Get("a"); ok {
		t.Error("Invalidated entry should be gone")
	}
	if _, ok := c.Get("b"); !ok {
		t.Error("Other entries should survive Invalidate")
	}

	again := c.Resized("a", solid(80, 80, color.Black))
	if again == first {
		t.Error("Expected a fresh thumbnail after Invalidate")
	}
}

func TestCache_SetMaxSideClears(t *testing.T) {
	c := NewCache(40)
	c.Resized("a", solid(80, 80, color.White))
	c.Resized("b", solid(80, 80, color.White))

	c.SetMaxSide(64)
	if c.Len() != 0 {
		t.Errorf("Expected empty cache after SetMaxSide, got %d", c.Len())
	}
	if c.MaxSide() != 64 {
		t.Errorf("MaxSide() = %d", c.MaxSide())
	}

	img := c.Resized("a", solid(128, 128, color.White))
	if img.Bounds().Dx() != 64 {
		t.Errorf("Expected 64px thumbnail, got %d", img.Bounds().Dx())
	}

	c.SetMaxSide(0)
	if c.MaxSide() != DefaultMaxSide {
		t.Errorf("Expected default max side, got %d", c.MaxSide())
	}
}
