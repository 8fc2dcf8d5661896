package coverart

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"

	"github.com/ytget/podshelf/internal/model"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode: %v", err)
	}
	return buf.Bytes()
}

func newCoverServer(t *testing.T, hits *int32) *httptest.Server {
	t.Helper()
	cover := pngBytes(t, 8, 4)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(hits, 1)
		if r.URL.Path != "/cover.png" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write(cover)
	}))
	t.Cleanup(server.Close)
	return server
}

func TestCover_AvoidDownloading(t *testing.T) {
	var hits int32
	server := newCoverServer(t, &hits)
	s := NewStore(t.TempDir(), server.Client())

	p := model.NewPodcast("https://example.com/feed", "Feed")
	p.CoverURL = server.URL + "/cover.png"

	img, err := s.Cover(p.Channel(), true)
	if img != nil || err != nil {
		t.Errorf("Cover(avoid) = (%v, %v), want (nil, nil)", img, err)
	}
	if atomic.LoadInt32(&hits) != 0 {
		t.Errorf("server hit %d times while avoiding downloads", hits)
	}
}

func TestCover_DownloadsOnceThenReadsFile(t *testing.T) {
	var hits int32
	server := newCoverServer(t, &hits)
	s := NewStore(t.TempDir(), server.Client())

	p := model.NewPodcast("https://example.com/feed", "Feed")
	p.CoverURL = server.URL + "/cover.png"

	img, err := s.Cover(p.Channel(), false)
	if err != nil {
		t.Fatalf("Cover: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 8 || b.Dy() != 4 {
		t.Errorf("bounds = %v, want 8x4", b)
	}
	if _, err := os.Stat(s.Path(p.URL)); err != nil {
		t.Errorf("cover file not stored: %v", err)
	}

	if _, err := s.Cover(p.Channel(), true); err != nil {
		t.Fatalf("Cover from file: %v", err)
	}
	if atomic.LoadInt32(&hits) != 1 {
		t.Errorf("server hit %d times, want 1", hits)
	}
}

func TestCover_Aggregate(t *testing.T) {
	s := NewStore(t.TempDir(), nil)
	img, err := s.Cover(model.NewAllEpisodes(nil), false)
	if img != nil || err != nil {
		t.Errorf("aggregate cover = (%v, %v), want (nil, nil)", img, err)
	}
}

func TestCover_CorruptFile(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(dir, nil)
	p := model.NewPodcast("https://example.com/feed", "Feed")
	if err := os.WriteFile(s.Path(p.URL), []byte("garbage"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := s.Cover(p.Channel(), true); err == nil {
		t.Error("Cover of corrupt file returned nil error")
	}
}

func TestDownload_Errors(t *testing.T) {
	var hits int32
	server := newCoverServer(t, &hits)
	s := NewStore(t.TempDir(), server.Client())

	noURL := model.NewPodcast("https://example.com/a", "A")
	if _, err := s.Download(context.Background(), noURL); !errors.Is(err, ErrNoCoverURL) {
		t.Errorf("Download without url = %v, want ErrNoCoverURL", err)
	}

	missing := model.NewPodcast("https://example.com/b", "B")
	missing.CoverURL = server.URL + "/missing.png"
	if _, err := s.Download(context.Background(), missing); err == nil {
		t.Error("Download of 404 returned nil error")
	}
}

func TestRemove(t *testing.T) {
	s := NewStore(t.TempDir(), nil)
	if err := s.Remove("never-stored"); err != nil {
		t.Errorf("Remove(missing) = %v", err)
	}

	id := "https://example.com/feed"
	if err := os.WriteFile(s.Path(id), pngBytes(t, 1, 1), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := s.Remove(id); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, err := os.Stat(s.Path(id)); !os.IsNotExist(err) {
		t.Errorf("cover still present: %v", err)
	}
}
