package thumbs

import (
	"image/color"
	"testing"
)

func TestResizeKeepRatio(t *testing.T) {
	tests := []struct {
		w, h     int
		maxSide  int
		ew, eh   int
		expected bool
	}{
		{200, 100, 40, 40, 20, true},
		{100, 200, 40, 20, 40, true},
		{50, 50, 40, 40, 40, true},
		{30, 20, 40, 30, 20, false},
		{40, 40, 40, 40, 40, false},
		{1000, 10, 40, 40, 1, true},
	}

	for _, test := range tests {
		got, changed := ResizeKeepRatio(solid(test.w, test.h, color.White), test.maxSide)
		b := got.Bounds()
		if b.Dx() != test.ew || b.Dy() != test.eh || changed != test.expected {
			t.Errorf("ResizeKeepRatio(%dx%d, %d) = %dx%d changed=%v, expected %dx%d changed=%v",
				test.w, test.h, test.maxSide, b.Dx(), b.Dy(), changed, test.ew, test.eh, test.expected)
		}
	}
}

func TestFits(t *testing.T) {
	tests := []struct {
		w, h     int
		expected bool
	}{
		{40, 20, true},
		{20, 40, true},
		{40, 40, true},
		{20, 20, false},
		{80, 40, false},
	}

	for _, test := range tests {
		if got := Fits(solid(test.w, test.h, color.White), 40); got != test.expected {
			t.Errorf("Fits(%dx%d) = %v, expected %v", test.w, test.h, got, test.expected)
		}
	}
}
