package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestViewportRecalculateInset(t *testing.T) {
	t.Parallel()

	v := Viewport{Width: 800, Height: 600}

	t.Run("headless_unchanged", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, v, v.recalculateInset(true, "linux"))
	})

	testCases := []struct {
		os   string
		want Viewport
	}{
		{os: "windows", want: Viewport{Width: 816, Height: 688}},
		{os: "linux", want: Viewport{Width: 808, Height: 685}},
		{os: "darwin", want: Viewport{Width: 800, Height: 679}},
		{os: "unknown", want: Viewport{Width: 824, Height: 688}},
	}
	for _, tc := range testCases {
		tc := tc
		t.Run(tc.os, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, v.recalculateInset(false, tc.os))
		})
	}
}

func TestViewportIsEmpty(t *testing.T) {
	t.Parallel()
	assert.True(t, Viewport{}.IsEmpty())
	assert.False(t, Viewport{Width: 1}.IsEmpty())
	assert.False(t, Viewport{Height: 1}.IsEmpty())
}

func TestSizeEnclosingIntSize(t *testing.T) {
	t.Parallel()
	got := Size{Width: 10.2, Height: 10.8}.enclosingIntSize()
	assert.Equal(t, &Size{Width: 10, Height: 10}, got)
}

func TestRectEnclosingIntRect(t *testing.T) {
	t.Parallel()
	r := &Rect{X: 1.2, Y: 1.8, Width: 10.4, Height: 10.4}
	got := r.enclosingIntRect()
	assert.Equal(t, &Rect{X: 1, Y: 1, Width: 11, Height: 12}, got)
}
