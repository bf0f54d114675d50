package common

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrimClipToSize(t *testing.T) {
	t.Parallel()

	s := NewScreenshotter(context.Background())
	size := &Size{Width: 100, Height: 200}

	t.Run("within_bounds", func(t *testing.T) {
		t.Parallel()
		clip := &Rect{X: 10, Y: 10, Width: 50, Height: 50}
		got, err := s.trimClipToSize(clip, size)
		require.NoError(t, err)
		assert.Equal(t, &Rect{X: 10, Y: 10, Width: 50, Height: 50}, got)
	})

	t.Run("clamped_to_bounds", func(t *testing.T) {
		t.Parallel()
		clip := &Rect{X: 90, Y: 190, Width: 50, Height: 50}
		got, err := s.trimClipToSize(clip, size)
		require.NoError(t, err)
		assert.Equal(t, &Rect{X: 90, Y: 190, Width: 10, Height: 10}, got)
	})

	t.Run("entirely_outside_viewport", func(t *testing.T) {
		t.Parallel()
		clip := &Rect{X: 500, Y: 500, Width: 50, Height: 50}
		_, err := s.trimClipToSize(clip, size)
		require.Error(t, err)
	})
}
