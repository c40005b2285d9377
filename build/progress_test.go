package build

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgressTracker(t *testing.T) {
	t.Run("reports at interval", func(t *testing.T) {
		var buf strings.Builder
		p := NewProgressTracker(&buf, 100, 10)
		p.Start()
		p.Increment(5)
		assert.Empty(t, buf.String(), "below interval, nothing reported")

		p.Increment(5)
		assert.Contains(t, buf.String(), "10/100")
	})

	t.Run("finish reports total", func(t *testing.T) {
		var buf strings.Builder
		p := NewProgressTracker(&buf, 42, 100)
		p.Start()
		p.Increment(7)
		p.Finish()
		assert.Contains(t, buf.String(), "42/42")
		assert.Contains(t, buf.String(), "100.0%")
	})

	t.Run("clamps to total", func(t *testing.T) {
		var buf strings.Builder
		p := NewProgressTracker(&buf, 10, 1)
		p.Start()
		p.Increment(25)
		assert.Contains(t, buf.String(), "10/10")
	})

	t.Run("ignores increments before start", func(t *testing.T) {
		var buf strings.Builder
		p := NewProgressTracker(&buf, 10, 1)
		p.Increment(5)
		assert.Empty(t, buf.String())
		assert.Zero(t, p.Elapsed())
	})
}
