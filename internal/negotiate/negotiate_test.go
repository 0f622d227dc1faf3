package negotiate

import (
	"math"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNegotiateScenario800x600(t *testing.T) {
	n := &Negotiator{Factor: 64, MinDim: 256, MaxDim: 1792}

	w, h := n.Negotiate(800, 600, 0.5)

	assert.Equal(t, 0, w%64, "width must be a multiple of the factor")
	assert.Equal(t, 0, h%64, "height must be a multiple of the factor")
	assert.Equal(t, 384, w)
	assert.Equal(t, 320, h)
}

func TestNegotiateProperties(t *testing.T) {
	n := NewNegotiator()

	viewports := [][2]float64{
		{800, 600}, {1920, 1080}, {640, 480}, {300, 900},
		{2560, 1440}, {5000, 5000}, {120, 4000}, {4000, 120},
		{1.0, 1.0}, {1366, 768},
	}
	scales := []float64{0.2, 0.5, 0.75, 1.0}

	for _, vp := range viewports {
		for _, s := range scales {
			w, h := n.Negotiate(vp[0], vp[1], s)

			assert.Equal(t, 0, w%n.Factor, "viewport %v scale %v", vp, s)
			assert.Equal(t, 0, h%n.Factor, "viewport %v scale %v", vp, s)
			assert.GreaterOrEqual(t, w, n.MinDim, "viewport %v scale %v", vp, s)
			assert.GreaterOrEqual(t, h, n.MinDim, "viewport %v scale %v", vp, s)
			assert.LessOrEqual(t, w, n.MaxDim, "viewport %v scale %v", vp, s)
			assert.LessOrEqual(t, h, n.MaxDim, "viewport %v scale %v", vp, s)
		}
	}
}

func TestNegotiateAspectPreserved(t *testing.T) {
	n := NewNegotiator()

	// Away from the clamp boundaries, the ratio must match the viewport
	// aspect within one factor-unit of rounding.
	cases := [][2]float64{{800, 600}, {1600, 900}, {1024, 1024}, {900, 1200}}
	for _, vp := range cases {
		w, h := n.Negotiate(vp[0], vp[1], 1.0)

		want := vp[0] / vp[1]
		got := float64(w) / float64(h)
		tolerance := float64(n.Factor)/float64(minOf(w, h)) + 1e-9
		assert.InDelta(t, want, got, tolerance, "viewport %v", vp)
	}
}

func TestNegotiateDegenerateInput(t *testing.T) {
	n := NewNegotiator()

	w, h := n.Negotiate(0, 600, 1.0)
	assert.Equal(t, n.MinDim, w)
	assert.Equal(t, n.MinDim, h)

	// Scale out of range is treated as full size
	w, h = n.Negotiate(800, 600, -3)
	w2, h2 := n.Negotiate(800, 600, 1.0)
	assert.Equal(t, w2, w)
	assert.Equal(t, h2, h)
}

func TestNegotiateRoundThenClamp(t *testing.T) {
	n := NewNegotiator()

	// Extreme aspect: the short side pins to MinDim, the long side must not
	// escape MaxDim even though proportional scaling would push it there.
	w, h := n.Negotiate(8000, 200, 1.0)
	assert.LessOrEqual(t, w, n.MaxDim)
	assert.GreaterOrEqual(t, h, n.MinDim)
}

func TestDebouncerFiresOnlyLast(t *testing.T) {
	var fired atomic.Int32
	d := NewDebouncer(30 * time.Millisecond)

	for i := 0; i < 10; i++ {
		d.Trigger(func() { fired.Add(1) })
		time.Sleep(5 * time.Millisecond)
	}

	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, int32(1), fired.Load(), "only the last trigger of a burst should fire")
}

func TestDebouncerStop(t *testing.T) {
	var fired atomic.Int32
	d := NewDebouncer(20 * time.Millisecond)

	d.Trigger(func() { fired.Add(1) })
	d.Stop()

	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, int32(0), fired.Load(), "stopped debouncer must not fire")
}

func TestRoundToFactor(t *testing.T) {
	n := NewNegotiator()

	assert.Equal(t, 384, n.roundToFactor(400*0.96))
	assert.Equal(t, n.Factor, n.roundToFactor(1), "rounding never drops below one factor step")
	assert.Equal(t, 32, n.roundToFactor(47.9))
	assert.Equal(t, 64, n.roundToFactor(48.0+math.SmallestNonzeroFloat64))
}
