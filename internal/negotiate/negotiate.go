package negotiate

import "math"

// Service constraints for generated dimensions. Together's FLUX endpoints
// require multiples of 32 inside this range.
const (
	DefaultFactor = 32
	DefaultMinDim = 256
	DefaultMaxDim = 1792
)

// Negotiator converts viewport geometry into valid generation dimensions.
type Negotiator struct {
	Factor int // every dimension is a multiple of this
	MinDim int
	MaxDim int
}

// NewNegotiator creates a negotiator with the service defaults.
func NewNegotiator() *Negotiator {
	return &Negotiator{
		Factor: DefaultFactor,
		MinDim: DefaultMinDim,
		MaxDim: DefaultMaxDim,
	}
}

// Negotiate returns (width, height) whose ratio matches the viewport aspect
// within one factor-unit of rounding, both multiples of Factor and both
// within [MinDim, MaxDim]. Order is round first, then clamp proportionally,
// re-rounding after each adjustment; because Factor is small relative to the
// range, two passes always settle.
func (n *Negotiator) Negotiate(viewportW, viewportH float64, scale float64) (int, int) {
	if viewportW <= 0 || viewportH <= 0 {
		return n.MinDim, n.MinDim
	}
	if scale <= 0 {
		scale = 1.0
	} else if scale > 1.0 {
		scale = 1.0
	}

	w := n.roundToFactor(viewportW * scale)
	h := n.roundToFactor(viewportH * scale)

	for pass := 0; pass < 2; pass++ {
		if maxOf(w, h) > n.MaxDim {
			f := float64(n.MaxDim) / float64(maxOf(w, h))
			w = n.roundToFactor(float64(w) * f)
			h = n.roundToFactor(float64(h) * f)
		}
		if minOf(w, h) < n.MinDim {
			f := float64(n.MinDim) / float64(minOf(w, h))
			w = n.roundToFactor(float64(w) * f)
			h = n.roundToFactor(float64(h) * f)
		}
	}

	// Proportional scaling can still leave a dimension one step outside the
	// range at extreme aspect ratios; the hard clamp wins over aspect there.
	w = clamp(w, n.MinDim, n.MaxDim)
	h = clamp(h, n.MinDim, n.MaxDim)

	return w, h
}

// roundToFactor rounds v to the nearest positive multiple of Factor.
func (n *Negotiator) roundToFactor(v float64) int {
	steps := math.Round(v / float64(n.Factor))
	if steps < 1 {
		steps = 1
	}
	return int(steps) * n.Factor
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func maxOf(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minOf(a, b int) int {
	if a < b {
		return a
	}
	return b
}
