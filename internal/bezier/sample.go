package bezier

// Sample evaluates the curve at Samples+1 evenly spaced parameters from 0
// to 1. Interior indices that are a multiple of TangentInterval carry a
// tangent; the two ends never do.
func (c *Curve) Sample() []Sample {
	return c.SampleInto(nil)
}

// SampleInto is Sample, reusing dst's backing array when it is large enough.
func (c *Curve) SampleInto(dst []Sample) []Sample {
	n := c.opts.Samples
	if cap(dst) < n+1 {
		dst = make([]Sample, n+1)
	}
	dst = dst[:n+1]

	for i := 0; i <= n; i++ {
		t := float64(i) / float64(n)
		s := Sample{T: t, Point: c.Evaluate(t)}
		if c.hasTangent(i) {
			s.Tangent = c.Derivative(t)
			s.HasTangent = true
		}
		dst[i] = s
	}
	return dst
}

func (c *Curve) hasTangent(i int) bool {
	return i%c.opts.TangentInterval == 0 && i > 0 && i < c.opts.Samples
}
