package dsp

import "math"

// rotate returns x circularly shifted right by n places: the last n
// samples wrap around to the front. n may exceed len(x).
func rotate(x []float64, n int) []float64 {
	out := make([]float64, len(x))
	if len(x) == 0 {
		return out
	}
	n %= len(x)
	if n < 0 {
		n += len(x)
	}
	copy(out[n:], x[:len(x)-n])
	copy(out[:n], x[len(x)-n:])
	return out
}

// convolveExpDecay returns the full convolution of x with the kernel
// k[j] = exp(-rate·j), j in [0, len(x)), truncated to len(x) samples.
// The kernel is geometric, so the truncated convolution collapses to a
// first-order recurrence; the direct form would be O(n²) and unusable at
// session length.
func convolveExpDecay(x []float64, rate float64) []float64 {
	out := make([]float64, len(x))
	if len(x) == 0 {
		return out
	}
	r := math.Exp(-rate)
	out[0] = x[0]
	for i := 1; i < len(x); i++ {
		out[i] = x[i] + r*out[i-1]
	}
	return out
}

// movingAverage returns the length-preserving convolution of x with a
// uniform kernel of the given window size. Edges are zero-padded, not
// renormalized, so the first and last half-window taper toward zero. For
// an even window the span is window/2 samples back and window/2-1
// forward, matching the usual "same mode" alignment for even kernels.
func movingAverage(x []float64, window int) []float64 {
	out := make([]float64, len(x))
	if len(x) == 0 || window <= 0 {
		return out
	}
	for i := range out {
		hi := i + (window-1)/2
		lo := hi - window + 1
		if lo < 0 {
			lo = 0
		}
		if hi > len(x)-1 {
			hi = len(x) - 1
		}
		sum := 0.0
		for j := lo; j <= hi; j++ {
			sum += x[j]
		}
		out[i] = sum / float64(window)
	}
	return out
}

// butterHighpass returns the digital transfer function of a first-order
// Butterworth high-pass filter via the bilinear transform. cutoff is a
// fraction of the Nyquist frequency in (0, 1).
func butterHighpass(cutoff float64) (b, a [2]float64) {
	tau := math.Tan(math.Pi * cutoff / 2)
	b[0] = 1 / (1 + tau)
	b[1] = -b[0]
	a[0] = 1
	a[1] = (tau - 1) / (tau + 1)
	return b, a
}

// lfilter applies the first-order difference equation in direct form II
// transposed, starting from state z:
//
//	y[i] = b0·x[i] + z
//	z    = b1·x[i] - a1·y[i]
func lfilter(b, a [2]float64, x []float64, z float64) []float64 {
	out := make([]float64, len(x))
	for i, v := range x {
		y := b[0]*v + z
		z = b[1]*v - a[1]*y
		out[i] = y
	}
	return out
}

// filtfiltPad is three times the filter length, the customary padding for
// forward-backward filtering of a first-order section.
const filtfiltPad = 6

// filtfilt runs the filter forward and then backward so the result has
// zero phase distortion. Both ends are extended by odd reflection and
// each pass starts from the filter's step-response steady state scaled by
// its first input, which suppresses the startup transient. Inputs shorter
// than the padding get a reduced pad instead of an error.
func filtfilt(b, a [2]float64, x []float64) []float64 {
	n := len(x)
	if n == 0 {
		return nil
	}

	pad := filtfiltPad
	if pad >= n {
		pad = n - 1
	}

	ext := make([]float64, n+2*pad)
	for i := 0; i < pad; i++ {
		ext[i] = 2*x[0] - x[pad-i]
	}
	copy(ext[pad:], x)
	for i := 0; i < pad; i++ {
		ext[pad+n+i] = 2*x[n-1] - x[n-2-i]
	}

	// Steady state of the step response for a first-order section.
	zi := (b[1] - a[1]*b[0]) / (1 + a[1])

	fwd := lfilter(b, a, ext, zi*ext[0])
	reverse(fwd)
	bwd := lfilter(b, a, fwd, zi*fwd[0])
	reverse(bwd)

	out := make([]float64, n)
	copy(out, bwd[pad:pad+n])
	return out
}

func reverse(x []float64) {
	for i, j := 0, len(x)-1; i < j; i, j = i+1, j-1 {
		x[i], x[j] = x[j], x[i]
	}
}

// sign matches the conventional signum: -1, 0, or +1. The isochronic gate
// depends on sign(0) being 0.
func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
