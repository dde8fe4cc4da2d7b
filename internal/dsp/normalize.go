package dsp

import "math"

// Peak returns the largest absolute sample across both channels.
func Peak(left, right []float64) float64 {
	p := 0.0
	for _, ch := range [2][]float64{left, right} {
		for _, v := range ch {
			if a := math.Abs(v); a > p {
				p = a
			}
		}
	}
	return p
}

// Normalize scales both channels into [-1, 1] so the loudest sample lands
// exactly on ±1.0, and returns fresh buffers plus the pre-normalization
// peak. An all-silent signal is passed through untouched: silence is a
// valid degenerate session, not an error. Fresh buffers also untangle the
// case where left and right still alias the same mono buffer.
func Normalize(left, right []float64) (outL, outR []float64, peak float64) {
	peak = Peak(left, right)
	outL = make([]float64, len(left))
	outR = make([]float64, len(right))
	if peak == 0 {
		copy(outL, left)
		copy(outR, right)
		return outL, outR, 0
	}
	for i, v := range left {
		outL[i] = v / peak
	}
	for i, v := range right {
		outR[i] = v / peak
	}
	return outL, outR, peak
}

// AmplitudePreview condenses a stereo session into the mid-channel
// amplitude envelope, decimated to roughly the requested number of
// points. This is the read-only feed the visualizer animates; it never
// mutates the channel buffers.
func AmplitudePreview(left, right []float64, points int) []float64 {
	n := len(left)
	if n == 0 || points <= 0 {
		return nil
	}
	step := n / points
	if step < 1 {
		step = 1
	}
	out := make([]float64, 0, n/step+1)
	for i := 0; i < n; i += step {
		out = append(out, math.Abs((left[i]+right[i])/2))
	}
	return out
}

// Decimate resamples an already-computed preview down to at most the
// requested number of points by striding. Asking for as many or more
// points than exist returns a copy.
func Decimate(x []float64, points int) []float64 {
	if len(x) == 0 || points <= 0 {
		return nil
	}
	step := len(x) / points
	if step < 1 {
		step = 1
	}
	out := make([]float64, 0, len(x)/step+1)
	for i := 0; i < len(x); i += step {
		out = append(out, x[i])
	}
	return out
}
