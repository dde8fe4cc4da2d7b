// Package pcm converts between float64 audio buffers and the 16-bit
// interleaved representation used by the WAV writer and the local player.
package pcm

import (
	"encoding/binary"
	"math"
)

const scale = 32767

// EncodeStereo quantizes a normalized stereo pair to interleaved 16-bit
// samples (L0 R0 L1 R1 ...). Values are rounded, not truncated, and
// clamped so out-of-range input cannot wrap.
func EncodeStereo(left, right []float64) []int16 {
	out := make([]int16, len(left)*2)
	for i := range left {
		out[i*2] = quantize(left[i])
		out[i*2+1] = quantize(right[i])
	}
	return out
}

// DecodeStereo splits interleaved 16-bit samples back into float64
// channels on the [-1, 1] scale.
func DecodeStereo(in []int16) (left, right []float64) {
	n := len(in) / 2
	left = make([]float64, n)
	right = make([]float64, n)
	for i := 0; i < n; i++ {
		left[i] = float64(in[i*2]) / scale
		right[i] = float64(in[i*2+1]) / scale
	}
	return left, right
}

func quantize(v float64) int16 {
	s := math.Round(v * scale)
	if s > math.MaxInt16 {
		return math.MaxInt16
	}
	if s < math.MinInt16 {
		return math.MinInt16
	}
	return int16(s)
}

// Int16ToBytes converts int16 samples to an s16le byte slice.
func Int16ToBytes(samples []int16) []byte {
	buf := make([]byte, len(samples)*2)
	for i, s := range samples {
		binary.LittleEndian.PutUint16(buf[i*2:], uint16(s))
	}
	return buf
}

// BytesToInt16 converts an s16le byte slice to int16 samples.
func BytesToInt16(data []byte) []int16 {
	samples := make([]int16, len(data)/2)
	for i := range samples {
		samples[i] = int16(binary.LittleEndian.Uint16(data[i*2:]))
	}
	return samples
}
