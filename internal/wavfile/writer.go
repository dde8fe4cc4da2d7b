// Package wavfile writes and reads 16-bit stereo RIFF/WAV files.
package wavfile

import (
	"fmt"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

const (
	bitDepth    = 16
	numChannels = 2

	// Frames per encoder write. Long sessions are streamed through a
	// reused chunk instead of one giant []int copy of the whole take.
	chunkFrames = 65536
)

// Write encodes interleaved 16-bit stereo samples into a WAV file at
// path and returns the final file size in bytes.
func Write(path string, samples []int16, sampleRate int) (int64, error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("create wav file: %w", err)
	}

	enc := wav.NewEncoder(f, sampleRate, bitDepth, numChannels, 1)

	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: numChannels, SampleRate: sampleRate},
		Data:           make([]int, 0, chunkFrames*numChannels),
		SourceBitDepth: bitDepth,
	}
	for off := 0; off < len(samples); off += chunkFrames * numChannels {
		end := off + chunkFrames*numChannels
		if end > len(samples) {
			end = len(samples)
		}
		buf.Data = buf.Data[:end-off]
		for i, s := range samples[off:end] {
			buf.Data[i] = int(s)
		}
		if err := enc.Write(buf); err != nil {
			f.Close()
			return 0, fmt.Errorf("write wav data: %w", err)
		}
	}

	// Close finalizes the RIFF header, so its error matters.
	if err := enc.Close(); err != nil {
		f.Close()
		return 0, fmt.Errorf("finalize wav file: %w", err)
	}
	if err := f.Close(); err != nil {
		return 0, fmt.Errorf("close wav file: %w", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		return 0, fmt.Errorf("stat wav file: %w", err)
	}
	return info.Size(), nil
}

// Read decodes a WAV file back into interleaved 16-bit samples and its
// sample rate. The CLI plays sessions through this so playback covers
// the artifact on disk, not just the buffers in memory.
func Read(path string) ([]int16, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("open wav file: %w", err)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, 0, fmt.Errorf("invalid wav file: %s", path)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, 0, fmt.Errorf("decode wav data: %w", err)
	}

	samples := make([]int16, len(buf.Data))
	for i, s := range buf.Data {
		samples[i] = int16(s)
	}
	return samples, int(dec.SampleRate), nil
}
