// Package playback plays rendered sessions on the local sound device.
// It backs the CLI's -play flag; the HTTP service never touches it.
package playback

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/ebitengine/oto/v3"
)

// Player owns an audio context for a fixed sample rate. Contexts are
// process-wide in oto, so create one Player and reuse it.
type Player struct {
	ctx *oto.Context
}

// NewPlayer opens the sound device for 16-bit stereo output at the
// given rate and blocks until the device is ready.
func NewPlayer(sampleRate int) (*Player, error) {
	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 2,
		Format:       oto.FormatSignedInt16LE,
	}
	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("open audio device: %w", err)
	}
	<-ready

	return &Player{ctx: ctx}, nil
}

// Play writes interleaved s16le bytes to the device and blocks until
// playback drains or ctx is canceled.
func (p *Player) Play(ctx context.Context, pcm []byte) error {
	player := p.ctx.NewPlayer(bytes.NewReader(pcm))
	defer player.Close()

	player.Play()

	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()
	for player.IsPlaying() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
	return nil
}
