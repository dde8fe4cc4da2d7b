package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/Jeredozaeta/soundlab-pro/internal/dsp"
	"github.com/Jeredozaeta/soundlab-pro/internal/pcm"
	"github.com/Jeredozaeta/soundlab-pro/internal/playback"
	"github.com/Jeredozaeta/soundlab-pro/internal/session"
	"github.com/Jeredozaeta/soundlab-pro/internal/wavfile"
)

func main() {
	f1 := flag.Int("f1", session.DefaultFreq1, "first tone frequency in Hz")
	f2 := flag.Int("f2", session.DefaultFreq2, "second tone frequency in Hz")
	f3 := flag.Int("f3", session.DefaultFreq3, "third tone frequency in Hz")
	minutes := flag.Int("minutes", session.DefaultDurationMinutes, "session length in minutes")
	rate := flag.Int("rate", session.DefaultSampleRate, "sample rate in Hz")
	out := flag.String("o", "session.wav", "output WAV path")

	am := flag.Bool("am", false, "enable amplitude modulation")
	amRate := flag.Float64("am-rate", 0, "amplitude modulation rate in Hz")
	reverb := flag.Bool("reverb", false, "enable reverb")
	echo := flag.Bool("echo", false, "enable echo")
	pan := flag.Bool("pan", false, "enable stereo panning")
	pulses := flag.Bool("pulses", false, "enable isochronic pulses")
	pulseRate := flag.Int("pulse-rate", session.DefaultPulseRateHz, "pulse rate in Hz")
	binaural := flag.Bool("binaural", false, "enable binaural beats")
	binauralDiff := flag.Int("binaural-diff", session.DefaultBinauralDiffHz, "binaural frequency difference in Hz")
	chorus := flag.Bool("chorus", false, "enable chorus")
	flanger := flag.Bool("flanger", false, "enable flanger")
	tremolo := flag.Bool("tremolo", false, "enable tremolo")
	lowpass := flag.Bool("lowpass", false, "enable lowpass filter")
	highpass := flag.Bool("highpass", false, "enable highpass filter")
	distortion := flag.Bool("distortion", false, "enable distortion")
	noise := flag.Bool("noise", false, "enable the noise layer")
	seed := flag.Int64("seed", 0, "noise seed, 0 seeds from the clock")

	play := flag.Bool("play", false, "play the session after rendering")
	quiet := flag.Bool("quiet", false, "suppress the summary")

	flag.Parse()

	p := session.Params{
		Freq1:           *f1,
		Freq2:           *f2,
		Freq3:           *f3,
		DurationMinutes: *minutes,
		SampleRate:      *rate,
	}
	fx := session.Config{
		AmplitudeModulation: *am,
		AMRateHz:            *amRate,
		Reverb:              *reverb,
		Echo:                *echo,
		StereoPan:           *pan,
		IsochronicPulses:    *pulses,
		PulseRateHz:         *pulseRate,
		BinauralBeats:       *binaural,
		BinauralDiffHz:      *binauralDiff,
		Chorus:              *chorus,
		Flanger:             *flanger,
		Tremolo:             *tremolo,
		Lowpass:             *lowpass,
		Highpass:            *highpass,
		Distortion:          *distortion,
		NoiseLayer:          *noise,
		NoiseSeed:           *seed,
	}

	res, err := dsp.Generate(p, fx)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	samples := pcm.EncodeStereo(res.Left, res.Right)
	size, err := wavfile.Write(*out, samples, p.SampleRate)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	if !*quiet {
		names := make([]string, 0, 13)
		for _, e := range fx.EnabledEffects() {
			names = append(names, e.String())
		}
		effects := "none"
		if len(names) > 0 {
			effects = strings.Join(names, ", ")
		}
		fmt.Printf("tones:    %d / %d / %d Hz\n", p.Freq1, p.Freq2, p.Freq3)
		fmt.Printf("length:   %d min at %d Hz\n", p.DurationMinutes, p.SampleRate)
		fmt.Printf("effects:  %s\n", effects)
		fmt.Printf("peak:     %.4f before normalization\n", res.Peak)
		fmt.Printf("written:  %s (%d bytes)\n", *out, size)
	}

	if *play {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		// Play the file as written, not the buffer in memory, so what
		// comes out of the speakers is what landed on disk.
		written, wavRate, err := wavfile.Read(*out)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		player, err := playback.NewPlayer(wavRate)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		if !*quiet {
			fmt.Println("playing, ctrl-c to stop")
		}
		if err := player.Play(ctx, pcm.Int16ToBytes(written)); err != nil && ctx.Err() == nil {
			fmt.Println(err)
			os.Exit(1)
		}
	}
}
