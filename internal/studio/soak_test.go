//go:build soak

package studio_test

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/Jeredozaeta/soundlab-pro/internal/config"
	"github.com/Jeredozaeta/soundlab-pro/internal/session"
	"github.com/Jeredozaeta/soundlab-pro/internal/studio"
	"github.com/Jeredozaeta/soundlab-pro/internal/testutil"
)

const (
	soakDuration = 2 * time.Minute
	soakWorkers  = 8
)

// TestSoakRenderChurn hammers the studio with concurrent render, get,
// and delete cycles and checks capacity accounting, goroutine count,
// and heap growth stay sane.
func TestSoakRenderChurn(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping soak test in short mode")
	}

	logger, _ := zap.NewDevelopment()
	cfg := &config.Config{
		OutputDir:            t.TempDir(),
		MaxSessions:          6,
		MaxConcurrentRenders: 3,
		SessionTTLSec:        2,
	}
	st := studio.New(cfg, logger)

	runtime.GC()
	time.Sleep(100 * time.Millisecond)
	baselineGoroutines := runtime.NumGoroutine()
	t.Logf("baseline goroutines: %d", baselineGoroutines)

	p := session.Params{Freq1: 100, Freq2: 200, Freq3: 50, DurationMinutes: 1, SampleRate: 4000}
	fx := session.DefaultConfig()
	fx.Reverb = true
	fx.Echo = true
	fx.StereoPan = true

	var wg sync.WaitGroup
	stopCh := make(chan struct{})
	var rendered, rejected int64
	var mu sync.Mutex

	for w := 0; w < soakWorkers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; ; i++ {
				select {
				case <-stopCh:
					return
				default:
				}

				id := fmt.Sprintf("soak-%d-%d", w, i)
				sess, err := st.Render(context.Background(), id, p, fx)
				mu.Lock()
				if err != nil {
					rejected++
				} else {
					rendered++
				}
				mu.Unlock()
				if err != nil {
					if !errors.Is(err, studio.ErrCapacity) {
						t.Errorf("unexpected render error: %v", err)
						return
					}
					time.Sleep(50 * time.Millisecond)
					continue
				}

				if st.Get(sess.ID) == nil {
					t.Errorf("session %s vanished before delete", sess.ID)
				}
				// Half the sessions are deleted manually, half ride the TTL.
				if i%2 == 0 {
					st.Delete(sess.ID)
				}
			}
		}(w)
	}

	deadline := time.Now().Add(soakDuration)
	sampleTicker := time.NewTicker(15 * time.Second)
	defer sampleTicker.Stop()
	var memSamples []uint64

	for time.Now().Before(deadline) {
		select {
		case <-sampleTicker.C:
			var ms runtime.MemStats
			runtime.ReadMemStats(&ms)
			memSamples = append(memSamples, ms.HeapInuse)
			t.Logf("goroutines=%d heapInuse=%dKB sessions=%d",
				runtime.NumGoroutine(), ms.HeapInuse/1024, st.Count())
			if n := st.Count(); n > cfg.MaxSessions {
				t.Errorf("session count %d exceeds cap %d", n, cfg.MaxSessions)
			}
		default:
			time.Sleep(1 * time.Second)
		}
	}

	close(stopCh)
	wg.Wait()
	st.Close()

	time.Sleep(2 * time.Second)
	runtime.GC()
	time.Sleep(500 * time.Millisecond)

	testutil.AssertNoGoroutineLeaks(t, baselineGoroutines, 10)

	if len(memSamples) >= 4 {
		firstAvg := (memSamples[0] + memSamples[1]) / 2
		lastAvg := (memSamples[len(memSamples)-1] + memSamples[len(memSamples)-2]) / 2
		ratio := float64(lastAvg) / float64(firstAvg)
		t.Logf("memory ratio (last/first avg): %.2f", ratio)
		if ratio > 3.0 {
			t.Errorf("possible leak: first avg=%dKB, last avg=%dKB", firstAvg/1024, lastAvg/1024)
		}
	}

	mu.Lock()
	t.Logf("soak complete: rendered=%d rejected=%d", rendered, rejected)
	mu.Unlock()
}
