package studio

import (
	"context"
	"errors"
	"os"
	"testing"

	"go.uber.org/zap"

	"github.com/Jeredozaeta/soundlab-pro/internal/config"
	"github.com/Jeredozaeta/soundlab-pro/internal/session"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		OutputDir:            t.TempDir(),
		MaxSessions:          4,
		MaxConcurrentRenders: 2,
		SessionTTLSec:        1800,
	}
}

// testParams keeps renders fast: one minute at 200 Hz is 12k samples.
func testParams() session.Params {
	return session.Params{Freq1: 40, Freq2: 60, Freq3: 80, DurationMinutes: 1, SampleRate: 200}
}

func TestRenderAndGet(t *testing.T) {
	st := New(testConfig(t), zap.NewNop())
	defer st.Close()

	sess, err := st.Render(context.Background(), "take-1", testParams(), session.DefaultConfig())
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	if sess.ID != "take-1" {
		t.Errorf("expected id take-1, got %s", sess.ID)
	}
	if sess.FileSize <= 0 {
		t.Errorf("expected positive file size, got %d", sess.FileSize)
	}
	if len(sess.Preview) < previewPoints || len(sess.Preview) >= 2*previewPoints {
		t.Errorf("expected roughly %d preview points, got %d", previewPoints, len(sess.Preview))
	}
	if sess.DurationSeconds() != 60 {
		t.Errorf("expected 60s duration, got %d", sess.DurationSeconds())
	}

	info, err := os.Stat(sess.FilePath)
	if err != nil {
		t.Fatalf("stat artifact: %v", err)
	}
	if info.Size() != sess.FileSize {
		t.Errorf("expected recorded size %d to match file size %d", sess.FileSize, info.Size())
	}

	if got := st.Get("take-1"); got != sess {
		t.Errorf("expected Get to return the rendered session")
	}
	if st.Count() != 1 {
		t.Errorf("expected 1 session, got %d", st.Count())
	}
	if st.Get("no-such-take") != nil {
		t.Error("expected nil for unknown id")
	}
}

func TestDelete(t *testing.T) {
	st := New(testConfig(t), zap.NewNop())
	defer st.Close()

	sess, err := st.Render(context.Background(), "take-1", testParams(), session.DefaultConfig())
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	if !st.Delete("take-1") {
		t.Fatal("expected delete to find the session")
	}
	if st.Count() != 0 {
		t.Errorf("expected 0 sessions, got %d", st.Count())
	}
	if _, err := os.Stat(sess.FilePath); !os.IsNotExist(err) {
		t.Errorf("expected artifact removed, stat err = %v", err)
	}
	if st.Delete("take-1") {
		t.Error("expected second delete to find nothing")
	}
}

func TestRenderCapacity(t *testing.T) {
	cfg := testConfig(t)
	cfg.MaxSessions = 1
	st := New(cfg, zap.NewNop())
	defer st.Close()

	if _, err := st.Render(context.Background(), "take-1", testParams(), session.DefaultConfig()); err != nil {
		t.Fatalf("render: %v", err)
	}

	_, err := st.Render(context.Background(), "take-2", testParams(), session.DefaultConfig())
	if !errors.Is(err, ErrCapacity) {
		t.Fatalf("expected ErrCapacity, got %v", err)
	}

	// Deleting frees the slot for the next render.
	st.Delete("take-1")
	if _, err := st.Render(context.Background(), "take-3", testParams(), session.DefaultConfig()); err != nil {
		t.Fatalf("render after delete: %v", err)
	}
}

func TestRenderInvalidParams(t *testing.T) {
	st := New(testConfig(t), zap.NewNop())
	defer st.Close()

	p := testParams()
	p.Freq1 = 5 // below audible floor

	_, err := st.Render(context.Background(), "take-1", p, session.DefaultConfig())
	if !errors.Is(err, session.ErrInvalidParameter) {
		t.Fatalf("expected ErrInvalidParameter, got %v", err)
	}
	if st.Count() != 0 {
		t.Errorf("expected no registered session, got %d", st.Count())
	}

	// Failed render must release its capacity slot.
	if _, err := st.Render(context.Background(), "take-2", testParams(), session.DefaultConfig()); err != nil {
		t.Fatalf("render after failure: %v", err)
	}
}

func TestRenderCanceled(t *testing.T) {
	st := New(testConfig(t), zap.NewNop())
	defer st.Close()

	// Saturate the render semaphore so the next request has to wait.
	release := make(chan struct{})
	for i := 0; i < cap(st.renderSem); i++ {
		st.renderSem <- struct{}{}
	}
	go func() {
		<-release
		for i := 0; i < cap(st.renderSem); i++ {
			<-st.renderSem
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := st.Render(ctx, "take-1", testParams(), session.DefaultConfig())
		done <- err
	}()

	cancel()
	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	close(release)

	// The canceled request must not hold a capacity slot.
	if _, err := st.Render(context.Background(), "take-2", testParams(), session.DefaultConfig()); err != nil {
		t.Fatalf("render after cancel: %v", err)
	}
}

func TestRenderAfterClose(t *testing.T) {
	st := New(testConfig(t), zap.NewNop())
	st.Close()

	_, err := st.Render(context.Background(), "take-1", testParams(), session.DefaultConfig())
	if !errors.Is(err, ErrClosed) {
		t.Fatalf("expected ErrClosed, got %v", err)
	}
}

func TestCloseRemovesSessions(t *testing.T) {
	st := New(testConfig(t), zap.NewNop())

	s1, err := st.Render(context.Background(), "take-1", testParams(), session.DefaultConfig())
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	s2, err := st.Render(context.Background(), "take-2", testParams(), session.DefaultConfig())
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	st.Close()

	if st.Count() != 0 {
		t.Errorf("expected empty registry after close, got %d", st.Count())
	}
	for _, path := range []string{s1.FilePath, s2.FilePath} {
		if _, err := os.Stat(path); !os.IsNotExist(err) {
			t.Errorf("expected %s removed, stat err = %v", path, err)
		}
	}
}
