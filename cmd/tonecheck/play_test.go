package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/example/go-tonecheck/internal/config"
	"github.com/example/go-tonecheck/internal/playback"
)

func playConfig(t *testing.T, strategies ...string) config.Config {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.Tone.Duration = 0.01
	cfg.Tone.SampleRate = 8000
	cfg.Playback.TempDir = t.TempDir()
	cfg.Playback.MediaGrace = 0
	if len(strategies) > 0 {
		cfg.Playback.Strategies = strategies
	}
	return cfg
}

func assertNoTempFiles(t *testing.T, dir string) {
	t.Helper()

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("%d temp files left behind", len(entries))
	}
}

func TestRunPlay_BeepSucceeds(t *testing.T) {
	player := &fakePlayer{}
	var beeps int
	stubSeams(t, nil, player, func(freq float64, ms int) error {
		beeps++
		if freq != 440 || ms != 10 {
			t.Errorf("beep(%v, %d), want beep(440, 10)", freq, ms)
		}
		time.Sleep(time.Duration(ms) * time.Millisecond)
		return nil
	})

	var out bytes.Buffer
	if err := runPlay(context.Background(), &out, playConfig(t)); err != nil {
		t.Fatalf("runPlay: %v", err)
	}

	if beeps != 1 || player.opens != 0 {
		t.Fatalf("beeps=%d media opens=%d, want 1 and 0", beeps, player.opens)
	}
	for _, want := range []string{"=== Tone Player ===", "Frequency: 440 Hz", "Tone playback completed (beep)"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}
}

func TestRunPlay_FallsBackToMediaOnce(t *testing.T) {
	player := &fakePlayer{}
	stubSeams(t, nil, player, func(float64, int) error { return errors.New("no beep device") })

	cfg := playConfig(t)
	var out bytes.Buffer
	if err := runPlay(context.Background(), &out, cfg); err != nil {
		t.Fatalf("runPlay: %v", err)
	}

	if player.opens != 1 {
		t.Fatalf("media attempted %d times, want 1", player.opens)
	}
	if !strings.Contains(out.String(), "Tone playback completed (media)") {
		t.Errorf("unexpected output:\n%s", out.String())
	}
	assertNoTempFiles(t, cfg.Playback.TempDir)
}

func TestRunPlay_AllStrategiesFail(t *testing.T) {
	player := &fakePlayer{err: errors.New("WMPlayer.OCX not registered")}
	stubSeams(t, nil, player, func(float64, int) error { return errors.New("no beep device") })

	cfg := playConfig(t)
	var out bytes.Buffer
	err := runPlay(context.Background(), &out, cfg)

	var exhausted *playback.ExhaustedError
	if !errors.As(err, &exhausted) {
		t.Fatalf("err = %v, want *ExhaustedError", err)
	}
	if player.opens != 1 {
		t.Fatalf("media attempted %d times, want 1", player.opens)
	}
	if !strings.Contains(out.String(), "Failed to play audio") {
		t.Errorf("output missing failure line:\n%s", out.String())
	}
	for _, p := range player.paths {
		if _, statErr := os.Stat(p); !errors.Is(statErr, os.ErrNotExist) {
			t.Errorf("temp file %q still exists", p)
		}
	}
	assertNoTempFiles(t, cfg.Playback.TempDir)
}

func TestRunPlay_MissingMediaPlayerReported(t *testing.T) {
	stubSeams(t, nil, nil, func(float64, int) error { return errors.New("no beep device") })

	err := runPlay(context.Background(), &bytes.Buffer{}, playConfig(t))
	if !errors.Is(err, playback.ErrMissingDependency) {
		t.Fatalf("err = %v, want ErrMissingDependency", err)
	}
}

func TestRunPlay_StreamStrategy(t *testing.T) {
	dev := &fakeDevice{stream: &fakeStream{}}
	stubSeams(t, dev, nil, nil)

	var out bytes.Buffer
	if err := runPlay(context.Background(), &out, playConfig(t, config.StrategyStream)); err != nil {
		t.Fatalf("runPlay: %v", err)
	}
	if len(dev.stream.written) != 80 {
		t.Fatalf("wrote %d samples, want 80", len(dev.stream.written))
	}
}

func TestRunPlay_InvalidTone(t *testing.T) {
	stubSeams(t, nil, nil, nil)

	cfg := playConfig(t)
	cfg.Tone.Frequency = 5000

	if err := runPlay(context.Background(), &bytes.Buffer{}, cfg); err == nil {
		t.Fatal("expected error for tone above Nyquist")
	}
}

func TestBuildStrategies_Order(t *testing.T) {
	stubSeams(t, &fakeDevice{}, &fakePlayer{}, func(float64, int) error { return nil })

	cfg := playConfig(t, config.StrategyMedia, config.StrategyStream, config.StrategyBeep)
	strategies, err := buildStrategies(cfg)
	if err != nil {
		t.Fatalf("buildStrategies: %v", err)
	}

	var names []string
	for _, s := range strategies {
		names = append(names, s.Name())
	}
	if got := strings.Join(names, ","); got != "media,stream,beep" {
		t.Fatalf("order = %s, want media,stream,beep", got)
	}
}

func TestRunPlay_BellOnlyBeepFallsBack(t *testing.T) {
	player := &fakePlayer{}
	stubSeams(t, nil, player, func(float64, int) error { return nil })

	cfg := playConfig(t)
	cfg.Tone.Duration = 0.2

	var out bytes.Buffer
	if err := runPlay(context.Background(), &out, cfg); err != nil {
		t.Fatalf("runPlay: %v", err)
	}
	if player.opens != 1 {
		t.Fatalf("media attempted %d times, want 1", player.opens)
	}
	if !strings.Contains(out.String(), "Tone playback completed (media)") {
		t.Errorf("unexpected output:\n%s", out.String())
	}
	assertNoTempFiles(t, cfg.Playback.TempDir)
}

func TestBuildStrategies_UnknownName(t *testing.T) {
	cfg := playConfig(t, "telepathy")
	if _, err := buildStrategies(cfg); err == nil {
		t.Fatal("expected error for unknown strategy")
	}
}
