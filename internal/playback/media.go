package playback

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/example/go-tonecheck/internal/audio"
	"github.com/example/go-tonecheck/internal/logging"
)

// DefaultMediaGrace is the extra time allowed after the tone length before
// the media player is closed.
const DefaultMediaGrace = time.Second

// MediaPlayer opens a system media player on a WAV file.
type MediaPlayer interface {
	Open(path string) (MediaSession, error)
}

// MediaSession is a loaded player. Play starts playback and returns
// immediately; Close stops it and releases the player.
type MediaSession interface {
	Play() error
	Close() error
}

// MediaStrategy writes the tone to a temporary WAV file and hands it to a
// system media player. The temporary file is removed on every exit path.
type MediaStrategy struct {
	Player  MediaPlayer
	TempDir string
	Grace   time.Duration

	// Wait blocks for d or until ctx is done. Nil means a real timer.
	Wait func(ctx context.Context, d time.Duration) error
}

func NewMediaStrategy(player MediaPlayer, tempDir string, grace time.Duration) *MediaStrategy {
	return &MediaStrategy{Player: player, TempDir: tempDir, Grace: grace}
}

func (*MediaStrategy) Name() string { return "media" }

func (m *MediaStrategy) Play(ctx context.Context, req *Request) (err error) {
	if m.Player == nil {
		return fmt.Errorf("%w: no media player configured", ErrMissingDependency)
	}

	samples, err := req.Samples()
	if err != nil {
		return err
	}

	path, err := m.writeTemp(samples, req.Spec.SampleRate)
	if err != nil {
		return err
	}
	defer removeTemp(path)

	session, err := m.Player.Open(path)
	if err != nil {
		return fmt.Errorf("open media player: %w", err)
	}
	defer func() {
		if cerr := session.Close(); cerr != nil {
			err = errors.Join(err, fmt.Errorf("close media player: %w", cerr))
		}
	}()

	if err := session.Play(); err != nil {
		return fmt.Errorf("start media playback: %w", err)
	}

	grace := m.Grace
	if grace < 0 {
		grace = 0
	}
	wait := m.Wait
	if wait == nil {
		wait = sleepContext
	}
	return wait(ctx, time.Duration(req.Spec.Duration*float64(time.Second))+grace)
}

func (m *MediaStrategy) writeTemp(samples []int16, sampleRate int) (string, error) {
	f, err := os.CreateTemp(m.TempDir, "tonecheck-*.wav")
	if err != nil {
		return "", fmt.Errorf("create temp wav: %w", err)
	}
	path := f.Name()

	if err := audio.WriteWAV(f, samples, sampleRate); err != nil {
		_ = f.Close()
		removeTemp(path)
		return "", fmt.Errorf("write temp wav: %w", err)
	}
	if err := f.Close(); err != nil {
		removeTemp(path)
		return "", fmt.Errorf("close temp wav: %w", err)
	}
	logging.Debugf("wrote temp wav %s", path)
	return path, nil
}

// removeTemp deletes path. Failures are logged and otherwise ignored.
func removeTemp(path string) {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		logging.Debugf("remove temp wav %s: %v", path, err)
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
