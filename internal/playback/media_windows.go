//go:build windows

package playback

import (
	"errors"
	"fmt"
	"runtime"

	ole "github.com/go-ole/go-ole"
	"github.com/go-ole/go-ole/oleutil"
)

// DefaultPlayerCandidates is empty on Windows; WMPlayer.OCX is used instead.
func DefaultPlayerCandidates() [][]string { return nil }

// NewMediaPlayer returns the Windows Media Player COM control, or a command
// player when command is non-empty.
func NewMediaPlayer(command string) (MediaPlayer, error) {
	if command != "" {
		return NewCommandPlayer(command, nil, nil)
	}
	return wmPlayer{}, nil
}

const sFalse = 0x00000001

type wmPlayer struct{}

// Open loads path into a new WMPlayer.OCX instance. COM is initialized on the
// calling OS thread, which stays locked until the session is closed.
func (wmPlayer) Open(path string) (MediaSession, error) {
	runtime.LockOSThread()
	if err := ole.CoInitialize(0); err != nil {
		var oleErr *ole.OleError
		if !errors.As(err, &oleErr) || oleErr.Code() != sFalse {
			runtime.UnlockOSThread()
			return nil, fmt.Errorf("initialize COM: %w", err)
		}
	}

	s := &wmSession{}
	unknown, err := oleutil.CreateObject("WMPlayer.OCX")
	if err != nil {
		s.release()
		return nil, fmt.Errorf("%w: WMPlayer.OCX: %v", ErrMissingDependency, err)
	}
	player, err := unknown.QueryInterface(ole.IID_IDispatch)
	unknown.Release()
	if err != nil {
		s.release()
		return nil, fmt.Errorf("query WMPlayer dispatch: %w", err)
	}
	s.player = player

	if _, err := oleutil.PutProperty(player, "URL", path); err != nil {
		s.release()
		return nil, fmt.Errorf("set WMPlayer URL: %w", err)
	}
	return s, nil
}

type wmSession struct {
	player *ole.IDispatch
}

func (s *wmSession) Play() error {
	controls, err := oleutil.GetProperty(s.player, "controls")
	if err != nil {
		return fmt.Errorf("get WMPlayer controls: %w", err)
	}
	defer controls.Clear()

	_, err = oleutil.CallMethod(controls.ToIDispatch(), "play")
	return err
}

func (s *wmSession) Close() error {
	var err error
	if s.player != nil {
		_, err = oleutil.CallMethod(s.player, "close")
	}
	s.release()
	return err
}

func (s *wmSession) release() {
	if s.player != nil {
		s.player.Release()
		s.player = nil
	}
	ole.CoUninitialize()
	runtime.UnlockOSThread()
}
