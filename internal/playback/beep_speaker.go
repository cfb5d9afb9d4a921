//go:build linux || freebsd || netbsd || openbsd || illumos

package playback

import (
	"errors"
	"fmt"
	"os"

	"github.com/gen2brain/beeep"
)

// The PC timer divisor is 16 bits wide and beeep clamps above 20 kHz.
const (
	beepMinFrequency = 19
	beepMaxFrequency = 20000
)

// speakerDevices are the files beeep drives the PC speaker through. Without
// one of them it only writes a BEL byte to stdout.
var speakerDevices = []string{
	"/dev/tty0",
	"/dev/input/by-path/platform-pcspkr-event-spkr",
}

func speakerBeep(freq float64, ms int) error {
	if err := checkSpeaker(speakerDevices); err != nil {
		return err
	}
	return beeep.Beep(freq, ms)
}

func checkSpeaker(paths []string) error {
	errs := make([]error, 0, len(paths))
	for _, p := range paths {
		f, err := os.OpenFile(p, os.O_WRONLY, 0)
		if err == nil {
			return f.Close()
		}
		errs = append(errs, err)
	}
	if len(errs) == 0 {
		return fmt.Errorf("%w: no PC speaker device configured", ErrMissingDependency)
	}
	return fmt.Errorf("%w: no writable PC speaker device: %w", ErrMissingDependency, errors.Join(errs...))
}
