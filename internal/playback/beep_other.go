//go:build !windows && !linux && !freebsd && !netbsd && !openbsd && !illumos

package playback

import (
	"fmt"
	"runtime"
)

const (
	beepMinFrequency = 0
	beepMaxFrequency = 0
)

// speakerBeep fails here: beeep only rings the terminal bell on these
// systems and ignores frequency and duration.
func speakerBeep(float64, int) error {
	return fmt.Errorf("%w: no PC speaker beep on %s", ErrMissingDependency, runtime.GOOS)
}
