//go:build windows

package playback

import "github.com/gen2brain/beeep"

// kernel32 Beep replaces frequencies outside this range with its default.
const (
	beepMinFrequency = 37
	beepMaxFrequency = 32767
)

func speakerBeep(freq float64, ms int) error {
	return beeep.Beep(freq, ms)
}
