//go:build !windows

package playback

import "runtime"

// DefaultPlayerCandidates lists the players probed when no command is
// configured.
func DefaultPlayerCandidates() [][]string {
	if runtime.GOOS == "darwin" {
		return [][]string{{"afplay"}}
	}
	return [][]string{
		{"paplay"},
		{"pw-play"},
		{"aplay", "-q"},
	}
}

// NewMediaPlayer returns a player for the current platform. command, when
// non-empty, overrides the probed player.
func NewMediaPlayer(command string) (MediaPlayer, error) {
	return NewCommandPlayer(command, DefaultPlayerCandidates(), nil)
}
