// Package doctor provides environment preflight checks for tonecheck.
package doctor

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/example/go-tonecheck/internal/tone"
)

// PassMark and FailMark are the prefix symbols printed for each check result.
const (
	PassMark = "✓"
	FailMark = "✗"
)

// ProbeFunc returns a description of an available component or an error if
// the component is unavailable.
type ProbeFunc func() (string, error)

// Config holds injectable dependencies for each doctor check.
type Config struct {
	// Tone is validated before any device checks.
	Tone tone.Spec
	// Strategies is the configured playback order, printed for reference.
	Strategies []string

	// OutputDevice returns the default output device name.
	OutputDevice ProbeFunc
	// SkipOutputDevice skips the output device check (stream strategy unused).
	SkipOutputDevice bool

	// MediaPlayer returns the resolved system media player.
	MediaPlayer ProbeFunc
	// SkipMediaPlayer skips the media player check (media strategy unused).
	SkipMediaPlayer bool

	// Beep emits a short audible probe. Nil skips the check.
	Beep func() error

	// TempDir must accept new files for the media strategy. Empty means the
	// OS default.
	TempDir string
}

// Result collects the outcome of all checks.
type Result struct {
	failures []string
}

// Failed returns true if any check failed.
func (r *Result) Failed() bool { return len(r.failures) > 0 }

// Failures returns the list of failure messages.
func (r *Result) Failures() []string { return append([]string(nil), r.failures...) }

// AddFailure appends an external failure message to the result.
func (r *Result) AddFailure(msg string) { r.failures = append(r.failures, msg) }

func (r *Result) fail(msg string) { r.failures = append(r.failures, msg) }

// Run executes all configured checks and writes human-readable output to w.
// Each check line is prefixed with PassMark or FailMark.
func Run(cfg Config, w io.Writer) Result {
	var res Result

	// ---- tone -------------------------------------------------------------
	if err := cfg.Tone.Validate(); err != nil {
		res.fail(fmt.Sprintf("tone: %v", err))
		fmt.Fprintf(w, "%s tone: %v\n", FailMark, err)
	} else {
		fmt.Fprintf(w, "%s tone: %g Hz for %gs at %d Hz (%d samples)\n",
			PassMark, cfg.Tone.Frequency, cfg.Tone.Duration, cfg.Tone.SampleRate, cfg.Tone.NumSamples())
	}

	if len(cfg.Strategies) > 0 {
		fmt.Fprintf(w, "%s playback order: %s\n", PassMark, strings.Join(cfg.Strategies, " -> "))
	}

	probe(&res, w, "output device", cfg.SkipOutputDevice, cfg.OutputDevice)
	probe(&res, w, "media player", cfg.SkipMediaPlayer, cfg.MediaPlayer)

	// ---- beep -------------------------------------------------------------
	if cfg.Beep == nil {
		fmt.Fprintf(w, "%s beep: skipped\n", PassMark)
	} else if err := cfg.Beep(); err != nil {
		res.fail(fmt.Sprintf("beep: %v", err))
		fmt.Fprintf(w, "%s beep: unavailable (%v)\n", FailMark, err)
	} else {
		fmt.Fprintf(w, "%s beep: ok\n", PassMark)
	}

	// ---- temp dir ---------------------------------------------------------
	dir := cfg.TempDir
	if dir == "" {
		dir = os.TempDir()
	}
	if err := checkWritable(dir); err != nil {
		res.fail(fmt.Sprintf("temp dir %q: %v", dir, err))
		fmt.Fprintf(w, "%s temp dir %s: not writable (%v)\n", FailMark, dir, err)
	} else {
		fmt.Fprintf(w, "%s temp dir: %s\n", PassMark, dir)
	}

	return res
}

func probe(res *Result, w io.Writer, name string, skip bool, fn ProbeFunc) {
	if skip || fn == nil {
		fmt.Fprintf(w, "%s %s: skipped\n", PassMark, name)
		return
	}
	desc, err := fn()
	if err != nil {
		res.fail(fmt.Sprintf("%s: %v", name, err))
		fmt.Fprintf(w, "%s %s: not found (%v)\n", FailMark, name, err)
		return
	}
	fmt.Fprintf(w, "%s %s: %s\n", PassMark, name, desc)
}

func checkWritable(dir string) error {
	f, err := os.CreateTemp(dir, "tonecheck-doctor-*")
	if err != nil {
		return err
	}
	name := f.Name()
	closeErr := f.Close()
	removeErr := os.Remove(name)
	if closeErr != nil {
		return closeErr
	}
	return removeErr
}
