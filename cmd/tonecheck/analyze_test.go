package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/example/go-tonecheck/internal/audio"
	"github.com/example/go-tonecheck/internal/config"
	"github.com/example/go-tonecheck/internal/tone"
)

func writeToneFile(t *testing.T, spec tone.Spec) string {
	t.Helper()

	data, err := renderWAV(spec, fadeOptions{})
	if err != nil {
		t.Fatalf("renderWAV: %v", err)
	}
	path := filepath.Join(t.TempDir(), "capture.wav")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestRunAnalyze(t *testing.T) {
	path := writeToneFile(t, tone.Spec{Frequency: 440, Duration: 0.5, SampleRate: 44100})
	acfg := config.DefaultConfig().Analyze

	tests := []struct {
		name    string
		opts    analyzeOptions
		wantErr bool
		want    string
	}{
		{name: "report only", want: "Dominant:"},
		{name: "expected tone", opts: analyzeOptions{Expect: 440, Tolerance: 10}, want: "Verdict:     PASS"},
		{name: "error line", opts: analyzeOptions{Expect: 440, Tolerance: 10}, want: "Error:       "},
		{name: "wrong tone", opts: analyzeOptions{Expect: 470, Tolerance: 5}, wantErr: true, want: "Verdict:     FAIL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			err := runAnalyze(&out, path, acfg, tt.opts)
			if (err != nil) != tt.wantErr {
				t.Fatalf("runAnalyze err = %v, wantErr %v", err, tt.wantErr)
			}
			if !strings.Contains(out.String(), tt.want) {
				t.Fatalf("output missing %q:\n%s", tt.want, out.String())
			}
		})
	}
}

func TestRunAnalyze_Silence(t *testing.T) {
	data, err := audio.EncodeWAV(make([]int16, 8192), 44100)
	if err != nil {
		t.Fatalf("EncodeWAV: %v", err)
	}
	path := filepath.Join(t.TempDir(), "silence.wav")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	var out bytes.Buffer
	err = runAnalyze(&out, path, config.DefaultConfig().Analyze, analyzeOptions{Expect: 440, Tolerance: 10})
	if err == nil {
		t.Fatal("expected failure for silent capture")
	}
	if !strings.Contains(out.String(), "silent") {
		t.Errorf("output does not flag silence:\n%s", out.String())
	}
}

func TestRunAnalyze_UnsupportedFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "capture.flac")
	if err := os.WriteFile(path, []byte("fLaC"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	err := runAnalyze(&bytes.Buffer{}, path, config.DefaultConfig().Analyze, analyzeOptions{})
	if !errors.Is(err, audio.ErrUnsupportedFormat) {
		t.Fatalf("err = %v, want ErrUnsupportedFormat", err)
	}
}

func TestRunAnalyze_LateStartShowsInSegments(t *testing.T) {
	spec := tone.Spec{Frequency: 440, Duration: 0.5, SampleRate: 44100}
	samples, err := tone.Synthesize(spec)
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	clear(samples[:len(samples)/2])

	data, err := audio.EncodeWAV(samples, spec.SampleRate)
	if err != nil {
		t.Fatalf("EncodeWAV: %v", err)
	}
	path := filepath.Join(t.TempDir(), "late.wav")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	// The leading window is silent, so the overall check fails while the
	// segment track shows the tone arriving late.
	var out bytes.Buffer
	if err := runAnalyze(&out, path, config.DefaultConfig().Analyze, analyzeOptions{Expect: 440, Tolerance: 5}); err == nil {
		t.Fatalf("expected failure for a late tone:\n%s", out.String())
	}

	body := out.String()
	for _, want := range []string{"Segments:", "     0ms: 0.0 Hz", "   400ms: 4", "Error:       440.0 Hz", "Verdict:     FAIL"} {
		if !strings.Contains(body, want) {
			t.Errorf("output missing %q:\n%s", want, body)
		}
	}
}

func TestAnalyzeCmd_DefaultsExpect440(t *testing.T) {
	cmd := newAnalyzeCmd()
	for name, want := range map[string]string{"expect": "440", "tolerance": "5"} {
		f := cmd.Flags().Lookup(name)
		if f == nil {
			t.Fatalf("--%s not registered", name)
		}
		if f.DefValue != want {
			t.Errorf("--%s default = %s, want %s", name, f.DefValue, want)
		}
	}
}
