// Package playback emits a test tone through interchangeable output
// strategies and falls back from one to the next.
package playback

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/example/go-tonecheck/internal/logging"
	"github.com/example/go-tonecheck/internal/tone"
)

// ErrMissingDependency marks failures caused by an absent audio facility
// (no output device, no player, no audio library). It is always fatal for the
// command that needs the facility.
var ErrMissingDependency = errors.New("missing audio dependency")

// Request carries the tone to play. PCM is synthesized on first use so that
// strategies which never need samples do not pay for them.
type Request struct {
	Spec tone.Spec

	samples     []int16
	synthesized bool
}

func NewRequest(spec tone.Spec) *Request {
	return &Request{Spec: spec}
}

// NewRequestWithSamples returns a request that plays samples instead of
// synthesizing spec. samples must hold spec.SampleRate mono PCM.
func NewRequestWithSamples(spec tone.Spec, samples []int16) *Request {
	return &Request{Spec: spec, samples: samples, synthesized: true}
}

// Samples returns the PCM for the request. The slice is shared between
// strategies and must not be modified.
func (r *Request) Samples() ([]int16, error) {
	if r.synthesized {
		return r.samples, nil
	}
	samples, err := tone.Synthesize(r.Spec)
	if err != nil {
		return nil, err
	}
	r.samples = samples
	r.synthesized = true
	return samples, nil
}

// Strategy emits audio for the duration of the requested tone.
type Strategy interface {
	Name() string
	Play(ctx context.Context, req *Request) error
}

// PlaybackError records which strategy failed.
type PlaybackError struct {
	Strategy string
	Err      error
}

func (e *PlaybackError) Error() string {
	return fmt.Sprintf("%s playback failed: %v", e.Strategy, e.Err)
}

func (e *PlaybackError) Unwrap() error { return e.Err }

// ExhaustedError is returned by Chain.Run when every strategy failed.
type ExhaustedError struct {
	Attempts []*PlaybackError
}

func (e *ExhaustedError) Error() string {
	if len(e.Attempts) == 0 {
		return "no playback strategies configured"
	}
	parts := make([]string, len(e.Attempts))
	for i, a := range e.Attempts {
		parts[i] = a.Error()
	}
	return "all playback strategies failed: " + strings.Join(parts, "; ")
}

func (e *ExhaustedError) Unwrap() []error {
	errs := make([]error, len(e.Attempts))
	for i, a := range e.Attempts {
		errs[i] = a
	}
	return errs
}

// Chain tries strategies in order until one succeeds. Each strategy is
// attempted at most once per Run.
type Chain struct {
	Strategies []Strategy
}

func NewChain(strategies ...Strategy) *Chain {
	return &Chain{Strategies: strategies}
}

// Run returns the name of the strategy that played the tone.
func (c *Chain) Run(ctx context.Context, req *Request) (string, error) {
	exhausted := &ExhaustedError{}
	for i, s := range c.Strategies {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		log := logging.With("strategy", s.Name(), "attempt", i+1)
		log.Debugf("trying playback strategy")

		err := s.Play(ctx, req)
		if err == nil {
			log.Debugf("playback strategy succeeded")
			return s.Name(), nil
		}

		var pe *PlaybackError
		if !errors.As(err, &pe) || pe.Strategy != s.Name() {
			pe = &PlaybackError{Strategy: s.Name(), Err: err}
		}
		exhausted.Attempts = append(exhausted.Attempts, pe)

		if i < len(c.Strategies)-1 {
			log.Warnf("%v; falling back to %s", err, c.Strategies[i+1].Name())
		} else {
			log.Errorf("%v", err)
		}
	}
	return "", exhausted
}
