package playback

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// CommandPlayer plays a file by running an external command with the file
// path appended as the last argument.
type CommandPlayer struct {
	Argv []string
}

// NewCommandPlayer splits command on whitespace. An empty command selects the
// first player from candidates found on PATH.
func NewCommandPlayer(command string, candidates [][]string, lookPath func(string) (string, error)) (*CommandPlayer, error) {
	if lookPath == nil {
		lookPath = exec.LookPath
	}

	if argv := strings.Fields(command); len(argv) > 0 {
		bin, err := lookPath(argv[0])
		if err != nil {
			return nil, fmt.Errorf("%w: player %q: %v", ErrMissingDependency, argv[0], err)
		}
		return &CommandPlayer{Argv: append([]string{bin}, argv[1:]...)}, nil
	}

	names := make([]string, 0, len(candidates))
	for _, c := range candidates {
		if len(c) == 0 {
			continue
		}
		names = append(names, c[0])
		if bin, err := lookPath(c[0]); err == nil {
			return &CommandPlayer{Argv: append([]string{bin}, c[1:]...)}, nil
		}
	}
	return nil, fmt.Errorf("%w: no media player found on PATH (tried %s)", ErrMissingDependency, strings.Join(names, ", "))
}

func (p *CommandPlayer) Open(path string) (MediaSession, error) {
	if len(p.Argv) == 0 {
		return nil, fmt.Errorf("%w: empty player command", ErrMissingDependency)
	}
	args := append(append([]string{}, p.Argv[1:]...), path)
	return &commandSession{cmd: exec.Command(p.Argv[0], args...)}, nil
}

type commandSession struct {
	cmd  *exec.Cmd
	done chan struct{}
	err  error
}

func (s *commandSession) Play() error {
	if err := s.cmd.Start(); err != nil {
		return err
	}
	s.done = make(chan struct{})
	go func() {
		s.err = s.cmd.Wait()
		close(s.done)
	}()
	return nil
}

// Close stops the player if it is still running. A player that already
// exited reports its own exit status.
func (s *commandSession) Close() error {
	if s.done == nil {
		return nil
	}
	select {
	case <-s.done:
		return s.err
	default:
	}
	if err := s.cmd.Process.Kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
		return err
	}
	<-s.done
	return nil
}
