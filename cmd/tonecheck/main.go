package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/example/go-tonecheck/internal/logging"
	"github.com/example/go-tonecheck/internal/playback"
)

func main() {
	err := NewRootCmd().Execute()
	logging.Sync()

	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		if errors.Is(err, playback.ErrMissingDependency) {
			_, _ = fmt.Fprintln(os.Stderr, installHint())
		}

		os.Exit(1)
	}
}
