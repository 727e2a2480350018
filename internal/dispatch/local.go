package dispatch

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// Local dispatches each request by spawning the denoiser executable and
// waiting for it to exit. Exit status zero means the backend produced the
// output file.
type Local struct {
	exe       string
	modelPath string
}

// NewLocal returns a subprocess dispatcher. exe is the executable name or
// path (a bare name is resolved via PATH at spawn time); modelPath, when
// non-empty, is passed as --model=<path>.
func NewLocal(exe, modelPath string) *Local {
	return &Local{exe: exe, modelPath: modelPath}
}

// Args returns the argument vector for one request (without the executable
// itself): an optional --model flag, then the input path, then the output
// path.
func (l *Local) Args(req Request) []string {
	args := make([]string, 0, 3)
	if l.modelPath != "" {
		args = append(args, "--model="+l.modelPath)
	}
	return append(args, req.Input, req.Output)
}

// Dispatch implements [Dispatcher] by running the subprocess to completion.
// A non-zero exit is a per-item failure carrying the exit code; failure to
// spawn at all is a fatal error.
func (l *Local) Dispatch(ctx context.Context, req Request) (Outcome, error) {
	cmd := exec.CommandContext(ctx, l.exe, l.Args(req)...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err == nil {
		return Outcome{OK: true}, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		reason := fmt.Sprintf("exit status %d", exitErr.ExitCode())
		if msg := lastStderrLine(stderr.String()); msg != "" {
			reason += ": " + msg
		}
		return Outcome{OK: false, Reason: reason}, nil
	}
	return Outcome{}, fmt.Errorf("spawn %s: %w", l.exe, err)
}

// lastStderrLine returns the final non-empty stderr line, the part of a
// failed run most likely to name the actual problem.
func lastStderrLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if l := strings.TrimSpace(lines[i]); l != "" {
			return l
		}
	}
	return ""
}
