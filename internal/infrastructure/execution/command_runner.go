package execution

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"
)

// tailWriter keeps the last capacity bytes written to it. Provisioning
// steps can emit megabytes of compiler output; only the tail is recorded.
type tailWriter struct {
	capacity int
	buf      []byte
	trimmed  bool
}

func newTailWriter(capacity int) *tailWriter {
	return &tailWriter{capacity: capacity}
}

func (w *tailWriter) Write(p []byte) (int, error) {
	w.buf = append(w.buf, p...)
	if len(w.buf) > w.capacity {
		w.buf = w.buf[len(w.buf)-w.capacity:]
		w.trimmed = true
	}
	return len(p), nil
}

// String returns the captured tail, prefixed with a marker when earlier
// output was discarded.
func (w *tailWriter) String() string {
	if w.trimmed {
		return "[...truncated...]" + string(w.buf)
	}
	return string(w.buf)
}

// commandResult carries what running one external command produced.
type commandResult struct {
	ExitCode int
	Output   string
	Duration time.Duration
}

// runCommand executes argv with the given environment and working
// directory, capturing a bounded tail of the combined output. A non-zero
// exit is reported through the returned error; the result is valid in
// both cases.
func runCommand(ctx context.Context, argv []string, env []string, workDir string, tailLimit int) (*commandResult, error) {
	if len(argv) == 0 {
		return nil, fmt.Errorf("empty command")
	}

	tail := newTailWriter(tailLimit)
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Env = env
	cmd.Dir = workDir
	cmd.Stdout = tail
	cmd.Stderr = tail

	started := time.Now()
	err := cmd.Run()
	result := &commandResult{
		ExitCode: 0,
		Output:   tail.String(),
		Duration: time.Since(started),
	}

	if err == nil {
		return result, nil
	}

	// Cancellation and timeout win over the exit status the killed
	// process happened to report.
	if ctxErr := ctx.Err(); ctxErr != nil {
		result.ExitCode = -1
		return result, fmt.Errorf("command %q interrupted: %w", argv[0], ctxErr)
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		result.ExitCode = exitErr.ExitCode()
		return result, fmt.Errorf("command %q exited with code %d", argv[0], result.ExitCode)
	}

	result.ExitCode = -1
	return result, fmt.Errorf("failed to run command %q: %w", argv[0], err)
}
