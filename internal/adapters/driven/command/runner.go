// Package command runs external tools for the driven adapters that shell out.
package command

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/custodia-labs/studydeck/internal/core/ports/driven"
	"github.com/custodia-labs/studydeck/internal/logger"
)

// Ensure Runner implements the interface.
var _ driven.CommandRunner = (*Runner)(nil)

// Error reports a failed command together with its combined output.
type Error struct {
	Name   string
	Args   []string
	Output []byte
	Err    error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s failed: %v", e.Name, e.Err)
	if out := strings.TrimSpace(string(e.Output)); out != "" {
		msg += ": " + out
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// ErrNotInstalled indicates the executable is not on PATH.
var ErrNotInstalled = errors.New("executable not found on PATH")

// Runner executes commands with os/exec.
type Runner struct{}

// NewRunner creates a command runner.
func NewRunner() *Runner {
	return &Runner{}
}

// Run executes name with args and returns the combined output. A non-zero
// exit is returned as *Error carrying that output.
func (r *Runner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	if _, err := exec.LookPath(name); err != nil {
		return nil, &Error{Name: name, Args: args, Err: fmt.Errorf("%w: %s", ErrNotInstalled, name)}
	}

	logger.Debug("exec %s %s", name, strings.Join(args, " "))
	out, err := exec.CommandContext(ctx, name, args...).CombinedOutput()
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = ctxErr
		}
		return out, &Error{Name: name, Args: args, Output: out, Err: err}
	}
	return out, nil
}

// Available reports whether name can be found on PATH.
func Available(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}
