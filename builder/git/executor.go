package git

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"
)

type ExecResult struct {
	Stdout string
	Stderr string
}

// ExecError is returned when a command exits with a non-zero code.
type ExecError struct {
	Command  string
	ExitCode int
	Stdout   string
	Stderr   string
	Err      error
}

func (e *ExecError) Error() string {
	msg := fmt.Sprintf("command %q exited with code %d", e.Command, e.ExitCode)
	if stderr := strings.TrimSpace(e.Stderr); stderr != "" {
		msg += ": " + stderr
	}
	return msg
}

func (e *ExecError) Unwrap() error {
	return e.Err
}

type execOptions struct {
	env []string
}

type ExecOption func(opt *execOptions)

// WithEnv adds an environment variable to a single command, on top of the
// environment of the current process.
func WithEnv(key, value string) ExecOption {
	return func(opt *execOptions) {
		opt.env = append(opt.env, key+"="+value)
	}
}

type Executor interface {
	Exec(ctx context.Context, name string, args []string, opts ...ExecOption) (ExecResult, error)
	// Stream runs the command and copies its output to stdout and stderr while it runs.
	Stream(ctx context.Context, name string, args []string, stdout, stderr io.Writer, opts ...ExecOption) error
	Dir() string
}

type shellExecutor struct {
	dir    string
	logger *slog.Logger
}

// NewExecutor returns an Executor running every command in dir.
func NewExecutor(dir string, logger *slog.Logger) Executor {
	if logger == nil {
		logger = slog.Default()
	}
	return &shellExecutor{dir: dir, logger: logger}
}

func (e *shellExecutor) Dir() string {
	return e.dir
}

func (e *shellExecutor) command(ctx context.Context, name string, args []string, opts []ExecOption) *exec.Cmd {
	opt := &execOptions{}
	for _, o := range opts {
		o(opt)
	}
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = e.dir
	if len(opt.env) > 0 {
		cmd.Env = append(os.Environ(), opt.env...)
	}
	return cmd
}

func (e *shellExecutor) Exec(ctx context.Context, name string, args []string, opts ...ExecOption) (ExecResult, error) {
	cmd := e.command(ctx, name, args, opts)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	e.logger.DebugContext(ctx, "exec command", slog.String("cmd", cmd.String()), slog.String("dir", e.dir))
	err := cmd.Run()
	res := ExecResult{Stdout: stdout.String(), Stderr: stderr.String()}
	if err != nil {
		return res, wrapExecError(cmd, err, res)
	}
	return res, nil
}

func (e *shellExecutor) Stream(ctx context.Context, name string, args []string, stdout, stderr io.Writer, opts ...ExecOption) error {
	cmd := e.command(ctx, name, args, opts)
	var errBuf bytes.Buffer
	cmd.Stdout = stdout
	cmd.Stderr = io.MultiWriter(stderr, &errBuf)

	e.logger.DebugContext(ctx, "stream command", slog.String("cmd", cmd.String()), slog.String("dir", e.dir))
	if err := cmd.Run(); err != nil {
		return wrapExecError(cmd, err, ExecResult{Stderr: errBuf.String()})
	}
	return nil
}

func wrapExecError(cmd *exec.Cmd, err error, res ExecResult) error {
	execErr := &ExecError{
		Command:  strings.Join(cmd.Args, " "),
		ExitCode: -1,
		Stdout:   res.Stdout,
		Stderr:   res.Stderr,
		Err:      err,
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		execErr.ExitCode = exitErr.ExitCode()
	}
	return execErr
}
