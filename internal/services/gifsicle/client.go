package gifsicle

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"gifify/internal/gifbuild"
)

// Executor abstracts command execution for testability.
type Executor interface {
	Run(ctx context.Context, binary string, args []string, onLine func(string)) error
}

// Option configures the client.
type Option func(*Client)

// WithExecutor injects a custom executor (primarily for tests).
func WithExecutor(exec Executor) Option {
	return func(c *Client) {
		if exec != nil {
			c.exec = exec
		}
	}
}

// Client wraps the gifsicle optimizer CLI.
type Client struct {
	binary string
	exec   Executor
}

// New constructs a gifsicle client.
func New(binary string, opts ...Option) (*Client, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return nil, errors.New("gifsicle binary required")
	}
	client := &Client{
		binary: binary,
		exec:   commandExecutor{},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// Optimize runs the high-effort (-O3) re-compression pass from inputPath to
// outputPath. lossy is a 0-200 quality trade-off, or gifbuild.LossyUnset to
// keep the pass lossless.
func (c *Client) Optimize(ctx context.Context, inputPath, outputPath string, lossy int, onLine func(string)) error {
	if strings.TrimSpace(inputPath) == "" {
		return errors.New("gifsicle input path required")
	}
	if strings.TrimSpace(outputPath) == "" {
		return errors.New("gifsicle output path required")
	}
	args := gifbuild.OptimizeCommand(lossy, inputPath, outputPath)
	if err := c.exec.Run(ctx, c.binary, args, onLine); err != nil {
		return fmt.Errorf("gifsicle: %w", err)
	}
	return nil
}

type commandExecutor struct{}

func (commandExecutor) Run(ctx context.Context, binary string, args []string, onLine func(string)) error {
	cmd := exec.CommandContext(ctx, binary, args...) //nolint:gosec
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("stdout pipe: %w", err)
	}
	cmd.Stderr = cmd.Stdout
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start command: %w", err)
	}

	scanner := bufio.NewScanner(stdout)
	for scanner.Scan() {
		if onLine != nil {
			onLine(scanner.Text())
		}
	}
	if err := scanner.Err(); err != nil {
		_ = cmd.Process.Kill()
		return fmt.Errorf("scan output: %w", err)
	}

	if err := cmd.Wait(); err != nil {
		return fmt.Errorf("wait command: %w", err)
	}
	return nil
}
