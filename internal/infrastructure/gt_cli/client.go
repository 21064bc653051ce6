// Package gt_cli obtains stack topology by shelling out to the Graphite
// CLI (gt), falling back to git for current-branch resolution.
package gt_cli

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/avatarneil/stack-status/internal/domain"
)

// runner executes an external tool and returns its trimmed stdout. It is a
// struct field so tests can swap in a fake without spawning processes.
type runner func(ctx context.Context, name string, args ...string) (string, error)

type Client struct {
	gtBin   string
	gitBin  string
	timeout time.Duration
	run     runner
}

func New(gtBin, gitBin string, timeout time.Duration) *Client {
	return &Client{
		gtBin:   gtBin,
		gitBin:  gitBin,
		timeout: timeout,
		run:     runTool,
	}
}

func runTool(ctx context.Context, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("%s %s: %w: %s",
			name, strings.Join(args, " "), err, strings.TrimSpace(stderr.String()))
	}

	return strings.TrimSpace(stdout.String()), nil
}

// Installed probes for the gt binary.
func (c *Client) Installed(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	_, err := c.run(ctx, c.gtBin, "--version")
	return err == nil
}

// Stack runs `gt log short` and parses the listing. Any failure to obtain
// or parse a usable listing is reported as domain.ErrNoTopology so callers
// can substitute the single-branch fallback.
func (c *Client) Stack(ctx context.Context) ([]domain.BranchRef, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	out, err := c.run(ctx, c.gtBin, "log", "short")
	if err != nil {
		return nil, domain.ErrNoTopology
	}

	branches := ParseStackLog(out)
	if len(branches) == 0 {
		return nil, domain.ErrNoTopology
	}
	return branches, nil
}

// CurrentBranch resolves HEAD via git. Unlike Stack, failure here is hard:
// without even a current branch there is nothing to report on.
func (c *Client) CurrentBranch(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	out, err := c.run(ctx, c.gitBin, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", fmt.Errorf("resolve current branch: %w", err)
	}
	return out, nil
}
